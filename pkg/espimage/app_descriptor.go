package espimage

import (
	"bytes"
	"encoding/binary"
	"encoding/hex"
	"unicode/utf8"
)

// AppDescriptorMagic is the value of the first word of esp_app_desc_t.
const AppDescriptorMagic = 0xABCD5432

type fieldRange struct {
	Name  string
	Start int
	End   int
}

var (
	fieldVersion     = fieldRange{Name: "version", Start: 0x10, End: 0x30}
	fieldProjectName = fieldRange{Name: "project_name", Start: 0x30, End: 0x50}
	fieldCompileTime = fieldRange{Name: "time", Start: 0x50, End: 0x60}
	fieldCompileDate = fieldRange{Name: "date", Start: 0x60, End: 0x70}
	fieldIDFVersion  = fieldRange{Name: "idf_ver", Start: 0x70, End: 0x90}
	fieldELFSHA256   = fieldRange{Name: "app_elf_sha256", Start: 0x90, End: 0xB0}
)

// AppDescriptor is the application description structure embedded
// into the first segment of an application image.
type AppDescriptor struct {
	MagicWord   uint32
	Version     string
	ProjectName string
	CompileTime string
	CompileDate string
	IDFVersion  string
	ELFSHA256   []byte
}

// ParseAppDescriptor parses the application descriptor from the payload
// of the first segment.
//
// A field which does not fit into the segment is cut down to the available
// bytes (or is empty if nothing is available).
func ParseAppDescriptor(segment []byte) (*AppDescriptor, error) {
	if len(segment) < 4 {
		return nil, ErrTruncatedAppDescriptor{Size: len(segment)}
	}

	desc := &AppDescriptor{
		MagicWord: binary.LittleEndian.Uint32(segment),
	}
	if desc.MagicWord != AppDescriptorMagic {
		return nil, ErrInvalidAppDescriptorMagic{Magic: desc.MagicWord}
	}

	for _, item := range []struct {
		Field fieldRange
		Dst   *string
	}{
		{Field: fieldVersion, Dst: &desc.Version},
		{Field: fieldProjectName, Dst: &desc.ProjectName},
		{Field: fieldCompileTime, Dst: &desc.CompileTime},
		{Field: fieldCompileDate, Dst: &desc.CompileDate},
		{Field: fieldIDFVersion, Dst: &desc.IDFVersion},
	} {
		s, err := parseText(segment, item.Field)
		if err != nil {
			return nil, err
		}
		*item.Dst = s
	}

	digest := fieldBytes(segment, fieldELFSHA256)
	desc.ELFSHA256 = make([]byte, len(digest))
	copy(desc.ELFSHA256, digest)

	return desc, nil
}

// ELFSHA256Hex returns the ELF file digest as a lowercase hex string.
func (desc *AppDescriptor) ELFSHA256Hex() string {
	return hex.EncodeToString(desc.ELFSHA256)
}

func fieldBytes(segment []byte, field fieldRange) []byte {
	start, end := field.Start, field.End
	if start > len(segment) {
		start = len(segment)
	}
	if end > len(segment) {
		end = len(segment)
	}
	return segment[start:end]
}

func parseText(segment []byte, field fieldRange) (string, error) {
	b := bytes.TrimRight(fieldBytes(segment, field), "\x00")
	if !utf8.Valid(b) {
		return "", ErrInvalidText{Field: field.Name}
	}
	return string(b), nil
}
