package types

import (
	"github.com/immune-gmbh/fwrelease/pkg/espimage"
)

// Application is the build metadata of the released application.
type Application struct {
	Name        string `json:"name"         db:"name"`
	Version     string `json:"version"      db:"version"`
	CompileTime string `json:"compile_time" db:"compile_time"`
	IDFVersion  string `json:"idf_version"  db:"idf_version"`
	ELFSHA256   string `json:"elf_sha256"   db:"elf_sha256"`
}

// NewApplication converts the parsed application descriptor.
func NewApplication(desc *espimage.AppDescriptor) Application {
	return Application{
		Name:        desc.ProjectName,
		Version:     desc.Version,
		CompileTime: desc.CompileDate + "T" + desc.CompileTime,
		IDFVersion:  desc.IDFVersion,
		ELFSHA256:   desc.ELFSHA256Hex(),
	}
}

// ReleaseRecord is the metadata document of a released tag.
//
// It is built once and never modified afterwards. The field order
// defines the order of keys in the persisted document.
type ReleaseRecord struct {
	ChipID       string      `json:"chip_id"       db:"chip_id"`
	FlashSize    uint64      `json:"flash_size"    db:"flash_size"`
	Board        string      `json:"board"         db:"board"`
	Application  Application `json:"application"   db:"application"`
	FirmwareSize int         `json:"firmware_size" db:"firmware_size"`
	Tag          Tag         `json:"tag"           db:"tag,pk"`
	URL          string      `json:"url"           db:"url"`

	ArtifactID ArtifactID `json:"-" db:"artifact_id"`
}

// NewReleaseRecord builds the record of a parsed image.
//
// appImage is the application image as it is published (it defines
// the firmware size and the ArtifactID).
func NewReleaseRecord(
	tag Tag,
	board string,
	img *espimage.Image,
	desc *espimage.AppDescriptor,
	appImage []byte,
	url string,
) ReleaseRecord {
	return ReleaseRecord{
		ChipID:       img.ChipID.String(),
		FlashSize:    img.FlashSize.Bytes(),
		Board:        board,
		Application:  NewApplication(desc),
		FirmwareSize: len(appImage),
		Tag:          tag,
		URL:          url,
		ArtifactID:   NewArtifactID(appImage),
	}
}
