// Package espimagetest builds synthetic firmware images for tests.
package espimagetest

import (
	"encoding/binary"
)

// AppDescriptor is the content of a synthetic application descriptor.
type AppDescriptor struct {
	Magic       uint32
	Version     string
	ProjectName string
	CompileTime string
	CompileDate string
	IDFVersion  string
	ELFSHA256   [32]byte
}

// Bytes returns the esp_app_desc_t-like binary form (0xB0 bytes).
func (d AppDescriptor) Bytes() []byte {
	b := make([]byte, 0xB0)
	binary.LittleEndian.PutUint32(b, d.Magic)
	copy(b[0x10:0x30], d.Version)
	copy(b[0x30:0x50], d.ProjectName)
	copy(b[0x50:0x60], d.CompileTime)
	copy(b[0x60:0x70], d.CompileDate)
	copy(b[0x70:0x90], d.IDFVersion)
	copy(b[0x90:0xB0], d.ELFSHA256[:])
	return b
}

// Image is the content of a synthetic application image.
type Image struct {
	ChipID        uint8
	FlashSizeCode uint8
	Segments      [][]byte

	// TrailerSize is the amount of bytes appended after the last
	// segment (the checksum and padding in real images).
	TrailerSize int
}

// Bytes returns the binary form of the image.
func (img Image) Bytes() []byte {
	b := make([]byte, 0x18)
	b[0] = 0xE9
	b[1] = uint8(len(img.Segments))
	b[3] = img.FlashSizeCode << 4
	b[0x0C] = img.ChipID
	for idx, payload := range img.Segments {
		var hdr [8]byte
		binary.LittleEndian.PutUint32(hdr[:], 0x3C000000+uint32(idx)*0x10000)
		binary.LittleEndian.PutUint32(hdr[4:], uint32(len(payload)))
		b = append(b, hdr[:]...)
		b = append(b, payload...)
	}
	return append(b, make([]byte, img.TrailerSize)...)
}

// Merged returns the image placed at the application offset of a merged
// binary, the way a bootloader+partitions+app binary is laid out.
func (img Image) Merged() []byte {
	prefix := make([]byte, 0x100000)
	for idx := range prefix {
		prefix[idx] = 0xFF
	}
	return append(prefix, img.Bytes()...)
}

// DescriptorSegment returns a segment payload of the given size which
// starts with the descriptor (the descriptor is cut if size is smaller).
func DescriptorSegment(desc AppDescriptor, size int) []byte {
	seg := make([]byte, size)
	copy(seg, desc.Bytes())
	return seg
}
