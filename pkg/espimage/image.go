package espimage

import (
	"encoding/binary"
)

const (
	// Magic is the first byte of every flashable application image.
	Magic = 0xE9

	// AppImageOffset is the offset of the application image inside
	// a merged binary (bootloader + partition table + application).
	AppImageOffset = 0x100000

	headerSize        = 0x18
	segmentHeaderSize = 8

	offsetSegmentCount = 0x01
	offsetFlashParams  = 0x03
	offsetChipID       = 0x0C
)

// Segment is a single length-prefixed payload of the image.
type Segment struct {
	// LoadAddress is the first 4-byte field of the segment header.
	LoadAddress uint32

	// Offset is the offset of the payload (not of the header) within the image.
	Offset int

	// Data is the payload, it references the parsed buffer (no copy).
	Data []byte
}

// Image is a parsed flashable application image.
type Image struct {
	ChipID    ChipID
	FlashSize FlashSize
	Segments  []Segment

	// Size is the size of the parsed buffer.
	Size int
}

// AppRegion returns the application image part of a merged binary.
//
// If the merged binary is not longer than AppImageOffset, an empty
// slice is returned (which is then classified as "not an image" by Parse).
func AppRegion(merged []byte) []byte {
	if len(merged) <= AppImageOffset {
		return nil
	}
	return merged[AppImageOffset:]
}

// Parse parses a flashable application image.
//
// If the first byte is not Magic, then ErrNotAnImage is returned.
// Any other error means the image is structurally broken.
func Parse(b []byte) (*Image, error) {
	if len(b) == 0 {
		return nil, ErrNotAnImage{}
	}
	if b[0] != Magic {
		firstByte := b[0]
		return nil, ErrNotAnImage{FirstByte: &firstByte}
	}
	if len(b) < headerSize {
		return nil, ErrTruncatedHeader{Size: len(b)}
	}

	flashSize, err := ParseFlashSize(b[offsetFlashParams] >> 4)
	if err != nil {
		return nil, err
	}

	chipID, err := ParseChipID(b[offsetChipID])
	if err != nil {
		return nil, err
	}

	segmentCount := int(b[offsetSegmentCount])
	if segmentCount == 0 {
		return nil, ErrNoSegments{}
	}

	img := &Image{
		ChipID:    chipID,
		FlashSize: flashSize,
		Segments:  make([]Segment, 0, segmentCount),
		Size:      len(b),
	}

	// uint64 to never overflow on a hostile length table.
	size := uint64(len(b))
	offset := uint64(headerSize)
	for idx := 0; idx < segmentCount; idx++ {
		if offset+segmentHeaderSize > size {
			return nil, ErrSegmentOutOfBounds{
				SegmentIndex: idx,
				Offset:       offset,
				Length:       segmentHeaderSize,
				DataSize:     len(b),
			}
		}
		loadAddress := binary.LittleEndian.Uint32(b[offset:])
		length := uint64(binary.LittleEndian.Uint32(b[offset+4:]))
		payloadOffset := offset + segmentHeaderSize
		if payloadOffset+length > size {
			return nil, ErrSegmentOutOfBounds{
				SegmentIndex: idx,
				Offset:       payloadOffset,
				Length:       length,
				DataSize:     len(b),
			}
		}

		img.Segments = append(img.Segments, Segment{
			LoadAddress: loadAddress,
			Offset:      int(payloadOffset),
			Data:        b[payloadOffset : payloadOffset+length],
		})
		offset = payloadOffset + length
	}

	// A valid image always has a checksum (and padding) after the segments.
	if offset >= size {
		last := img.Segments[len(img.Segments)-1]
		return nil, ErrSegmentOutOfBounds{
			SegmentIndex: len(img.Segments) - 1,
			Offset:       uint64(last.Offset),
			Length:       uint64(len(last.Data)),
			DataSize:     len(b),
		}
	}

	return img, nil
}

// SegmentCount returns the amount of segments in the image.
func (img *Image) SegmentCount() int {
	return len(img.Segments)
}

// AppDescriptor parses the application descriptor, which is always
// stored in the beginning of the first segment.
func (img *Image) AppDescriptor() (*AppDescriptor, error) {
	if len(img.Segments) == 0 {
		return nil, ErrNoSegments{}
	}
	desc, err := ParseAppDescriptor(img.Segments[0].Data)
	if err != nil {
		return nil, ErrParseAppDescriptor{Err: err}
	}
	return desc, nil
}
