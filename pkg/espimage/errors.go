package espimage

import (
	"fmt"
)

// ErrNotAnImage means the data does not start with the image magic byte.
//
// It is not a fault: a caller is expected to skip such data.
type ErrNotAnImage struct {
	FirstByte *byte
}

func (err ErrNotAnImage) Error() string {
	if err.FirstByte == nil {
		return "not a firmware image: empty data"
	}
	return fmt.Sprintf("not a firmware image: the first byte is 0x%02X, expected 0x%02X", *err.FirstByte, Magic)
}

// ErrTruncatedHeader implements "error", for the description see Error.
type ErrTruncatedHeader struct {
	Size int
}

func (err ErrTruncatedHeader) Error() string {
	return fmt.Sprintf("the image header is truncated: %d bytes, expected at least %d", err.Size, headerSize)
}

// ErrUnknownFlashSize implements "error", for the description see Error.
type ErrUnknownFlashSize struct {
	Code uint8
}

func (err ErrUnknownFlashSize) Error() string {
	return fmt.Sprintf("unknown flash size: code 0x%X", err.Code)
}

// ErrUnknownChipID implements "error", for the description see Error.
type ErrUnknownChipID struct {
	Code uint8
}

func (err ErrUnknownChipID) Error() string {
	return fmt.Sprintf("unknown chip id: 0x%02X", err.Code)
}

// ErrSegmentOutOfBounds means the segment table walks past the end of the
// data: the length table is corrupt or the file was truncated.
type ErrSegmentOutOfBounds struct {
	SegmentIndex int
	Offset       uint64
	Length       uint64
	DataSize     int
}

func (err ErrSegmentOutOfBounds) Error() string {
	return fmt.Sprintf("segment #%d (offset 0x%X, length 0x%X) is out of bounds of the image (size 0x%X)",
		err.SegmentIndex, err.Offset, err.Length, err.DataSize)
}

// ErrNoSegments implements "error", for the description see Error.
type ErrNoSegments struct{}

func (err ErrNoSegments) Error() string {
	return "the image has no segments, thus no application descriptor"
}

// ErrTruncatedAppDescriptor implements "error", for the description see Error.
type ErrTruncatedAppDescriptor struct {
	Size int
}

func (err ErrTruncatedAppDescriptor) Error() string {
	return fmt.Sprintf("the application descriptor is truncated: %d bytes", err.Size)
}

// ErrInvalidAppDescriptorMagic implements "error", for the description see Error.
type ErrInvalidAppDescriptorMagic struct {
	Magic uint32
}

func (err ErrInvalidAppDescriptorMagic) Error() string {
	return fmt.Sprintf("invalid app descriptor magic: 0x%08X, expected 0x%08X", err.Magic, AppDescriptorMagic)
}

// ErrInvalidText implements "error", for the description see Error.
type ErrInvalidText struct {
	Field string
}

func (err ErrInvalidText) Error() string {
	return fmt.Sprintf("field '%s' of the app descriptor is not a valid UTF-8 string", err.Field)
}

// ErrParseAppDescriptor implements "error", for the description see Error.
type ErrParseAppDescriptor struct {
	Err error
}

func (err ErrParseAppDescriptor) Error() string {
	return fmt.Sprintf("unable to parse the application descriptor of segment #0: %v", err.Err)
}

func (err ErrParseAppDescriptor) Unwrap() error {
	return err.Err
}
