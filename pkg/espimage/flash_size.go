package espimage

import (
	"encoding/json"
	"fmt"
)

// MiB is a mebibyte.
const MiB = 1 << 20

// FlashSize is the flash size code from the high nibble of header byte 3.
type FlashSize uint8

const (
	FlashSize1MB = FlashSize(iota)
	FlashSize2MB
	FlashSize4MB
	FlashSize8MB
	FlashSize16MB
	FlashSize32MB
	FlashSize64MB
	FlashSize128MB

	endOfFlashSize
)

// ParseFlashSize converts the flash size code to a FlashSize.
func ParseFlashSize(code uint8) (FlashSize, error) {
	if code >= uint8(endOfFlashSize) {
		return 0, ErrUnknownFlashSize{Code: code}
	}
	return FlashSize(code), nil
}

// Bytes returns the flash size in bytes.
func (s FlashSize) Bytes() uint64 {
	if s >= endOfFlashSize {
		panic(fmt.Sprintf("unknown flash size code: %d", uint8(s)))
	}
	return MiB << uint(s)
}

// String implements fmt.Stringer.
func (s FlashSize) String() string {
	if s >= endOfFlashSize {
		return fmt.Sprintf("FlashSize(%d)", uint8(s))
	}
	return fmt.Sprintf("%dMB", s.Bytes()/MiB)
}

// MarshalJSON implements json.Marshaler.
func (s FlashSize) MarshalJSON() ([]byte, error) {
	return json.Marshal(s.String())
}
