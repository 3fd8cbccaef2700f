package espimage

import (
	"encoding/json"
	"fmt"
)

// ChipID is the chip identifier stored in the extended image header.
type ChipID uint8

// The values are the ones used by ESP-IDF (esp_chip_id_t).
const (
	ChipIDESP32        = ChipID(0x00)
	ChipIDESP32S2      = ChipID(0x02)
	ChipIDESP32C3      = ChipID(0x05)
	ChipIDESP32S3      = ChipID(0x09)
	ChipIDESP32C2      = ChipID(0x0C)
	ChipIDESP32C6      = ChipID(0x0D)
	ChipIDESP32H2      = ChipID(0x10)
	ChipIDESP32C5Beta3 = ChipID(0x11)
	ChipIDESP32P4      = ChipID(0x12)
	ChipIDESP32C5      = ChipID(0x17)
)

// AllChipIDs returns every known ChipID.
func AllChipIDs() []ChipID {
	return []ChipID{
		ChipIDESP32,
		ChipIDESP32S2,
		ChipIDESP32C3,
		ChipIDESP32S3,
		ChipIDESP32C2,
		ChipIDESP32C6,
		ChipIDESP32H2,
		ChipIDESP32C5Beta3,
		ChipIDESP32P4,
		ChipIDESP32C5,
	}
}

// ParseChipID converts the raw header byte to a ChipID.
func ParseChipID(code uint8) (ChipID, error) {
	chipID := ChipID(code)
	if _, ok := chipID.name(); !ok {
		return 0, ErrUnknownChipID{Code: code}
	}
	return chipID, nil
}

func (id ChipID) name() (string, bool) {
	switch id {
	case ChipIDESP32:
		return "esp32", true
	case ChipIDESP32S2:
		return "esp32s2", true
	case ChipIDESP32C3:
		return "esp32c3", true
	case ChipIDESP32S3:
		return "esp32s3", true
	case ChipIDESP32C2:
		return "esp32c2", true
	case ChipIDESP32C6:
		return "esp32c6", true
	case ChipIDESP32H2:
		return "esp32h2", true
	case ChipIDESP32C5Beta3, ChipIDESP32C5:
		return "esp32c5", true
	case ChipIDESP32P4:
		return "esp32p4", true
	}
	return "", false
}

// String implements fmt.Stringer.
func (id ChipID) String() string {
	if name, ok := id.name(); ok {
		return name
	}
	return fmt.Sprintf("ChipID(0x%02X)", uint8(id))
}

// MarshalJSON implements json.Marshaler.
func (id ChipID) MarshalJSON() ([]byte, error) {
	return json.Marshal(id.String())
}
