package espimage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseChipID(t *testing.T) {
	expected := map[uint8]string{
		0x00: "esp32",
		0x02: "esp32s2",
		0x05: "esp32c3",
		0x09: "esp32s3",
		0x0C: "esp32c2",
		0x0D: "esp32c6",
		0x10: "esp32h2",
		0x11: "esp32c5",
		0x12: "esp32p4",
		0x17: "esp32c5",
	}
	require.Len(t, AllChipIDs(), len(expected))

	for code := 0; code <= 0xFF; code++ {
		chipID, err := ParseChipID(uint8(code))
		name, ok := expected[uint8(code)]
		if !ok {
			require.Error(t, err, code)
			require.True(t, errors.As(err, &ErrUnknownChipID{}))
			continue
		}
		require.NoError(t, err)
		assert.Equal(t, name, chipID.String())
	}
}

func TestChipIDMarshalJSON(t *testing.T) {
	b, err := ChipIDESP32S3.MarshalJSON()
	require.NoError(t, err)
	require.Equal(t, `"esp32s3"`, string(b))
}
