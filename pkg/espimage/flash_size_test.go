package espimage

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseFlashSize(t *testing.T) {
	for code := 0; code < 8; code++ {
		flashSize, err := ParseFlashSize(uint8(code))
		require.NoError(t, err)
		require.Equal(t, uint64(1<<code)*MiB, flashSize.Bytes())
	}
	for code := 8; code < 16; code++ {
		_, err := ParseFlashSize(uint8(code))
		require.True(t, errors.As(err, &ErrUnknownFlashSize{}), code)
	}

	require.Equal(t, "16MB", FlashSize16MB.String())
}
