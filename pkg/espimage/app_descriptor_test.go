package espimage

import (
	"errors"
	"testing"

	"github.com/immune-gmbh/fwrelease/pkg/espimage/espimagetest"
	"github.com/stretchr/testify/require"
)

func TestParseAppDescriptor(t *testing.T) {
	t.Run("64_bytes_segment", func(t *testing.T) {
		desc := testDescriptor()
		desc.Version = "1.0.0"
		desc.ProjectName = "a-project-name-longer-than-the-segment"

		parsed, err := ParseAppDescriptor(espimagetest.DescriptorSegment(desc, 64))
		require.NoError(t, err)
		require.Equal(t, "1.0.0", parsed.Version)
		require.Equal(t, "a-project-name-l", parsed.ProjectName)
		require.Empty(t, parsed.CompileTime)
		require.Empty(t, parsed.IDFVersion)
		require.Empty(t, parsed.ELFSHA256)
	})
	t.Run("wrong_magic", func(t *testing.T) {
		desc := testDescriptor()
		desc.Magic = 0x12345678

		_, err := ParseAppDescriptor(desc.Bytes())
		var errMagic ErrInvalidAppDescriptorMagic
		require.True(t, errors.As(err, &errMagic), err)
		require.Equal(t, uint32(0x12345678), errMagic.Magic)
	})
	t.Run("truncated", func(t *testing.T) {
		_, err := ParseAppDescriptor([]byte{0x32, 0x54})
		require.True(t, errors.As(err, &ErrTruncatedAppDescriptor{}), err)
	})
	t.Run("invalid_utf8", func(t *testing.T) {
		b := testDescriptor().Bytes()
		b[0x30] = 0xFF
		b[0x31] = 0xFE

		_, err := ParseAppDescriptor(b)
		var errText ErrInvalidText
		require.True(t, errors.As(err, &errText), err)
		require.Equal(t, "project_name", errText.Field)
	})
}

func TestImageAppDescriptorWrongMagic(t *testing.T) {
	desc := testDescriptor()
	desc.Magic = 0x12345678
	img, err := Parse(espimagetest.Image{
		ChipID:      uint8(ChipIDESP32S3),
		Segments:    [][]byte{desc.Bytes()},
		TrailerSize: 1,
	}.Bytes())
	require.NoError(t, err)

	_, err = img.AppDescriptor()
	require.True(t, errors.As(err, &ErrParseAppDescriptor{}), err)
	require.True(t, errors.As(err, &ErrInvalidAppDescriptorMagic{}), err)
}
