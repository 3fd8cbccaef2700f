package types

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseArchiveName(t *testing.T) {
	for name, expected := range map[string]Tag{
		"v1.0.0_my-board.zip":     "v1.0.0_my-board",
		"v0.3.0_ML307.zip":        "v0.3.0_ML307",
		"1.0.0_my-board.zip":      "",
		"v1.0.0_my-board.tar.gz":  "",
		"v1.0.0_my-board":         "",
		"vendor-notes.zip.backup": "",
	} {
		tag, ok := ParseArchiveName(name)
		require.Equal(t, expected != "", ok, name)
		require.Equal(t, expected, tag, name)
	}
}

func TestTag(t *testing.T) {
	tag := NewTag("1.6.2", "bread-compact-wifi")
	require.Equal(t, Tag("v1.6.2_bread-compact-wifi"), tag)
	require.Equal(t, tag, NewTag("v1.6.2", "bread-compact-wifi"))
	require.Equal(t, "v1.6.2_bread-compact-wifi.zip", tag.ArchiveName())
	require.Equal(t, "firmwares/v1.6.2_bread-compact-wifi", tag.ObjectPrefix("firmwares"))
}
