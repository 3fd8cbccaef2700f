package types

import (
	"encoding/json"
	"testing"

	"github.com/immune-gmbh/fwrelease/pkg/espimage"
	"github.com/stretchr/testify/require"
)

func TestReleaseRecordJSON(t *testing.T) {
	img := &espimage.Image{
		ChipID:    espimage.ChipIDESP32S3,
		FlashSize: espimage.FlashSize16MB,
	}
	desc := &espimage.AppDescriptor{
		Version:     "1.0.0",
		ProjectName: "xiaozhi",
		CompileTime: "10:11:12",
		CompileDate: "Feb  3 2025",
		IDFVersion:  "v5.3.2",
		ELFSHA256:   []byte{0xde, 0xad},
	}
	appImage := []byte{0xE9, 1, 2, 3}

	record := NewReleaseRecord("v1.0.0_my-board", "my-board", img, desc, appImage, "https://example.com/x.bin")
	require.Equal(t, NewArtifactID(appImage), record.ArtifactID)
	require.False(t, record.ArtifactID.IsZero())

	b, err := json.Marshal(record)
	require.NoError(t, err)
	require.JSONEq(t, `{
		"chip_id": "esp32s3",
		"flash_size": 16777216,
		"board": "my-board",
		"application": {
			"name": "xiaozhi",
			"version": "1.0.0",
			"compile_time": "Feb  3 2025T10:11:12",
			"idf_version": "v5.3.2",
			"elf_sha256": "dead"
		},
		"firmware_size": 4,
		"tag": "v1.0.0_my-board",
		"url": "https://example.com/x.bin"
	}`, string(b))
}

func TestArtifactIDScan(t *testing.T) {
	id := NewArtifactID([]byte("image"))
	v, err := id.Value()
	require.NoError(t, err)

	var scanned ArtifactID
	require.NoError(t, scanned.Scan(v))
	require.Equal(t, id, scanned)

	require.NoError(t, scanned.Scan(nil))
	require.True(t, scanned.IsZero())

	v, err = scanned.Value()
	require.NoError(t, err)
	require.Nil(t, v)

	require.Error(t, scanned.Scan("string"))
	require.Error(t, scanned.Scan([]byte{1, 2}))
}
