package archive

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

func TestPackAndExtract(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()

	input := filepath.Join(dir, "build", "merged-binary.bin")
	require.NoError(t, os.MkdirAll(filepath.Dir(input), 0750))
	require.NoError(t, os.WriteFile(input, []byte("merged binary"), 0640))

	archivePath := filepath.Join(dir, "releases", "v1.0.0_my-board.zip")
	require.NoError(t, os.MkdirAll(filepath.Dir(archivePath), 0750))
	require.NoError(t, os.WriteFile(archivePath, []byte("stale archive"), 0640))
	require.NoError(t, Pack(ctx, archivePath, input))

	destDir := filepath.Join(dir, "releases", "v1.0.0_my-board")
	extracted, err := Extract(ctx, archivePath, destDir)
	require.NoError(t, err)
	require.True(t, extracted)

	b, err := os.ReadFile(filepath.Join(destDir, "merged-binary.bin"))
	require.NoError(t, err)
	require.Equal(t, "merged binary", string(b))

	// the existing directory is the marker of the completed step
	require.NoError(t, os.Remove(filepath.Join(destDir, "merged-binary.bin")))
	extracted, err = Extract(ctx, archivePath, destDir)
	require.NoError(t, err)
	require.False(t, extracted)
	_, err = os.Stat(filepath.Join(destDir, "merged-binary.bin"))
	require.True(t, os.IsNotExist(err))

	entries, err := os.ReadDir(filepath.Join(dir, "releases"))
	require.NoError(t, err)
	require.Len(t, entries, 2, "no temporary files should be left")
}

func TestExtractUnsafePath(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "evil.zip")

	f, err := os.Create(archivePath)
	require.NoError(t, err)
	w := zip.NewWriter(f)
	entry, err := w.Create("../escaped.txt")
	require.NoError(t, err)
	_, err = entry.Write([]byte("x"))
	require.NoError(t, err)
	require.NoError(t, w.Close())
	require.NoError(t, f.Close())

	destDir := filepath.Join(dir, "out")
	_, err = Extract(context.Background(), archivePath, destDir)
	// depending on GODEBUG=zipinsecurepath the reader may reject it first
	require.True(t, errors.As(err, &ErrUnsafePath{}) || errors.As(err, &ErrOpenArchive{}), err)

	_, err = os.Stat(destDir)
	require.True(t, os.IsNotExist(err), "a failed extraction must not leave the destination")
	_, err = os.Stat(filepath.Join(dir, "escaped.txt"))
	require.True(t, os.IsNotExist(err))
}

func TestExtractNotAnArchive(t *testing.T) {
	dir := t.TempDir()
	archivePath := filepath.Join(dir, "v1.0.0_x.zip")
	require.NoError(t, os.WriteFile(archivePath, []byte("not a zip"), 0640))

	_, err := Extract(context.Background(), archivePath, filepath.Join(dir, "v1.0.0_x"))
	require.True(t, errors.As(err, &ErrOpenArchive{}), err)
}
