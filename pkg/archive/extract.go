// Package archive extracts and creates release archives.
//
// Both operations are idempotent steps: an existing destination is the
// marker of a completed step.
package archive

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/klauspost/compress/zip"
)

// Extract extracts the zip archive into destDir.
//
// If destDir already exists, nothing is done and false is returned. The
// archive is extracted into a temporary directory first, which is renamed
// to destDir only after a complete extraction, so an interrupted run never
// leaves a partial destDir.
func Extract(ctx context.Context, archivePath, destDir string) (bool, error) {
	switch _, err := os.Stat(destDir); {
	case err == nil:
		logger.FromCtx(ctx).Debugf("'%s' already exists, skipping the extraction", destDir)
		return false, nil
	case !errors.Is(err, fs.ErrNotExist):
		return false, ErrExtract{Name: destDir, Err: err}
	}

	r, err := zip.OpenReader(archivePath)
	if err != nil {
		return false, ErrOpenArchive{Path: archivePath, Err: err}
	}
	defer r.Close()

	parentDir := filepath.Dir(destDir)
	if err := os.MkdirAll(parentDir, 0750); err != nil {
		return false, ErrExtract{Name: destDir, Err: err}
	}
	tmpDir, err := os.MkdirTemp(parentDir, "."+filepath.Base(destDir)+".tmp-*")
	if err != nil {
		return false, ErrExtract{Name: destDir, Err: err}
	}
	defer os.RemoveAll(tmpDir)

	logger.FromCtx(ctx).Infof("extracting '%s' to '%s'", archivePath, destDir)
	for _, f := range r.File {
		if err := extractFile(f, tmpDir); err != nil {
			return false, err
		}
	}

	if err := os.Rename(tmpDir, destDir); err != nil {
		return false, ErrExtract{Name: destDir, Err: fmt.Errorf("unable to rename '%s': %w", tmpDir, err)}
	}
	return true, nil
}

func extractFile(f *zip.File, destDir string) error {
	name := filepath.FromSlash(f.Name)
	if !filepath.IsLocal(name) {
		return ErrUnsafePath{Name: f.Name}
	}
	dstPath := filepath.Join(destDir, name)

	if f.FileInfo().IsDir() || strings.HasSuffix(f.Name, "/") {
		if err := os.MkdirAll(dstPath, 0750); err != nil {
			return ErrExtract{Name: f.Name, Err: err}
		}
		return nil
	}
	if !f.Mode().IsRegular() {
		return ErrExtract{Name: f.Name, Err: fmt.Errorf("unsupported file mode %v", f.Mode())}
	}

	if err := os.MkdirAll(filepath.Dir(dstPath), 0750); err != nil {
		return ErrExtract{Name: f.Name, Err: err}
	}

	src, err := f.Open()
	if err != nil {
		return ErrExtract{Name: f.Name, Err: err}
	}
	defer src.Close()

	dst, err := os.OpenFile(dstPath, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0640)
	if err != nil {
		return ErrExtract{Name: f.Name, Err: err}
	}
	if _, err := io.Copy(dst, src); err != nil {
		_ = dst.Close()
		return ErrExtract{Name: f.Name, Err: err}
	}
	if err := dst.Close(); err != nil {
		return ErrExtract{Name: f.Name, Err: err}
	}
	return nil
}
