package objstorage

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
)

// FS is an ObjectStorage backed by a local directory.
type FS struct {
	RootDir string
}

var _ ObjectStorage = (*FS)(nil)

func newFS(rootDir string) (*FS, error) {
	if rootDir == "" {
		return nil, ErrMissingCredentials{Field: "directory path"}
	}
	err := os.MkdirAll(rootDir, 0750)
	if err != nil {
		return nil, fmt.Errorf("unable to create the rootdir '%s': %w", rootDir, err)
	}
	return &FS{
		RootDir: rootDir,
	}, nil
}

// Get implements ObjectStorage.
func (s *FS) Get(ctx context.Context, key string) ([]byte, error) {
	objPath, err := s.getPath(key)
	if err != nil {
		return nil, err
	}
	b, err := os.ReadFile(objPath)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, ErrNotFound{Key: key}
	}
	return b, err
}

// Replace implements ObjectStorage.
func (s *FS) Replace(ctx context.Context, key string, blob []byte) error {
	objPath, err := s.getPath(key)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(objPath), 0750); err != nil {
		return fmt.Errorf("unable to create the directory for '%s': %w", key, err)
	}
	return WriteFileAtomic(objPath, blob, 0640)
}

// Exists implements ObjectStorage.
func (s *FS) Exists(ctx context.Context, key string) (bool, error) {
	objPath, err := s.getPath(key)
	if err != nil {
		return false, err
	}
	_, err = os.Stat(objPath)
	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, err
	}
}

func (s *FS) getPath(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return filepath.Join(s.RootDir, filepath.FromSlash(key)), nil
}

// Close implements io.Closer.
func (s *FS) Close() error {
	return nil
}

// WriteFileAtomic writes the file through a temporary file in the same
// directory, so a reader never sees a partially written file.
func WriteFileAtomic(filePath string, data []byte, perm os.FileMode) (_err error) {
	f, err := os.CreateTemp(filepath.Dir(filePath), "."+filepath.Base(filePath)+".tmp-*")
	if err != nil {
		return fmt.Errorf("unable to create a temporary file for '%s': %w", filePath, err)
	}
	defer func() {
		if _err != nil {
			_ = os.Remove(f.Name())
		}
	}()

	if _, err := f.Write(data); err != nil {
		_ = f.Close()
		return fmt.Errorf("unable to write '%s': %w", f.Name(), err)
	}
	if err := f.Chmod(perm); err != nil {
		_ = f.Close()
		return fmt.Errorf("unable to chmod '%s': %w", f.Name(), err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("unable to close '%s': %w", f.Name(), err)
	}
	if err := os.Rename(f.Name(), filePath); err != nil {
		return fmt.Errorf("unable to rename '%s' to '%s': %w", f.Name(), filePath, err)
	}
	return nil
}
