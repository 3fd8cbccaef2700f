package releasecatalog

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/immune-gmbh/fwrelease/pkg/objstorage"
	"github.com/immune-gmbh/fwrelease/pkg/types"
)

// FS is a Catalog which keeps documents in a local directory.
type FS struct {
	RootDir string
}

var _ Catalog = (*FS)(nil)

// NewFS returns a Catalog which keeps documents in rootDir.
func NewFS(rootDir string) (*FS, error) {
	if rootDir == "" {
		return nil, ErrUnknownScheme{URL: "fs://"}
	}
	if err := os.MkdirAll(rootDir, 0750); err != nil {
		return nil, fmt.Errorf("unable to create the rootdir '%s': %w", rootDir, err)
	}
	return &FS{RootDir: rootDir}, nil
}

// DocumentPath returns the path of the document of the tag.
func (c *FS) DocumentPath(tag types.Tag) string {
	return filepath.Join(c.RootDir, string(tag), RecordFileName)
}

// ShouldPublish implements Catalog.
func (c *FS) ShouldPublish(ctx context.Context, tag types.Tag) (bool, error) {
	_, err := os.Stat(c.DocumentPath(tag))
	switch {
	case err == nil:
		logger.FromCtx(ctx).Debugf("'%s' exists", c.DocumentPath(tag))
		return false, nil
	case errors.Is(err, fs.ErrNotExist):
		return true, nil
	default:
		return false, ErrReadRecord{Tag: tag, Err: err}
	}
}

// RecordAndPersist implements Catalog.
func (c *FS) RecordAndPersist(ctx context.Context, tag types.Tag, record types.ReleaseRecord) error {
	shouldPublish, err := c.ShouldPublish(ctx, tag)
	if err != nil {
		return err
	}
	if !shouldPublish {
		return ErrAlreadyExists{Tag: tag}
	}

	b, err := MarshalDocument(record)
	if err != nil {
		return ErrWriteRecord{Tag: tag, Err: err}
	}

	docPath := c.DocumentPath(tag)
	if err := os.MkdirAll(filepath.Dir(docPath), 0750); err != nil {
		return ErrWriteRecord{Tag: tag, Err: err}
	}
	if err := objstorage.WriteFileAtomic(docPath, b, 0640); err != nil {
		return ErrWriteRecord{Tag: tag, Err: err}
	}
	logger.FromCtx(ctx).Debugf("wrote '%s'", docPath)
	return nil
}

// Get implements Catalog.
func (c *FS) Get(ctx context.Context, tag types.Tag) (*types.ReleaseRecord, error) {
	b, err := os.ReadFile(c.DocumentPath(tag))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, ErrNotFound{Tag: tag}
		}
		return nil, ErrReadRecord{Tag: tag, Err: err}
	}
	record, err := unmarshalDocument(b)
	if err != nil {
		return nil, ErrReadRecord{Tag: tag, Err: err}
	}
	return record, nil
}

// Close implements io.Closer.
func (c *FS) Close() error {
	return nil
}
