package releasecatalog

import (
	"context"
	"errors"
	"path"

	"github.com/immune-gmbh/fwrelease/pkg/objstorage"
	"github.com/immune-gmbh/fwrelease/pkg/types"
)

// Object is a Catalog which keeps documents on an object storage
// (<Prefix>/<tag>/info.json).
//
// The storage is owned by the caller, Close does not close it.
type Object struct {
	Storage objstorage.ObjectStorage
	Prefix  string
}

var _ Catalog = (*Object)(nil)

// NewObject returns a Catalog on top of the object storage.
func NewObject(storage objstorage.ObjectStorage, prefix string) *Object {
	return &Object{
		Storage: storage,
		Prefix:  path.Clean("/" + prefix)[1:],
	}
}

// DocumentKey returns the object key of the document of the tag.
func (c *Object) DocumentKey(tag types.Tag) string {
	return path.Join(c.Prefix, string(tag), RecordFileName)
}

// ShouldPublish implements Catalog.
func (c *Object) ShouldPublish(ctx context.Context, tag types.Tag) (bool, error) {
	exists, err := c.Storage.Exists(ctx, c.DocumentKey(tag))
	if err != nil {
		return false, ErrReadRecord{Tag: tag, Err: err}
	}
	return !exists, nil
}

// RecordAndPersist implements Catalog.
func (c *Object) RecordAndPersist(ctx context.Context, tag types.Tag, record types.ReleaseRecord) error {
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
	if err := c.Storage.Replace(ctx, c.DocumentKey(tag), b); err != nil {
		return ErrWriteRecord{Tag: tag, Err: err}
	}
	return nil
}

// Get implements Catalog.
func (c *Object) Get(ctx context.Context, tag types.Tag) (*types.ReleaseRecord, error) {
	b, err := c.Storage.Get(ctx, c.DocumentKey(tag))
	if err != nil {
		if errors.As(err, &objstorage.ErrNotFound{}) {
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
func (c *Object) Close() error {
	return nil
}
