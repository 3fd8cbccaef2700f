// Package releasecatalog keeps the records of released tags.
//
// A persisted record is the only signal that a tag was released, so
// the pipeline consults the catalog before doing any work for a tag.
// Catalogs assume a single writer: they do not lock anything.
package releasecatalog

import (
	"context"
	"io"
	"strings"

	"github.com/immune-gmbh/fwrelease/pkg/objstorage"
	"github.com/immune-gmbh/fwrelease/pkg/types"
)

// Catalog is a storage of release records.
type Catalog interface {
	io.Closer

	// ShouldPublish returns false if the tag already has a persisted record.
	ShouldPublish(ctx context.Context, tag types.Tag) (bool, error)

	// RecordAndPersist stores the record of the tag. Records are never
	// overwritten: if the tag already has one, ErrAlreadyExists is returned.
	RecordAndPersist(ctx context.Context, tag types.Tag, record types.ReleaseRecord) error

	// Get returns the record of the tag, or ErrNotFound.
	Get(ctx context.Context, tag types.Tag) (*types.ReleaseRecord, error)
}

// RecordFileName is the name of the metadata document of a tag.
const RecordFileName = "info.json"

// New returns a Catalog defined by the URL:
//
//	fs://<dir>          -- documents <dir>/<tag>/info.json;
//	mysql://<DSN>       -- table `release_record` (DSN in the go-sql-driver/mysql format);
//	object://<prefix>   -- documents <prefix>/<tag>/info.json on the given object storage.
func New(urlString string, objStorage objstorage.ObjectStorage) (Catalog, error) {
	scheme, location, ok := strings.Cut(urlString, "://")
	if !ok {
		return nil, ErrUnknownScheme{URL: urlString}
	}
	switch scheme {
	case "fs":
		return NewFS(location)
	case "mysql":
		return NewSQL(location)
	case "object":
		if objStorage == nil {
			return nil, ErrNoObjectStorage{}
		}
		return NewObject(objStorage, location), nil
	default:
		return nil, ErrUnknownScheme{URL: urlString, Scheme: scheme}
	}
}

// NeedsObjectStorage returns true if the catalog defined by the URL
// keeps its documents on an object storage.
func NeedsObjectStorage(urlString string) bool {
	return strings.HasPrefix(urlString, "object://")
}
