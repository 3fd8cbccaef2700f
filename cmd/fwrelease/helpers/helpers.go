// Package helpers builds the components of the release tooling from
// the configuration.
package helpers

import (
	"github.com/immune-gmbh/fwrelease/pkg/config"
	"github.com/immune-gmbh/fwrelease/pkg/objstorage"
	"github.com/immune-gmbh/fwrelease/pkg/releasecatalog"
)

// NewObjectStorage returns the object storage defined by the configuration.
func NewObjectStorage(cfg config.Config) (objstorage.ObjectStorage, error) {
	return objstorage.New(
		cfg.StorageURL(),
		objstorage.OptionEndpoint(cfg.Storage.Endpoint),
		objstorage.OptionCredentials{
			AccessKeyID:     cfg.Storage.AccessKeyID,
			AccessKeySecret: cfg.Storage.AccessKeySecret,
		},
		objstorage.OptionBearerToken(cfg.Storage.Token),
		objstorage.OptionTimeout(cfg.Storage.Timeout),
	)
}

// NewCatalog returns the release catalog defined by the configuration.
//
// The object storage is opened only if the catalog needs it, the
// caller is responsible to close both.
func NewCatalog(cfg config.Config) (releasecatalog.Catalog, objstorage.ObjectStorage, error) {
	var storage objstorage.ObjectStorage
	if releasecatalog.NeedsObjectStorage(cfg.ReleaseCatalogURL()) {
		var err error
		storage, err = NewObjectStorage(cfg)
		if err != nil {
			return nil, nil, err
		}
	}
	catalog, err := releasecatalog.New(cfg.ReleaseCatalogURL(), storage)
	if err != nil {
		if storage != nil {
			_ = storage.Close()
		}
		return nil, nil, err
	}
	return catalog, storage, nil
}
