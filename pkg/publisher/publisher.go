// Package publisher uploads release folders to an object storage.
package publisher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"sort"
	"time"

	"github.com/facebookincubator/go-belt/tool/experimental/metrics"
	"github.com/facebookincubator/go-belt/tool/experimental/tracer"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/immune-gmbh/fwrelease/pkg/objstorage"
)

// Publisher uploads every file of a local folder as a separate object.
//
// There is no manifest and no rollback: if an upload fails, the objects
// uploaded before it stay. Object keys are deterministic and objects are
// overwritten, so publishing the same folder again is safe.
type Publisher struct {
	Storage objstorage.ObjectStorage
	Config  config
}

// New returns a new Publisher.
func New(storage objstorage.ObjectStorage, opts ...Option) *Publisher {
	cfg := config{
		RetryInitialDelay: defaultRetryInitialDelay,
		RetryTimeout:      defaultRetryTimeout,
		RetryAttempts:     defaultRetryAttempts,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}
	return &Publisher{
		Storage: storage,
		Config:  cfg,
	}
}

// Publish uploads every regular file of localFolder to remotePrefix/<filename>.
// Subdirectories are ignored.
//
// Returns the keys of the uploaded objects, in the order of upload.
// On failure the returned error is ErrUpload of the first failed object.
func (p *Publisher) Publish(ctx context.Context, localFolder, remotePrefix string) ([]string, error) {
	span, ctx := tracer.StartChildSpanFromCtx(ctx, "Publish")
	defer span.Finish()

	fileNames, err := listFiles(localFolder)
	if err != nil {
		return nil, err
	}

	var uploaded []string
	for _, fileName := range fileNames {
		key := path.Join(remotePrefix, fileName)
		b, err := os.ReadFile(filepath.Join(localFolder, fileName))
		if err != nil {
			return uploaded, ErrUpload{Key: key, Err: fmt.Errorf("unable to read the file: %w", err)}
		}

		logger.FromCtx(ctx).Infof("uploading '%s' (%d bytes)", key, len(b))
		err = p.retryLoop(ctx, func() error {
			return p.Storage.Replace(ctx, key, b)
		})
		if err != nil {
			metrics.FromCtx(ctx).Count("upload_failures").Add(1)
			return uploaded, ErrUpload{Key: key, Err: err}
		}
		metrics.FromCtx(ctx).Count("uploaded_objects").Add(1)
		uploaded = append(uploaded, key)
	}
	return uploaded, nil
}

func listFiles(folder string) ([]string, error) {
	entries, err := os.ReadDir(folder)
	if err != nil {
		return nil, ErrReadFolder{Folder: folder, Err: err}
	}

	var fileNames []string
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		fileNames = append(fileNames, entry.Name())
	}
	sort.Strings(fileNames)
	return fileNames, nil
}

func (p *Publisher) retryLoop(ctx context.Context, fn func() error) error {
	deadline := time.Now().Add(p.Config.RetryTimeout)
	delay := p.Config.RetryInitialDelay

	for attempt := uint(1); ; attempt++ {
		err := fn()
		if err == nil {
			return nil
		}
		logger.FromCtx(ctx).Debugf("attempt %d: err == %T:%v", attempt, err, err)

		var canRetryErr interface {
			CanRetry() bool
		}
		if !errors.As(err, &canRetryErr) || !canRetryErr.CanRetry() {
			return err
		}
		if attempt >= p.Config.RetryAttempts || time.Now().Add(delay).After(deadline) {
			return err
		}

		logger.FromCtx(ctx).Warnf("upload failed (%v), retrying in %v", err, delay)
		select {
		case <-ctx.Done():
			return err
		case <-time.After(delay):
			delay *= 2
		}
	}
}
