// Package pipeline drives the release archives through extraction,
// parsing, publishing and announcing, exactly once per tag.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/facebookincubator/go-belt/beltctx"
	"github.com/facebookincubator/go-belt/pkg/field"
	"github.com/facebookincubator/go-belt/tool/experimental/metrics"
	"github.com/facebookincubator/go-belt/tool/experimental/tracer"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/google/uuid"

	"github.com/immune-gmbh/fwrelease/pkg/archive"
	"github.com/immune-gmbh/fwrelease/pkg/config"
	"github.com/immune-gmbh/fwrelease/pkg/espimage"
	"github.com/immune-gmbh/fwrelease/pkg/objstorage"
	"github.com/immune-gmbh/fwrelease/pkg/observability"
	"github.com/immune-gmbh/fwrelease/pkg/releasecatalog"
	"github.com/immune-gmbh/fwrelease/pkg/types"
)

// Publisher uploads a local folder, see publisher.Publisher.
type Publisher interface {
	Publish(ctx context.Context, localFolder, remotePrefix string) ([]string, error)
}

// Notifier announces a release record, see notifier.Notifier.
type Notifier interface {
	Announce(ctx context.Context, record types.ReleaseRecord) error
}

// BoardResolver resolves the board of a tag, see boardid.Resolver.
type BoardResolver interface {
	Resolve(tag string) (string, error)
}

// Pipeline is the release orchestrator.
//
// Archives are processed sequentially in the name order. A failure of
// one tag does not affect the others, except for configuration faults
// which stop the run. Tags which failed are not recorded in the catalog,
// so they are processed again by the next run.
type Pipeline struct {
	Config    config.Config
	Catalog   releasecatalog.Catalog
	Publisher Publisher
	Notifier  Notifier
	Boards    BoardResolver
}

// New returns a new Pipeline.
func New(
	cfg config.Config,
	catalog releasecatalog.Catalog,
	publisher Publisher,
	notifier Notifier,
	boards BoardResolver,
) *Pipeline {
	return &Pipeline{
		Config:    cfg,
		Catalog:   catalog,
		Publisher: publisher,
		Notifier:  notifier,
		Boards:    boards,
	}
}

// Run processes every release archive of the releases directory.
//
// The returned error is non-nil only if the run could not be completed
// (the archives could not be listed, a configuration fault, or the context
// was cancelled); failures of separate tags are in the Report, see Report.Err.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	span, ctx := tracer.StartChildSpanFromCtx(ctx, "Run")
	defer span.Finish()

	report := &Report{
		RunID: uuid.New().String(),
	}
	ctx = beltctx.WithField(ctx, "runID", observability.FieldRunID(report.RunID))

	tags, err := p.Discover()
	if err != nil {
		return report, err
	}
	logger.FromCtx(ctx).Infof("found %d release archive(s) in '%s'", len(tags), p.Config.ReleasesDir)

	for _, tag := range tags {
		// Cancellation is honored only between archives, a started
		// archive is always brought to a consistent state.
		if err := ctx.Err(); err != nil {
			return report, err
		}

		result := p.ProcessTag(ctx, tag)
		report.Results = append(report.Results, result)
		metrics.FromCtx(ctx).Count(metricNameOutcome(result.Outcome)).Add(1)

		if result.Outcome == OutcomeFailed && IsConfigurationFault(result.Err) {
			return report, ErrConfigurationFault{Tag: tag, Err: result.Err}
		}
	}

	return report, nil
}

// Discover returns the tags of the release archives ("v*.zip") in the
// releases directory, sorted by name.
func (p *Pipeline) Discover() ([]types.Tag, error) {
	entries, err := os.ReadDir(p.Config.ReleasesDir)
	if err != nil {
		return nil, ErrDiscover{Dir: p.Config.ReleasesDir, Err: err}
	}

	// os.ReadDir returns entries sorted by file name.
	var tags []types.Tag
	for _, entry := range entries {
		if !entry.Type().IsRegular() {
			continue
		}
		if tag, ok := types.ParseArchiveName(entry.Name()); ok {
			tags = append(tags, tag)
		}
	}
	return tags, nil
}

// ProcessTag brings a single tag through all the stages.
func (p *Pipeline) ProcessTag(ctx context.Context, tag types.Tag) Result {
	span, ctx := tracer.StartChildSpanFromCtx(ctx, "ProcessTag")
	defer span.Finish()
	ctx = beltctx.WithField(ctx, "tag", tag)

	result := p.processTag(ctx, tag)
	switch result.Outcome {
	case OutcomePublished:
		logger.FromCtx(ctx).Infof("published '%s'", tag)
	case OutcomeSkippedAlreadyPublished:
		logger.FromCtx(ctx).Debugf("'%s' is already published, skipping", tag)
	case OutcomeSkippedNotAnImage:
		logger.FromCtx(ctx).Warnf("'%s' does not contain an application image, skipping: %v", tag, result.Err)
	case OutcomeFailed:
		logger.FromCtx(ctx).Errorf("%v", result.Err)
	}
	return result
}

func (p *Pipeline) processTag(ctx context.Context, tag types.Tag) Result {
	result := Result{Tag: tag}
	fail := func(stage Stage, err error) Result {
		result.Stage = stage
		result.Outcome = OutcomeFailed
		result.Err = ErrStage{Stage: stage, Tag: tag, Err: err}
		return result
	}

	shouldPublish, err := p.Catalog.ShouldPublish(ctx, tag)
	if err != nil {
		return fail(StageDiscovered, err)
	}
	result.Stage = StageDiscovered
	if !shouldPublish {
		result.Outcome = OutcomeSkippedAlreadyPublished
		return result
	}

	folder := filepath.Join(p.Config.ReleasesDir, string(tag))
	if _, err := archive.Extract(ctx, filepath.Join(p.Config.ReleasesDir, tag.ArchiveName()), folder); err != nil {
		return fail(StageDiscovered, err)
	}
	result.Stage = StageExtracted

	merged, err := os.ReadFile(filepath.Join(folder, p.Config.MergedBinaryName))
	if err != nil {
		return fail(StageExtracted, err)
	}
	appImage := espimage.AppRegion(merged)
	img, err := espimage.Parse(appImage)
	if err != nil {
		if errors.As(err, &espimage.ErrNotAnImage{}) {
			result.Outcome = OutcomeSkippedNotAnImage
			result.Err = err
			return result
		}
		return fail(StageExtracted, err)
	}
	if err := writeFileIfNotExists(filepath.Join(folder, p.Config.ArtifactName), appImage); err != nil {
		return fail(StageExtracted, err)
	}
	desc, err := img.AppDescriptor()
	if err != nil {
		return fail(StageExtracted, err)
	}
	board, err := p.Boards.Resolve(string(tag))
	if err != nil {
		return fail(StageExtracted, err)
	}
	result.Stage = StageParsed
	ctx = beltctx.WithFields(ctx, field.Map[string]{
		"board":   board,
		"chipID":  img.ChipID.String(),
		"version": desc.Version,
	})
	logger.FromCtx(ctx).Debugf("parsed the image: %d segment(s), flash size %s", img.SegmentCount(), img.FlashSize)

	releasePrefix := tag.ObjectPrefix(p.Config.ObjectRoot)
	record := types.NewReleaseRecord(tag, board, img, desc, appImage, p.Config.ArtifactURL(releasePrefix))
	result.Record = &record
	doc, err := releasecatalog.MarshalDocument(record)
	if err != nil {
		return fail(StageParsed, err)
	}
	// The document is published together with the artifacts, but the tag
	// is recorded in the catalog only once it is announced.
	docPath := filepath.Join(folder, releasecatalog.RecordFileName)
	if err := objstorage.WriteFileAtomic(docPath, doc, 0640); err != nil {
		return fail(StageParsed, ErrWriteFile{Path: docPath, Err: err})
	}
	result.Stage = StageCataloged

	result.Objects, err = p.Publisher.Publish(ctx, folder, releasePrefix)
	if err != nil {
		return fail(StageCataloged, err)
	}
	result.Stage = StagePublished

	if err := p.Notifier.Announce(ctx, record); err != nil {
		return fail(StagePublished, err)
	}
	result.Stage = StageAnnounced

	if err := p.Catalog.RecordAndPersist(ctx, tag, record); err != nil {
		return fail(StageAnnounced, fmt.Errorf("announced, but unable to record the release: %w", err))
	}

	result.Outcome = OutcomePublished
	return result
}

func writeFileIfNotExists(filePath string, data []byte) error {
	switch _, err := os.Stat(filePath); {
	case err == nil:
		return nil
	case !errors.Is(err, fs.ErrNotExist):
		return ErrWriteFile{Path: filePath, Err: err}
	}
	if err := objstorage.WriteFileAtomic(filePath, data, 0640); err != nil {
		return ErrWriteFile{Path: filePath, Err: err}
	}
	return nil
}

func metricNameOutcome(outcome Outcome) string {
	switch outcome {
	case OutcomePublished:
		return "releases_published"
	case OutcomeSkippedAlreadyPublished, OutcomeSkippedNotAnImage:
		return "releases_skipped"
	default:
		return "releases_failed"
	}
}
