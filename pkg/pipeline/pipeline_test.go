package pipeline

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sort"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/fwrelease/pkg/archive"
	"github.com/immune-gmbh/fwrelease/pkg/boardid"
	"github.com/immune-gmbh/fwrelease/pkg/config"
	"github.com/immune-gmbh/fwrelease/pkg/espimage"
	"github.com/immune-gmbh/fwrelease/pkg/espimage/espimagetest"
	"github.com/immune-gmbh/fwrelease/pkg/notifier"
	"github.com/immune-gmbh/fwrelease/pkg/objstorage"
	"github.com/immune-gmbh/fwrelease/pkg/publisher"
	"github.com/immune-gmbh/fwrelease/pkg/releasecatalog"
	"github.com/immune-gmbh/fwrelease/pkg/types"
)

type fakeNotifier struct {
	Records []types.ReleaseRecord
	Err     error
}

func (n *fakeNotifier) Announce(_ context.Context, record types.ReleaseRecord) error {
	if n.Err != nil {
		return n.Err
	}
	n.Records = append(n.Records, record)
	return nil
}

type countingPublisher struct {
	Publisher
	Calls int
}

func (p *countingPublisher) Publish(ctx context.Context, localFolder, remotePrefix string) ([]string, error) {
	p.Calls++
	return p.Publisher.Publish(ctx, localFolder, remotePrefix)
}

type testEnv struct {
	Pipeline   *Pipeline
	Notifier   *fakeNotifier
	Publisher  *countingPublisher
	Catalog    *releasecatalog.FS
	StorageDir string
}

func newTestEnv(t *testing.T) *testEnv {
	releasesDir := t.TempDir()
	storageDir := t.TempDir()

	cfg := config.Default()
	cfg.ReleasesDir = releasesDir
	cfg.Storage.PublicURL = "https://cdn.example.com/"

	catalog, err := releasecatalog.NewFS(filepath.Join(releasesDir, ".catalog"))
	require.NoError(t, err)
	storage, err := objstorage.New("fs://" + storageDir)
	require.NoError(t, err)
	t.Cleanup(func() { _ = storage.Close() })

	env := &testEnv{
		Notifier:   &fakeNotifier{},
		Publisher:  &countingPublisher{Publisher: publisher.New(storage)},
		Catalog:    catalog,
		StorageDir: storageDir,
	}
	env.Pipeline = New(cfg, catalog, env.Publisher, env.Notifier, boardid.NewResolver())
	return env
}

func testDescriptor() espimagetest.AppDescriptor {
	return espimagetest.AppDescriptor{
		Magic:       espimage.AppDescriptorMagic,
		Version:     "1.0.0",
		ProjectName: "xiaozhi",
		CompileTime: "12:00:00",
		CompileDate: "Jan  1 2025",
		IDFVersion:  "v5.4",
	}
}

func testMergedBinary(desc espimagetest.AppDescriptor) []byte {
	return espimagetest.Image{
		ChipID:        0x09,
		FlashSizeCode: 4,
		Segments: [][]byte{
			espimagetest.DescriptorSegment(desc, 0x100),
			bytes.Repeat([]byte{0x42}, 0x40),
		},
		TrailerSize: 16,
	}.Merged()
}

func (env *testEnv) addArchive(t *testing.T, tag types.Tag, merged []byte) {
	srcDir := t.TempDir()
	srcPath := filepath.Join(srcDir, env.Pipeline.Config.MergedBinaryName)
	require.NoError(t, os.WriteFile(srcPath, merged, 0640))
	require.NoError(t, archive.Pack(
		context.Background(),
		filepath.Join(env.Pipeline.Config.ReleasesDir, tag.ArchiveName()),
		srcPath,
	))
}

func (env *testEnv) storedObjects(t *testing.T) []string {
	var result []string
	err := filepath.Walk(env.StorageDir, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}
		if info.Mode().IsRegular() {
			rel, err := filepath.Rel(env.StorageDir, path)
			if err != nil {
				return err
			}
			result = append(result, filepath.ToSlash(rel))
		}
		return nil
	})
	require.NoError(t, err)
	sort.Strings(result)
	return result
}

func TestRunIdempotent(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tag := types.Tag("v1.0.0_my-board")
	env.addArchive(t, tag, testMergedBinary(testDescriptor()))

	report, err := env.Pipeline.Run(ctx)
	require.NoError(t, err)
	require.NoError(t, report.Err())
	require.NotEmpty(t, report.RunID)
	require.Len(t, report.Results, 1)

	result := report.Results[0]
	require.Equal(t, OutcomePublished, result.Outcome)
	require.Equal(t, StageAnnounced, result.Stage)
	require.Len(t, env.Notifier.Records, 1)

	record := env.Notifier.Records[0]
	require.Equal(t, "my-board", record.Board)
	require.Equal(t, "esp32s3", record.ChipID)
	require.Equal(t, uint64(16*espimage.MiB), record.FlashSize)
	require.Equal(t, tag, record.Tag)
	require.Equal(t, "https://cdn.example.com/firmwares/v1.0.0_my-board/xiaozhi.bin", record.URL)
	require.Equal(t, "xiaozhi", record.Application.Name)
	require.Equal(t, "1.0.0", record.Application.Version)
	require.Equal(t, "Jan  1 2025T12:00:00", record.Application.CompileTime)
	require.Equal(t, "v5.4", record.Application.IDFVersion)

	artifact, err := os.ReadFile(filepath.Join(env.Pipeline.Config.ReleasesDir, string(tag), "xiaozhi.bin"))
	require.NoError(t, err)
	require.Equal(t, espimage.AppRegion(testMergedBinary(testDescriptor())), artifact)
	require.Equal(t, len(artifact), record.FirmwareSize)

	expectedObjects := []string{
		"firmwares/v1.0.0_my-board/info.json",
		"firmwares/v1.0.0_my-board/merged-binary.bin",
		"firmwares/v1.0.0_my-board/xiaozhi.bin",
	}
	require.Equal(t, expectedObjects, env.storedObjects(t))

	stored, err := env.Catalog.Get(ctx, tag)
	require.NoError(t, err)
	require.Equal(t, record.URL, stored.URL)

	report, err = env.Pipeline.Run(ctx)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	require.Equal(t, OutcomeSkippedAlreadyPublished, report.Results[0].Outcome)
	require.Len(t, env.Notifier.Records, 1)
	require.Equal(t, 1, env.Publisher.Calls)
	require.Equal(t, expectedObjects, env.storedObjects(t))
}

func TestRunWrongDescriptorMagic(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tag := types.Tag("v1.0.0_my-board")
	desc := testDescriptor()
	desc.Magic = 0x12345678
	env.addArchive(t, tag, testMergedBinary(desc))

	report, err := env.Pipeline.Run(ctx)
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	result := report.Results[0]
	require.Equal(t, OutcomeFailed, result.Outcome)
	require.Equal(t, StageExtracted, result.Stage)
	require.ErrorAs(t, result.Err, &ErrStage{})
	require.ErrorAs(t, result.Err, &espimage.ErrInvalidAppDescriptorMagic{})
	require.Error(t, report.Err())

	_, err = os.Stat(filepath.Join(env.Pipeline.Config.ReleasesDir, string(tag), releasecatalog.RecordFileName))
	require.True(t, errors.Is(err, os.ErrNotExist))
	shouldPublish, err := env.Catalog.ShouldPublish(ctx, tag)
	require.NoError(t, err)
	require.True(t, shouldPublish)
	require.Empty(t, env.Notifier.Records)
	require.Zero(t, env.Publisher.Calls)
}

func TestRunNotAnImage(t *testing.T) {
	env := newTestEnv(t)
	env.addArchive(t, "v1.0.0_my-board", bytes.Repeat([]byte{0xFF}, 4096))

	report, err := env.Pipeline.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 1)
	require.Equal(t, OutcomeSkippedNotAnImage, report.Results[0].Outcome)
	require.ErrorAs(t, report.Results[0].Err, &espimage.ErrNotAnImage{})
	require.NoError(t, report.Err())
	require.Empty(t, env.Notifier.Records)
	require.Empty(t, env.storedObjects(t))
}

func TestRunAnnounceFailureIsRetriedNextRun(t *testing.T) {
	ctx := context.Background()
	env := newTestEnv(t)
	tag := types.Tag("v1.0.0_my-board")
	env.addArchive(t, tag, testMergedBinary(testDescriptor()))

	env.Notifier.Err = notifier.ErrServer{StatusCode: 500, Message: "database is down"}
	report, err := env.Pipeline.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, OutcomeFailed, report.Results[0].Outcome)
	require.Equal(t, StagePublished, report.Results[0].Stage)

	shouldPublish, err := env.Catalog.ShouldPublish(ctx, tag)
	require.NoError(t, err)
	require.True(t, shouldPublish)

	env.Notifier.Err = nil
	report, err = env.Pipeline.Run(ctx)
	require.NoError(t, err)
	require.Equal(t, OutcomePublished, report.Results[0].Outcome)
	require.Len(t, env.Notifier.Records, 1)
	require.Equal(t, 2, env.Publisher.Calls)
}

func TestRunIsolatesFailures(t *testing.T) {
	env := newTestEnv(t)
	env.addArchive(t, "v0.1.0_unknown", testMergedBinary(testDescriptor()))
	env.addArchive(t, "v1.0.0_my-board", testMergedBinary(testDescriptor()))

	report, err := env.Pipeline.Run(context.Background())
	require.NoError(t, err)
	require.Len(t, report.Results, 2)

	require.Equal(t, types.Tag("v0.1.0_unknown"), report.Results[0].Tag)
	require.Equal(t, OutcomeFailed, report.Results[0].Outcome)
	require.ErrorAs(t, report.Results[0].Err, &boardid.ErrUnknownBoard{})

	require.Equal(t, types.Tag("v1.0.0_my-board"), report.Results[1].Tag)
	require.Equal(t, OutcomePublished, report.Results[1].Outcome)

	require.Error(t, report.Err())
	require.Equal(t, 1, report.Count(OutcomeFailed))
	require.Equal(t, 1, report.Count(OutcomePublished))
}

func TestRunStopsOnConfigurationFault(t *testing.T) {
	env := newTestEnv(t)
	env.addArchive(t, "v1.0.0_board-a", testMergedBinary(testDescriptor()))
	env.addArchive(t, "v1.0.0_board-b", testMergedBinary(testDescriptor()))
	env.Notifier.Err = notifier.ErrMissingConfig{Field: "VERSIONS_TOKEN"}

	report, err := env.Pipeline.Run(context.Background())
	require.ErrorAs(t, err, &ErrConfigurationFault{})
	require.True(t, IsConfigurationFault(err))
	require.Len(t, report.Results, 1)
	require.Equal(t, OutcomeFailed, report.Results[0].Outcome)
}

func TestRunCancelled(t *testing.T) {
	env := newTestEnv(t)
	env.addArchive(t, "v1.0.0_my-board", testMergedBinary(testDescriptor()))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	report, err := env.Pipeline.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	require.Empty(t, report.Results)
}

func TestDiscover(t *testing.T) {
	env := newTestEnv(t)
	dir := env.Pipeline.Config.ReleasesDir
	for _, name := range []string{"v2.0.0_b.zip", "v1.0.0_a.zip", "notes.zip", "v1.0.0_a.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), nil, 0640))
	}
	require.NoError(t, os.Mkdir(filepath.Join(dir, "v3.0.0_dir.zip"), 0750))

	tags, err := env.Pipeline.Discover()
	require.NoError(t, err)
	require.Equal(t, []types.Tag{"v1.0.0_a", "v2.0.0_b"}, tags)

	env.Pipeline.Config.ReleasesDir = filepath.Join(dir, "nonexistent")
	_, err = env.Pipeline.Run(context.Background())
	require.ErrorAs(t, err, &ErrDiscover{})
}
