package pack

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/fwrelease/pkg/commands"
	"github.com/immune-gmbh/fwrelease/pkg/config"
)

func TestPack(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "merged-binary.bin")
	require.NoError(t, os.WriteFile(input, []byte{0xE9, 1, 2, 3}, 0640))

	appCfg := config.Default()
	cfg := commands.Config{IsQuiet: true, App: &appCfg}

	cmd := &Command{}
	flagSet := pflag.NewFlagSet("pack", pflag.ContinueOnError)
	cmd.SetupFlagSet(flagSet, cfg)
	require.NoError(t, flagSet.Parse([]string{
		"--version", "v1.0.0",
		"--board", "my-board",
		"--input", input,
		"--output-dir", filepath.Join(dir, "releases"),
	}))
	require.NoError(t, cmd.Execute(context.Background(), cfg, flagSet.Args()))

	r, err := zip.OpenReader(filepath.Join(dir, "releases", "v1.0.0_my-board.zip"))
	require.NoError(t, err)
	defer r.Close()
	require.Len(t, r.File, 1)
	require.Equal(t, "merged-binary.bin", r.File[0].Name)
}

func TestPackMissingFlags(t *testing.T) {
	appCfg := config.Default()
	cfg := commands.Config{IsQuiet: true, App: &appCfg}

	cmd := &Command{}
	flagSet := pflag.NewFlagSet("pack", pflag.ContinueOnError)
	cmd.SetupFlagSet(flagSet, cfg)
	require.NoError(t, flagSet.Parse([]string{"--board", "my-board"}))

	err := cmd.Execute(context.Background(), cfg, flagSet.Args())
	require.ErrorAs(t, err, &commands.ErrArgs{})
}
