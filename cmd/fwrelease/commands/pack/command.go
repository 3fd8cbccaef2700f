package pack

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/spf13/pflag"

	"github.com/immune-gmbh/fwrelease/pkg/archive"
	"github.com/immune-gmbh/fwrelease/pkg/commands"
	"github.com/immune-gmbh/fwrelease/pkg/types"
)

// Command is the implementation of `commands.Command`.
type Command struct {
	version   string
	boardName string
	input     string
	outputDir string
}

// Usage prints the syntax of arguments for this command
func (cmd Command) Usage() string {
	return "--version <version> --board <board or build name>"
}

// Description explains what this verb commands to do
func (cmd Command) Description() string {
	return "put an already built merged binary into a release archive"
}

// SetupFlagSet is called to allow the command implementation
// to setup which option flags it has.
func (cmd *Command) SetupFlagSet(flagSet *pflag.FlagSet, cfg commands.Config) {
	flagSet.StringVar(&cmd.version, "version", "", "the project version (for example 1.2.3)")
	flagSet.StringVar(&cmd.boardName, "board", "", "the board or build name")
	flagSet.StringVar(&cmd.input, "input", filepath.Join("build", cfg.App.MergedBinaryName), "the merged binary to pack")
	flagSet.StringVar(&cmd.outputDir, "output-dir", cfg.App.ReleasesDir, "the directory of release archives")
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
func (cmd Command) Execute(ctx context.Context, cfg commands.Config, args []string) error {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("unexpected arguments: %v", args)}
	}
	if cmd.version == "" {
		return commands.ErrArgs{Err: fmt.Errorf("--version is not set")}
	}
	if cmd.boardName == "" {
		return commands.ErrArgs{Err: fmt.Errorf("--board is not set")}
	}

	tag := types.NewTag(cmd.version, cmd.boardName)
	outputPath := filepath.Join(cmd.outputDir, tag.ArchiveName())
	if err := archive.Pack(ctx, outputPath, cmd.input); err != nil {
		return err
	}
	if !cfg.IsQuiet {
		fmt.Println(outputPath)
	}
	return nil
}
