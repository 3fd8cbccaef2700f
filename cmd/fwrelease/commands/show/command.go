package show

import (
	"context"
	"fmt"

	"github.com/spf13/pflag"

	"github.com/immune-gmbh/fwrelease/cmd/fwrelease/helpers"
	"github.com/immune-gmbh/fwrelease/pkg/commands"
	"github.com/immune-gmbh/fwrelease/pkg/config"
	"github.com/immune-gmbh/fwrelease/pkg/releasecatalog"
	"github.com/immune-gmbh/fwrelease/pkg/types"
)

// Command is the implementation of `commands.Command`.
type Command struct{}

// Usage prints the syntax of arguments for this command
func (cmd Command) Usage() string {
	return "<tag>"
}

// Description explains what this verb commands to do
func (cmd Command) Description() string {
	return "print the recorded metadata document of a released tag"
}

// SetupFlagSet is called to allow the command implementation
// to setup which option flags it has.
func (cmd *Command) SetupFlagSet(flagSet *pflag.FlagSet, cfg commands.Config) {
	flagSet.StringVar(&cfg.App.ReleasesDir, "releases-dir", cfg.App.ReleasesDir, "the directory with release archives (locates the default catalog)")
	flagSet.StringVar(&cfg.App.CatalogURL, "catalog", cfg.App.CatalogURL, "the release catalog URL (default: fs://<releases-dir>/"+config.CatalogDirName+")")
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
func (cmd Command) Execute(ctx context.Context, cfg commands.Config, args []string) error {
	if len(args) != 1 {
		return commands.ErrArgs{Err: fmt.Errorf("expected exactly one tag")}
	}
	tag := types.Tag(args[0])

	catalog, storage, err := helpers.NewCatalog(*cfg.App)
	if err != nil {
		return fmt.Errorf("unable to initialize the release catalog: %w", err)
	}
	defer catalog.Close()
	if storage != nil {
		defer storage.Close()
	}

	record, err := catalog.Get(ctx, tag)
	if err != nil {
		return err
	}
	doc, err := releasecatalog.MarshalDocument(*record)
	if err != nil {
		return fmt.Errorf("unable to serialize the record: %w", err)
	}
	fmt.Printf("%s\n", doc)
	return nil
}
