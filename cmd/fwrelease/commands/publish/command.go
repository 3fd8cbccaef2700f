package publish

import (
	"context"
	"fmt"
	"os"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"

	"github.com/immune-gmbh/fwrelease/cmd/fwrelease/helpers"
	"github.com/immune-gmbh/fwrelease/pkg/boardid"
	"github.com/immune-gmbh/fwrelease/pkg/commands"
	"github.com/immune-gmbh/fwrelease/pkg/notifier"
	"github.com/immune-gmbh/fwrelease/pkg/pipeline"
	"github.com/immune-gmbh/fwrelease/pkg/publisher"
	"github.com/immune-gmbh/fwrelease/pkg/releasecatalog"
)

// Command is the implementation of `commands.Command`.
type Command struct{}

// Usage prints the syntax of arguments for this command
func (cmd Command) Usage() string {
	return ""
}

// Description explains what this verb commands to do
func (cmd Command) Description() string {
	return "publish and announce every release archive which is not published yet"
}

// SetupFlagSet binds the release configuration to the options.
func (cmd *Command) SetupFlagSet(flagSet *pflag.FlagSet, cfg commands.Config) {
	cfg.App.AddFlags(flagSet)
}

// Execute is the main function here. It is responsible to
// start the execution of the command.
func (cmd Command) Execute(ctx context.Context, cfg commands.Config, args []string) (_err error) {
	if len(args) != 0 {
		return commands.ErrArgs{Err: fmt.Errorf("unexpected arguments: %v", args)}
	}
	appCfg := *cfg.App
	if err := appCfg.Validate(); err != nil {
		return err
	}

	storage, err := helpers.NewObjectStorage(appCfg)
	if err != nil {
		return fmt.Errorf("unable to initialize the object storage: %w", err)
	}
	catalog, err := releasecatalog.New(appCfg.ReleaseCatalogURL(), storage)
	if err != nil {
		_ = storage.Close()
		return fmt.Errorf("unable to initialize the release catalog: %w", err)
	}
	defer func() {
		var mErr *multierror.Error
		if err := catalog.Close(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to close the release catalog: %w", err))
		}
		if err := storage.Close(); err != nil {
			mErr = multierror.Append(mErr, fmt.Errorf("unable to close the object storage: %w", err))
		}
		if err := mErr.ErrorOrNil(); err != nil {
			if _err == nil {
				_err = err
			} else {
				logger.FromCtx(ctx).Error(err)
			}
		}
	}()

	versionsNotifier, err := notifier.New(
		appCfg.Versions.ServerURL,
		appCfg.Versions.Token,
		notifier.OptionTimeout(appCfg.Versions.Timeout),
		notifier.OptionRetries(appCfg.Versions.Retries),
	)
	if err != nil {
		return fmt.Errorf("unable to initialize the versions notifier: %w", err)
	}

	p := pipeline.New(
		appCfg,
		catalog,
		publisher.New(storage),
		versionsNotifier,
		boardid.NewResolver(),
	)
	report, err := p.Run(ctx)
	if !cfg.IsQuiet && report != nil {
		report.Print(os.Stdout, cfg.Colors)
	}
	if err != nil {
		return err
	}

	if err := report.Err(); err != nil {
		// The failures are already logged and printed in the report.
		return commands.SilentError{Err: commands.ErrPartialFailure{
			Failed: report.Count(pipeline.OutcomeFailed),
			Err:    err,
		}}
	}
	return nil
}
