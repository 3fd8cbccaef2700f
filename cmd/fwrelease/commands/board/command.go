package board

import (
	"context"
	"fmt"

	"github.com/hashicorp/go-multierror"
	"github.com/spf13/pflag"

	"github.com/immune-gmbh/fwrelease/pkg/boardid"
	"github.com/immune-gmbh/fwrelease/pkg/commands"
)

// Command is the implementation of `commands.Command`.
type Command struct{}

// Usage prints the syntax of arguments for this command
func (cmd Command) Usage() string {
	return "<tag> {tag}"
}

// Description explains what this verb commands to do
func (cmd Command) Description() string {
	return "print the board identifier of release tags"
}

// SetupFlagSet is called to allow the command implementation
// to setup which option flags it has.
func (cmd *Command) SetupFlagSet(flagSet *pflag.FlagSet, cfg commands.Config) {}

// Execute is the main function here. It is responsible to
// start the execution of the command.
func (cmd Command) Execute(ctx context.Context, cfg commands.Config, args []string) error {
	if len(args) < 1 {
		return commands.ErrArgs{Err: fmt.Errorf("no tag was specified")}
	}

	resolver := boardid.NewResolver()
	var mErr *multierror.Error
	for _, tag := range args {
		board, err := resolver.Resolve(tag)
		if err != nil {
			mErr = multierror.Append(mErr, err)
			continue
		}
		if !cfg.IsQuiet {
			fmt.Printf("%s\t%s\n", tag, board)
		}
	}
	return mErr.ErrorOrNil()
}
