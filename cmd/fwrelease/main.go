// Copyright 2023 Meta Platforms, Inc. and affiliates.
//
// Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:
//
// 1. Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/facebookincubator/go-belt/beltctx"
	"github.com/facebookincubator/go-belt/tool/experimental/errmon"
	"github.com/facebookincubator/go-belt/tool/experimental/tracer"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/mattn/go-isatty"
	"github.com/spf13/pflag"

	"github.com/immune-gmbh/fwrelease/cmd/fwrelease/commands/board"
	"github.com/immune-gmbh/fwrelease/cmd/fwrelease/commands/inspect"
	"github.com/immune-gmbh/fwrelease/cmd/fwrelease/commands/pack"
	"github.com/immune-gmbh/fwrelease/cmd/fwrelease/commands/publish"
	"github.com/immune-gmbh/fwrelease/cmd/fwrelease/commands/show"
	"github.com/immune-gmbh/fwrelease/pkg/commands"
	"github.com/immune-gmbh/fwrelease/pkg/config"
	"github.com/immune-gmbh/fwrelease/pkg/observability"
)

const appName = "fwrelease"

var (
	knownCommands = map[string]commands.Command{
		"board":   &board.Command{},
		"inspect": &inspect.Command{},
		"pack":    &pack.Command{},
		"publish": &publish.Command{},
		"show":    &show.Command{},
	}
	exitCode = commands.ExitCodeOK
)

func usage(flagSet *pflag.FlagSet) {
	flagSet.Usage()
	exitCode = commands.ExitCodeInvalidArgs
}

type flags struct {
	isQuiet      bool
	loggingLevel logger.Level
	tracePrefix  string
	configPath   string
	envFile      string
}

func setupFlag() (*pflag.FlagSet, *flags) {
	var f flags

	flagSet := pflag.NewFlagSet(appName, pflag.ContinueOnError)
	flagSet.SetInterspersed(false)
	flagSet.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "syntax: %s [global options] <command> [options] {arguments}\n", appName)
		_, _ = fmt.Fprintf(os.Stderr, "\nPossible commands:\n")

		var commandList []string
		for commandName := range knownCommands {
			commandList = append(commandList, commandName)
		}
		sort.Strings(commandList)

		for _, commandName := range commandList {
			command := knownCommands[commandName]
			_, _ = fmt.Fprintf(os.Stderr, "    %s %-48s %s\n",
				appName, fmt.Sprintf("%s %s", commandName, command.Usage()), command.Description())
		}
		_, _ = fmt.Fprintf(os.Stderr, "\nGlobal options:\n")
		flagSet.PrintDefaults()
	}

	f.loggingLevel = logger.LevelInfo
	flagSet.Var(&f.loggingLevel, "log-level", "logging level")
	flagSet.BoolVar(&f.isQuiet, "quiet", false, "suppress stdout")
	flagSet.StringVar(&f.tracePrefix, "trace-prefix", "", "prepend traceID with this value; it is useful to understand which automation was responsible for this run")
	flagSet.StringVar(&f.configPath, "config", "", "path to a YAML configuration file")
	flagSet.StringVar(&f.envFile, "env-file", config.DefaultEnvFile, "path to a dotenv file with the environment variables")
	return flagSet, &f
}

func main() {
	ctx, endFunc := context.WithCancel(context.Background())
	defer func() {
		// os.Exit skips deferred calls, so it is called from the
		// outermost deferred function.
		if event := errmon.ObserveRecoverCtx(ctx, recover()); event != nil {
			endFunc()
			beltctx.Flush(ctx)
			panic(event.PanicValue)
		}

		logger.FromCtx(ctx).Debugf("exitcode is %d", exitCode)
		endFunc()
		beltctx.Flush(ctx)
		os.Exit(exitCode)
	}()

	flagSet, flags := setupFlag()
	if err := flagSet.Parse(os.Args[1:]); err != nil {
		// pflag has already printed the error and the usage.
		if !errors.Is(err, pflag.ErrHelp) {
			exitCode = commands.ExitCodeInvalidArgs
		}
		return
	}

	if flagSet.NArg() < 1 {
		_, _ = fmt.Fprintf(os.Stderr, "error: no command specified\n\n")
		usage(flagSet)
		return
	}

	ctx = observability.WithBelt(ctx, observability.Options{
		LogLevel:      flags.loggingLevel,
		TraceIDPrefix: flags.tracePrefix,
		SetAsDefault:  true,
	})

	commandName := flagSet.Arg(0)
	args := flagSet.Args()[1:]

	command := knownCommands[commandName]
	if command == nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: unknown command '%s'\n\n", commandName)
		usage(flagSet)
		return
	}

	appCfg, err := config.Load(flags.configPath, flags.envFile)
	if err != nil {
		_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
		exitCode = commands.ExitCodeFatal
		return
	}

	cfg := commands.Config{
		IsQuiet: flags.isQuiet,
		Colors:  isatty.IsTerminal(os.Stdout.Fd()),
		App:     &appCfg,
	}

	span, ctx := tracer.StartChildSpanFromCtx(ctx, commandName)
	defer span.Finish()

	logger.FromCtx(ctx).Debugf("cmd: '%s'; flags: %#+v; args: %v", commandName, *flags, args)

	cmdFlagSet := pflag.NewFlagSet(commandName, pflag.ContinueOnError)
	cmdFlagSet.Usage = func() {
		_, _ = fmt.Fprintf(os.Stderr, "syntax: %s %s [options] %s\n\nOptions:\n",
			appName, commandName, command.Usage())
		cmdFlagSet.PrintDefaults()
		_, _ = fmt.Fprintf(os.Stderr, "\n")
	}
	command.SetupFlagSet(cmdFlagSet, cfg)
	if err := cmdFlagSet.Parse(args); err != nil {
		// pflag has already printed the error and the usage.
		if !errors.Is(err, pflag.ErrHelp) {
			exitCode = commands.ExitCodeInvalidArgs
		}
		return
	}

	err = command.Execute(ctx, cfg, cmdFlagSet.Args())
	var shouldPrint bool
	exitCode, shouldPrint = commands.ExitCode(err)
	if !shouldPrint {
		return
	}
	_, _ = fmt.Fprintf(os.Stderr, "error: %v\n", err)
	if exitCode == commands.ExitCodeInvalidArgs {
		_, _ = fmt.Fprintf(os.Stderr, "\n")
		cmdFlagSet.Usage()
	}
}
