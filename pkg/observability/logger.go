package observability

import (
	"context"
	"io"
	"os"

	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/facebookincubator/go-belt/tool/logger/implementation/logrus"
	"github.com/mattn/go-isatty"

	"github.com/immune-gmbh/fwrelease/pkg/observability/tool/logger/logrus/formatter"
)

// NewLogger returns a logrus-based Logger writing compact text lines to out.
// Level symbols are colored if out is a terminal.
func NewLogger(ctx context.Context, out io.Writer) logger.Logger {
	l := logrus.DefaultLogrusLogger()
	l.Out = out
	l.Formatter = &formatter.CompactText{
		Colors: isTerminal(out),
	}

	return logrus.New(l).WithLevel(logger.LevelTrace)
}

func isTerminal(out io.Writer) bool {
	f, ok := out.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}
