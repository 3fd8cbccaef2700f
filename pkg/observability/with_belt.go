package observability

import (
	"context"
	"io"
	"os"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/beltctx"
	"github.com/facebookincubator/go-belt/tool/experimental/errmon"
	errmonlogger "github.com/facebookincubator/go-belt/tool/experimental/errmon/implementation/logger"
	"github.com/facebookincubator/go-belt/tool/experimental/metrics"
	"github.com/facebookincubator/go-belt/tool/experimental/tracer"
	"github.com/facebookincubator/go-belt/tool/logger"
)

// Options defines the observability tools of a process.
type Options struct {
	// LogLevel is the most verbose level to be logged.
	LogLevel logger.Level

	// LogOutput is where log entries are written, os.Stderr if nil.
	LogOutput io.Writer

	// TraceIDPrefix is prepended to the random trace ID (if not empty).
	TraceIDPrefix string

	// SetAsDefault makes the tools the go-belt defaults, so that code
	// without a context still logs through them.
	SetAsDefault bool
}

// WithBelt returns a context with the logger, the error monitor, the
// tracer and the metrics of the release tooling.
//
// There are no tracing or metrics backends for a command line run,
// so the go-belt defaults are used for them.
func WithBelt(ctx context.Context, opts Options) context.Context {
	out := opts.LogOutput
	if out == nil {
		out = os.Stderr
	}

	l := NewLogger(ctx, out).WithLevel(opts.LogLevel)
	ctx = logger.CtxWithLogger(ctx, l)
	ctx = errmon.CtxWithErrorMonitor(ctx, errmonlogger.New(l))
	ctx = metrics.CtxWithMetrics(ctx, metrics.Default())
	ctx = tracer.CtxWithTracer(ctx, tracer.Default())
	ctx = beltctx.WithFields(ctx, DefaultFields())

	traceID := belt.RandomTraceID()
	if opts.TraceIDPrefix != "" {
		traceID = belt.TraceID(opts.TraceIDPrefix+":") + traceID
	}
	ctx = beltctx.WithTraceID(ctx, traceID)

	if opts.SetAsDefault {
		setToolsAsDefault(beltctx.Belt(ctx))
	}
	return ctx
}

func setToolsAsDefault(b *belt.Belt) {
	var (
		l = logger.FromBelt(b)
		m = metrics.FromBelt(b)
		t = tracer.FromBelt(b)
		e = errmon.FromBelt(b)
	)
	belt.Default = func() *belt.Belt { return b }
	logger.Default = func() logger.Logger { return l }
	metrics.Default = func() metrics.Metrics { return m }
	tracer.Default = func() tracer.Tracer { return t }
	errmon.Default = func(*belt.Belt) errmon.ErrorMonitor { return e }
}
