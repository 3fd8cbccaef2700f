package observability

import (
	"bytes"
	"context"
	"testing"

	"github.com/facebookincubator/go-belt/beltctx"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/stretchr/testify/require"
)

func TestWithBelt(t *testing.T) {
	var buf bytes.Buffer
	ctx := WithBelt(context.Background(), Options{
		LogLevel:      logger.LevelInfo,
		LogOutput:     &buf,
		TraceIDPrefix: "release",
	})

	require.Contains(t, string(beltctx.Belt(ctx).TraceIDs()[0]), "release:")

	logger.FromCtx(ctx).Debugf("hidden")
	logger.FromCtx(beltctx.WithField(ctx, "tag", "v1.0.0_my-board")).Infof("visible")

	out := buf.String()
	require.NotContains(t, out, "hidden")
	require.Contains(t, out, "visible")
	require.Contains(t, out, "tag=v1.0.0_my-board")
	require.Contains(t, out, "pid=")
}
