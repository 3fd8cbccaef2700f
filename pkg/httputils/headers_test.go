package httputils

import (
	"context"
	"net/http"
	"testing"

	"github.com/facebookincubator/go-belt"
	"github.com/facebookincubator/go-belt/beltctx"
	"github.com/stretchr/testify/require"
)

func TestSetTraceHeaders(t *testing.T) {
	req, err := http.NewRequest(http.MethodPost, "http://localhost/", nil)
	require.NoError(t, err)

	SetTraceHeaders(context.Background(), req)
	require.Empty(t, req.Header.Values(HTTPHeaderTraceID))

	ctx := beltctx.WithTraceID(context.Background(), belt.TraceID("run:1"))
	SetTraceHeaders(ctx, req)
	require.Equal(t, []string{"run:1"}, req.Header.Values(HTTPHeaderTraceID))
}

func TestIsSuccess(t *testing.T) {
	require.True(t, IsSuccess(http.StatusOK))
	require.True(t, IsSuccess(http.StatusNoContent))
	require.False(t, IsSuccess(http.StatusMultipleChoices))
	require.False(t, IsSuccess(http.StatusBadRequest))
}
