// Package httputils contains helpers shared by the HTTP clients of
// the release tooling.
package httputils

import (
	"context"
	"net/http"

	"github.com/facebookincubator/go-belt/beltctx"
)

// HTTPHeaderTraceID is the header which passes the trace IDs of the
// run through to the remote side, so that its logs can be correlated.
const HTTPHeaderTraceID = `X-Trace-Id`

// SetTraceHeaders adds the trace IDs of the context to the request.
func SetTraceHeaders(ctx context.Context, req *http.Request) {
	for _, traceID := range beltctx.TraceIDs(ctx) {
		req.Header.Add(HTTPHeaderTraceID, string(traceID))
	}
}

// IsSuccess returns true for a 2xx status code.
func IsSuccess(statusCode int) bool {
	return statusCode >= 200 && statusCode < 300
}
