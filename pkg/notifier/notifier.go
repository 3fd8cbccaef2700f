// Package notifier announces published releases to the versions server.
package notifier

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/facebookincubator/go-belt/tool/experimental/tracer"
	"github.com/facebookincubator/go-belt/tool/logger"
	"github.com/immune-gmbh/fwrelease/pkg/httputils"
	"github.com/immune-gmbh/fwrelease/pkg/types"
	"github.com/tidwall/gjson"
)

const maxResponseBodySize = 64 * 1024

// Notifier sends release records to the versions server.
type Notifier struct {
	Endpoint string
	Token    string
	Client   *http.Client
	Config   config
}

// New returns a new Notifier.
//
// Both the endpoint and the token are required, ErrMissingConfig
// is returned if any of them is empty.
func New(endpoint, token string, opts ...Option) (*Notifier, error) {
	if endpoint == "" {
		return nil, ErrMissingConfig{Field: "VERSIONS_SERVER_URL"}
	}
	if token == "" {
		return nil, ErrMissingConfig{Field: "VERSIONS_TOKEN"}
	}
	parsedURL, err := url.Parse(endpoint)
	if err != nil {
		return nil, ErrInvalidEndpoint{URL: endpoint, Err: err}
	}
	if parsedURL.Scheme != "http" && parsedURL.Scheme != "https" {
		return nil, ErrInvalidEndpoint{URL: endpoint, Err: fmt.Errorf("unsupported scheme '%s'", parsedURL.Scheme)}
	}

	cfg := config{
		Timeout:    defaultTimeout,
		Retries:    defaultRetries,
		RetryDelay: defaultRetryDelay,
	}
	for _, opt := range opts {
		opt.apply(&cfg)
	}

	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &Notifier{
		Endpoint: endpoint,
		Token:    token,
		Client:   client,
		Config:   cfg,
	}, nil
}

type envelope struct {
	JSONData string `json:"jsonData"`
}

// Body returns the request body for the record: the record serialized
// to JSON and wrapped as a string into {"jsonData": ...}.
func Body(record types.ReleaseRecord) ([]byte, error) {
	recordJSON, err := json.Marshal(record)
	if err != nil {
		return nil, ErrEncode{Err: err}
	}
	b, err := json.Marshal(envelope{JSONData: string(recordJSON)})
	if err != nil {
		return nil, ErrEncode{Err: err}
	}
	return b, nil
}

// Announce sends the record to the versions server.
//
// Any 2xx status code is a success. Other status codes are returned as
// ErrServer (if the body has an "error" field) or ErrHTTPStatus, and
// are never retried.
func (n *Notifier) Announce(ctx context.Context, record types.ReleaseRecord) error {
	span, ctx := tracer.StartChildSpanFromCtx(ctx, "Announce")
	defer span.Finish()

	body, err := Body(record)
	if err != nil {
		return err
	}

	var (
		resp    *http.Response
		attempt uint
	)
	for attempt = 1; ; attempt++ {
		resp, err = n.post(ctx, body)
		if err == nil {
			break
		}
		if attempt > n.Config.Retries || ctx.Err() != nil {
			return ErrTransport{URL: n.Endpoint, Attempts: attempt, Err: err}
		}
		logger.FromCtx(ctx).Warnf("unable to reach the versions server (%v), retrying in %v", err, n.Config.RetryDelay)
		select {
		case <-ctx.Done():
			return ErrTransport{URL: n.Endpoint, Attempts: attempt, Err: err}
		case <-time.After(n.Config.RetryDelay):
		}
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBodySize))
	if httputils.IsSuccess(resp.StatusCode) {
		logger.FromCtx(ctx).Infof("successfully uploaded version info for tag: %s", record.Tag)
		return nil
	}
	if err != nil {
		return ErrHTTPStatus{StatusCode: resp.StatusCode, Body: fmt.Sprintf("<unable to read the body: %v>", err)}
	}
	return statusError(resp.StatusCode, respBody)
}

func (n *Notifier) post(ctx context.Context, body []byte) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, n.Endpoint, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Authorization", "Bearer "+n.Token)
	req.Header.Set("Content-Type", "application/json")
	httputils.SetTraceHeaders(ctx, req)
	return n.Client.Do(req)
}

func statusError(statusCode int, body []byte) error {
	if gjson.ValidBytes(body) {
		if msg := gjson.GetBytes(body, "error"); msg.Exists() && msg.String() != "" {
			return ErrServer{StatusCode: statusCode, Message: msg.String()}
		}
	}
	return ErrHTTPStatus{StatusCode: statusCode, Body: string(body)}
}
