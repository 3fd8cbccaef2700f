package objstorage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/immune-gmbh/fwrelease/pkg/httputils"
)

// HTTP is an ObjectStorage on top of a plain HTTP server which
// supports GET, PUT and HEAD (WebDAV, S3 presigned gateways, etc).
type HTTP struct {
	BaseURL     *url.URL
	BearerToken string
	Client      *http.Client
}

var _ ObjectStorage = (*HTTP)(nil)

func newHTTP(baseURL *url.URL, cfg config) (*HTTP, error) {
	if baseURL.Host == "" {
		return nil, ErrMissingCredentials{Field: "host"}
	}
	client := cfg.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: cfg.Timeout}
	}
	return &HTTP{
		BaseURL:     baseURL,
		BearerToken: cfg.BearerToken,
		Client:      client,
	}, nil
}

func (s *HTTP) objectURL(key string) (string, error) {
	key, err := cleanKey(key)
	if err != nil {
		return "", err
	}
	return strings.TrimSuffix(s.BaseURL.String(), "/") + "/" + key, nil
}

func (s *HTTP) do(ctx context.Context, method, key string, body []byte) (*http.Response, error) {
	objURL, err := s.objectURL(key)
	if err != nil {
		return nil, err
	}

	var bodyReader io.Reader
	if body != nil {
		bodyReader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, objURL, bodyReader)
	if err != nil {
		return nil, fmt.Errorf("unable to make an HTTP request to '%s': %w", objURL, err)
	}
	if body != nil {
		req.ContentLength = int64(len(body))
		req.Header.Set("Content-Type", ContentType(key))
	}
	if s.BearerToken != "" {
		req.Header.Set("Authorization", "Bearer "+s.BearerToken)
	}
	httputils.SetTraceHeaders(ctx, req)

	resp, err := s.Client.Do(req)
	if err != nil {
		return nil, ErrHTTPRequest{Err: err, Method: method, URL: objURL}
	}
	return resp, nil
}

func statusError(resp *http.Response) error {
	body, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
	return ErrHTTPStatus{
		Method:     resp.Request.Method,
		URL:        resp.Request.URL.String(),
		StatusCode: resp.StatusCode,
		Body:       string(body),
	}
}

// Get implements ObjectStorage.
func (s *HTTP) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.do(ctx, http.MethodGet, key, nil)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound{Key: key}
	case !httputils.IsSuccess(resp.StatusCode):
		return nil, statusError(resp)
	}

	b, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, ErrHTTPRequest{Err: err, Method: http.MethodGet, URL: resp.Request.URL.String()}
	}
	return b, nil
}

// Replace implements ObjectStorage.
func (s *HTTP) Replace(ctx context.Context, key string, blob []byte) error {
	if blob == nil {
		blob = []byte{}
	}
	resp, err := s.do(ctx, http.MethodPut, key, blob)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if !httputils.IsSuccess(resp.StatusCode) {
		return statusError(resp)
	}
	return nil
}

// Exists implements ObjectStorage.
func (s *HTTP) Exists(ctx context.Context, key string) (bool, error) {
	resp, err := s.do(ctx, http.MethodHead, key, nil)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return false, nil
	case !httputils.IsSuccess(resp.StatusCode):
		return false, statusError(resp)
	}
	return true, nil
}

// Close implements io.Closer.
func (s *HTTP) Close() error {
	s.Client.CloseIdleConnections()
	return nil
}
