package notifier

import (
	"net/http"
	"time"
)

const (
	defaultTimeout    = 30 * time.Second
	defaultRetries    = 2
	defaultRetryDelay = 2 * time.Second
)

type config struct {
	Timeout    time.Duration
	Retries    uint
	RetryDelay time.Duration
	HTTPClient *http.Client
}

// Option is an optional argument to New.
type Option interface {
	apply(*config)
}

// OptionTimeout sets the timeout of a single request.
type OptionTimeout time.Duration

func (opt OptionTimeout) apply(cfg *config) {
	cfg.Timeout = time.Duration(opt)
}

// OptionRetries sets how many times a request is repeated if it failed
// on the transport level. A response with any status code is never retried.
type OptionRetries uint

func (opt OptionRetries) apply(cfg *config) {
	cfg.Retries = uint(opt)
}

// OptionRetryDelay sets the delay between retries.
type OptionRetryDelay time.Duration

func (opt OptionRetryDelay) apply(cfg *config) {
	cfg.RetryDelay = time.Duration(opt)
}

// OptionHTTPClient overrides the HTTP client (OptionTimeout is ignored then).
type OptionHTTPClient struct {
	Client *http.Client
}

func (opt OptionHTTPClient) apply(cfg *config) {
	cfg.HTTPClient = opt.Client
}
