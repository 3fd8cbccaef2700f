package objstorage

import (
	"net/http"
	"time"
)

const (
	defaultTimeout = 5 * time.Minute
)

type config struct {
	Endpoint        string
	AccessKeyID     string
	AccessKeySecret string
	BearerToken     string
	Timeout         time.Duration
	HTTPClient      *http.Client
}

// Option is an optional argument to New.
type Option interface {
	apply(*config)
}

type options []Option

func (s options) config() config {
	cfg := config{
		Timeout: defaultTimeout,
	}
	for _, opt := range s {
		opt.apply(&cfg)
	}
	return cfg
}

// OptionEndpoint sets the OSS endpoint (for example "oss-cn-shenzhen.aliyuncs.com").
type OptionEndpoint string

func (opt OptionEndpoint) apply(cfg *config) {
	cfg.Endpoint = string(opt)
}

// OptionCredentials sets the OSS access key.
type OptionCredentials struct {
	AccessKeyID     string
	AccessKeySecret string
}

func (opt OptionCredentials) apply(cfg *config) {
	cfg.AccessKeyID = opt.AccessKeyID
	cfg.AccessKeySecret = opt.AccessKeySecret
}

// OptionBearerToken sets the token sent to an HTTP storage.
type OptionBearerToken string

func (opt OptionBearerToken) apply(cfg *config) {
	cfg.BearerToken = string(opt)
}

// OptionTimeout sets the timeout of a single storage request.
type OptionTimeout time.Duration

func (opt OptionTimeout) apply(cfg *config) {
	cfg.Timeout = time.Duration(opt)
}

// OptionHTTPClient overrides the HTTP client of an HTTP storage.
type OptionHTTPClient struct {
	Client *http.Client
}

func (opt OptionHTTPClient) apply(cfg *config) {
	cfg.HTTPClient = opt.Client
}
