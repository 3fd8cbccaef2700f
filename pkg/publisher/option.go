package publisher

import (
	"time"
)

const (
	defaultRetryInitialDelay = time.Second
	defaultRetryTimeout      = 2 * time.Minute
	defaultRetryAttempts     = 5
)

type config struct {
	RetryInitialDelay time.Duration
	RetryTimeout      time.Duration
	RetryAttempts     uint
}

// Option is an optional argument to New.
type Option interface {
	apply(*config)
}

// OptionRetryInitialDelay sets the delay before the first retry, each
// next delay is twice as long.
type OptionRetryInitialDelay time.Duration

func (opt OptionRetryInitialDelay) apply(cfg *config) {
	cfg.RetryInitialDelay = time.Duration(opt)
}

// OptionRetryTimeout limits the total time spent on a single object.
type OptionRetryTimeout time.Duration

func (opt OptionRetryTimeout) apply(cfg *config) {
	cfg.RetryTimeout = time.Duration(opt)
}

// OptionRetryAttempts limits the amount of attempts per object (1 means no retries).
type OptionRetryAttempts uint

func (opt OptionRetryAttempts) apply(cfg *config) {
	cfg.RetryAttempts = uint(opt)
}
