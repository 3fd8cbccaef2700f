package notifier

import (
	"fmt"
)

// ErrMissingConfig means the notifier cannot be constructed: a required
// configuration value is empty. It is reported before any network I/O.
type ErrMissingConfig struct {
	Field string
}

func (err ErrMissingConfig) Error() string {
	return fmt.Sprintf("the version notifier is not configured: '%s' is not set", err.Field)
}

// IsConfigurationFault returns true.
func (err ErrMissingConfig) IsConfigurationFault() bool {
	return true
}

// ErrInvalidEndpoint implements "error", for the description see Error.
type ErrInvalidEndpoint struct {
	URL string
	Err error
}

func (err ErrInvalidEndpoint) Error() string {
	return fmt.Sprintf("invalid versions server URL '%s': %v", err.URL, err.Err)
}

func (err ErrInvalidEndpoint) Unwrap() error {
	return err.Err
}

// IsConfigurationFault returns true.
func (err ErrInvalidEndpoint) IsConfigurationFault() bool {
	return true
}

// ErrEncode implements "error", for the description see Error.
type ErrEncode struct {
	Err error
}

func (err ErrEncode) Error() string {
	return fmt.Sprintf("unable to encode the release record: %v", err.Err)
}

func (err ErrEncode) Unwrap() error {
	return err.Err
}

// ErrTransport means the versions server was not reached (or the
// response was not received), even after retries.
type ErrTransport struct {
	URL      string
	Attempts uint
	Err      error
}

func (err ErrTransport) Error() string {
	return fmt.Sprintf("unable to POST to '%s' (attempts: %d): %v", err.URL, err.Attempts, err.Err)
}

func (err ErrTransport) Unwrap() error {
	return err.Err
}

// ErrServer is a non-2xx response with an "error" field in the JSON body.
type ErrServer struct {
	StatusCode int
	Message    string
}

func (err ErrServer) Error() string {
	return fmt.Sprintf("the versions server responded with status code %d: %s", err.StatusCode, err.Message)
}

// ErrHTTPStatus is a non-2xx response without a structured error.
type ErrHTTPStatus struct {
	StatusCode int
	Body       string
}

func (err ErrHTTPStatus) Error() string {
	return fmt.Sprintf("the versions server responded with status code %d: %s", err.StatusCode, err.Body)
}
