package objstorage

import (
	"fmt"
)

// ErrUnknownScheme implements "error", for the description see Error.
type ErrUnknownScheme struct {
	Scheme string
}

func (err ErrUnknownScheme) Error() string {
	return fmt.Sprintf("unknown scheme '%s'", err.Scheme)
}

// IsConfigurationFault returns true: the storage URL is a part of the configuration.
func (err ErrUnknownScheme) IsConfigurationFault() bool {
	return true
}

// ErrMissingCredentials means the storage cannot be used without
// an additional configuration value.
type ErrMissingCredentials struct {
	Field string
}

func (err ErrMissingCredentials) Error() string {
	return fmt.Sprintf("object storage is not configured: '%s' is not set", err.Field)
}

// IsConfigurationFault returns true.
func (err ErrMissingCredentials) IsConfigurationFault() bool {
	return true
}

// ErrInvalidKey implements "error", for the description see Error.
type ErrInvalidKey struct {
	Key string
}

func (err ErrInvalidKey) Error() string {
	return fmt.Sprintf("invalid object key '%s'", err.Key)
}

// ErrNotFound implements "error", for the description see Error.
type ErrNotFound struct {
	Key string
}

func (err ErrNotFound) Error() string {
	return fmt.Sprintf("object '%s' not found", err.Key)
}

// ErrHTTPRequest means the request to an HTTP storage did not get a response.
type ErrHTTPRequest struct {
	Err    error
	Method string
	URL    string
}

func (err ErrHTTPRequest) Error() string {
	return fmt.Sprintf("unable to %s '%s': %v", err.Method, err.URL, err.Err)
}

func (err ErrHTTPRequest) Unwrap() error {
	return err.Err
}

// CanRetry implements the retry interface checked by the publisher.
func (err ErrHTTPRequest) CanRetry() bool {
	return true
}

// ErrHTTPStatus means an HTTP storage responded with an unexpected status code.
type ErrHTTPStatus struct {
	Method     string
	URL        string
	StatusCode int
	Body       string
}

func (err ErrHTTPStatus) Error() string {
	return fmt.Sprintf("%s '%s' responded with status code %d: %s", err.Method, err.URL, err.StatusCode, err.Body)
}

// CanRetry returns true for server-side faults and throttling.
func (err ErrHTTPStatus) CanRetry() bool {
	return err.StatusCode >= 500 || err.StatusCode == 429
}

// ErrOSS wraps an error returned by the Aliyun OSS SDK.
type ErrOSS struct {
	Err       error
	Operation string
	Key       string
}

func (err ErrOSS) Error() string {
	return fmt.Sprintf("OSS %s of '%s' failed: %v", err.Operation, err.Key, err.Err)
}

func (err ErrOSS) Unwrap() error {
	return err.Err
}

// CanRetry returns true for server-side faults and network errors.
func (err ErrOSS) CanRetry() bool {
	statusCode := ossStatusCode(err.Err)
	return statusCode == 0 || statusCode >= 500 || statusCode == 429
}
