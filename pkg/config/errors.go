package config

import (
	"fmt"
)

// ErrMissing means a required configuration value is empty.
type ErrMissing struct {
	Field  string
	EnvVar string
}

func (err ErrMissing) Error() string {
	if err.EnvVar == "" {
		return fmt.Sprintf("'%s' is not set", err.Field)
	}
	return fmt.Sprintf("'%s' is not set (environment variable %s)", err.Field, err.EnvVar)
}

// IsConfigurationFault returns true.
func (err ErrMissing) IsConfigurationFault() bool {
	return true
}

// ErrConflict means two configuration values cannot be used together.
type ErrConflict struct {
	Description string
}

func (err ErrConflict) Error() string {
	return fmt.Sprintf("conflicting configuration: %s", err.Description)
}

// IsConfigurationFault returns true.
func (err ErrConflict) IsConfigurationFault() bool {
	return true
}

// ErrInvalid wraps all the problems found by Validate.
type ErrInvalid struct {
	Err error
}

func (err ErrInvalid) Error() string {
	return fmt.Sprintf("invalid configuration: %v", err.Err)
}

func (err ErrInvalid) Unwrap() error {
	return err.Err
}

// IsConfigurationFault returns true.
func (err ErrInvalid) IsConfigurationFault() bool {
	return true
}

// ErrLoad implements "error", for the description see Error.
type ErrLoad struct {
	Path string
	Err  error
}

func (err ErrLoad) Error() string {
	return fmt.Sprintf("unable to load the configuration from '%s': %v", err.Path, err.Err)
}

func (err ErrLoad) Unwrap() error {
	return err.Err
}

// IsConfigurationFault returns true.
func (err ErrLoad) IsConfigurationFault() bool {
	return true
}
