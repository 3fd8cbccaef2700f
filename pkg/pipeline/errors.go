package pipeline

import (
	"errors"
	"fmt"

	"github.com/immune-gmbh/fwrelease/pkg/types"
)

// ErrDiscover implements "error", for the description see Error.
type ErrDiscover struct {
	Dir string
	Err error
}

func (err ErrDiscover) Error() string {
	return fmt.Sprintf("unable to list release archives in '%s': %v", err.Dir, err.Err)
}

func (err ErrDiscover) Unwrap() error {
	return err.Err
}

// ErrStage means processing of a tag failed at the given stage.
type ErrStage struct {
	Stage Stage
	Tag   types.Tag
	Err   error
}

func (err ErrStage) Error() string {
	return fmt.Sprintf("tag '%s' failed after stage %s: %v", err.Tag, err.Stage, err.Err)
}

func (err ErrStage) Unwrap() error {
	return err.Err
}

// ErrConfigurationFault means the run was stopped, because a tag failed
// on a problem which would make every other tag fail as well.
type ErrConfigurationFault struct {
	Tag types.Tag
	Err error
}

func (err ErrConfigurationFault) Error() string {
	return fmt.Sprintf("stopping the run on tag '%s' due to a configuration problem: %v", err.Tag, err.Err)
}

func (err ErrConfigurationFault) Unwrap() error {
	return err.Err
}

// IsConfigurationFault returns true.
func (err ErrConfigurationFault) IsConfigurationFault() bool {
	return true
}

// ErrWriteFile implements "error", for the description see Error.
type ErrWriteFile struct {
	Path string
	Err  error
}

func (err ErrWriteFile) Error() string {
	return fmt.Sprintf("unable to write '%s': %v", err.Path, err.Err)
}

func (err ErrWriteFile) Unwrap() error {
	return err.Err
}

type configurationFault interface {
	IsConfigurationFault() bool
}

// IsConfigurationFault returns true if the error (or any error it wraps)
// is a configuration fault.
func IsConfigurationFault(err error) bool {
	var fault configurationFault
	return errors.As(err, &fault) && fault.IsConfigurationFault()
}
