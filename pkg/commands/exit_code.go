package commands

import (
	"errors"
)

// ExitCode returns the process exit code for the error returned by
// a command, and whether the error should still be printed.
func ExitCode(err error) (int, bool) {
	if err == nil {
		return ExitCodeOK, false
	}

	exitCode := ExitCodeFatal
	isSilent := errors.As(err, &SilentError{})
	var exitCoder ExitCoder
	if errors.As(err, &exitCoder) {
		exitCode = exitCoder.ExitCode()
	}
	return exitCode, !isSilent
}
