// Copyright 2023 Meta Platforms, Inc. and affiliates.
//
// Redistribution and use in source and binary forms, with or without modification, are permitted provided that the following conditions are met:
//
// 1. Redistributions of source code must retain the above copyright notice, this list of conditions and the following disclaimer.
//
// 2. Redistributions in binary form must reproduce the above copyright notice, this list of conditions and the following disclaimer in the documentation and/or other materials provided with the distribution.
//
// 3. Neither the name of the copyright holder nor the names of its contributors may be used to endorse or promote products derived from this software without specific prior written permission.
//
// THIS SOFTWARE IS PROVIDED BY THE COPYRIGHT HOLDERS AND CONTRIBUTORS "AS IS" AND ANY EXPRESS OR IMPLIED WARRANTIES, INCLUDING, BUT NOT LIMITED TO, THE IMPLIED WARRANTIES OF MERCHANTABILITY AND FITNESS FOR A PARTICULAR PURPOSE ARE DISCLAIMED. IN NO EVENT SHALL THE COPYRIGHT HOLDER OR CONTRIBUTORS BE LIABLE FOR ANY DIRECT, INDIRECT, INCIDENTAL, SPECIAL, EXEMPLARY, OR CONSEQUENTIAL DAMAGES (INCLUDING, BUT NOT LIMITED TO, PROCUREMENT OF SUBSTITUTE GOODS OR SERVICES; LOSS OF USE, DATA, OR PROFITS; OR BUSINESS INTERRUPTION) HOWEVER CAUSED AND ON ANY THEORY OF LIABILITY, WHETHER IN CONTRACT, STRICT LIABILITY, OR TORT (INCLUDING NEGLIGENCE OR OTHERWISE) ARISING IN ANY WAY OUT OF THE USE OF THIS SOFTWARE, EVEN IF ADVISED OF THE POSSIBILITY OF SUCH DAMAGE.

package commands

import (
	"fmt"
)

// ExitCoder is an error which defines the exit code of the process.
type ExitCoder interface {
	ExitCode() int
}

// Exit codes of the commands.
const (
	ExitCodeOK          = 0
	ExitCodeInvalidArgs = 2
	ExitCodeFatal       = 3
	ExitCodePartial     = 4
)

// ErrArgs means the command was called with invalid arguments.
type ErrArgs struct {
	Err error
}

func (err ErrArgs) Error() string {
	return fmt.Sprintf("invalid arguments: %v", err.Err)
}

func (err ErrArgs) Unwrap() error {
	return err.Err
}

// ExitCode implements ExitCoder.
func (err ErrArgs) ExitCode() int {
	return ExitCodeInvalidArgs
}

// SilentError is an error which was already reported to the user,
// so it should not be printed again.
type SilentError struct {
	Err error
}

func (err SilentError) Error() string {
	return fmt.Sprintf("%v", err.Err)
}

func (err SilentError) Unwrap() error {
	return err.Err
}

// ErrPartialFailure means the command completed, but some of the items
// it processed failed.
type ErrPartialFailure struct {
	Failed int
	Err    error
}

func (err ErrPartialFailure) Error() string {
	return fmt.Sprintf("%d item(s) failed: %v", err.Failed, err.Err)
}

func (err ErrPartialFailure) Unwrap() error {
	return err.Err
}

// ExitCode implements ExitCoder.
func (err ErrPartialFailure) ExitCode() int {
	return ExitCodePartial
}

// Descriptioner is something which describes itself.
type Descriptioner interface {
	Description() string
}
