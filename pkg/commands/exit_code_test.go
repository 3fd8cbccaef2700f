package commands

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExitCode(t *testing.T) {
	for _, tc := range []struct {
		Name             string
		Err              error
		ExpectedCode     int
		ExpectedPrinting bool
	}{
		{Name: "nil", Err: nil, ExpectedCode: ExitCodeOK},
		{Name: "plain", Err: errors.New("unexpected"), ExpectedCode: ExitCodeFatal, ExpectedPrinting: true},
		{Name: "args", Err: ErrArgs{Err: errors.New("no tag")}, ExpectedCode: ExitCodeInvalidArgs, ExpectedPrinting: true},
		{
			Name:         "silent_partial",
			Err:          SilentError{Err: ErrPartialFailure{Failed: 2, Err: errors.New("x")}},
			ExpectedCode: ExitCodePartial,
		},
		{
			Name:             "wrapped_args",
			Err:              fmt.Errorf("context: %w", ErrArgs{Err: errors.New("y")}),
			ExpectedCode:     ExitCodeInvalidArgs,
			ExpectedPrinting: true,
		},
	} {
		t.Run(tc.Name, func(t *testing.T) {
			code, shouldPrint := ExitCode(tc.Err)
			require.Equal(t, tc.ExpectedCode, code)
			require.Equal(t, tc.ExpectedPrinting, shouldPrint)
		})
	}
}
