package board

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/fwrelease/pkg/boardid"
	"github.com/immune-gmbh/fwrelease/pkg/commands"
)

func TestExecute(t *testing.T) {
	cmd := Command{}
	cfg := commands.Config{IsQuiet: true}

	require.ErrorAs(t, cmd.Execute(context.Background(), cfg, nil), &commands.ErrArgs{})
	require.NoError(t, cmd.Execute(context.Background(), cfg, []string{"v1.0.0_my-board", "v0.2.1"}))

	err := cmd.Execute(context.Background(), cfg, []string{"v1.0.0_my-board", "x0.1"})
	require.ErrorAs(t, err, &boardid.ErrUnknownBoard{})
}
