package boardid

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestResolve(t *testing.T) {
	for tag, board := range map[string]string{
		"v0.2.1":                        "bread-simple",
		"v0.2.0_WiFi":                   "bread-simple",
		"v0.3.0_ML307":                  "bread-compact-ml307",
		"v0.4.2_WiFi":                   "bread-compact-wifi",
		"v0.5.1_KevinBox1":              "kevin-box-1",
		"v0.6.0_ML307_WiFi":             "bread-compact-ml307",
		"v0.6.0_WiFi_KevinBox1":         "bread-compact-wifi",
		"v0.7.0_lichuang-dev":           "lichuang-dev",
		"v0.9.9_esp-box-3":              "esp-box-3",
		"v1.0.0_my-board":               "my-board",
		"v1.6.2_bread-compact-wifi_lcd": "bread-compact-wifi",
	} {
		t.Run(tag, func(t *testing.T) {
			resolved, err := Resolve(tag)
			require.NoError(t, err)
			require.Equal(t, board, resolved)
		})
	}
}

func TestResolveErrors(t *testing.T) {
	_, err := Resolve("v0.5.0_unknown")
	require.True(t, errors.As(err, &ErrUnresolvedBoard{}), err)

	_, err = Resolve("v1.0.0")
	require.True(t, errors.As(err, &ErrMalformedTag{}), err)

	_, err = Resolve("v1.0.0_")
	require.True(t, errors.As(err, &ErrMalformedTag{}), err)

	for _, tag := range []string{"v2.0.0_board", "v0.1.0", "1.0.0_board", ""} {
		_, err = Resolve(tag)
		require.True(t, errors.As(err, &ErrUnknownBoard{}), tag)
	}
}

func TestResolverExtraRules(t *testing.T) {
	r := NewResolver(TagSegmentBoard{Prefixes: []string{"v2."}})

	board, err := r.Resolve("v2.0.0_next-board")
	require.NoError(t, err)
	require.Equal(t, "next-board", board)

	// an earlier epoch still wins
	board, err = r.Resolve("v0.2.0_next-board")
	require.NoError(t, err)
	require.Equal(t, "bread-simple", board)
}
