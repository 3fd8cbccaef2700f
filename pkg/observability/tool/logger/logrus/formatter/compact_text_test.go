package formatter

import (
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"
)

func TestCompactText(t *testing.T) {
	entryTime := time.Date(2001, 02, 03, 04, 05, 06, 07, time.UTC)

	t.Run("integer_field", func(t *testing.T) {
		b, err := (&CompactText{
			FieldAllowList: []string{"someIntegerField"},
		}).Format(&logrus.Entry{
			Time: entryTime,
			Data: logrus.Fields{
				"someIntegerField": 1,
				"hidden":           2,
			},
			Level:   logrus.WarnLevel,
			Message: "msg",
		})
		require.NoError(t, err)
		require.Equal(t, "[04:05:06 W] msg\tsomeIntegerField=1\n", string(b))
	})

	t.Run("deny_list_and_sorting", func(t *testing.T) {
		b, err := (&CompactText{
			TimestampFormat: time.RFC3339,
			FieldDenyList:   []string{"pid"},
		}).Format(&logrus.Entry{
			Time: entryTime,
			Data: logrus.Fields{
				"tag":   "v1.0.0_my-board",
				"pid":   1,
				"runID": "abc",
			},
			Level:   logrus.InfoLevel,
			Message: "published",
		})
		require.NoError(t, err)
		require.Equal(t, "[2001-02-03T04:05:06Z I] published\trunID=abc\ttag=v1.0.0_my-board\n", string(b))
	})

	t.Run("colors", func(t *testing.T) {
		b, err := (&CompactText{
			Colors: true,
		}).Format(&logrus.Entry{
			Time:    entryTime,
			Level:   logrus.ErrorLevel,
			Message: "failed",
		})
		require.NoError(t, err)
		require.Contains(t, string(b), "\x1b[")
		require.Contains(t, string(b), "failed\n")
	})
}
