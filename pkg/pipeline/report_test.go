package pipeline

import (
	"bytes"
	"errors"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/immune-gmbh/fwrelease/pkg/types"
)

func TestReportPrint(t *testing.T) {
	report := &Report{
		Results: []Result{
			{
				Tag:     "v1.0.0_a",
				Outcome: OutcomePublished,
				Record:  &types.ReleaseRecord{Board: "a", ChipID: "esp32s3", URL: "https://cdn/a"},
			},
			{Tag: "v1.0.0_b", Outcome: OutcomeSkippedAlreadyPublished},
			{Tag: "v1.0.0_c", Outcome: OutcomeFailed, Err: errors.New("boom")},
		},
	}

	var buf bytes.Buffer
	report.Print(&buf, false)
	out := buf.String()
	require.NotContains(t, out, "\x1b[")
	require.Contains(t, out, "published\ta esp32s3 https://cdn/a")
	require.Contains(t, out, "skipped (already published)")
	require.Contains(t, out, "failed\tboom")
	require.Contains(t, out, "published: 1, skipped: 1, failed: 1\n")

	require.EqualError(t, errors.Unwrap(report.Err()), "boom")
}

func TestReportCountSkipped(t *testing.T) {
	report := &Report{
		Results: []Result{
			{Tag: "v1.0.0_a", Outcome: OutcomeSkippedAlreadyPublished},
			{Tag: "v1.0.0_b", Outcome: OutcomeSkippedNotAnImage},
			{Tag: "v1.0.0_c", Outcome: OutcomePublished},
			{Tag: "v1.0.0_d", Outcome: OutcomeFailed, Err: errors.New("boom")},
		},
	}
	require.Equal(t, 2, report.CountSkipped())

	var buf bytes.Buffer
	report.Print(&buf, false)
	require.Contains(t, buf.String(), "published: 1, skipped: 2, failed: 1\n")

	require.False(t, OutcomePublished.IsSkipped())
	require.False(t, OutcomeFailed.IsSkipped())
}
