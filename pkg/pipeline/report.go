package pipeline

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/hashicorp/go-multierror"

	"github.com/immune-gmbh/fwrelease/pkg/types"
)

// Result is the result of processing a single tag.
type Result struct {
	Tag     types.Tag
	Outcome Outcome

	// Stage is the last stage reached.
	Stage Stage

	// Record is set if the image was parsed.
	Record *types.ReleaseRecord

	// Objects are the keys of the uploaded objects.
	Objects []string

	// Err is the failure (OutcomeFailed) or the skip reason (OutcomeSkippedNotAnImage).
	Err error
}

// Report is the result of a run.
type Report struct {
	RunID   string
	Results []Result
}

// Count returns the amount of tags with the outcome.
func (r *Report) Count(outcome Outcome) int {
	count := 0
	for _, result := range r.Results {
		if result.Outcome == outcome {
			count++
		}
	}
	return count
}

// CountSkipped returns the amount of tags which were intentionally not processed.
func (r *Report) CountSkipped() int {
	count := 0
	for _, result := range r.Results {
		if result.Outcome.IsSkipped() {
			count++
		}
	}
	return count
}

// Err returns the failures of all tags combined, or nil.
func (r *Report) Err() error {
	var mErr *multierror.Error
	for _, result := range r.Results {
		if result.Outcome == OutcomeFailed {
			mErr = multierror.Append(mErr, result.Err)
		}
	}
	return mErr.ErrorOrNil()
}

// Print writes a human-readable summary, a line per tag.
func (r *Report) Print(w io.Writer, colors bool) {
	for _, result := range r.Results {
		c := outcomeColor(result.Outcome)
		if colors {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
		line := fmt.Sprintf("%-40s %s", result.Tag, result.Outcome)
		if result.Outcome == OutcomePublished && result.Record != nil {
			line += fmt.Sprintf("\t%s %s %s", result.Record.Board, result.Record.ChipID, result.Record.URL)
		}
		if result.Outcome == OutcomeFailed {
			line += fmt.Sprintf("\t%v", result.Err)
		}
		c.Fprintln(w, line)
	}
	fmt.Fprintf(w, "published: %d, skipped: %d, failed: %d\n",
		r.Count(OutcomePublished),
		r.CountSkipped(),
		r.Count(OutcomeFailed),
	)
}

func outcomeColor(outcome Outcome) *color.Color {
	switch outcome {
	case OutcomePublished:
		return color.New(color.FgGreen)
	case OutcomeFailed:
		return color.New(color.FgRed, color.Bold)
	case OutcomeSkippedNotAnImage:
		return color.New(color.FgYellow)
	default:
		return color.New(color.Faint)
	}
}
