package pipeline

import (
	"fmt"
)

// Stage is the last state an archive reached in a run.
type Stage string

const (
	StageDiscovered = Stage("DISCOVERED")
	StageExtracted  = Stage("EXTRACTED")
	StageParsed     = Stage("PARSED")
	StageCataloged  = Stage("CATALOGED")
	StagePublished  = Stage("PUBLISHED")
	StageAnnounced  = Stage("ANNOUNCED")
)

// Outcome is the final result of processing an archive.
type Outcome uint8

const (
	OutcomeUndefined = Outcome(iota)
	OutcomePublished
	OutcomeSkippedAlreadyPublished
	OutcomeSkippedNotAnImage
	OutcomeFailed
)

// String implements fmt.Stringer.
func (o Outcome) String() string {
	switch o {
	case OutcomeUndefined:
		return "undefined"
	case OutcomePublished:
		return "published"
	case OutcomeSkippedAlreadyPublished:
		return "skipped (already published)"
	case OutcomeSkippedNotAnImage:
		return "skipped (not an image)"
	case OutcomeFailed:
		return "failed"
	}
	return fmt.Sprintf("Outcome(%d)", uint8(o))
}

// IsSkipped returns true if the archive was intentionally not processed.
func (o Outcome) IsSkipped() bool {
	return o == OutcomeSkippedAlreadyPublished || o == OutcomeSkippedNotAnImage
}
