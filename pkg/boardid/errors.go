package boardid

import (
	"fmt"
)

// ErrUnknownBoard means the tag matches none of the known naming epochs.
type ErrUnknownBoard struct {
	Tag string
}

func (err ErrUnknownBoard) Error() string {
	return fmt.Sprintf("unknown board name: tag '%s' matches no known naming convention", err.Tag)
}

// ErrUnresolvedBoard means the tag matches an epoch, but none of the
// board markers of that epoch was found in the tag.
type ErrUnresolvedBoard struct {
	Tag   string
	Epoch string
}

func (err ErrUnresolvedBoard) Error() string {
	return fmt.Sprintf("unable to resolve the board of tag '%s': no board marker of epoch '%s' found", err.Tag, err.Epoch)
}

// ErrMalformedTag implements "error", for the description see Error.
type ErrMalformedTag struct {
	Tag    string
	Reason string
}

func (err ErrMalformedTag) Error() string {
	return fmt.Sprintf("malformed tag '%s': %s", err.Tag, err.Reason)
}
