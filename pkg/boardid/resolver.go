// Package boardid resolves a board identifier from a release tag.
//
// Release tags were named differently over time, so the resolution
// is an ordered list of rules, one per naming epoch. The first rule
// whose epoch matches the tag decides the result (or the error).
package boardid

import (
	"strings"
)

// Rule resolves board identifiers of a single naming epoch.
type Rule interface {
	// Epoch is a human-readable name of the naming epoch.
	Epoch() string

	// Matches returns true if the tag belongs to the epoch.
	Matches(tag string) bool

	// Resolve returns the board identifier of a tag which Matches.
	Resolve(tag string) (string, error)
}

// Marker is a token which identifies a board if found in a tag.
type Marker struct {
	Token string
	Board string
}

// FixedBoard resolves every tag of the epoch to the same board.
type FixedBoard struct {
	Prefixes []string
	Board    string
}

var _ Rule = FixedBoard{}

// Epoch implements Rule.
func (r FixedBoard) Epoch() string { return strings.Join(r.Prefixes, ",") }

// Matches implements Rule.
func (r FixedBoard) Matches(tag string) bool { return hasAnyPrefix(tag, r.Prefixes) }

// Resolve implements Rule.
func (r FixedBoard) Resolve(string) (string, error) { return r.Board, nil }

// MarkerBoard resolves the board by the first marker (in the order of
// Markers) found anywhere in the tag.
type MarkerBoard struct {
	Prefixes []string
	Markers  []Marker
}

var _ Rule = MarkerBoard{}

// Epoch implements Rule.
func (r MarkerBoard) Epoch() string { return strings.Join(r.Prefixes, ",") }

// Matches implements Rule.
func (r MarkerBoard) Matches(tag string) bool { return hasAnyPrefix(tag, r.Prefixes) }

// Resolve implements Rule.
func (r MarkerBoard) Resolve(tag string) (string, error) {
	for _, marker := range r.Markers {
		if strings.Contains(tag, marker.Token) {
			return marker.Board, nil
		}
	}
	return "", ErrUnresolvedBoard{Tag: tag, Epoch: r.Epoch()}
}

// TagSegmentBoard uses the second underscore-delimited segment of
// the tag verbatim ("v1.2.3_board-x" -> "board-x").
type TagSegmentBoard struct {
	Prefixes []string
}

var _ Rule = TagSegmentBoard{}

// Epoch implements Rule.
func (r TagSegmentBoard) Epoch() string { return strings.Join(r.Prefixes, ",") }

// Matches implements Rule.
func (r TagSegmentBoard) Matches(tag string) bool { return hasAnyPrefix(tag, r.Prefixes) }

// Resolve implements Rule.
func (r TagSegmentBoard) Resolve(tag string) (string, error) {
	parts := strings.Split(tag, "_")
	if len(parts) < 2 || parts[1] == "" {
		return "", ErrMalformedTag{Tag: tag, Reason: "no board segment after the first '_'"}
	}
	return parts[1], nil
}

// DefaultRules returns the naming epochs of the product line, oldest first.
//
// The order is a part of the contract, do not reorder.
func DefaultRules() []Rule {
	return []Rule{
		FixedBoard{
			Prefixes: []string{"v0.2"},
			Board:    "bread-simple",
		},
		MarkerBoard{
			Prefixes: []string{"v0.3", "v0.4", "v0.5", "v0.6"},
			Markers: []Marker{
				{Token: "ML307", Board: "bread-compact-ml307"},
				{Token: "WiFi", Board: "bread-compact-wifi"},
				{Token: "KevinBox1", Board: "kevin-box-1"},
			},
		},
		TagSegmentBoard{
			Prefixes: []string{"v0.7", "v0.8", "v0.9", "v1."},
		},
	}
}

// Resolver resolves board identifiers using an ordered list of rules.
type Resolver struct {
	Rules []Rule
}

// NewResolver returns a Resolver with DefaultRules followed by
// the given additional rules.
func NewResolver(extraRules ...Rule) *Resolver {
	return &Resolver{
		Rules: append(DefaultRules(), extraRules...),
	}
}

// Resolve returns the board identifier of the tag.
func (r *Resolver) Resolve(tag string) (string, error) {
	for _, rule := range r.Rules {
		if rule.Matches(tag) {
			return rule.Resolve(tag)
		}
	}
	return "", ErrUnknownBoard{Tag: tag}
}

var defaultResolver = NewResolver()

// Resolve resolves the board identifier of a tag using DefaultRules.
func Resolve(tag string) (string, error) {
	return defaultResolver.Resolve(tag)
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}
