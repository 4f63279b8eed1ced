// Package search evaluates a query string against photo labels. It only
// decides whether each photo matches; how non-matches are rendered (removed
// in find mode, dimmed in highlight mode) is a view concern fixed here so
// both layers agree on the semantics.
package search

import (
	"fmt"
	"strings"

	"github.com/JasonMadeSomething/claimbench/internal/domain"
)

// Mode selects how non-matching photos are rendered.
type Mode string

const (
	// ModeFind removes non-matching photos from the visible set.
	ModeFind Mode = "find"
	// ModeHighlight keeps all photos visible and de-emphasizes non-matches.
	ModeHighlight Mode = "highlight"
)

// ParseMode validates a mode string, defaulting blank to find.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case "", ModeFind:
		return ModeFind, nil
	case ModeHighlight:
		return ModeHighlight, nil
	default:
		return "", fmt.Errorf("unknown search mode %q", s)
	}
}

// Matcher is a compiled query. The zero value matches everything.
type Matcher struct {
	query string
}

// NewMatcher builds a matcher from raw user input. Whitespace-only input is
// treated as an empty query, which matches every photo.
func NewMatcher(query string) Matcher {
	return Matcher{query: strings.ToLower(strings.TrimSpace(query))}
}

// Empty reports whether the matcher matches unconditionally.
func (m Matcher) Empty() bool {
	return m.query == ""
}

// MatchesLabels reports whether any label contains the query as a
// case-insensitive substring.
func (m Matcher) MatchesLabels(labels []string) bool {
	if m.query == "" {
		return true
	}
	for _, l := range labels {
		if strings.Contains(strings.ToLower(l), m.query) {
			return true
		}
	}
	return false
}

// Result is the per-photo match decision for one query.
type Result struct {
	PhotoID string `json:"photo_id"`
	Matches bool   `json:"matches"`
}

// Evaluate computes a result for each photo, preserving input order.
func Evaluate(m Matcher, photos []domain.Photo) []Result {
	out := make([]Result, 0, len(photos))
	for _, p := range photos {
		out = append(out, Result{PhotoID: p.ID, Matches: m.MatchesLabels(p.Labels)})
	}
	return out
}

// VisibleUnder reports whether the photo stays in the visible set under the
// given mode.
func (r Result) VisibleUnder(mode Mode) bool {
	if mode == ModeFind {
		return r.Matches
	}
	return true
}

// DimmedUnder reports whether the photo is rendered de-emphasized under the
// given mode.
func (r Result) DimmedUnder(mode Mode) bool {
	return mode == ModeHighlight && !r.Matches
}
