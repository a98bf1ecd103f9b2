// Package suggest decides which pool candidates are offered for the text typed into the tag input.
package suggest

import "github.com/bastiangx/tagserve/pkg/tags"

// IMatcher is implemented by anything able to turn a query into suggestions.
type IMatcher interface {
	// Match returns the eligible candidates for query, in pool order
	Match(query string, pool []tags.Candidate, current []tags.Tag) []tags.Candidate
}

// Options tunes a Matcher.
type Options struct {
	// AllowDuplicates keeps candidates whose value is already tagged.
	AllowDuplicates bool
	// Limit caps the number of results, 0 keeps them all.
	Limit int
}

// Matcher is the default IMatcher: case-insensitive substring match on labels.
type Matcher struct {
	opts Options
}

// NewMatcher returns a Matcher using opts.
func NewMatcher(opts Options) *Matcher {
	return &Matcher{opts: opts}
}

// Match implements IMatcher.
func (m *Matcher) Match(query string, pool []tags.Candidate, current []tags.Tag) []tags.Candidate {
	return MatchN(query, pool, current, m.opts)
}
