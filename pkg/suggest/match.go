package suggest

import (
	"strings"

	"github.com/bastiangx/tagserve/pkg/tags"
)

// Match returns every candidate whose label contains query, ignoring case.
// An empty query yields no suggestions. Unless duplicates are allowed,
// candidates whose value is already tagged are left out. Pool order is kept.
func Match(query string, pool []tags.Candidate, current []tags.Tag, allowDuplicates bool) []tags.Candidate {
	return MatchN(query, pool, current, Options{AllowDuplicates: allowDuplicates})
}

// MatchN is Match with a result cap.
func MatchN(query string, pool []tags.Candidate, current []tags.Tag, opts Options) []tags.Candidate {
	if query == "" {
		return nil
	}
	lowerQuery := strings.ToLower(query)

	var taken map[string]struct{}
	if !opts.AllowDuplicates && len(current) > 0 {
		taken = make(map[string]struct{}, len(current))
		for _, t := range current {
			taken[t.Value] = struct{}{}
		}
	}

	var out []tags.Candidate
	for _, c := range pool {
		if !strings.Contains(strings.ToLower(c.Label), lowerQuery) {
			continue
		}
		if _, dup := taken[c.Value]; dup {
			continue
		}
		out = append(out, c)
		if opts.Limit > 0 && len(out) >= opts.Limit {
			break
		}
	}
	return out
}
