package suggest

import (
	"strings"
	"sync"
	"testing"

	"github.com/bastiangx/tagserve/pkg/tags"
	"github.com/google/go-cmp/cmp"
)

func pool(labels ...string) []tags.Candidate {
	out := make([]tags.Candidate, len(labels))
	for i, l := range labels {
		out[i] = tags.Candidate{Label: l, Value: strings.ToLower(l), Source: tags.Handle(i)}
	}
	return out
}

func labels(cands []tags.Candidate) []string {
	var out []string
	for _, c := range cands {
		out = append(out, c.Label)
	}
	return out
}

func TestMatch(t *testing.T) {
	p := pool("Books", "Boats", "Cars", "Notebook", "BOOTH")

	testCases := []struct {
		query       string
		current     []string
		duplicates  bool
		expected    []string
		description string
	}{
		{"bo", nil, false, []string{"Books", "Boats", "Notebook", "BOOTH"}, "substring anywhere, pool order"},
		{"BOO", nil, false, []string{"Books", "Notebook", "BOOTH"}, "upper case query"},
		{"", nil, false, nil, "empty query"},
		{"zzz", nil, false, nil, "no match"},
		{"bo", []string{"books"}, false, []string{"Boats", "Notebook", "BOOTH"}, "tagged value excluded"},
		{"bo", []string{"books"}, true, []string{"Books", "Boats", "Notebook", "BOOTH"}, "tagged value kept with duplicates"},
		{"ar", []string{"books", "boats"}, false, []string{"Cars"}, "unrelated tags do not matter"},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			var current []tags.Tag
			for _, v := range tc.current {
				current = append(current, tags.Tag{Label: v, Value: v})
			}
			got := Match(tc.query, p, current, tc.duplicates)
			if diff := cmp.Diff(tc.expected, labels(got)); diff != "" {
				t.Errorf("Match(%q) mismatch (-want +got):\n%s", tc.query, diff)
			}
		})
	}
}

func TestMatchKeepsPoolOrder(t *testing.T) {
	got := Match("bo", pool("Books", "Boats", "Cars"), nil, false)
	if diff := cmp.Diff([]string{"Books", "Boats"}, labels(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
	if got[0].Source != 0 || got[1].Source != 1 {
		t.Errorf("handles not carried through: %+v", got)
	}
}

func TestMatchOnlyReturnsContainingLabels(t *testing.T) {
	p := pool("alpha", "Beta", "gamma", "DELTA", "epsilon", "zeta", "Eta", "theta")
	for _, q := range []string{"a", "E", "ta", "ETA", "x", "lph", "mm"} {
		for _, c := range Match(q, p, nil, false) {
			if !strings.Contains(strings.ToLower(c.Label), strings.ToLower(q)) {
				t.Errorf("query %q returned %q", q, c.Label)
			}
		}
	}
}

func TestMatchLimit(t *testing.T) {
	m := NewMatcher(Options{Limit: 2})
	got := m.Match("a", pool("a1", "a2", "a3"), nil)
	if diff := cmp.Diff([]string{"a1", "a2"}, labels(got)); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestMatchConcurrent(t *testing.T) {
	p := pool("Books", "Boats", "Cars")
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if got := Match("bo", p, nil, false); len(got) != 2 {
					t.Errorf("got %d matches", len(got))
					return
				}
			}
		}()
	}
	wg.Wait()
}
