package tags

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func cand(label string) Candidate {
	return Candidate{Label: label, Value: label, Source: NoHandle}
}

// two slots, third add rejected without touching the list
func TestCollectionLimit(t *testing.T) {
	c := NewCollection(2, false)

	for _, label := range []string{"Books", "Toys"} {
		if _, err := c.Add(cand(label)); err != nil {
			t.Fatalf("Add(%q) failed: %v", label, err)
		}
	}
	before := c.List()

	_, err := c.Add(cand("Cars"))
	if !errors.Is(err, ErrLimitExceeded) {
		t.Fatalf("expected ErrLimitExceeded, got %v", err)
	}
	if err.Error() != "You can add only 2 tags" {
		t.Errorf("unexpected message %q", err.Error())
	}
	if diff := cmp.Diff(before, c.List()); diff != "" {
		t.Errorf("collection changed after rejected add (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"Books", "Toys"}, Labels(c.List())); diff != "" {
		t.Errorf("labels mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionAddErrors(t *testing.T) {
	testCases := []struct {
		description string
		maxTags     int
		duplicates  bool
		seed        []Candidate
		add         Candidate
		wantErr     error
		wantMsg     string
	}{
		{"duplicate value rejected", 0, false, []Candidate{cand("Books")}, cand("Books"), ErrDuplicateTag, "This tag is already added"},
		{"duplicate value allowed", 0, true, []Candidate{cand("Books")}, cand("Books"), nil, ""},
		{"empty label", 0, false, nil, Candidate{Value: "x"}, ErrEmptyTag, "Tag cannot be empty"},
		{"empty value", 0, false, nil, Candidate{Label: "x"}, ErrEmptyTag, "Tag cannot be empty"},
		{"limit wins over duplicate", 1, false, []Candidate{cand("Books")}, cand("Books"), ErrLimitExceeded, "You can add only 1 tags"},
		{"unbounded", 0, false, []Candidate{cand("a"), cand("b"), cand("c")}, cand("d"), nil, ""},
	}

	for _, tc := range testCases {
		t.Run(tc.description, func(t *testing.T) {
			c := NewCollection(tc.maxTags, tc.duplicates)
			for _, s := range tc.seed {
				if _, err := c.Add(s); err != nil {
					t.Fatalf("seed %q: %v", s.Label, err)
				}
			}
			n := c.Len()
			_, err := c.Add(tc.add)
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				if c.Len() != n+1 {
					t.Errorf("expected %d tags, got %d", n+1, c.Len())
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("expected %v, got %v", tc.wantErr, err)
			}
			var tagErr *TagError
			if !errors.As(err, &tagErr) {
				t.Fatalf("expected *TagError, got %T", err)
			}
			if tagErr.Error() != tc.wantMsg {
				t.Errorf("message = %q, want %q", tagErr.Error(), tc.wantMsg)
			}
			if c.Len() != n {
				t.Errorf("rejected add changed size from %d to %d", n, c.Len())
			}
		})
	}
}

func TestCollectionRemoveAbsentIsNoop(t *testing.T) {
	c := NewCollection(0, false)
	c.Add(cand("Books"))
	before := c.List()

	for i := 0; i < 2; i++ {
		if _, ok := c.Remove(Tag{Value: "Toys"}); ok {
			t.Fatalf("removing an absent tag reported success")
		}
	}
	if diff := cmp.Diff(before, c.List()); diff != "" {
		t.Errorf("state changed (-want +got):\n%s", diff)
	}
}

func TestCollectionAddRemoveRoundTrip(t *testing.T) {
	c := NewCollection(0, false)
	for _, l := range []string{"a", "b", "c"} {
		c.Add(cand(l))
	}
	before := c.List()

	tag, err := c.Add(cand("d"))
	if err != nil {
		t.Fatal(err)
	}
	if _, ok := c.Remove(tag); !ok {
		t.Fatal("Remove did not find the tag just added")
	}
	if diff := cmp.Diff(before, c.List()); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionRemoveKeepsOrder(t *testing.T) {
	c := NewCollection(0, false)
	var b Tag
	for _, l := range []string{"a", "b", "c", "d"} {
		tag, _ := c.Add(cand(l))
		if l == "b" {
			b = tag
		}
	}
	c.Remove(b)
	if diff := cmp.Diff([]string{"a", "c", "d"}, Labels(c.List())); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestCollectionRemoveByInstanceWithDuplicates(t *testing.T) {
	c := NewCollection(0, true)
	first, _ := c.Add(cand("Books"))
	second, _ := c.Add(cand("Books"))
	if first.ID == second.ID {
		t.Fatal("duplicate tags share an instance ID")
	}

	removed, ok := c.Remove(second)
	if !ok || removed.ID != second.ID {
		t.Fatalf("expected to remove %s, got %+v (ok=%v)", second.ID, removed, ok)
	}
	list := c.List()
	if len(list) != 1 || list[0].ID != first.ID {
		t.Errorf("wrong tag left behind: %+v", list)
	}
	if _, ok := c.Remove(Tag{Value: "Books"}); ok {
		t.Error("value-only tag should not match when duplicates are allowed")
	}
}

// Sequences of adds never break the duplicate or capacity invariants.
func TestCollectionInvariants(t *testing.T) {
	labels := []string{"a", "b", "a", "c", "b", "d", "e", "a", "f"}
	for _, maxTags := range []int{0, 1, 3, 5} {
		c := NewCollection(maxTags, false)
		for _, l := range labels {
			c.Add(cand(l))
			if maxTags > 0 && c.Len() > maxTags {
				t.Fatalf("max=%d: size %d exceeds limit", maxTags, c.Len())
			}
			seen := map[string]bool{}
			for _, tag := range c.List() {
				if seen[tag.Value] {
					t.Fatalf("max=%d: duplicate value %q", maxTags, tag.Value)
				}
				seen[tag.Value] = true
			}
		}
	}
}

func TestCollectionRemaining(t *testing.T) {
	c := NewCollection(3, false)
	if got := c.Remaining(); got != 3 {
		t.Errorf("Remaining() = %d, want 3", got)
	}
	tag, _ := c.Add(cand("a"))
	if got := c.Remaining(); got != 2 {
		t.Errorf("Remaining() = %d, want 2", got)
	}
	if found, ok := c.Find(tag.ID); !ok || found.Label != "a" {
		t.Errorf("Find(%s) = %+v, %v", tag.ID, found, ok)
	}
	if got := NewCollection(0, false).Remaining(); got != -1 {
		t.Errorf("unbounded Remaining() = %d, want -1", got)
	}
}
