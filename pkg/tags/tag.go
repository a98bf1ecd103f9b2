// Package tags holds the value objects of the tag input and the ordered
// collection that enforces the capacity and duplicate policy.
package tags

import (
	"github.com/google/uuid"
)

// Handle is an opaque reference to the pool option a tag or candidate came from.
// Only the pool that issued it knows what it points to.
type Handle int

// NoHandle marks a tag or candidate without a backing option.
const NoHandle Handle = -1

// Candidate is an item of the backing pool that may become a tag.
type Candidate struct {
	Label  string
	Value  string
	Source Handle
}

// Tag is a user-confirmed selection. Tags are immutable; ID is unique per
// instance so two tags carrying the same value can still be told apart.
type Tag struct {
	ID     string
	Label  string
	Value  string
	Source Handle
}

// NewTag builds a tag from a candidate with a fresh instance ID.
func NewTag(c Candidate) Tag {
	return Tag{
		ID:     uuid.NewString(),
		Label:  c.Label,
		Value:  c.Value,
		Source: c.Source,
	}
}

// Candidate returns the candidate the tag was created from.
func (t Tag) Candidate() Candidate {
	return Candidate{Label: t.Label, Value: t.Value, Source: t.Source}
}

// Labels returns the display labels of tags in order.
func Labels(list []Tag) []string {
	out := make([]string, len(list))
	for i, t := range list {
		out[i] = t.Label
	}
	return out
}
