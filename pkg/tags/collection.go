package tags

// Collection is an ordered, set-like list of tags. It is not safe for
// concurrent use; it is owned by a single controller.
type Collection struct {
	items           []Tag
	maxTags         int
	allowDuplicates bool
}

// NewCollection returns an empty collection. maxTags of 0 means unbounded.
func NewCollection(maxTags int, allowDuplicates bool) *Collection {
	return &Collection{
		maxTags:         maxTags,
		allowDuplicates: allowDuplicates,
	}
}

// Add appends a tag built from c. The limit is checked first, then duplicates,
// then emptiness; a rejected add leaves the collection untouched.
func (c *Collection) Add(cand Candidate) (Tag, error) {
	if c.maxTags > 0 && len(c.items) >= c.maxTags {
		return Tag{}, &TagError{Value: cand.Value, MaxTags: c.maxTags, Err: ErrLimitExceeded}
	}
	if !c.allowDuplicates && c.Contains(cand.Value) {
		return Tag{}, &TagError{Value: cand.Value, MaxTags: c.maxTags, Err: ErrDuplicateTag}
	}
	if cand.Label == "" || cand.Value == "" {
		return Tag{}, &TagError{Value: cand.Value, MaxTags: c.maxTags, Err: ErrEmptyTag}
	}

	tag := NewTag(cand)
	c.items = append(c.items, tag)
	return tag, nil
}

// Remove deletes the first tag matching t and reports whether one was found.
// With duplicates allowed tags match by instance ID, otherwise by value.
func (c *Collection) Remove(t Tag) (Tag, bool) {
	for i, item := range c.items {
		if !c.same(item, t) {
			continue
		}
		c.items = append(c.items[:i:i], c.items[i+1:]...)
		return item, true
	}
	return Tag{}, false
}

func (c *Collection) same(a, b Tag) bool {
	if c.allowDuplicates {
		return a.ID != "" && a.ID == b.ID
	}
	return a.Value == b.Value
}

// List returns a snapshot of the tags in insertion order.
func (c *Collection) List() []Tag {
	out := make([]Tag, len(c.items))
	copy(out, c.items)
	return out
}

// Len returns the number of tags.
func (c *Collection) Len() int { return len(c.items) }

// Remaining returns how many more tags fit, or -1 when unbounded.
func (c *Collection) Remaining() int {
	if c.maxTags <= 0 {
		return -1
	}
	return c.maxTags - len(c.items)
}

// Contains reports whether a tag with the given value exists.
func (c *Collection) Contains(value string) bool {
	for _, item := range c.items {
		if item.Value == value {
			return true
		}
	}
	return false
}

// Find looks a tag up by instance ID.
func (c *Collection) Find(id string) (Tag, bool) {
	for _, item := range c.items {
		if item.ID == id {
			return item, true
		}
	}
	return Tag{}, false
}
