package tags

import (
	"errors"
	"fmt"
)

var (
	// ErrLimitExceeded is returned when the collection is already at capacity.
	ErrLimitExceeded = errors.New("tag limit exceeded")
	// ErrDuplicateTag is returned when the value is already present and duplicates are off.
	ErrDuplicateTag = errors.New("duplicate tag")
	// ErrEmptyTag is returned for a candidate with an empty label or value.
	ErrEmptyTag = errors.New("empty tag")
	// ErrUnknownTag is returned when submitted text does not resolve to any pool option.
	ErrUnknownTag = errors.New("unknown tag")
)

// TagError describes a rejected tag mutation. Its message is meant for the user.
type TagError struct {
	Value   string
	MaxTags int
	Err     error
}

func (e *TagError) Error() string {
	switch {
	case errors.Is(e.Err, ErrLimitExceeded):
		return fmt.Sprintf("You can add only %d tags", e.MaxTags)
	case errors.Is(e.Err, ErrDuplicateTag):
		return "This tag is already added"
	case errors.Is(e.Err, ErrEmptyTag):
		return "Tag cannot be empty"
	case errors.Is(e.Err, ErrUnknownTag):
		return fmt.Sprintf("No option matches %q", e.Value)
	default:
		return e.Err.Error()
	}
}

func (e *TagError) Unwrap() error { return e.Err }
