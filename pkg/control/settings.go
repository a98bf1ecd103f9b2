package control

import (
	"errors"
	"fmt"
	"time"
)

// ErrInvalidConfiguration is returned when a controller cannot be built from its settings.
var ErrInvalidConfiguration = errors.New("invalid configuration")

const (
	DefaultPlaceholder  = "Add tags"
	DefaultErrorDisplay = 3 * time.Second
)

// Settings configures a controller. It is copied at construction and never changes after.
type Settings struct {
	// MaxTags caps the number of tags, 0 means unbounded.
	MaxTags         int
	AllowDuplicates bool
	// InfoMessage describes the capacity to the user; nil uses DefaultInfoMessage.
	InfoMessage  func(maxTags int) string
	Placeholder  string
	ErrorDisplay time.Duration
	// InitialValues are pool values tagged at construction.
	InitialValues []string
}

// DefaultInfoMessage is the info message used when none is configured.
func DefaultInfoMessage(maxTags int) string {
	if maxTags <= 0 {
		return "You can add any number of tags"
	}
	return fmt.Sprintf("You can add %d tags", maxTags)
}

// Validate checks s and returns an error wrapping ErrInvalidConfiguration.
func (s Settings) Validate() error {
	if s.MaxTags < 0 {
		return fmt.Errorf("%w: max tags must not be negative, got %d", ErrInvalidConfiguration, s.MaxTags)
	}
	if s.ErrorDisplay < 0 {
		return fmt.Errorf("%w: error display duration must not be negative, got %s", ErrInvalidConfiguration, s.ErrorDisplay)
	}
	for i, v := range s.InitialValues {
		if v == "" {
			return fmt.Errorf("%w: initial value %d is empty", ErrInvalidConfiguration, i)
		}
	}
	return nil
}

func (s Settings) withDefaults() Settings {
	if s.Placeholder == "" {
		s.Placeholder = DefaultPlaceholder
	}
	if s.ErrorDisplay == 0 {
		s.ErrorDisplay = DefaultErrorDisplay
	}
	if s.InfoMessage == nil {
		s.InfoMessage = DefaultInfoMessage
	}
	// an info template producing nothing is treated like no template
	if s.InfoMessage(s.MaxTags) == "" {
		s.InfoMessage = DefaultInfoMessage
	}
	s.InitialValues = append([]string(nil), s.InitialValues...)
	return s
}
