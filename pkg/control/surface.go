package control

import (
	"time"

	"github.com/bastiangx/tagserve/pkg/tags"
)

// Surface renders the control and receives the side-effect requests of the
// controller. Surfaces forward user intents back through the Controller methods.
type Surface interface {
	RenderTags(list []tags.Tag)
	RenderSuggestions(list []tags.Candidate)
	HideSuggestions()
	ShowError(msg string, d time.Duration)
	DismissError()
	ClearInputText()
	FocusSuggestions()
}

// Pool is the backing option list. SetSelected mirrors tag state outward;
// its failures are logged and otherwise ignored.
type Pool interface {
	Candidates() []tags.Candidate
	SetSelected(h tags.Handle, selected bool) error
}

// resolver is implemented by pools with indexed lookups. Pools without it are scanned.
type resolver interface {
	LookupValue(value string) (tags.Candidate, bool)
	LookupLabel(label string) (tags.Candidate, bool)
}
