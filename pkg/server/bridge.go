package server

import (
	"sync"
	"time"

	"github.com/bastiangx/tagserve/internal/utils"
	"github.com/bastiangx/tagserve/pkg/tags"
)

// bridge is the control.Surface of the server. Calls made while a request
// is being handled are collected for its response; a dismissal arriving
// between requests is pushed out on its own.
type bridge struct {
	mu     sync.Mutex
	active bool
	events []SurfaceEvent
	limit  int
	push   func(SurfaceEvent)
}

func (b *bridge) begin(limit int) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = true
	b.events = nil
	b.limit = limit
}

func (b *bridge) end() []SurfaceEvent {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.active = false
	out := b.events
	b.events = nil
	return out
}

func (b *bridge) record(ev SurfaceEvent) {
	b.mu.Lock()
	if b.active {
		b.events = append(b.events, ev)
		b.mu.Unlock()
		return
	}
	b.mu.Unlock()
	if b.push != nil {
		b.push(ev)
	}
}

func (b *bridge) RenderTags(list []tags.Tag) {
	b.record(SurfaceEvent{Kind: EventRenderTags, Tags: wireTags(list)})
}

func (b *bridge) RenderSuggestions(list []tags.Candidate) {
	b.mu.Lock()
	limit := b.limit
	b.mu.Unlock()
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	b.record(SurfaceEvent{Kind: EventRenderSuggestions, Suggestions: wireSuggestions(list)})
}

func (b *bridge) HideSuggestions() {
	b.record(SurfaceEvent{Kind: EventHideSuggestions})
}

func (b *bridge) ShowError(msg string, d time.Duration) {
	b.record(SurfaceEvent{Kind: EventShowError, Message: msg, DurationMs: d.Milliseconds()})
}

func (b *bridge) DismissError() {
	b.record(SurfaceEvent{Kind: EventDismissError})
}

func (b *bridge) ClearInputText() {
	b.record(SurfaceEvent{Kind: EventClearInput})
}

func (b *bridge) FocusSuggestions() {
	b.record(SurfaceEvent{Kind: EventFocusSuggestions})
}

func wireTag(t tags.Tag) Tag {
	return Tag{ID: t.ID, Label: t.Label, Value: t.Value, Handle: int(t.Source)}
}

func wireTags(list []tags.Tag) []Tag {
	out := make([]Tag, len(list))
	for i, t := range list {
		out[i] = wireTag(t)
	}
	return out
}

func wireSuggestions(list []tags.Candidate) []Suggestion {
	ranks := utils.CreateRankList(len(list))
	out := make([]Suggestion, len(list))
	for i, c := range list {
		out[i] = Suggestion{Label: c.Label, Value: c.Value, Handle: int(c.Source), Rank: ranks[i]}
	}
	return out
}
