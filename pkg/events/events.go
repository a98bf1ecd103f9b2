// Package events dispatches tag input notifications to user callbacks.
//
// Each event kind holds at most one callback; registering again replaces the
// previous one. Kinds without a callback are silently skipped. Callbacks run
// synchronously on the caller's goroutine. A callback may call back into the
// controller that fired it; this is allowed but the resulting ordering of
// notifications is unspecified.
package events

import (
	"errors"
	"fmt"

	"github.com/bastiangx/tagserve/pkg/tags"
)

// Kind names an event.
type Kind string

const (
	KindAdd         Kind = "add"
	KindRemove      Kind = "remove"
	KindTagChange   Kind = "tagchange"
	KindInputChange Kind = "inputchange"
	KindError       Kind = "error"
)

// Kinds lists every supported kind.
var Kinds = []Kind{KindAdd, KindRemove, KindTagChange, KindInputChange, KindError}

// ErrUnknownEvent is returned when registering a callback for an unsupported kind.
var ErrUnknownEvent = errors.New("unknown event")

// Event is passed to callbacks. Only the fields relevant to Kind are set:
// Tag for add/remove, Tags for tagchange, Text for inputchange, Message for error.
type Event struct {
	Kind    Kind
	Tag     tags.Tag
	Tags    []tags.Tag
	Text    string
	Message string
}

// Callback receives an event.
type Callback func(Event)

// Hub maps each kind to its callback.
type Hub struct {
	callbacks map[Kind]Callback
}

// NewHub returns a hub with no callbacks registered.
func NewHub() *Hub {
	return &Hub{callbacks: make(map[Kind]Callback, len(Kinds))}
}

// ParseKind validates a kind name.
func ParseKind(name string) (Kind, error) {
	for _, k := range Kinds {
		if string(k) == name {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, name)
}

// On registers cb for kind, replacing any earlier callback. A nil cb clears it.
func (h *Hub) On(kind Kind, cb Callback) error {
	if _, err := ParseKind(string(kind)); err != nil {
		return err
	}
	if cb == nil {
		delete(h.callbacks, kind)
		return nil
	}
	h.callbacks[kind] = cb
	return nil
}

// Emit invokes the callback registered for ev.Kind, if any.
func (h *Hub) Emit(ev Event) {
	if cb, ok := h.callbacks[ev.Kind]; ok {
		cb(ev)
	}
}

// Added fires add followed by tagchange.
func (h *Hub) Added(t tags.Tag, all []tags.Tag) {
	h.Emit(Event{Kind: KindAdd, Tag: t})
	h.Emit(Event{Kind: KindTagChange, Tags: all})
}

// Removed fires remove followed by tagchange.
func (h *Hub) Removed(t tags.Tag, all []tags.Tag) {
	h.Emit(Event{Kind: KindRemove, Tag: t})
	h.Emit(Event{Kind: KindTagChange, Tags: all})
}
