package events

import (
	"errors"
	"testing"

	"github.com/bastiangx/tagserve/pkg/tags"
	"github.com/google/go-cmp/cmp"
)

func TestHubLastRegistrationWins(t *testing.T) {
	h := NewHub()
	var got []string
	h.On(KindAdd, func(Event) { got = append(got, "first") })
	h.On(KindAdd, func(Event) { got = append(got, "second") })

	h.Emit(Event{Kind: KindAdd})
	if diff := cmp.Diff([]string{"second"}, got); diff != "" {
		t.Errorf("mismatch (-want +got):\n%s", diff)
	}
}

func TestHubUnregisteredIsNoop(t *testing.T) {
	h := NewHub()
	for _, k := range Kinds {
		h.Emit(Event{Kind: k})
	}
}

func TestHubOnUnknownKind(t *testing.T) {
	h := NewHub()
	err := h.On(Kind("click"), func(Event) {})
	if !errors.Is(err, ErrUnknownEvent) {
		t.Fatalf("expected ErrUnknownEvent, got %v", err)
	}
	if _, err := ParseKind("tagchange"); err != nil {
		t.Errorf("ParseKind(tagchange): %v", err)
	}
}

func TestHubOrder(t *testing.T) {
	h := NewHub()
	var order []Kind
	record := func(ev Event) { order = append(order, ev.Kind) }
	for _, k := range Kinds {
		h.On(k, record)
	}

	tag := tags.Tag{ID: "1", Label: "Books", Value: "books"}
	h.Added(tag, []tags.Tag{tag})
	h.Removed(tag, nil)

	want := []Kind{KindAdd, KindTagChange, KindRemove, KindTagChange}
	if diff := cmp.Diff(want, order); diff != "" {
		t.Errorf("order mismatch (-want +got):\n%s", diff)
	}
}

func TestHubClear(t *testing.T) {
	h := NewHub()
	called := false
	h.On(KindError, func(Event) { called = true })
	h.On(KindError, nil)
	h.Emit(Event{Kind: KindError, Message: "boom"})
	if called {
		t.Error("cleared callback still invoked")
	}
}
