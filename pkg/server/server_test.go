package server

import (
	"bytes"
	"testing"
	"time"

	"github.com/bastiangx/tagserve/pkg/control"
	"github.com/bastiangx/tagserve/pkg/pool"
	"github.com/google/go-cmp/cmp"
	"github.com/vmihailenco/msgpack/v5"
)

type heldTimer struct{ f func() }

func (h *heldTimer) Stop() bool { return true }

type heldTimers struct{ timers []*heldTimer }

func (h *heldTimers) schedule(_ time.Duration, f func()) control.Stopper {
	t := &heldTimer{f: f}
	h.timers = append(h.timers, t)
	return t
}

func intp(i int) *int { return &i }

type harness struct {
	srv    *Server
	out    *bytes.Buffer
	timers *heldTimers
}

func run(t *testing.T, settings control.Settings, maxLimit int, reqs ...Request) (*harness, *msgpack.Decoder) {
	t.Helper()
	var in bytes.Buffer
	enc := msgpack.NewEncoder(&in)
	for _, r := range reqs {
		if err := enc.Encode(r); err != nil {
			t.Fatal(err)
		}
	}

	h := &harness{out: &bytes.Buffer{}, timers: &heldTimers{}}
	p := pool.NewMemory(
		pool.Option{Label: "Books", Value: "books"},
		pool.Option{Label: "Boats", Value: "boats"},
		pool.Option{Label: "Cars", Value: "cars"},
	)
	srv, err := NewServer(settings, p, Options{
		MaxLimit: maxLimit,
		Reader:   &in,
		Writer:   h.out,
		Control:  []control.Option{control.WithScheduler(h.timers.schedule)},
	})
	if err != nil {
		t.Fatalf("NewServer: %v", err)
	}
	h.srv = srv
	if err := srv.Start(); err != nil {
		t.Fatalf("Start: %v", err)
	}

	dec := msgpack.NewDecoder(h.out)
	var ready StatusResponse
	if err := dec.Decode(&ready); err != nil || ready.Status != "ready" {
		t.Fatalf("ready frame = %+v, %v", ready, err)
	}
	return h, dec
}

func next(t *testing.T, dec *msgpack.Decoder) Response {
	t.Helper()
	var resp Response
	if err := dec.Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

func kinds(evs []SurfaceEvent) []string {
	out := make([]string, len(evs))
	for i, ev := range evs {
		out[i] = ev.Kind
	}
	return out
}

func TestServerSuggestAndChoose(t *testing.T) {
	_, dec := run(t, control.Settings{MaxTags: 2}, 0,
		Request{ID: "1", Op: OpText, Text: "bo"},
		Request{ID: "2", Op: OpDown},
		Request{ID: "3", Op: OpChoose, Handle: intp(1)},
		Request{ID: "4", Op: OpText, Text: "bo"},
	)

	resp := next(t, dec)
	if resp.ID != "1" || resp.State != "suggesting" {
		t.Fatalf("resp 1 = %+v", resp)
	}
	if diff := cmp.Diff([]string{EventRenderSuggestions}, kinds(resp.Events)); diff != "" {
		t.Fatalf("events mismatch (-want +got):\n%s", diff)
	}
	want := []Suggestion{
		{Label: "Books", Value: "books", Handle: 0, Rank: 1},
		{Label: "Boats", Value: "boats", Handle: 1, Rank: 2},
	}
	if diff := cmp.Diff(want, resp.Events[0].Suggestions); diff != "" {
		t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
	}
	if len(resp.Notifications) != 1 || resp.Notifications[0].Kind != "inputchange" {
		t.Errorf("notifications = %+v", resp.Notifications)
	}

	resp = next(t, dec)
	if !resp.Navigable || kinds(resp.Events)[0] != EventFocusSuggestions {
		t.Errorf("resp 2 = %+v", resp)
	}

	resp = next(t, dec)
	if diff := cmp.Diff([]string{EventHideSuggestions, EventClearInput, EventRenderTags}, kinds(resp.Events)); diff != "" {
		t.Errorf("choose events mismatch (-want +got):\n%s", diff)
	}
	var notes []string
	for _, n := range resp.Notifications {
		notes = append(notes, n.Kind)
	}
	if diff := cmp.Diff([]string{"add", "tagchange"}, notes); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
	if len(resp.Tags) != 1 || resp.Tags[0].Label != "Boats" || resp.Remaining != 1 || resp.State != "idle" {
		t.Errorf("resp 3 = %+v", resp)
	}

	resp = next(t, dec)
	if len(resp.Events[0].Suggestions) != 1 || resp.Events[0].Suggestions[0].Label != "Books" {
		t.Errorf("tagged value should no longer be suggested: %+v", resp.Events)
	}
}

func TestServerRejectAndDismiss(t *testing.T) {
	h, dec := run(t, control.Settings{MaxTags: 1, ErrorDisplay: 2 * time.Second}, 0,
		Request{ID: "1", Op: OpSubmit, Text: "books"},
		Request{ID: "2", Op: OpSubmit, Text: "cars"},
	)
	next(t, dec)

	resp := next(t, dec)
	if resp.Rejected != "You can add only 1 tags" {
		t.Errorf("rejected = %q", resp.Rejected)
	}
	var shown *SurfaceEvent
	for i := range resp.Events {
		if resp.Events[i].Kind == EventShowError {
			shown = &resp.Events[i]
		}
	}
	if shown == nil || shown.Message != "You can add only 1 tags" || shown.DurationMs != 2000 {
		t.Fatalf("show_error event = %+v", shown)
	}

	// the dismissal fires between requests and is pushed on its own
	h.timers.timers[len(h.timers.timers)-1].f()
	pushed := next(t, dec)
	if pushed.ID != "" || len(pushed.Events) != 1 || pushed.Events[0].Kind != EventDismissError {
		t.Errorf("pushed frame = %+v", pushed)
	}
}

func TestServerRemoveAndLimit(t *testing.T) {
	h, dec := run(t, control.Settings{}, 1,
		Request{ID: "1", Op: OpChoose, Value: "cars"},
		Request{ID: "2", Op: OpText, Text: "o", Limit: 5},
	)
	first := next(t, dec)
	if len(first.Tags) != 1 {
		t.Fatalf("tags = %+v", first.Tags)
	}
	resp := next(t, dec)
	if len(resp.Events[0].Suggestions) != 1 {
		t.Errorf("server max limit not applied: %+v", resp.Events[0].Suggestions)
	}

	h.srv.ctrl.TagRemoveRequested(h.srv.findTag(Request{TagID: first.Tags[0].ID}))
	if len(h.srv.Controller().Tags()) != 0 {
		t.Errorf("remove by tag id failed: %+v", h.srv.Controller().Tags())
	}
}

func TestServerInfoAndErrors(t *testing.T) {
	_, dec := run(t, control.Settings{MaxTags: 3}, 0,
		Request{ID: "1", Op: OpInfo},
		Request{ID: "2", Op: "explode"},
		Request{ID: "3", Op: OpChoose, Value: "planes"},
		Request{ID: "4", Op: OpHealth},
	)
	resp := next(t, dec)
	if resp.Info != "You can add 3 tags" || resp.Placeholder != "Add tags" || resp.Remaining != 3 {
		t.Errorf("info = %+v", resp)
	}

	var bad ErrorResponse
	if err := dec.Decode(&bad); err != nil || bad.Code != 400 || bad.ID != "2" {
		t.Errorf("unknown op response = %+v, %v", bad, err)
	}
	if err := dec.Decode(&bad); err != nil || bad.Code != 404 || bad.ID != "3" {
		t.Errorf("unknown candidate response = %+v, %v", bad, err)
	}
	var health StatusResponse
	if err := dec.Decode(&health); err != nil || health.Status != "ok" {
		t.Errorf("health = %+v, %v", health, err)
	}
}

func TestServerRemoveByValueWithDuplicates(t *testing.T) {
	_, dec := run(t, control.Settings{AllowDuplicates: true}, 0,
		Request{ID: "1", Op: OpChoose, Value: "cars"},
		Request{ID: "2", Op: OpChoose, Value: "cars"},
		Request{ID: "3", Op: OpRemove, Value: "cars"},
	)
	first := next(t, dec)
	second := next(t, dec)
	if len(second.Tags) != 2 {
		t.Fatalf("tags = %+v", second.Tags)
	}

	resp := next(t, dec)
	if len(resp.Tags) != 1 {
		t.Fatalf("remove by value left %d tags, want 1", len(resp.Tags))
	}
	if resp.Tags[0].ID == first.Tags[0].ID {
		t.Errorf("remove by value kept the first tag %s", first.Tags[0].ID)
	}
	var notes []string
	for _, n := range resp.Notifications {
		notes = append(notes, n.Kind)
	}
	if diff := cmp.Diff([]string{"remove", "tagchange"}, notes); diff != "" {
		t.Errorf("notifications mismatch (-want +got):\n%s", diff)
	}
}
