/*
Package server exposes a tag input over msgpack IPC.

The server plays the rendering surface for a remote UI: the client sends the
user's intents on stdin and the server answers on stdout with what the UI
should do about them.

# IPC

Each request carries an ID, an op and the fields that op needs:

	{"id": "r1", "op": "text", "text": "bo", "l": 10}
	{"id": "r2", "op": "choose", "h": 0}
	{"id": "r3", "op": "submit", "text": "Books"}
	{"id": "r4", "op": "remove", "tag_id": "6f1c..."}
	{"id": "r5", "op": "down"}
	{"id": "r6", "op": "tags"}
	{"id": "r7", "op": "info"}

The response lists the surface calls made while handling the request, in
order, followed by the notifications that fired and the resulting tag list:

	{"id": "r1", "ev": [{"k": "render_suggestions", "s": [{"label": "Books", "value": "books", "h": 0, "r": 1}]}],
	 "tags": [], "state": "suggesting", "rem": 5, "t": 42}

Error banners are time-boxed: when the display time of the latest error runs
out the server writes an unsolicited frame with an empty ID and a single
dismiss_error event.

The server answers {"status": "ready"} once it is listening.
*/
package server

// Ops understood by the server.
const (
	OpText   = "text"
	OpChoose = "choose"
	OpSubmit = "submit"
	OpRemove = "remove"
	OpDown   = "down"
	OpTags   = "tags"
	OpInfo   = "info"
	OpHealth = "health"
)

// Surface event kinds.
const (
	EventRenderTags        = "render_tags"
	EventRenderSuggestions = "render_suggestions"
	EventHideSuggestions   = "hide_suggestions"
	EventShowError         = "show_error"
	EventDismissError      = "dismiss_error"
	EventClearInput        = "clear_input"
	EventFocusSuggestions  = "focus_suggestions"
)

// Request is a user intent sent by the client.
type Request struct {
	ID     string `msgpack:"id"`
	Op     string `msgpack:"op"`
	Text   string `msgpack:"text,omitempty"`
	Value  string `msgpack:"value,omitempty"`
	Handle *int   `msgpack:"h,omitempty"`
	TagID  string `msgpack:"tag_id,omitempty"`
	Limit  int    `msgpack:"l,omitempty"`
}

// Tag is the wire form of a tag.
type Tag struct {
	ID     string `msgpack:"id"`
	Label  string `msgpack:"label"`
	Value  string `msgpack:"value"`
	Handle int    `msgpack:"h"`
}

// Suggestion is the wire form of a candidate, ranked by position.
type Suggestion struct {
	Label  string `msgpack:"label"`
	Value  string `msgpack:"value"`
	Handle int    `msgpack:"h"`
	Rank   uint16 `msgpack:"r"`
}

// SurfaceEvent is one call the controller made on the surface.
type SurfaceEvent struct {
	Kind        string       `msgpack:"k"`
	Tags        []Tag        `msgpack:"tags,omitempty"`
	Suggestions []Suggestion `msgpack:"s,omitempty"`
	Message     string       `msgpack:"msg,omitempty"`
	DurationMs  int64        `msgpack:"ms,omitempty"`
}

// Notification mirrors a callback fired by the controller.
type Notification struct {
	Kind    string `msgpack:"k"`
	Tag     *Tag   `msgpack:"tag,omitempty"`
	Tags    []Tag  `msgpack:"tags,omitempty"`
	Text    string `msgpack:"text,omitempty"`
	Message string `msgpack:"msg,omitempty"`
}

// Response answers one request.
type Response struct {
	ID            string         `msgpack:"id"`
	Events        []SurfaceEvent `msgpack:"ev"`
	Notifications []Notification `msgpack:"n,omitempty"`
	Tags          []Tag          `msgpack:"tags"`
	State         string         `msgpack:"state"`
	Remaining     int            `msgpack:"rem"`
	Navigable     bool           `msgpack:"nav,omitempty"`
	Rejected      string         `msgpack:"rej,omitempty"`
	Info          string         `msgpack:"info,omitempty"`
	Placeholder   string         `msgpack:"ph,omitempty"`
	TimeTaken     int64          `msgpack:"t"`
}

// ErrorResponse reports a malformed request.
type ErrorResponse struct {
	ID    string `msgpack:"id"`
	Error string `msgpack:"e"`
	Code  int    `msgpack:"c"`
}

// StatusResponse is sent on startup and for health checks.
type StatusResponse struct {
	Status string `msgpack:"status"`
}
