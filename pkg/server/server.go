package server

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	"github.com/bastiangx/tagserve/pkg/control"
	"github.com/bastiangx/tagserve/pkg/events"
	"github.com/bastiangx/tagserve/pkg/tags"
	"github.com/charmbracelet/log"
	"github.com/vmihailenco/msgpack/v5"
)

// Server handles msgpack IPC for one tag input.
type Server struct {
	ctrl     *control.Controller
	pool     control.Pool
	surface  *bridge
	maxLimit int

	decoder *msgpack.Decoder
	writer  *bufio.Writer
	encoder *msgpack.Encoder
	writeMu sync.Mutex

	notes []Notification
}

// Options configures a Server.
type Options struct {
	// MaxLimit caps suggestions per response; requests may ask for fewer.
	MaxLimit int
	Reader   io.Reader
	Writer   io.Writer
	Control  []control.Option
}

// NewServer builds the controller for settings and pool with the server as its surface.
// Reader and Writer default to stdin and stdout.
func NewServer(settings control.Settings, pool control.Pool, opts Options) (*Server, error) {
	if opts.Reader == nil {
		opts.Reader = os.Stdin
	}
	if opts.Writer == nil {
		opts.Writer = os.Stdout
	}
	w := bufio.NewWriter(opts.Writer)
	s := &Server{
		pool:     pool,
		maxLimit: opts.MaxLimit,
		decoder:  msgpack.NewDecoder(bufio.NewReader(opts.Reader)),
		writer:   w,
		encoder:  msgpack.NewEncoder(w),
	}
	// swallow the initial render, nothing has been asked yet
	s.surface = &bridge{push: s.pushEvent, active: true}

	ctrl, err := control.New(settings, pool, s.surface, opts.Control...)
	if err != nil {
		return nil, err
	}
	s.surface.end()
	s.ctrl = ctrl
	s.subscribe()
	return s, nil
}

// Controller returns the controller driven by the server.
func (s *Server) Controller() *control.Controller {
	return s.ctrl
}

func (s *Server) subscribe() {
	for _, kind := range events.Kinds {
		s.ctrl.On(kind, func(ev events.Event) {
			n := Notification{Kind: string(ev.Kind), Text: ev.Text, Message: ev.Message}
			switch ev.Kind {
			case events.KindAdd, events.KindRemove:
				t := wireTag(ev.Tag)
				n.Tag = &t
			case events.KindTagChange:
				n.Tags = wireTags(ev.Tags)
			}
			s.notes = append(s.notes, n)
		})
	}
}

// Close cancels the pending error dismissal.
func (s *Server) Close() {
	s.ctrl.Close()
}

// Start begins listening for IPC requests and returns when the input ends.
func (s *Server) Start() error {
	log.Debug("Starting Server.")

	if err := s.send(StatusResponse{Status: "ready"}); err != nil {
		return err
	}

	for {
		var req Request
		if err := s.decoder.Decode(&req); err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			log.Errorf("Decoding request: %v", err)
			s.sendError("", "Invalid msgpack request", 400)
			return err
		}
		if err := s.handleRequest(req); err != nil {
			return err
		}
	}
}

// handleRequest runs one request against the controller and writes the response.
func (s *Server) handleRequest(req Request) error {
	if req.Op == OpHealth {
		return s.send(StatusResponse{Status: "ok"})
	}

	limit := req.Limit
	if limit <= 0 || (s.maxLimit > 0 && limit > s.maxLimit) {
		limit = s.maxLimit
	}

	start := time.Now()
	s.notes = nil
	s.surface.begin(limit)
	resp := Response{ID: req.ID}

	switch req.Op {
	case OpText:
		s.ctrl.TextChanged(req.Text)
	case OpChoose:
		cand, ok := s.findCandidate(req)
		if !ok {
			s.surface.end()
			return s.sendError(req.ID, "Unknown candidate", 404)
		}
		if err := s.ctrl.SuggestionChosen(cand); err != nil {
			resp.Rejected = err.Error()
		}
	case OpSubmit:
		if err := s.ctrl.SubmitText(req.Text); err != nil {
			resp.Rejected = err.Error()
		}
	case OpRemove:
		s.ctrl.TagRemoveRequested(s.findTag(req))
	case OpDown:
		resp.Navigable = s.ctrl.DownArrow()
	case OpTags:
	case OpInfo:
		resp.Info = s.ctrl.InfoMessage()
		resp.Placeholder = s.ctrl.Placeholder()
	default:
		s.surface.end()
		log.Debugf("Unknown op %q in request %s", req.Op, req.ID)
		return s.sendError(req.ID, fmt.Sprintf("Unknown op: %s", req.Op), 400)
	}

	resp.Events = s.surface.end()
	if resp.Events == nil {
		resp.Events = []SurfaceEvent{}
	}
	resp.Notifications = s.notes
	resp.Tags = wireTags(s.ctrl.Tags())
	resp.State = s.ctrl.State().String()
	resp.Remaining = s.ctrl.Remaining()
	resp.TimeTaken = time.Since(start).Microseconds()
	return s.send(resp)
}

// findCandidate resolves the candidate a choose request points at: by
// handle, then among the visible suggestions by value, then in the pool.
func (s *Server) findCandidate(req Request) (tags.Candidate, bool) {
	visible := s.ctrl.Suggestions()
	if req.Handle != nil {
		h := tags.Handle(*req.Handle)
		for _, c := range visible {
			if c.Source == h {
				return c, true
			}
		}
		for _, c := range s.pool.Candidates() {
			if c.Source == h {
				return c, true
			}
		}
		return tags.Candidate{}, false
	}
	if req.Value == "" {
		return tags.Candidate{}, false
	}
	for _, c := range visible {
		if c.Value == req.Value {
			return c, true
		}
	}
	for _, c := range s.pool.Candidates() {
		if c.Value == req.Value {
			return c, true
		}
	}
	return tags.Candidate{}, false
}

// findTag returns the tag with the requested ID or, without an ID, the first
// tag carrying the requested value. An unknown tag comes back with only the
// requested fields set, which the controller ignores.
func (s *Server) findTag(req Request) tags.Tag {
	for _, t := range s.ctrl.Tags() {
		if req.TagID != "" && t.ID == req.TagID {
			return t
		}
		if req.TagID == "" && t.Value == req.Value {
			return t
		}
	}
	return tags.Tag{ID: req.TagID, Value: req.Value}
}

func (s *Server) pushEvent(ev SurfaceEvent) {
	// runs on the dismissal timer goroutine, so the controller is off limits
	resp := Response{ID: "", Events: []SurfaceEvent{ev}}
	if err := s.send(resp); err != nil {
		log.Errorf("Pushing %s: %v", ev.Kind, err)
	}
}

// send encodes v and flushes it.
func (s *Server) send(v interface{}) error {
	s.writeMu.Lock()
	defer s.writeMu.Unlock()

	if err := s.encoder.Encode(v); err != nil {
		log.Errorf("Encoding response: %v", err)
		return err
	}
	return s.writer.Flush()
}

// sendError sends an error response
func (s *Server) sendError(id, message string, code int) error {
	return s.send(ErrorResponse{ID: id, Error: message, Code: code})
}
