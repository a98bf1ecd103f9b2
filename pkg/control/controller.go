/*
Package control drives a tag input.

A Controller owns the tag collection and the suggestion state of one input.
Surfaces report what the user did (TextChanged, SuggestionChosen,
SubmitText, TagRemoveRequested, DownArrow) and the controller answers by
calling back into the Surface, mirroring selection onto the Pool and firing
the registered callbacks.

The controller is single-owner: all methods must be called from the same
goroutine. The only deferred work is the error dismissal, which calls
Surface.DismissError from a timer goroutine.

Callbacks run synchronously inside the call that triggered them. A callback
may call back into the controller (for example to remove the tag it was just
told about); this is allowed, but the order in which the nested and outer
notifications reach the other callbacks is unspecified.
*/
package control

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/tagserve/pkg/events"
	"github.com/bastiangx/tagserve/pkg/suggest"
	"github.com/bastiangx/tagserve/pkg/tags"
	"github.com/charmbracelet/log"
)

// State is the suggestion state of the control.
type State int

const (
	Idle State = iota
	Suggesting
)

func (s State) String() string {
	switch s {
	case Idle:
		return "idle"
	case Suggesting:
		return "suggesting"
	default:
		return "unknown"
	}
}

// Option customises a Controller.
type Option func(*Controller)

// WithScheduler replaces time.AfterFunc for error dismissal.
func WithScheduler(s Scheduler) Option {
	return func(c *Controller) { c.banner.schedule = s }
}

// WithMatcher replaces the default suggestion matcher.
func WithMatcher(m suggest.IMatcher) Option {
	return func(c *Controller) { c.matcher = m }
}

// WithLogger sets the logger used for non-fatal problems.
func WithLogger(l *log.Logger) Option {
	return func(c *Controller) { c.log = l }
}

// Controller is the tag input state machine.
type Controller struct {
	settings Settings
	pool     Pool
	surface  Surface
	matcher  suggest.IMatcher
	hub      *events.Hub
	tags     *tags.Collection
	banner   *errorBanner
	log      *log.Logger

	state       State
	suggestions []tags.Candidate
}

// New validates settings and builds a controller. Initial values are resolved
// against the pool and added in order; values that cannot be resolved or added
// are skipped with a warning.
func New(settings Settings, pool Pool, surface Surface, opts ...Option) (*Controller, error) {
	if pool == nil {
		return nil, fmt.Errorf("%w: pool is required", ErrInvalidConfiguration)
	}
	if surface == nil {
		return nil, fmt.Errorf("%w: surface is required", ErrInvalidConfiguration)
	}
	if err := settings.Validate(); err != nil {
		return nil, err
	}
	settings = settings.withDefaults()

	c := &Controller{
		settings: settings,
		pool:     pool,
		surface:  surface,
		matcher:  suggest.NewMatcher(suggest.Options{AllowDuplicates: settings.AllowDuplicates}),
		hub:      events.NewHub(),
		tags:     tags.NewCollection(settings.MaxTags, settings.AllowDuplicates),
		log:      log.Default(),
		state:    Idle,
	}
	c.banner = &errorBanner{schedule: realScheduler, dismiss: surface.DismissError}
	for _, opt := range opts {
		opt(c)
	}

	c.seed(settings.InitialValues)
	c.surface.RenderTags(c.tags.List())
	return c, nil
}

// seed adds the initial values and leaves the pool selection equal to them:
// options selected beforehand that did not become tags are unselected.
func (c *Controller) seed(values []string) {
	seeded := make(map[tags.Handle]bool, len(values))
	defer func() {
		for _, cand := range c.pool.Candidates() {
			if !seeded[cand.Source] {
				c.mirror(cand.Source, false)
			}
		}
	}()
	for _, v := range values {
		cand, ok := c.resolveValue(v)
		if !ok {
			c.log.Warn("Initial value not in pool, skipping", "value", v)
			continue
		}
		if _, err := c.tags.Add(cand); err != nil {
			c.log.Warn("Initial value rejected", "value", v, "err", err)
			continue
		}
		seeded[cand.Source] = true
		c.mirror(cand.Source, true)
	}
}

// On registers cb for the named event kind, replacing any earlier one.
func (c *Controller) On(kind events.Kind, cb events.Callback) error {
	return c.hub.On(kind, cb)
}

// Tags returns the current tags in insertion order.
func (c *Controller) Tags() []tags.Tag { return c.tags.List() }

// State returns the current suggestion state.
func (c *Controller) State() State { return c.state }

// Suggestions returns the suggestions currently shown.
func (c *Controller) Suggestions() []tags.Candidate {
	return append([]tags.Candidate(nil), c.suggestions...)
}

// Settings returns the effective settings.
func (c *Controller) Settings() Settings { return c.settings }

// Placeholder returns the input placeholder.
func (c *Controller) Placeholder() string { return c.settings.Placeholder }

// InfoMessage describes the tag capacity.
func (c *Controller) InfoMessage() string {
	return c.settings.InfoMessage(c.settings.MaxTags)
}

// Remaining returns how many more tags fit, or -1 when unbounded.
func (c *Controller) Remaining() int { return c.tags.Remaining() }

// TextChanged handles every edit of the input text.
func (c *Controller) TextChanged(text string) {
	c.hub.Emit(events.Event{Kind: events.KindInputChange, Text: text})

	if text == "" {
		c.idle()
		return
	}
	found := c.matcher.Match(text, c.pool.Candidates(), c.tags.List())
	if len(found) == 0 {
		c.idle()
		return
	}
	c.state = Suggesting
	c.suggestions = found
	c.surface.RenderSuggestions(found)
}

// SuggestionChosen adds the picked candidate and closes the suggestion list.
func (c *Controller) SuggestionChosen(cand tags.Candidate) error {
	c.idle()
	return c.AddTag(cand)
}

// SubmitText adds a tag from free text. An exact label match in the pool
// wins, otherwise a single visible suggestion is taken.
func (c *Controller) SubmitText(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return c.fail(&tags.TagError{MaxTags: c.settings.MaxTags, Err: tags.ErrEmptyTag})
	}
	cand, ok := c.resolveLabel(text)
	if !ok && c.state == Suggesting && len(c.suggestions) == 1 {
		cand, ok = c.suggestions[0], true
	}
	c.idle()
	if !ok {
		return c.fail(&tags.TagError{Value: text, MaxTags: c.settings.MaxTags, Err: tags.ErrUnknownTag})
	}
	return c.AddTag(cand)
}

// TagRemoveRequested removes t; the suggestion state is left alone.
func (c *Controller) TagRemoveRequested(t tags.Tag) {
	c.RemoveTag(t)
}

// DownArrow asks the surface to move focus into the suggestion list and
// reports whether there was anything to navigate to.
func (c *Controller) DownArrow() bool {
	if c.state != Suggesting || len(c.suggestions) == 0 {
		return false
	}
	c.surface.FocusSuggestions()
	return true
}

// AddTag adds cand. Rejections are shown to the user, sent to the error
// callback and returned; they leave the tags untouched.
func (c *Controller) AddTag(cand tags.Candidate) error {
	tag, err := c.tags.Add(cand)
	if err != nil {
		return c.fail(err)
	}
	c.log.Debug("Tag added", "label", tag.Label, "value", tag.Value)

	c.mirror(tag.Source, true)
	c.surface.ClearInputText()
	all := c.tags.List()
	c.surface.RenderTags(all)
	c.hub.Added(tag, all)
	return nil
}

// RemoveTag removes t. Removing a tag that is not present does nothing.
func (c *Controller) RemoveTag(t tags.Tag) {
	removed, ok := c.tags.Remove(t)
	if !ok {
		return
	}
	c.log.Debug("Tag removed", "label", removed.Label, "value", removed.Value)

	if !c.tags.Contains(removed.Value) {
		c.mirror(removed.Source, false)
	}
	all := c.tags.List()
	c.surface.RenderTags(all)
	c.hub.Removed(removed, all)
}

// Close cancels a pending error dismissal.
func (c *Controller) Close() {
	c.banner.stop()
}

func (c *Controller) idle() {
	c.state = Idle
	c.suggestions = nil
	c.surface.HideSuggestions()
}

func (c *Controller) fail(err error) error {
	var tagErr *tags.TagError
	if !errors.As(err, &tagErr) {
		return err
	}
	msg := tagErr.Error()
	c.log.Debug("Tag rejected", "msg", msg)

	c.banner.show(c.settings.ErrorDisplay)
	c.surface.ShowError(msg, c.settings.ErrorDisplay)
	c.hub.Emit(events.Event{Kind: events.KindError, Message: msg})
	return err
}

func (c *Controller) mirror(h tags.Handle, selected bool) {
	if h == tags.NoHandle {
		return
	}
	if err := c.pool.SetSelected(h, selected); err != nil {
		c.log.Debug("Could not mirror selection", "handle", h, "err", err)
	}
}

func (c *Controller) resolveValue(value string) (tags.Candidate, bool) {
	if r, ok := c.pool.(resolver); ok {
		return r.LookupValue(value)
	}
	for _, cand := range c.pool.Candidates() {
		if cand.Value == value {
			return cand, true
		}
	}
	return tags.Candidate{}, false
}

func (c *Controller) resolveLabel(label string) (tags.Candidate, bool) {
	if r, ok := c.pool.(resolver); ok {
		return r.LookupLabel(label)
	}
	for _, cand := range c.pool.Candidates() {
		if strings.EqualFold(cand.Label, label) {
			return cand, true
		}
	}
	return tags.Candidate{}, false
}
