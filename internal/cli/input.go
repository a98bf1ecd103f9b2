// Package cli runs a tag input in the terminal, for trying out pools and settings by hand.
package cli

import (
	"errors"
	"fmt"
	"strings"

	"github.com/bastiangx/tagserve/pkg/control"
	"github.com/bastiangx/tagserve/pkg/events"
	"github.com/bastiangx/tagserve/pkg/tags"
	"github.com/charmbracelet/log"
)

// Commands typed at the prompt instead of a tag.
const (
	cmdRemove = ":rm"
	cmdTags   = ":tags"
	cmdQuit   = ":q"
)

// InputHandler reads lines from the prompter and feeds them to a controller.
type InputHandler struct {
	ctrl     *control.Controller
	term     *Terminal
	prompter Prompter
	pageSize int
	log      *log.Logger
}

// NewInputHandler wires a controller to the terminal. The controller must
// have been built with term as its surface.
func NewInputHandler(ctrl *control.Controller, term *Terminal, prompter Prompter, pageSize int, logger *log.Logger) *InputHandler {
	if logger == nil {
		logger = log.Default()
	}
	h := &InputHandler{
		ctrl:     ctrl,
		term:     term,
		prompter: prompter,
		pageSize: pageSize,
		log:      logger,
	}
	ctrl.On(events.KindAdd, func(ev events.Event) {
		h.log.Info("added", "tag", ev.Tag.Label)
	})
	ctrl.On(events.KindRemove, func(ev events.Event) {
		h.log.Info("removed", "tag", ev.Tag.Label)
	})
	ctrl.On(events.KindTagChange, func(ev events.Event) {
		h.log.Debug("tags changed", "count", len(ev.Tags))
	})
	ctrl.On(events.KindError, func(ev events.Event) {
		h.log.Debug("rejected", "msg", ev.Message)
	})
	return h
}

// Start runs the prompt loop until the user quits or interrupts.
func (h *InputHandler) Start() error {
	h.term.Hint("%s. Tab completes, %s removes a tag, %s lists tags, %s quits.",
		h.ctrl.InfoMessage(), cmdRemove, cmdTags, cmdQuit)

	for {
		line, err := h.prompter.Input(h.ctrl.Placeholder(), h.ctrl.InfoMessage(), h.suggest)
		if errors.Is(err, ErrAborted) {
			return nil
		}
		if err != nil {
			return err
		}
		quit, err := h.handleLine(strings.TrimSpace(line))
		if err != nil {
			return err
		}
		if quit {
			return nil
		}
	}
}

// suggest is the completion callback of the input prompt.
func (h *InputHandler) suggest(text string) []string {
	h.term.mute(true)
	defer h.term.mute(false)
	h.ctrl.TextChanged(text)
	found := h.ctrl.Suggestions()
	out := make([]string, len(found))
	for i, c := range found {
		out[i] = c.Label
	}
	return out
}

// handleLine processes one submitted line and reports whether to quit.
func (h *InputHandler) handleLine(line string) (bool, error) {
	switch line {
	case cmdQuit:
		return true, nil
	case cmdTags:
		h.term.RenderTags(h.ctrl.Tags())
		if rem := h.ctrl.Remaining(); rem >= 0 {
			h.term.Hint("%d left", rem)
		}
		return false, nil
	case cmdRemove:
		return false, h.pickRemoval()
	}

	h.ctrl.TextChanged(line)
	if line != "" && h.ambiguous(line) && h.ctrl.DownArrow() && h.term.takeFocus() {
		return false, h.pickSuggestion()
	}
	// rejections are already shown by the surface
	if err := h.ctrl.SubmitText(line); err != nil {
		h.log.Debug("submit failed", "text", line, "err", err)
	}
	return false, nil
}

// ambiguous reports whether line matches several suggestions and none exactly.
func (h *InputHandler) ambiguous(line string) bool {
	found := h.ctrl.Suggestions()
	if len(found) < 2 {
		return false
	}
	for _, c := range found {
		if strings.EqualFold(c.Label, line) {
			return false
		}
	}
	return true
}

func (h *InputHandler) pickSuggestion() error {
	found := h.ctrl.Suggestions()
	labels := make([]string, len(found))
	for i, c := range found {
		labels[i] = c.Label
	}
	idx, err := h.prompter.Select("Pick a tag", labels, h.pageSize)
	if errors.Is(err, ErrAborted) {
		h.ctrl.TextChanged("")
		return nil
	}
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(found) {
		return fmt.Errorf("selection %d out of range", idx)
	}
	if err := h.ctrl.SuggestionChosen(found[idx]); err != nil {
		h.log.Debug("pick failed", "label", found[idx].Label, "err", err)
	}
	return nil
}

func (h *InputHandler) pickRemoval() error {
	current := h.ctrl.Tags()
	if len(current) == 0 {
		h.term.Hint("nothing to remove")
		return nil
	}
	idx, err := h.prompter.Select("Remove which tag?", tags.Labels(current), h.pageSize)
	if errors.Is(err, ErrAborted) {
		return nil
	}
	if err != nil {
		return err
	}
	if idx < 0 || idx >= len(current) {
		return fmt.Errorf("selection %d out of range", idx)
	}
	h.ctrl.TagRemoveRequested(current[idx])
	return nil
}
