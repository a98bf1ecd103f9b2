package cli

import (
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/bastiangx/tagserve/pkg/tags"
	"github.com/charmbracelet/lipgloss"
	"github.com/fatih/color"
)

// Terminal is the control.Surface of the interactive prompt. It prints tag
// badges, suggestion lists and error banners to w.
type Terminal struct {
	w     io.Writer
	badge lipgloss.Style
	hint  lipgloss.Style
	red   *color.Color

	mu     sync.Mutex
	errMsg string
	focus  bool
	muted  bool
}

// NewTerminal returns a Terminal writing to w.
func NewTerminal(w io.Writer) *Terminal {
	r := lipgloss.NewRenderer(w)
	return &Terminal{
		w: w,
		badge: r.NewStyle().
			Bold(true).
			Padding(0, 1).
			Foreground(lipgloss.AdaptiveColor{Light: "#faf4ed", Dark: "#191724"}).
			Background(lipgloss.AdaptiveColor{Light: "#286983", Dark: "#9ccfd8"}),
		hint: r.NewStyle().Italic(true).
			Foreground(lipgloss.AdaptiveColor{Light: "#797593", Dark: "#908caa"}),
		red: color.New(color.FgRed, color.Bold),
	}
}

func (t *Terminal) RenderTags(list []tags.Tag) {
	if len(list) == 0 {
		fmt.Fprintln(t.w, t.hint.Render("no tags yet"))
		return
	}
	badges := make([]string, len(list))
	for i, tag := range list {
		badges[i] = t.badge.Render(tag.Label + " ×")
	}
	fmt.Fprintln(t.w, strings.Join(badges, " "))
}

func (t *Terminal) RenderSuggestions(list []tags.Candidate) {
	t.mu.Lock()
	muted := t.muted
	t.mu.Unlock()
	if muted {
		return
	}
	for i, c := range list {
		fmt.Fprintf(t.w, "%2d. %s\n", i+1, c.Label)
	}
}

func (t *Terminal) HideSuggestions() {}

func (t *Terminal) ShowError(msg string, d time.Duration) {
	t.mu.Lock()
	t.errMsg = msg
	t.mu.Unlock()
	t.red.Fprintf(t.w, "✗ %s\n", msg)
}

// DismissError forgets the banner; it may run on a timer goroutine.
func (t *Terminal) DismissError() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.errMsg = ""
}

// ClearInputText is a no-op: every prompt starts with an empty line.
func (t *Terminal) ClearInputText() {}

func (t *Terminal) FocusSuggestions() {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.focus = true
}

// ActiveError returns the banner that has not been dismissed yet, if any.
func (t *Terminal) ActiveError() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.errMsg
}

// mute silences suggestion lists while the prompt draws its own.
func (t *Terminal) mute(on bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.muted = on
}

// takeFocus reports and resets a pending focus request.
func (t *Terminal) takeFocus() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	f := t.focus
	t.focus = false
	return f
}

// Hint prints a dimmed line.
func (t *Terminal) Hint(format string, args ...interface{}) {
	fmt.Fprintln(t.w, t.hint.Render(fmt.Sprintf(format, args...)))
}
