/*
Package pool holds the options a tag input picks from.

A Memory pool plays the role of the multi-select element behind the tag
input: it enumerates candidates in a stable order and carries a selected
flag per option that the controller flips as tags come and go. Options can
be appended at any time; handles stay valid because options are never
removed or reordered.

Lookups by value and by label go through patricia tries so resolving
initial values or free text does not scan the whole pool.
*/
package pool

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/bastiangx/tagserve/pkg/tags"
	"github.com/charmbracelet/log"
	"github.com/tchap/go-patricia/v2/patricia"
)

// ErrInvalidHandle is returned for a handle the pool did not issue.
var ErrInvalidHandle = errors.New("invalid pool handle")

// Option is one entry of the pool.
type Option struct {
	Label    string
	Value    string
	Selected bool
}

// Memory is an in-memory pool safe for concurrent use.
type Memory struct {
	options []Option
	byValue *patricia.Trie
	byLabel *patricia.Trie
	mu      sync.RWMutex
}

// NewMemory returns a pool seeded with opts, in order.
func NewMemory(opts ...Option) *Memory {
	m := &Memory{
		byValue: patricia.NewTrie(),
		byLabel: patricia.NewTrie(),
	}
	for _, o := range opts {
		m.add(o)
	}
	return m
}

// FromLabels builds a pool where every value equals its label.
func FromLabels(labels ...string) *Memory {
	opts := make([]Option, len(labels))
	for i, l := range labels {
		opts[i] = Option{Label: l, Value: l}
	}
	return NewMemory(opts...)
}

// Add appends an option and returns its handle. An empty value falls back to the label.
func (m *Memory) Add(o Option) tags.Handle {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.add(o)
}

func (m *Memory) add(o Option) tags.Handle {
	if o.Value == "" {
		o.Value = o.Label
	}
	h := tags.Handle(len(m.options))
	m.options = append(m.options, o)

	// first option wins for both indexes
	if o.Value != "" {
		m.byValue.Insert(patricia.Prefix(o.Value), h)
	}
	if o.Label != "" {
		m.byLabel.Insert(patricia.Prefix(strings.ToLower(o.Label)), h)
	}
	return h
}

// Candidates returns every option as a candidate, in pool order.
func (m *Memory) Candidates() []tags.Candidate {
	m.mu.RLock()
	defer m.mu.RUnlock()

	out := make([]tags.Candidate, len(m.options))
	for i, o := range m.options {
		out[i] = tags.Candidate{Label: o.Label, Value: o.Value, Source: tags.Handle(i)}
	}
	return out
}

// SetSelected flips the selected flag of the option behind h.
func (m *Memory) SetSelected(h tags.Handle, selected bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if h < 0 || int(h) >= len(m.options) {
		return fmt.Errorf("%w: %d", ErrInvalidHandle, h)
	}
	m.options[h].Selected = selected
	log.Debugf("pool: option %d (%s) selected=%v", h, m.options[h].Value, selected)
	return nil
}

// IsSelected reports the selected flag of the option behind h.
func (m *Memory) IsSelected(h tags.Handle) bool {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if h < 0 || int(h) >= len(m.options) {
		return false
	}
	return m.options[h].Selected
}

// Selected returns the selected options as candidates, in pool order.
func (m *Memory) Selected() []tags.Candidate {
	m.mu.RLock()
	defer m.mu.RUnlock()

	var out []tags.Candidate
	for i, o := range m.options {
		if o.Selected {
			out = append(out, tags.Candidate{Label: o.Label, Value: o.Value, Source: tags.Handle(i)})
		}
	}
	return out
}

// LookupValue finds the first option with exactly this value.
func (m *Memory) LookupValue(value string) (tags.Candidate, bool) {
	return m.lookup(m.byValue, value)
}

// LookupLabel finds the first option whose label equals label, ignoring case.
func (m *Memory) LookupLabel(label string) (tags.Candidate, bool) {
	return m.lookup(m.byLabel, strings.ToLower(label))
}

func (m *Memory) lookup(index *patricia.Trie, key string) (tags.Candidate, bool) {
	if key == "" {
		return tags.Candidate{}, false
	}
	m.mu.RLock()
	defer m.mu.RUnlock()

	item := index.Get(patricia.Prefix(key))
	if item == nil {
		return tags.Candidate{}, false
	}
	h, ok := item.(tags.Handle)
	if !ok {
		log.Errorf("Unknown item type: %T for key %s", item, key)
		return tags.Candidate{}, false
	}
	o := m.options[h]
	return tags.Candidate{Label: o.Label, Value: o.Value, Source: h}, true
}

// Len returns the number of options.
func (m *Memory) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.options)
}

// Stats returns basic counters about the pool.
func (m *Memory) Stats() map[string]int {
	m.mu.RLock()
	defer m.mu.RUnlock()

	selected := 0
	for _, o := range m.options {
		if o.Selected {
			selected++
		}
	}
	return map[string]int{
		"options":  len(m.options),
		"selected": selected,
	}
}
