// Package filter holds the shared cross-filter state and its evaluator.
package filter

import (
	"fmt"
	"strings"

	"github.com/verte-zerg/exodash/internal/planet"
)

// Range is an inclusive integer interval. Lo == Hi means no constraint.
type Range struct {
	Lo int `json:"lo"`
	Hi int `json:"hi"`
}

// Unbounded reports whether the range is the "not yet brushed" sentinel.
func (r Range) Unbounded() bool {
	return r.Lo == r.Hi
}

// Entry constrains one attribute, either to a set of values or to a range.
type Entry struct {
	Attr   planet.Attribute `json:"attr"`
	Values []planet.Value   `json:"values,omitempty"`
	Range  *Range           `json:"range,omitempty"`
}

// IsRange reports whether the entry is a range constraint.
func (e Entry) IsRange() bool {
	return e.Range != nil
}

// Active reports whether the entry can exclude any record.
func (e Entry) Active() bool {
	if e.IsRange() {
		return !e.Range.Unbounded()
	}
	return len(e.Values) > 0
}

func (e Entry) clone() Entry {
	out := Entry{Attr: e.Attr}
	if e.Range != nil {
		r := *e.Range
		out.Range = &r
	}
	if len(e.Values) > 0 {
		out.Values = append([]planet.Value(nil), e.Values...)
	}
	return out
}

func (e Entry) indexOf(v planet.Value) int {
	for i, have := range e.Values {
		if have.Equal(v) {
			return i
		}
	}
	return -1
}

func (e Entry) String() string {
	if e.IsRange() {
		return fmt.Sprintf("%s=%d..%d", e.Attr, e.Range.Lo, e.Range.Hi)
	}
	keys := make([]string, len(e.Values))
	for i, v := range e.Values {
		keys[i] = v.Key()
	}
	return fmt.Sprintf("%s=%s", e.Attr, strings.Join(keys, ","))
}

// Snapshot is a detached copy of the store's entries.
type Snapshot []Entry

// Store is the ordered list of active filter entries, at most one per attribute.
// All mutation goes through its methods.
type Store struct {
	entries []Entry
}

// NewStore returns a store in its initial shape.
func NewStore() *Store {
	s := &Store{}
	s.Clear()
	return s
}

// Clear resets the store to its initial shape: empty planet-name and
// discovery-year entries. Callers must re-evaluate afterward.
func (s *Store) Clear() {
	s.entries = []Entry{
		{Attr: planet.AttrPlanetName},
		{Attr: planet.AttrDiscoveryYear},
	}
}

func (s *Store) find(attr planet.Attribute) int {
	for i, e := range s.entries {
		if e.Attr == attr {
			return i
		}
	}
	return -1
}

func (s *Store) remove(idx int) {
	s.entries = append(s.entries[:idx], s.entries[idx+1:]...)
}

// ToggleDiscrete adds v to attr's value set, or removes it when present.
// Removing the last value deletes the entry.
func (s *Store) ToggleDiscrete(attr planet.Attribute, v planet.Value) {
	planet.MustKnow(attr)
	idx := s.find(attr)
	if idx < 0 {
		s.entries = append(s.entries, Entry{Attr: attr, Values: []planet.Value{v}})
		return
	}
	e := s.entries[idx]
	if e.IsRange() {
		s.entries[idx] = Entry{Attr: attr, Values: []planet.Value{v}}
		return
	}
	if at := e.indexOf(v); at >= 0 {
		e.Values = append(e.Values[:at:at], e.Values[at+1:]...)
		if len(e.Values) == 0 {
			s.remove(idx)
			return
		}
		s.entries[idx] = e
		return
	}
	e.Values = append(e.Values, v)
	s.entries[idx] = e
}

// ReplaceRange overwrites or creates attr's entry with [lo, hi].
func (s *Store) ReplaceRange(attr planet.Attribute, lo, hi int) {
	planet.MustKnow(attr)
	e := Entry{Attr: attr, Range: &Range{Lo: lo, Hi: hi}}
	if idx := s.find(attr); idx >= 0 {
		s.entries[idx] = e
		return
	}
	s.entries = append(s.entries, e)
}

// ReplaceDiscrete overwrites attr's value set. An empty set deletes the entry.
func (s *Store) ReplaceDiscrete(attr planet.Attribute, values []planet.Value) {
	planet.MustKnow(attr)
	idx := s.find(attr)
	if len(values) == 0 {
		if idx >= 0 {
			s.remove(idx)
		}
		return
	}
	e := Entry{Attr: attr}
	for _, v := range values {
		if e.indexOf(v) < 0 {
			e.Values = append(e.Values, v)
		}
	}
	if idx >= 0 {
		s.entries[idx] = e
		return
	}
	s.entries = append(s.entries, e)
}

// Get returns a copy of attr's entry.
func (s *Store) Get(attr planet.Attribute) (Entry, bool) {
	idx := s.find(attr)
	if idx < 0 {
		return Entry{}, false
	}
	return s.entries[idx].clone(), true
}

// Contains reports whether v is in attr's discrete value set.
func (s *Store) Contains(attr planet.Attribute, v planet.Value) bool {
	idx := s.find(attr)
	if idx < 0 {
		return false
	}
	return s.entries[idx].indexOf(v) >= 0
}

// Entries returns a copy of all entries in store order.
func (s *Store) Entries() []Entry {
	out := make([]Entry, len(s.entries))
	for i, e := range s.entries {
		out[i] = e.clone()
	}
	return out
}

// Snapshot captures the current entries.
func (s *Store) Snapshot() Snapshot {
	return Snapshot(s.Entries())
}

// Restore replaces the store's entries with snap. Entries naming unknown
// attributes, duplicating an attribute, mixing a range with values or
// repeating a value are rejected.
func (s *Store) Restore(snap Snapshot) error {
	seen := make(map[planet.Attribute]struct{}, len(snap))
	entries := make([]Entry, 0, len(snap))
	for _, e := range snap {
		if !planet.Known(e.Attr) {
			return fmt.Errorf("unknown filter attribute %q", e.Attr)
		}
		if _, dup := seen[e.Attr]; dup {
			return fmt.Errorf("duplicate filter attribute %q", e.Attr)
		}
		if e.Range != nil && len(e.Values) > 0 {
			return fmt.Errorf("filter %q has both a range and values", e.Attr)
		}
		for i, v := range e.Values {
			if e.indexOf(v) != i {
				return fmt.Errorf("filter %q repeats value %s", e.Attr, v.Key())
			}
		}
		seen[e.Attr] = struct{}{}
		entries = append(entries, e.clone())
	}
	s.entries = entries
	return nil
}

// String renders the active entries for display, or "none".
func (s *Store) String() string {
	parts := make([]string, 0, len(s.entries))
	for _, e := range s.entries {
		if e.Active() {
			parts = append(parts, e.String())
		}
	}
	if len(parts) == 0 {
		return "none"
	}
	return strings.Join(parts, "  ")
}
