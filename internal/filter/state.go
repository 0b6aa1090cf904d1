package filter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/erazemk/roomboard/internal/prefs"
)

// State is the user's value-filter, search-property and sort-mode selection.
//
// Sets are bitmasks indexed by catalog position, so a State is a plain
// comparable value. The search-property set is never empty.
type State struct {
	values uint16
	search uint8
	sort   SortMode
}

// DefaultState returns {no value filters, search in title, sort by title}.
func DefaultState() State {
	return State{search: 1 << SearchTitle.index(), sort: SortTitle}
}

// ValueFilters returns the selected value filters in declaration order.
func (s State) ValueFilters() []ValueFilter {
	out := make([]ValueFilter, 0, len(valueBuckets))
	for i, b := range valueBuckets {
		if s.values&(1<<i) != 0 {
			out = append(out, b.filter)
		}
	}
	return out
}

// SearchProperties returns the selected search properties in declaration
// order.
func (s State) SearchProperties() []SearchProperty {
	out := make([]SearchProperty, 0, len(searchProperties))
	for i, p := range searchProperties {
		if s.search&(1<<i) != 0 {
			out = append(out, p)
		}
	}
	return out
}

// SortMode returns the selected sort mode.
func (s State) SortMode() SortMode {
	return s.sort
}

// HasValueFilter reports whether f is selected.
func (s State) HasValueFilter(f ValueFilter) bool {
	i := f.index()
	return i >= 0 && s.values&(1<<i) != 0
}

// HasSearchProperty reports whether p is selected.
func (s State) HasSearchProperty(p SearchProperty) bool {
	i := p.index()
	return i >= 0 && s.search&(1<<i) != 0
}

// SearchPropertyLocked reports whether p is the only selected search
// property. Its toggle must be shown disabled.
func (s State) SearchPropertyLocked(p SearchProperty) bool {
	i := p.index()
	return i >= 0 && s.search == 1<<i
}

// ToggleSearchProperty adds or removes p. Removing the last selected
// property is a no-op.
func (s *State) ToggleSearchProperty(p SearchProperty) {
	i := p.index()
	if i < 0 {
		return
	}
	next := s.search ^ (1 << i)
	if next == 0 {
		return
	}
	s.search = next
}

// ToggleValueFilter adds or removes f. The set may become empty, which
// disables value filtering.
func (s *State) ToggleValueFilter(f ValueFilter) {
	if i := f.index(); i >= 0 {
		s.values ^= 1 << i
	}
}

// SetSortMode replaces the sort mode. Unknown modes are ignored.
func (s *State) SetSortMode(m SortMode) {
	if _, ok := ParseSortMode(string(m)); ok {
		s.sort = m
	}
}

// RestoreDefaults resets s to DefaultState.
func (s *State) RestoreDefaults() {
	*s = DefaultState()
}

type stateJSON struct {
	ValueFilters     []ValueFilter    `json:"value_filters"`
	SearchProperties []SearchProperty `json:"search_properties"`
	SortMode         SortMode         `json:"sort_mode"`
}

// MarshalJSON encodes the selection as ordered identifier lists.
func (s State) MarshalJSON() ([]byte, error) {
	return json.Marshal(stateJSON{
		ValueFilters:     s.ValueFilters(),
		SearchProperties: s.SearchProperties(),
		SortMode:         s.sort,
	})
}

// Save writes the selection to the preference store as raw identifiers.
func (s State) Save(ctx context.Context, store prefs.Store) error {
	values := make([]string, 0, len(valueBuckets))
	for _, f := range s.ValueFilters() {
		values = append(values, string(f))
	}
	search := make([]string, 0, len(searchProperties))
	for _, p := range s.SearchProperties() {
		search = append(search, string(p))
	}

	if err := store.SetStrings(ctx, prefs.KeySavedValueFilters, values); err != nil {
		return fmt.Errorf("saving value filters: %w", err)
	}
	if err := store.SetStrings(ctx, prefs.KeySavedSearchProperties, search); err != nil {
		return fmt.Errorf("saving search properties: %w", err)
	}
	if err := store.SetString(ctx, prefs.KeySavedSortMode, string(s.sort)); err != nil {
		return fmt.Errorf("saving sort mode: %w", err)
	}
	return nil
}

// Load reads a saved selection. Unknown identifiers are dropped; an empty
// search-property list falls back to title and a missing or unknown sort mode
// falls back to title.
func Load(ctx context.Context, store prefs.Store) (State, error) {
	values, _, err := store.Strings(ctx, prefs.KeySavedValueFilters)
	if err != nil {
		return DefaultState(), fmt.Errorf("loading value filters: %w", err)
	}
	search, _, err := store.Strings(ctx, prefs.KeySavedSearchProperties)
	if err != nil {
		return DefaultState(), fmt.Errorf("loading search properties: %w", err)
	}
	sort, _, err := store.String(ctx, prefs.KeySavedSortMode)
	if err != nil {
		return DefaultState(), fmt.Errorf("loading sort mode: %w", err)
	}
	return fromIdentifiers(values, search, sort), nil
}

// UnmarshalJSON decodes the MarshalJSON form with the same fallbacks as Load.
func (s *State) UnmarshalJSON(data []byte) error {
	var raw struct {
		ValueFilters     []string `json:"value_filters"`
		SearchProperties []string `json:"search_properties"`
		SortMode         string   `json:"sort_mode"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*s = fromIdentifiers(raw.ValueFilters, raw.SearchProperties, raw.SortMode)
	return nil
}

func fromIdentifiers(values, search []string, sort string) State {
	s := DefaultState()
	for _, raw := range values {
		if f, ok := ParseValueFilter(raw); ok {
			s.values |= 1 << f.index()
		}
	}

	var set uint8
	for _, raw := range search {
		if p, ok := ParseSearchProperty(raw); ok {
			set |= 1 << p.index()
		}
	}
	if set != 0 {
		s.search = set
	}

	if m, ok := ParseSortMode(sort); ok {
		s.sort = m
	}
	return s
}
