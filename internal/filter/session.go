package filter

import (
	"context"
	"log/slog"
	"sync"

	"github.com/erazemk/roomboard/internal/prefs"
)

// Session holds the live selection for the running process. Every edit is
// written back to the preference store.
type Session struct {
	mu    sync.Mutex
	state State
	prefs prefs.Store
}

// NewSession restores the saved selection when the user opted into
// preserving filters, and starts from defaults otherwise. Store failures are
// logged and fall back to defaults.
func NewSession(ctx context.Context, store prefs.Store) *Session {
	s := &Session{state: DefaultState(), prefs: store}

	preserve, err := store.Bool(ctx, prefs.KeyPreserveFilters)
	if err != nil {
		slog.Warn("failed to read preserve-filters preference", "error", err)
		return s
	}
	if !preserve {
		return s
	}

	state, err := Load(ctx, store)
	if err != nil {
		slog.Warn("failed to restore saved filters", "error", err)
		return s
	}
	s.state = state
	return s
}

// State returns the current selection.
func (s *Session) State() State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// ToggleSearchProperty toggles p and returns the new selection and whether
// it changed. Toggling off the only selected property changes nothing.
func (s *Session) ToggleSearchProperty(ctx context.Context, p SearchProperty) (State, bool) {
	return s.update(ctx, func(st *State) { st.ToggleSearchProperty(p) })
}

// ToggleValueFilter toggles f and returns the new selection.
func (s *Session) ToggleValueFilter(ctx context.Context, f ValueFilter) State {
	st, _ := s.update(ctx, func(st *State) { st.ToggleValueFilter(f) })
	return st
}

// SetSortMode sets the sort mode and returns the new selection.
func (s *Session) SetSortMode(ctx context.Context, m SortMode) State {
	st, _ := s.update(ctx, func(st *State) { st.SetSortMode(m) })
	return st
}

// RestoreDefaults resets the selection and returns it.
func (s *Session) RestoreDefaults(ctx context.Context) State {
	st, _ := s.update(ctx, func(st *State) { st.RestoreDefaults() })
	return st
}

// update applies fn and saves the result under one lock, reporting whether
// fn changed the state.
func (s *Session) update(ctx context.Context, fn func(*State)) (State, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	before := s.state
	fn(&s.state)
	if err := s.state.Save(ctx, s.prefs); err != nil {
		slog.Error("failed to save filters", "error", err)
	}
	return s.state, s.state != before
}
