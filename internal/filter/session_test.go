package filter

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/roomboard/internal/prefs"
)

func TestSessionStartsFromDefaultsWithoutPreserve(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemory()

	saved := DefaultState()
	saved.SetSortMode(SortDate)
	require.NoError(t, saved.Save(ctx, store))

	s := NewSession(ctx, store)
	assert.Equal(t, DefaultState(), s.State())
}

func TestSessionRestoresWhenPreserved(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemory()
	require.NoError(t, store.SetBool(ctx, prefs.KeyPreserveFilters, true))

	saved := DefaultState()
	saved.SetSortMode(SortDate)
	saved.ToggleValueFilter(ValueF5)
	require.NoError(t, saved.Save(ctx, store))

	s := NewSession(ctx, store)
	assert.Equal(t, saved, s.State())
}

func TestSessionSavesEveryEdit(t *testing.T) {
	ctx := context.Background()
	store := prefs.NewMemory()
	s := NewSession(ctx, store)

	st := s.ToggleValueFilter(ctx, ValueF1)
	assert.Equal(t, []ValueFilter{ValueF1}, st.ValueFilters())

	st, changed := s.ToggleSearchProperty(ctx, SearchTitle)
	assert.False(t, changed, "sole search property stays selected")
	assert.Equal(t, []SearchProperty{SearchTitle}, st.SearchProperties())

	st, changed = s.ToggleSearchProperty(ctx, SearchNotes)
	assert.True(t, changed)
	assert.Equal(t, []SearchProperty{SearchTitle, SearchNotes}, st.SearchProperties())

	s.SetSortMode(ctx, SortRoom)

	loaded, err := Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, s.State(), loaded)

	s.RestoreDefaults(ctx)
	loaded, err = Load(ctx, store)
	require.NoError(t, err)
	assert.Equal(t, DefaultState(), loaded)
}

type failingStore struct {
	*prefs.Memory
}

func (failingStore) Bool(context.Context, string) (bool, error) {
	return false, errors.New("disk on fire")
}

func (failingStore) SetStrings(context.Context, string, []string) error {
	return errors.New("disk on fire")
}

func TestSessionKeepsStateWhenStoreFails(t *testing.T) {
	ctx := context.Background()
	s := NewSession(ctx, failingStore{prefs.NewMemory()})
	assert.Equal(t, DefaultState(), s.State())

	st := s.SetSortMode(ctx, SortDate)
	assert.Equal(t, SortDate, st.SortMode())
	assert.Equal(t, SortDate, s.State().SortMode())
}

func TestSessionReportsEveryConcurrentToggle(t *testing.T) {
	ctx := context.Background()
	s := NewSession(ctx, prefs.NewMemory())

	const toggles = 51
	var (
		wg        sync.WaitGroup
		mu        sync.Mutex
		unchanged int
	)
	for range toggles {
		wg.Add(1)
		go func() {
			defer wg.Done()
			if _, changed := s.ToggleSearchProperty(ctx, SearchNotes); !changed {
				mu.Lock()
				unchanged++
				mu.Unlock()
			}
		}()
	}
	wg.Wait()

	assert.Zero(t, unchanged, "toggling notes next to title always changes the selection")
	assert.Equal(t, []SearchProperty{SearchTitle, SearchNotes}, s.State().SearchProperties())
}
