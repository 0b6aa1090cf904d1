package store

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erazemk/roomboard/internal/db"
	"github.com/erazemk/roomboard/internal/filter"
	"github.com/erazemk/roomboard/internal/prefs"
)

func TestPreferencesBool(t *testing.T) {
	ctx := context.Background()
	p := &Preferences{DB: db.NewTestDB(t)}

	v, err := p.Bool(ctx, prefs.KeyPreserveFilters)
	require.NoError(t, err)
	assert.False(t, v)

	require.NoError(t, p.SetBool(ctx, prefs.KeyPreserveFilters, true))
	v, err = p.Bool(ctx, prefs.KeyPreserveFilters)
	require.NoError(t, err)
	assert.True(t, v)
}

func TestPreferencesStrings(t *testing.T) {
	ctx := context.Background()
	p := &Preferences{DB: db.NewTestDB(t)}

	_, ok, err := p.Strings(ctx, prefs.KeySavedValueFilters)
	require.NoError(t, err)
	assert.False(t, ok)

	require.NoError(t, p.SetStrings(ctx, prefs.KeySavedValueFilters, nil))
	v, ok, err := p.Strings(ctx, prefs.KeySavedValueFilters)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, v)

	require.NoError(t, p.SetStrings(ctx, prefs.KeySavedValueFilters, []string{"f1", "none"}))
	v, _, err = p.Strings(ctx, prefs.KeySavedValueFilters)
	require.NoError(t, err)
	assert.Equal(t, []string{"f1", "none"}, v)
}

func TestPreferencesFilterStateRoundTrip(t *testing.T) {
	ctx := context.Background()
	p := &Preferences{DB: db.NewTestDB(t)}

	s := filter.DefaultState()
	s.ToggleValueFilter(filter.ValueF3)
	s.ToggleValueFilter(filter.ValueNone)
	s.ToggleSearchProperty(filter.SearchNotes)
	s.SetSortMode(filter.SortDate)
	require.NoError(t, s.Save(ctx, p))

	loaded, err := filter.Load(ctx, p)
	require.NoError(t, err)
	assert.Equal(t, s, loaded)
}
