package prefs

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryMissingKeys(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	b, err := m.Bool(ctx, KeyPreserveFilters)
	require.NoError(t, err)
	assert.False(t, b)

	_, ok, err := m.String(ctx, KeySavedSortMode)
	require.NoError(t, err)
	assert.False(t, ok)

	_, ok, err = m.Strings(ctx, KeySavedValueFilters)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestMemoryStringsAreCopied(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	in := []string{"f1", "f2"}
	require.NoError(t, m.SetStrings(ctx, KeySavedValueFilters, in))
	in[0] = "changed"

	got, ok, err := m.Strings(ctx, KeySavedValueFilters)
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, []string{"f1", "f2"}, got)

	require.NoError(t, m.SetStrings(ctx, KeySavedSearchProperties, nil))
	got, ok, err = m.Strings(ctx, KeySavedSearchProperties)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Empty(t, got)
}

func TestSelectedAppearance(t *testing.T) {
	ctx := context.Background()
	m := NewMemory()

	a, err := SelectedAppearance(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, AppearanceSystem, a)

	require.NoError(t, m.SetString(ctx, KeySelectedAppearance, "dark"))
	a, err = SelectedAppearance(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, AppearanceDark, a)

	require.NoError(t, m.SetString(ctx, KeySelectedAppearance, "sepia"))
	a, err = SelectedAppearance(ctx, m)
	require.NoError(t, err)
	assert.Equal(t, AppearanceSystem, a)
}

func TestParseAppearance(t *testing.T) {
	for _, raw := range []string{"system", "light", "dark"} {
		a, ok := ParseAppearance(raw)
		assert.True(t, ok, raw)
		assert.Equal(t, raw, string(a))
	}
	_, ok := ParseAppearance("")
	assert.False(t, ok)
	assert.Equal(t, "Dark", AppearanceDark.DisplayName())
}
