// Package prefs defines the durable user-preference store shared by the
// filter session, the settings API and first-run setup.
package prefs

import (
	"context"
	"sync"
)

// Preference keys.
const (
	KeyFinishedOnboarding    = "finished_onboarding"
	KeyInstalledDefaultTags  = "installed_default_tags"
	KeySelectedAppearance    = "selected_appearance"
	KeyPreserveFilters       = "preserve_filters"
	KeySavedSearchProperties = "saved_search_properties"
	KeySavedValueFilters     = "saved_value_filters"
	KeySavedSortMode         = "saved_sort_mode"
)

// Store is a string-keyed preference store. Missing keys are not errors:
// Bool reports false, String and Strings report ok == false.
type Store interface {
	Bool(ctx context.Context, key string) (bool, error)
	SetBool(ctx context.Context, key string, value bool) error
	String(ctx context.Context, key string) (string, bool, error)
	SetString(ctx context.Context, key, value string) error
	Strings(ctx context.Context, key string) ([]string, bool, error)
	SetStrings(ctx context.Context, key string, values []string) error
}

// Memory is an in-process Store.
type Memory struct {
	mu    sync.Mutex
	bools map[string]bool
	strs  map[string]string
	lists map[string][]string
}

// NewMemory returns an empty Memory store.
func NewMemory() *Memory {
	return &Memory{
		bools: make(map[string]bool),
		strs:  make(map[string]string),
		lists: make(map[string][]string),
	}
}

func (m *Memory) Bool(_ context.Context, key string) (bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.bools[key], nil
}

func (m *Memory) SetBool(_ context.Context, key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bools[key] = value
	return nil
}

func (m *Memory) String(_ context.Context, key string) (string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.strs[key]
	return v, ok, nil
}

func (m *Memory) SetString(_ context.Context, key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.strs[key] = value
	return nil
}

func (m *Memory) Strings(_ context.Context, key string) ([]string, bool, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	v, ok := m.lists[key]
	if !ok {
		return nil, false, nil
	}
	return append([]string(nil), v...), true, nil
}

func (m *Memory) SetStrings(_ context.Context, key string, values []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lists[key] = append([]string{}, values...)
	return nil
}
