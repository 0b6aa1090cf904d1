package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strconv"

	"github.com/erazemk/roomboard/internal/prefs"
)

// Preferences is a prefs.Store backed by the settings table. Booleans are
// stored as "true"/"false" and lists as JSON arrays.
type Preferences struct {
	DB *sql.DB
}

var _ prefs.Store = (*Preferences)(nil)

func (p *Preferences) Bool(ctx context.Context, key string) (bool, error) {
	raw, ok, err := GetSetting(ctx, p.DB, key)
	if err != nil || !ok {
		return false, err
	}
	v, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("parsing setting %s: %w", key, err)
	}
	return v, nil
}

func (p *Preferences) SetBool(ctx context.Context, key string, value bool) error {
	return SetSetting(ctx, p.DB, key, strconv.FormatBool(value))
}

func (p *Preferences) String(ctx context.Context, key string) (string, bool, error) {
	return GetSetting(ctx, p.DB, key)
}

func (p *Preferences) SetString(ctx context.Context, key, value string) error {
	return SetSetting(ctx, p.DB, key, value)
}

func (p *Preferences) Strings(ctx context.Context, key string) ([]string, bool, error) {
	raw, ok, err := GetSetting(ctx, p.DB, key)
	if err != nil || !ok {
		return nil, false, err
	}
	var values []string
	if err := json.Unmarshal([]byte(raw), &values); err != nil {
		return nil, false, fmt.Errorf("parsing setting %s: %w", key, err)
	}
	if values == nil {
		values = []string{}
	}
	return values, true, nil
}

func (p *Preferences) SetStrings(ctx context.Context, key string, values []string) error {
	if values == nil {
		values = []string{}
	}
	raw, err := json.Marshal(values)
	if err != nil {
		return fmt.Errorf("encoding setting %s: %w", key, err)
	}
	return SetSetting(ctx, p.DB, key, string(raw))
}
