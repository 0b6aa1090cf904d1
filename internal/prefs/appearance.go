package prefs

import "context"

// Appearance is the selected UI color scheme.
type Appearance string

// Appearances.
const (
	AppearanceSystem Appearance = "system"
	AppearanceLight  Appearance = "light"
	AppearanceDark   Appearance = "dark"
)

// ParseAppearance maps a raw value to an Appearance. Unknown values are
// reported with ok == false.
func ParseAppearance(raw string) (Appearance, bool) {
	switch a := Appearance(raw); a {
	case AppearanceSystem, AppearanceLight, AppearanceDark:
		return a, true
	}
	return AppearanceSystem, false
}

// DisplayName returns the settings label.
func (a Appearance) DisplayName() string {
	switch a {
	case AppearanceLight:
		return "Light"
	case AppearanceDark:
		return "Dark"
	default:
		return "System"
	}
}

// SelectedAppearance reads the stored appearance, falling back to system for
// missing or stale values.
func SelectedAppearance(ctx context.Context, s Store) (Appearance, error) {
	raw, ok, err := s.String(ctx, KeySelectedAppearance)
	if err != nil {
		return AppearanceSystem, err
	}
	if !ok {
		return AppearanceSystem, nil
	}
	a, _ := ParseAppearance(raw)
	return a, nil
}
