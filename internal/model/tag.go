package model

import (
	"errors"
	"regexp"
	"strings"
	"time"
)

// Tag is a named label with a display color.
type Tag struct {
	ID        int64     `json:"id"`
	Text      string    `json:"text"`
	Color     string    `json:"color"`
	CreatedAt time.Time `json:"created_at"`
}

// Default values for a tag created without explicit text or color.
const (
	DefaultTagText  = "New Tag"
	DefaultTagColor = "#808080"
)

// ErrInvalidColor is returned for colors that are not #RRGGBB.
var ErrInvalidColor = errors.New("color must be in #RRGGBB form")

var colorPattern = regexp.MustCompile(`^#[0-9a-fA-F]{6}$`)

// NormalizeColor validates a #RRGGBB color and returns it upper-cased.
func NormalizeColor(color string) (string, error) {
	if !colorPattern.MatchString(color) {
		return "", ErrInvalidColor
	}
	return strings.ToUpper(color), nil
}
