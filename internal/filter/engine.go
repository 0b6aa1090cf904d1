package filter

import (
	"slices"
	"strconv"
	"strings"
	"time"

	"golang.org/x/text/cases"

	"github.com/erazemk/roomboard/internal/model"
)

// ParseValue extracts the numeric value from an item's value text by keeping
// only its ASCII digits. It reports false when no digits remain or the
// digits overflow an int; such items belong to the none bucket.
func ParseValue(text string) (int, bool) {
	digits := strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, text)
	if digits == "" {
		return 0, false
	}
	v, err := strconv.Atoi(digits)
	if err != nil {
		return 0, false
	}
	return v, true
}

// MatchesValue reports whether an item with the given value text passes the
// selected value filters.
func (s State) MatchesValue(text string) bool {
	if s.values == 0 {
		return true
	}
	v, ok := ParseValue(text)
	if !ok {
		return s.HasValueFilter(ValueNone)
	}
	for _, f := range s.ValueFilters() {
		if f != ValueNone && f.Contains(v) {
			return true
		}
	}
	return false
}

// MatchesQuery reports whether any selected search property of item contains
// query, ignoring case. An empty query matches everything.
func (s State) MatchesQuery(item *model.Item, query string) bool {
	if query == "" {
		return true
	}
	f := newFolder()
	return s.matchesFolded(item, f.fold(query), f)
}

func (s State) matchesFolded(item *model.Item, needle string, f folder) bool {
	for _, p := range s.SearchProperties() {
		var field string
		switch p {
		case SearchTitle:
			field = item.Title
		case SearchNotes:
			field = item.Notes
		}
		if field != "" && strings.Contains(f.fold(field), needle) {
			return true
		}
	}
	return false
}

// folder case-folds text for matching. It holds a cases.Caser, which is not
// safe for concurrent use, so each pass builds its own.
type folder struct {
	caser cases.Caser
}

func newFolder() folder {
	return folder{caser: cases.Fold()}
}

func (f folder) fold(s string) string {
	return f.caser.String(s)
}

// Apply filters items by value and query text, then sorts the survivors by
// the state's sort mode. Items without a date sort as if dated now.
// The input slice is not modified.
func Apply(items []model.Item, state State, query string) []model.Item {
	return apply(items, state, query, time.Now())
}

func apply(items []model.Item, state State, query string, now time.Time) []model.Item {
	var (
		f      folder
		needle string
	)
	if query != "" {
		f = newFolder()
		needle = f.fold(query)
	}

	out := make([]model.Item, 0, len(items))
	for i := range items {
		if !state.MatchesValue(items[i].Value) {
			continue
		}
		if query != "" && !state.matchesFolded(&items[i], needle, f) {
			continue
		}
		out = append(out, items[i])
	}

	sortItems(out, state.sort, now)
	return out
}

// sortItems orders items ascending by mode. Ties keep their input order.
func sortItems(items []model.Item, mode SortMode, now time.Time) {
	switch mode {
	case SortRoom:
		slices.SortStableFunc(items, func(a, b model.Item) int {
			return strings.Compare(a.RoomTitle(), b.RoomTitle())
		})
	case SortDate:
		dateOf := func(i *model.Item) time.Time {
			if i.Date == nil {
				return now
			}
			return *i.Date
		}
		slices.SortStableFunc(items, func(a, b model.Item) int {
			return dateOf(&a).Compare(dateOf(&b))
		})
	default:
		slices.SortStableFunc(items, func(a, b model.Item) int {
			return strings.Compare(a.Title, b.Title)
		})
	}
}
