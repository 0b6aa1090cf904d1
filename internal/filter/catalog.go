// Package filter holds the inventory list's filter, search and sort rules:
// the static catalogs, the user's current selection, and the engine that
// turns a raw item collection into the displayed list.
package filter

// Unbounded marks an open-ended upper bound in a value range.
const Unbounded = -1

// ValueFilter is a price bucket.
type ValueFilter string

// Value filters, in catalog declaration order.
const (
	ValueF1   ValueFilter = "f1"
	ValueF2   ValueFilter = "f2"
	ValueF3   ValueFilter = "f3"
	ValueF4   ValueFilter = "f4"
	ValueF5   ValueFilter = "f5"
	ValueF6   ValueFilter = "f6"
	ValueF7   ValueFilter = "f7"
	ValueF8   ValueFilter = "f8"
	ValueF9   ValueFilter = "f9"
	ValueNone ValueFilter = "none"
)

type valueBucket struct {
	filter ValueFilter
	name   string
	min    int
	max    int
}

// The none bucket's range is disjoint from every parsed value, which is
// never negative.
var valueBuckets = []valueBucket{
	{ValueF1, "$1 - $5", 1, 5},
	{ValueF2, "$5 - $10", 5, 10},
	{ValueF3, "$10 - $20", 10, 20},
	{ValueF4, "$20 - $50", 20, 50},
	{ValueF5, "$50 - $100", 50, 100},
	{ValueF6, "$100 - $200", 100, 200},
	{ValueF7, "$200 - $500", 200, 500},
	{ValueF8, "$500 - $1000", 500, 1000},
	{ValueF9, "$1000+", 1000, Unbounded},
	{ValueNone, "No Value", -2, -2},
}

// AllValueFilters returns every value filter in declaration order.
func AllValueFilters() []ValueFilter {
	out := make([]ValueFilter, len(valueBuckets))
	for i, b := range valueBuckets {
		out[i] = b.filter
	}
	return out
}

// ParseValueFilter maps a raw identifier to a ValueFilter.
func ParseValueFilter(raw string) (ValueFilter, bool) {
	f := ValueFilter(raw)
	return f, f.index() >= 0
}

func (f ValueFilter) index() int {
	for i, b := range valueBuckets {
		if b.filter == f {
			return i
		}
	}
	return -1
}

// DisplayName returns the menu title, e.g. "$10 - $20".
func (f ValueFilter) DisplayName() string {
	if i := f.index(); i >= 0 {
		return valueBuckets[i].name
	}
	return string(f)
}

// Range returns the bucket's inclusive bounds. max is Unbounded for the top
// bucket.
func (f ValueFilter) Range() (min, max int) {
	if i := f.index(); i >= 0 {
		return valueBuckets[i].min, valueBuckets[i].max
	}
	return -2, -2
}

// Contains reports whether v falls inside the bucket.
func (f ValueFilter) Contains(v int) bool {
	lo, hi := f.Range()
	return v >= lo && (hi == Unbounded || v <= hi)
}

// SearchProperty is an item field inspected by free-text search.
type SearchProperty string

// Search properties, in catalog declaration order.
const (
	SearchTitle SearchProperty = "title"
	SearchNotes SearchProperty = "notes"
)

var searchProperties = []SearchProperty{SearchTitle, SearchNotes}

// AllSearchProperties returns every search property in declaration order.
func AllSearchProperties() []SearchProperty {
	return append([]SearchProperty(nil), searchProperties...)
}

// ParseSearchProperty maps a raw identifier to a SearchProperty.
func ParseSearchProperty(raw string) (SearchProperty, bool) {
	p := SearchProperty(raw)
	return p, p.index() >= 0
}

func (p SearchProperty) index() int {
	for i, sp := range searchProperties {
		if sp == p {
			return i
		}
	}
	return -1
}

// DisplayName returns the menu title.
func (p SearchProperty) DisplayName() string {
	switch p {
	case SearchTitle:
		return "Title"
	case SearchNotes:
		return "Notes"
	default:
		return string(p)
	}
}

// SortMode is the key that orders the displayed list.
type SortMode string

// Sort modes, in catalog declaration order.
const (
	SortTitle SortMode = "title"
	SortRoom  SortMode = "room"
	SortDate  SortMode = "date"
)

var sortModes = []SortMode{SortTitle, SortRoom, SortDate}

// AllSortModes returns every sort mode in declaration order.
func AllSortModes() []SortMode {
	return append([]SortMode(nil), sortModes...)
}

// ParseSortMode maps a raw identifier to a SortMode.
func ParseSortMode(raw string) (SortMode, bool) {
	for _, m := range sortModes {
		if string(m) == raw {
			return m, true
		}
	}
	return SortTitle, false
}

// DisplayName returns the menu title.
func (m SortMode) DisplayName() string {
	switch m {
	case SortTitle:
		return "Title"
	case SortRoom:
		return "Room"
	case SortDate:
		return "Date"
	default:
		return string(m)
	}
}
