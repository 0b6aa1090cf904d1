package filter

import (
	"fmt"
	"strings"
)

// DescribeValueFilters summarizes the selected value filters for a menu
// subtitle. Adjacent buckets merge into one range, so f1+f2 reads
// "$1 - $10" and f8+f9 reads "$500+".
func DescribeValueFilters(s State) string {
	selected := s.ValueFilters()
	if len(selected) == 0 || len(selected) == len(valueBuckets) {
		return "All Values"
	}

	type span struct{ min, max int }
	var spans []span
	for _, f := range selected {
		lo, hi := f.Range()
		if n := len(spans); n > 0 && spans[n-1].max == lo {
			spans[n-1].max = hi
			continue
		}
		spans = append(spans, span{lo, hi})
	}

	noneMin, noneMax := ValueNone.Range()
	phrases := make([]string, 0, len(spans))
	for _, sp := range spans {
		switch {
		case sp.max == Unbounded:
			phrases = append(phrases, fmt.Sprintf("$%d+", sp.min))
		case sp.min == noneMin && sp.max == noneMax:
			phrases = append(phrases, ValueNone.DisplayName())
		default:
			phrases = append(phrases, fmt.Sprintf("$%d - $%d", sp.min, sp.max))
		}
	}
	return strings.Join(phrases, ", ")
}

// DescribeSearchProperties joins the selected property names: "Title & Notes"
// for up to two, comma-separated beyond that.
func DescribeSearchProperties(s State) string {
	selected := s.SearchProperties()
	names := make([]string, len(selected))
	for i, p := range selected {
		names[i] = p.DisplayName()
	}
	if len(names) <= 2 {
		return strings.Join(names, " & ")
	}
	return strings.Join(names, ", ")
}
