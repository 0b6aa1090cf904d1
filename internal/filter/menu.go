package filter

// MenuOption is one toggle in a filter menu section.
type MenuOption struct {
	ID       string `json:"id"`
	Title    string `json:"title"`
	Selected bool   `json:"selected"`
	Disabled bool   `json:"disabled,omitempty"`
}

// MenuSection is a titled group of options with a summary subtitle.
type MenuSection struct {
	ID       string       `json:"id"`
	Title    string       `json:"title"`
	Subtitle string       `json:"subtitle"`
	Options  []MenuOption `json:"options"`
}

// Menu builds the filter menu for s: search properties, value buckets and
// sort modes, each in declaration order.
func Menu(s State) []MenuSection {
	search := MenuSection{ID: "search", Title: "Search In", Subtitle: DescribeSearchProperties(s)}
	for _, p := range searchProperties {
		search.Options = append(search.Options, MenuOption{
			ID:       string(p),
			Title:    p.DisplayName(),
			Selected: s.HasSearchProperty(p),
			Disabled: s.SearchPropertyLocked(p),
		})
	}

	value := MenuSection{ID: "value", Title: "Value", Subtitle: DescribeValueFilters(s)}
	for _, b := range valueBuckets {
		value.Options = append(value.Options, MenuOption{
			ID:       string(b.filter),
			Title:    b.name,
			Selected: s.HasValueFilter(b.filter),
		})
	}

	sort := MenuSection{ID: "sort", Title: "Sort By", Subtitle: s.sort.DisplayName()}
	for _, m := range sortModes {
		sort.Options = append(sort.Options, MenuOption{
			ID:       string(m),
			Title:    m.DisplayName(),
			Selected: s.sort == m,
		})
	}

	return []MenuSection{search, value, sort}
}
