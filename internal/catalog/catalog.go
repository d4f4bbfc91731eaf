// Package catalog filters the public events directory.
package catalog

import (
	"fmt"
	"net/url"
	"strings"

	"github.com/olegiv/bharat-abroad/internal/store"
)

// Sentinel option values meaning "no filter".
const (
	AllCategories = "All"
	AllCities     = "All Cities"
)

// Categories lists the category filter options in display order.
var Categories = []string{
	AllCategories, "Festival", "Cultural", "Arts", "Food", "Music", "Sports", "Spirituality",
}

// Cities lists the city filter options in display order.
var Cities = []string{
	AllCities,
	"Chicago, IL",
	"New York, NY",
	"San Francisco, CA",
	"Houston, TX",
	"Los Angeles, CA",
	"Dallas, TX",
	"Austin, TX",
}

// EmptyText is shown when a filter matches nothing.
const EmptyText = "No events found. Try a different search or filter."

// Filter narrows a list of events. The zero value matches everything.
type Filter struct {
	Search   string
	Category string
	City     string
}

// FilterFromQuery reads q, category and city from URL query values.
func FilterFromQuery(v url.Values) Filter {
	return Filter{
		Search:   v.Get("q"),
		Category: v.Get("category"),
		City:     v.Get("city"),
	}
}

// Matches reports whether e passes every predicate.
func (f Filter) Matches(e store.Event) bool {
	if q := strings.ToLower(strings.TrimSpace(f.Search)); q != "" &&
		!strings.Contains(strings.ToLower(e.Title), q) {
		return false
	}
	if f.Category != "" && f.Category != AllCategories && e.Category != f.Category {
		return false
	}
	if f.City != "" && f.City != AllCities && e.Location != f.City {
		return false
	}
	return true
}

// Apply returns the events that match, in their original order.
func (f Filter) Apply(events []store.Event) []store.Event {
	out := make([]store.Event, 0, len(events))
	for _, e := range events {
		if f.Matches(e) {
			out = append(out, e)
		}
	}
	return out
}

// Active reports whether any predicate narrows the list.
func (f Filter) Active() bool {
	return strings.TrimSpace(f.Search) != "" ||
		(f.Category != "" && f.Category != AllCategories) ||
		(f.City != "" && f.City != AllCities)
}

// ResultText is the count line above the results grid.
func ResultText(n int) string {
	if n == 0 {
		return EmptyText
	}
	return fmt.Sprintf("%d event(s) found", n)
}
