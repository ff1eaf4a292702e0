package scraper

import (
	"maps"
	"slices"
	"strings"
)

// Aggregator collects listings from every search of a run, one per
// identifier. A later merge replaces an earlier listing with the same id.
type Aggregator struct {
	listings map[string]*ListedItem
}

func NewAggregator() *Aggregator {
	return &Aggregator{listings: make(map[string]*ListedItem)}
}

func (a *Aggregator) Merge(results map[string]*ListedItem) {
	maps.Copy(a.listings, results)
}

func (a *Aggregator) Len() int {
	return len(a.listings)
}

// Listings returns the collected listings ordered by identifier.
func (a *Aggregator) Listings() []*ListedItem {
	out := slices.Collect(maps.Values(a.listings))
	slices.SortFunc(out, func(x, y *ListedItem) int {
		return strings.Compare(x.DataPID, y.DataPID)
	})
	return out
}
