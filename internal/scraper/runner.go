package scraper

import (
	"context"
	"fmt"
	"io"

	"craigslist-hunter/internal/config"
)

// Runner searches every configured item and collects the deduplicated
// listings. Searches run one after another.
type Runner struct {
	fetcher *Fetcher
}

func NewRunner(fetcher *Fetcher) *Runner {
	return &Runner{fetcher: fetcher}
}

// Run performs every (item, term) search in configuration order. A failed
// fetch only loses that term's results; a parse error stops the run and no
// listings are returned.
func (r *Runner) Run(ctx context.Context, cfg *config.Config) ([]*ListedItem, error) {
	agg := NewAggregator()

	for i := range cfg.Items {
		item := &cfg.Items[i]

		for term := range SearchTerms(item.Terms) {
			if err := ctx.Err(); err != nil {
				return nil, err
			}

			results, err := r.fetcher.Fetch(cfg, item, term)
			if err != nil {
				return nil, fmt.Errorf("failed to search %q for %s: %w", term, item.Name, err)
			}
			agg.Merge(results)
		}
	}

	return agg.Listings(), nil
}

// WriteReport prints one report line per listing.
func WriteReport(w io.Writer, cfg *config.Config, listings []*ListedItem) error {
	for _, listing := range listings {
		if _, err := fmt.Fprintln(w, listing.Report(cfg.Location)); err != nil {
			return fmt.Errorf("failed to write report: %w", err)
		}
	}
	return nil
}
