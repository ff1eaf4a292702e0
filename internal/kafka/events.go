package kafka

import (
	"time"

	"craigslist-hunter/internal/scraper"
)

const EventListingsFound = "listings_found"

// ListingsFoundEvent carries the report of one finished run.
type ListingsFoundEvent struct {
	EventType string         `json:"event_type"`
	Location  string         `json:"location"`
	Listings  []ListingEntry `json:"listings"`
	FoundAt   time.Time      `json:"found_at"`
}

type ListingEntry struct {
	DataPID     string  `json:"data_pid"`
	Title       string  `json:"title"`
	Price       float64 `json:"price"`
	Location    string  `json:"location,omitempty"`
	RequestedBy string  `json:"requested_by"`
	SearchTerm  string  `json:"search_term"`
	URL         string  `json:"url"`
}

// NewListingsFoundEvent converts run results into an event.
func NewListingsFoundEvent(location string, listings []*scraper.ListedItem, foundAt time.Time) ListingsFoundEvent {
	entries := make([]ListingEntry, 0, len(listings))
	for _, l := range listings {
		entry := ListingEntry{
			DataPID:    l.DataPID,
			Title:      l.Name,
			Price:      l.Price,
			Location:   l.Location,
			SearchTerm: l.SearchTerm,
			URL:        l.Link(location),
		}
		if l.RequestedBy != nil {
			entry.RequestedBy = l.RequestedBy.Name
		}
		entries = append(entries, entry)
	}

	return ListingsFoundEvent{
		EventType: EventListingsFound,
		Location:  location,
		Listings:  entries,
		FoundAt:   foundAt,
	}
}
