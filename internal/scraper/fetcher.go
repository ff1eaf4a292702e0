package scraper

import (
	"errors"
	"fmt"
	"io"
	"net/url"

	"craigslist-hunter/internal/config"
	"craigslist-hunter/internal/utils"
)

// DefaultBaseURL is the marketplace host pattern, filled with the region.
const DefaultBaseURL = "https://%s.craigslist.org"

// ErrFetchFailed marks a request the transport could not complete.
var ErrFetchFailed = errors.New("fetch failed")

// Response is what a Transport hands back for a search request.
type Response struct {
	StatusCode int
	Body       []byte
	URL        string // final URL, after redirects
}

// Transport issues a single GET request for rawURL with the given query.
// A non-nil error means the request did not succeed.
type Transport interface {
	Fetch(rawURL string, params url.Values) (*Response, error)
}

// Fetcher runs one marketplace search per call and reports its status.
type Fetcher struct {
	transport Transport
	out       io.Writer
	baseURL   string
}

func NewFetcher(transport Transport, out io.Writer) *Fetcher {
	return &Fetcher{
		transport: transport,
		out:       out,
		baseURL:   DefaultBaseURL,
	}
}

// SetBaseURL points the fetcher at another host. A %s in pattern is
// replaced with the configured location.
func (f *Fetcher) SetBaseURL(pattern string) {
	f.baseURL = pattern
}

func (f *Fetcher) searchURL(location, section string) string {
	return fmt.Sprintf(f.baseURL, location) + "/search/" + section
}

// SearchParams builds the query string for one search term. Filters set
// to null in the configuration are left out.
func SearchParams(cfg *config.Config, searchTerm string) url.Values {
	params := url.Values{}
	params.Set("query", searchTerm)
	params.Set("sort", "rel")
	params.Set("srchType", "T")
	setFilter(params, "hasPic", cfg.HasPic)
	setFilter(params, "postedToday", cfg.PostedToday)
	params.Set("bundleDuplicates", "1")
	setFilter(params, "search_distance", cfg.Distance)
	setFilter(params, "postal", cfg.Postal)
	return params
}

func setFilter(params url.Values, key string, value config.FilterValue) {
	if value.IsNull() {
		return
	}
	params.Set(key, value.String())
}

// Fetch searches item's section for searchTerm. A failed request prints a
// FAIL status and yields no results; only parse errors are returned.
func (f *Fetcher) Fetch(cfg *config.Config, item *config.Item, searchTerm string) (map[string]*ListedItem, error) {
	target := f.searchURL(cfg.Location, item.Section)
	params := SearchParams(cfg, searchTerm)

	resp, err := f.transport.Fetch(target, params)

	shown := target + "?" + params.Encode()
	if resp != nil && resp.URL != "" {
		shown = resp.URL
	}

	if err != nil {
		fmt.Fprintln(f.out, "[   FAIL] [FETCH] "+utils.Trail(shown, linkWidth))
		return map[string]*ListedItem{}, nil
	}
	fmt.Fprintln(f.out, "[SUCCESS] [FETCH] "+utils.Trail(shown, linkWidth))

	return ParseListings(resp.Body, item, searchTerm)
}
