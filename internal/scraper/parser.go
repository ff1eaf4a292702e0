package scraper

import (
	"bytes"
	"fmt"

	"github.com/PuerkitoBio/goquery"

	"craigslist-hunter/internal/config"
	"craigslist-hunter/internal/utils"
)

const (
	resultRowSelector   = "li.result-row"
	resultPriceSelector = "span.result-price"
	resultHoodSelector  = "span.result-hood"
	resultTitleSelector = "a.result-title"
	dataPIDAttr         = "data-pid"
)

// ParseListings extracts the listings from a search results page, keyed by
// identifier. Rows without a title or price are skipped. A row without a
// data-pid attribute or with an unreadable price fails the whole page.
func ParseListings(body []byte, item *config.Item, searchTerm string) (map[string]*ListedItem, error) {
	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("error parsing HTML: %w", err)
	}

	results := make(map[string]*ListedItem)
	var parseErr error

	doc.Find(resultRowSelector).EachWithBreak(func(i int, row *goquery.Selection) bool {
		dataPID, exists := row.Attr(dataPIDAttr)
		if !exists {
			parseErr = &ParseError{Field: dataPIDAttr, Value: fmt.Sprintf("row %d", i), Err: ErrMissingField}
			return false
		}

		price := findText(row, resultPriceSelector)
		location := findText(row, resultHoodSelector)
		title := findText(row, resultTitleSelector)

		if price == "" || title == "" || dataPID == "" {
			return true
		}

		listing, err := NewListedItem(title, dataPID, price, location, item, searchTerm)
		if err != nil {
			parseErr = fmt.Errorf("listing %s: %w", dataPID, err)
			return false
		}

		results[dataPID] = listing
		return true
	})

	if parseErr != nil {
		return nil, parseErr
	}
	return results, nil
}

// findText returns the cleaned text of the first match, or "" if none.
func findText(s *goquery.Selection, selector string) string {
	found := s.Find(selector).First()
	if found.Length() == 0 {
		return ""
	}
	return utils.CleanText(found.Text())
}
