package scraper

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode"
	"unicode/utf8"

	"craigslist-hunter/internal/config"
	"craigslist-hunter/internal/utils"
)

const linkWidth = 60

// ErrMissingField is wrapped by ParseError when a required value is absent.
var ErrMissingField = errors.New("missing required field")

// ParseError is a hard failure while turning a result row into a listing.
type ParseError struct {
	Field string
	Value string
	Err   error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("parse %s %q: %v", e.Field, e.Value, e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ListedItem is a single marketplace post surfaced by a search.
type ListedItem struct {
	Name     string
	DataPID  string
	Price    float64
	Location string // empty when the row has no neighborhood

	RequestedBy *config.Item
	SearchTerm  string
	Images      []string
}

// NewListedItem builds a listing from the raw text found in a result row.
func NewListedItem(name, dataPID, price, location string, requestedBy *config.Item, searchTerm string) (*ListedItem, error) {
	if name == "" {
		return nil, &ParseError{Field: "title", Err: ErrMissingField}
	}
	if dataPID == "" {
		return nil, &ParseError{Field: "data-pid", Err: ErrMissingField}
	}

	value, err := ParsePrice(price)
	if err != nil {
		return nil, err
	}

	return &ListedItem{
		Name:        name,
		DataPID:     dataPID,
		Price:       value,
		Location:    location,
		RequestedBy: requestedBy,
		SearchTerm:  searchTerm,
	}, nil
}

// ParsePrice converts price text such as "$12.50" to a number. A single
// leading currency symbol is dropped.
func ParsePrice(text string) (float64, error) {
	number := text
	if r, size := utf8.DecodeRuneInString(text); size > 0 && unicode.Is(unicode.Sc, r) {
		number = text[size:]
	}

	value, err := strconv.ParseFloat(strings.TrimSpace(number), 64)
	if err != nil {
		return 0, &ParseError{Field: "price", Value: text, Err: err}
	}
	return value, nil
}

// Link is the canonical post URL on the given marketplace region.
func (l *ListedItem) Link(location string) string {
	return fmt.Sprintf("https://%s.craigslist.org/sys/%s.html", location, l.DataPID)
}

// Report renders the listing as one fixed-width report line.
func (l *ListedItem) Report(location string) string {
	requester := ""
	if l.RequestedBy != nil {
		requester = l.RequestedBy.Name
	}

	return fmt.Sprintf("[%7s USD] [%20s] [%25s] %s",
		formatPrice(l.Price),
		requester,
		l.SearchTerm,
		utils.Trail(l.Link(location), linkWidth))
}

// formatPrice prints the shortest exact decimal, always with a fraction digit.
// Unlike repr-style formatting it never switches to exponent form, so 1e16
// prints as 10000000000000000.0.
func formatPrice(price float64) string {
	s := strconv.FormatFloat(price, 'f', -1, 64)
	if !strings.ContainsAny(s, ".nN") {
		s += ".0"
	}
	return s
}
