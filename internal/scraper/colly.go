package scraper

import (
	"fmt"
	"net/url"
	"time"

	"github.com/gocolly/colly/v2"
)

const userAgent = "Mozilla/5.0 (Macintosh; Intel Mac OS X 10_15_7) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/120.0.0.0 Safari/537.36"

// CollyTransport fetches pages with a fresh colly collector per request.
type CollyTransport struct {
	UserAgent string
	Timeout   time.Duration // zero keeps colly's default
}

func NewCollyTransport() *CollyTransport {
	return &CollyTransport{UserAgent: userAgent}
}

func (t *CollyTransport) Fetch(rawURL string, params url.Values) (*Response, error) {
	target := rawURL
	if len(params) > 0 {
		target += "?" + params.Encode()
	}

	c := colly.NewCollector(colly.UserAgent(t.UserAgent))
	c.MaxBodySize = 0 // unlimited; colly cuts bodies at 10 MiB by default
	if t.Timeout > 0 {
		c.SetRequestTimeout(t.Timeout)
	}

	resp := &Response{URL: target}

	c.OnResponse(func(r *colly.Response) {
		resp.StatusCode = r.StatusCode
		resp.Body = r.Body
		if r.Request != nil && r.Request.URL != nil {
			resp.URL = r.Request.URL.String()
		}
	})

	c.OnError(func(r *colly.Response, err error) {
		if r == nil {
			return
		}
		resp.StatusCode = r.StatusCode
		if r.Request != nil && r.Request.URL != nil {
			resp.URL = r.Request.URL.String()
		}
	})

	if err := c.Visit(target); err != nil {
		return resp, fmt.Errorf("%w: %s: %v", ErrFetchFailed, target, err)
	}
	return resp, nil
}
