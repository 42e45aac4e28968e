package sitecrawl

import (
	"context"
	"mime"
	"strings"
)

// Response is the result of a single successful round trip.
// A non-2xx status is still a Response; only transport failures are errors.
type Response struct {
	URL         string
	StatusCode  int
	ContentType string
	Body        string
}

// OK reports whether the status code is in the 2xx range.
func (r *Response) OK() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

// IsHTML reports whether the Content-Type header names an HTML media type.
// A missing or unparseable header is not HTML.
func (r *Response) IsHTML() bool {
	if strings.TrimSpace(r.ContentType) == "" {
		return false
	}
	mediaType, _, err := mime.ParseMediaType(r.ContentType)
	if err != nil {
		return false
	}
	return mediaType == "text/html" || mediaType == "application/xhtml+xml"
}

// Fetcher retrieves a URL.
type Fetcher interface {
	// Fetch issues a GET request for url.
	// The context controls timeout and cancellation.
	// A returned error always means a transport failure (DNS, connect,
	// timeout, truncated body); HTTP status is reported on the Response.
	Fetch(ctx context.Context, url string) (*Response, error)

	// Close releases transport resources.
	Close() error
}
