// Package http provides a net/http implementation of sitecrawl.Fetcher for
// static sites. Responses are returned whatever their status; text bodies
// are decoded to UTF-8.
package http

import (
	"context"
	"fmt"
	"io"
	"mime"
	"net/http"
	"strings"
	"time"

	"github.com/fwojciec/sitecrawl"
	"golang.org/x/net/html/charset"
)

// DefaultFetchTimeout is the default timeout for HTTP requests.
const DefaultFetchTimeout = 30 * time.Second

// DefaultMaxBodyBytes caps how much of a response body is read.
const DefaultMaxBodyBytes = 10 << 20

// DefaultUserAgent identifies the crawler to servers.
const DefaultUserAgent = "sitecrawl/1.0"

// Ensure Fetcher implements sitecrawl.Fetcher at compile time.
var _ sitecrawl.Fetcher = (*Fetcher)(nil)

// Fetcher retrieves pages using plain HTTP GET requests.
// It does not execute JavaScript.
type Fetcher struct {
	client       *http.Client
	timeout      time.Duration
	userAgent    string
	maxBodyBytes int64
}

// Option configures a Fetcher.
type Option func(*Fetcher)

// WithTimeout sets the timeout for HTTP requests.
// Defaults to DefaultFetchTimeout (30s) if not specified.
func WithTimeout(d time.Duration) Option {
	return func(f *Fetcher) {
		f.timeout = d
	}
}

// WithUserAgent sets the User-Agent header sent with every request.
func WithUserAgent(ua string) Option {
	return func(f *Fetcher) {
		f.userAgent = ua
	}
}

// WithMaxBodyBytes limits how many body bytes are read per response.
// Longer bodies are truncated.
func WithMaxBodyBytes(n int64) Option {
	return func(f *Fetcher) {
		f.maxBodyBytes = n
	}
}

// NewFetcher creates a new HTTP-based Fetcher.
func NewFetcher(opts ...Option) *Fetcher {
	f := &Fetcher{
		timeout:      DefaultFetchTimeout,
		userAgent:    DefaultUserAgent,
		maxBodyBytes: DefaultMaxBodyBytes,
	}
	for _, opt := range opts {
		opt(f)
	}

	f.client = &http.Client{
		Timeout: f.timeout,
	}

	return f
}

// Fetch issues a GET for url. Non-2xx responses are not errors; the
// caller inspects StatusCode. Only transport and read failures are
// returned as errors.
func (f *Fetcher) Fetch(ctx context.Context, url string) (*sitecrawl.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("build request for %s: %w", url, err)
	}
	if f.userAgent != "" {
		req.Header.Set("User-Agent", f.userAgent)
	}

	resp, err := f.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch %s: %w", url, err)
	}
	defer resp.Body.Close()

	contentType := resp.Header.Get("Content-Type")
	body, err := f.readBody(resp.Body, contentType)
	if err != nil {
		return nil, fmt.Errorf("read body of %s: %w", url, err)
	}

	return &sitecrawl.Response{
		URL:         resp.Request.URL.String(),
		StatusCode:  resp.StatusCode,
		ContentType: contentType,
		Body:        body,
	}, nil
}

func (f *Fetcher) readBody(body io.Reader, contentType string) (string, error) {
	r := body
	if f.maxBodyBytes > 0 {
		r = io.LimitReader(body, f.maxBodyBytes)
	}
	if isText(contentType) {
		decoded, err := charset.NewReader(r, contentType)
		if err != nil {
			return "", err
		}
		r = decoded
	}
	b, err := io.ReadAll(r)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func isText(contentType string) bool {
	mediaType, _, err := mime.ParseMediaType(contentType)
	if err != nil {
		return false
	}
	return strings.HasPrefix(mediaType, "text/") || mediaType == "application/xhtml+xml"
}

// Close releases resources. For HTTP fetcher this is a no-op since
// http.Client doesn't require explicit cleanup.
func (f *Fetcher) Close() error {
	return nil
}
