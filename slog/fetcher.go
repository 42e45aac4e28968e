// Package slog provides log/slog decorators for sitecrawl services.
// Each decorator logs one line per call with its duration and error.
package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// Ensure LoggingFetcher implements sitecrawl.Fetcher.
var _ sitecrawl.Fetcher = (*LoggingFetcher)(nil)

// LoggingFetcher wraps a Fetcher with debug logging.
type LoggingFetcher struct {
	next   sitecrawl.Fetcher
	logger *slog.Logger
}

// NewLoggingFetcher creates a new LoggingFetcher.
func NewLoggingFetcher(next sitecrawl.Fetcher, logger *slog.Logger) *LoggingFetcher {
	return &LoggingFetcher{next: next, logger: logger}
}

// Fetch logs the URL being fetched and delegates to the wrapped fetcher.
func (f *LoggingFetcher) Fetch(ctx context.Context, url string) (resp *sitecrawl.Response, err error) {
	defer func(begin time.Time) {
		var status, size int
		var contentType string
		if resp != nil {
			status, size, contentType = resp.StatusCode, len(resp.Body), resp.ContentType
		}
		f.logger.Info("fetch",
			"url", url,
			"status", status,
			"content_type", contentType,
			"bytes", size,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return f.next.Fetch(ctx, url)
}

// Close delegates to the wrapped fetcher.
func (f *LoggingFetcher) Close() error {
	return f.next.Close()
}
