package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// Ensure LoggingPageStore implements sitecrawl.PageStore.
var _ sitecrawl.PageStore = (*LoggingPageStore)(nil)

// LoggingPageStore wraps a PageStore with debug logging.
type LoggingPageStore struct {
	next   sitecrawl.PageStore
	logger *slog.Logger
}

// NewLoggingPageStore creates a new LoggingPageStore.
func NewLoggingPageStore(next sitecrawl.PageStore, logger *slog.Logger) *LoggingPageStore {
	return &LoggingPageStore{next: next, logger: logger}
}

// Save logs the page being stored and delegates to the wrapped store.
func (s *LoggingPageStore) Save(ctx context.Context, page *sitecrawl.Page) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("save",
			"url", page.URL,
			"bytes", len(page.Content),
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.Save(ctx, page)
}

// Commit delegates to the wrapped store and logs the result.
func (s *LoggingPageStore) Commit() (err error) {
	defer func(begin time.Time) {
		s.logger.Info("commit", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Commit()
}

// Abort delegates to the wrapped store and logs the result.
func (s *LoggingPageStore) Abort() (err error) {
	defer func(begin time.Time) {
		s.logger.Info("abort", "duration", time.Since(begin), "err", err)
	}(time.Now())
	return s.next.Abort()
}
