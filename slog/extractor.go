package slog

import (
	"iter"
	"log/slog"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// Ensure LoggingLinkExtractor implements sitecrawl.LinkExtractor.
var _ sitecrawl.LinkExtractor = (*LoggingLinkExtractor)(nil)

// LoggingLinkExtractor wraps a LinkExtractor and logs one line per
// iteration with the number of links yielded.
type LoggingLinkExtractor struct {
	next   sitecrawl.LinkExtractor
	logger *slog.Logger
}

// NewLoggingLinkExtractor creates a new LoggingLinkExtractor.
func NewLoggingLinkExtractor(next sitecrawl.LinkExtractor, logger *slog.Logger) *LoggingLinkExtractor {
	return &LoggingLinkExtractor{next: next, logger: logger}
}

// ExtractLinks delegates to the wrapped extractor. The log line is written
// when the consumer finishes or stops iterating.
func (e *LoggingLinkExtractor) ExtractLinks(html string) iter.Seq[string] {
	seq := e.next.ExtractLinks(html)
	return func(yield func(string) bool) {
		begin := time.Now()
		count := 0
		defer func() {
			e.logger.Info("link extraction",
				"bytes", len(html),
				"links", count,
				"duration", time.Since(begin),
			)
		}()
		for link := range seq {
			count++
			if !yield(link) {
				return
			}
		}
	}
}
