package slog_test

import (
	"bytes"
	"iter"
	"log/slog"
	"slices"
	"testing"

	"github.com/fwojciec/sitecrawl/mock"
	scslog "github.com/fwojciec/sitecrawl/slog"
	"github.com/stretchr/testify/assert"
)

func TestLoggingLinkExtractor_ExtractLinks(t *testing.T) {
	t.Parallel()

	inner := &mock.LinkExtractor{
		ExtractLinksFn: func(string) iter.Seq[string] {
			return slices.Values([]string{"/a", "/b", "/c"})
		},
	}

	t.Run("yields links and logs the count", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		extractor := scslog.NewLoggingLinkExtractor(inner, logger)
		got := slices.Collect(extractor.ExtractLinks("<html></html>"))

		assert.Equal(t, []string{"/a", "/b", "/c"}, got)
		output := buf.String()
		assert.Contains(t, output, "link extraction")
		assert.Contains(t, output, "links=3")
		assert.Contains(t, output, "bytes=13")
		assert.Contains(t, output, "duration=")
	})

	t.Run("logs links consumed when iteration stops early", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))

		extractor := scslog.NewLoggingLinkExtractor(inner, logger)
		for range extractor.ExtractLinks("") {
			break
		}

		assert.Contains(t, buf.String(), "links=1")
	})
}
