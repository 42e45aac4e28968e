package mock

import (
	"iter"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor is a mock implementation of sitecrawl.LinkExtractor.
type LinkExtractor struct {
	ExtractLinksFn func(html string) iter.Seq[string]
}

func (e *LinkExtractor) ExtractLinks(html string) iter.Seq[string] {
	return e.ExtractLinksFn(html)
}
