// Package goquery extracts links by walking a parsed HTML tree with
// github.com/PuerkitoBio/goquery.
package goquery

import (
	"iter"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/fwojciec/sitecrawl"
)

// DefaultSelector matches every anchor carrying an href attribute.
const DefaultSelector = "a[href]"

var _ sitecrawl.LinkExtractor = (*LinkExtractor)(nil)

// LinkExtractor yields the href of every element matching Selector.
// Unlike pattern matching, anchors inside comments and scripts are not seen.
type LinkExtractor struct {
	Selector string
}

// NewLinkExtractor creates a LinkExtractor using DefaultSelector.
func NewLinkExtractor() *LinkExtractor {
	return &LinkExtractor{Selector: DefaultSelector}
}

// ExtractLinks parses html on each iteration and yields href values in
// document order. Markup the parser cannot read yields nothing.
func (e *LinkExtractor) ExtractLinks(html string) iter.Seq[string] {
	return func(yield func(string) bool) {
		doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
		if err != nil {
			return
		}
		doc.Find(e.selector()).EachWithBreak(func(_ int, sel *goquery.Selection) bool {
			href, ok := sel.Attr("href")
			if !ok {
				return true
			}
			return yield(href)
		})
	}
}

func (e *LinkExtractor) selector() string {
	if e.Selector != "" {
		return e.Selector
	}
	return DefaultSelector
}
