package crawl

import (
	"iter"
	"regexp"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.LinkExtractor = (*RegexpExtractor)(nil)

// anchorHref matches the href attribute of an anchor start tag.
// Submatches: double-quoted, single-quoted, unquoted value.
var anchorHref = regexp.MustCompile(`(?i)<a\s(?:[^>]*?\s)?href\s*=\s*(?:"([^"]*)"|'([^']*)'|([^\s"'>]+))`)

// RegexpExtractor finds anchor hrefs by pattern matching, without building
// a parse tree. Anchors inside comments and scripts are matched too.
type RegexpExtractor struct{}

// NewRegexpExtractor creates a new RegexpExtractor.
func NewRegexpExtractor() *RegexpExtractor {
	return &RegexpExtractor{}
}

// ExtractLinks yields href values in document order. Matching advances one
// anchor per iteration step, so a consumer that stops early pays only for
// what it read.
func (e *RegexpExtractor) ExtractLinks(html string) iter.Seq[string] {
	return func(yield func(string) bool) {
		rest := html
		for {
			loc := anchorHref.FindStringSubmatchIndex(rest)
			if loc == nil {
				return
			}
			var href string
			for i := 2; i+1 < len(loc); i += 2 {
				if loc[i] >= 0 {
					href = rest[loc[i]:loc[i+1]]
					break
				}
			}
			if !yield(href) {
				return
			}
			rest = rest[loc[1]:]
		}
	}
}
