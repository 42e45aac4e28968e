package sitecrawl

import (
	"fmt"
	"iter"
)

// LinkExtractor finds raw href values in an HTML document.
type LinkExtractor interface {
	// ExtractLinks returns every anchor href in document order.
	// The sequence is lazy and may be ranged over more than once.
	ExtractLinks(html string) iter.Seq[string]
}

// RejectReason explains why a raw link did not become a canonical URL.
type RejectReason string

// Rejection reasons, in the order the classifier checks them.
const (
	RejectEmpty                 RejectReason = "empty"
	RejectFragmentOrPlaceholder RejectReason = "fragment-or-placeholder"
	RejectNonHTTPScheme         RejectReason = "non-http-scheme"
	RejectCrossHost             RejectReason = "cross-host"
	RejectNoPathSegments        RejectReason = "no-path-segments"
	RejectMalformed             RejectReason = "malformed"
)

// Rejection is returned when a link cannot be admitted to the frontier.
type Rejection struct {
	Link   string
	Reason RejectReason
}

func (r *Rejection) Error() string {
	return fmt.Sprintf("link %q rejected: %s", r.Link, r.Reason)
}
