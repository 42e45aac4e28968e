package sitecrawl

// Outcome classifies what happened to a single dequeued URL.
type Outcome int

const (
	OutcomeSaved Outcome = iota
	OutcomeFetchFailed
	OutcomeWrongContentType
	OutcomeStoreFailed
)

func (o Outcome) String() string {
	switch o {
	case OutcomeSaved:
		return "saved"
	case OutcomeFetchFailed:
		return "fetch-failed"
	case OutcomeWrongContentType:
		return "wrong-content-type"
	case OutcomeStoreFailed:
		return "store-failed"
	default:
		return "unknown"
	}
}

// Metrics holds the counters of a crawl run.
// All counters only ever increase while the run is in progress.
type Metrics struct {
	// Saved is the number of pages handed to the PageStore successfully.
	Saved int
	// Discovered counts every raw link occurrence, accepted or not.
	Discovered int
	// Admitted counts links newly added to the frontier.
	Admitted int
	// FetchErrors counts transport failures and non-2xx responses.
	FetchErrors int
	// TypeErrors counts successful responses that were not HTML.
	TypeErrors int
	// StoreErrors counts pages the PageStore failed to persist.
	StoreErrors int
	// Disallowed counts links excluded by robots.txt.
	Disallowed int
	// Rejected counts links refused by the classifier, per reason.
	Rejected map[RejectReason]int
	// DistinctLinks estimates the number of distinct raw hrefs seen.
	DistinctLinks int
	// Bytes is the total size of saved page bodies.
	Bytes int
}

// Record updates the counters for a page outcome.
func (m *Metrics) Record(o Outcome) {
	switch o {
	case OutcomeSaved:
		m.Saved++
	case OutcomeFetchFailed:
		m.FetchErrors++
	case OutcomeWrongContentType:
		m.TypeErrors++
	case OutcomeStoreFailed:
		m.StoreErrors++
	}
}

// Reject counts a classifier rejection.
func (m *Metrics) Reject(reason RejectReason) {
	if m.Rejected == nil {
		m.Rejected = make(map[RejectReason]int)
	}
	m.Rejected[reason]++
}
