package crawl

import (
	"fmt"
	"io"
	"sort"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// TerminationReason records why a run stopped.
type TerminationReason string

const (
	ReasonBudget    TerminationReason = "budget"
	ReasonExhausted TerminationReason = "exhausted"
	ReasonCanceled  TerminationReason = "canceled"
)

// Report is the end-of-run summary.
type Report struct {
	sitecrawl.Metrics

	Seed    string
	Seen    int // unique URLs ever enqueued, seed included
	Queued  int // URLs still waiting when the run stopped
	Elapsed time.Duration
	Reason  TerminationReason
}

// WriteTo writes the report as aligned "label: value" lines.
func (r *Report) WriteTo(w io.Writer) (int64, error) {
	var n int64
	line := func(label string, value any) error {
		m, err := fmt.Fprintf(w, "%-22s %v\n", label+":", value)
		n += int64(m)
		return err
	}

	rows := []struct {
		label string
		value any
	}{
		{"Seed", r.Seed},
		{"Stopped", r.Reason},
		{"Crawled Pages Count", r.Saved},
		{"Parsed Urls Count", r.Seen},
		{"Queue Urls Count", r.Queued},
		{"Discovered Links", r.Discovered},
		{"Distinct Links", r.DistinctLinks},
		{"Admitted Urls", r.Admitted},
		{"Disallowed Links", r.Disallowed},
		{"Fetch Errors", r.FetchErrors},
		{"Content-Type Errors", r.TypeErrors},
		{"Store Errors", r.StoreErrors},
		{"Saved Bytes", FormatBytes(r.Bytes)},
		{"Total Time", FormatElapsed(r.Elapsed)},
	}
	for _, row := range rows {
		if err := line(row.label, row.value); err != nil {
			return n, err
		}
	}

	reasons := make([]string, 0, len(r.Rejected))
	for reason := range r.Rejected {
		reasons = append(reasons, string(reason))
	}
	sort.Strings(reasons)
	for _, reason := range reasons {
		if err := line("Rejected "+reason, r.Rejected[sitecrawl.RejectReason(reason)]); err != nil {
			return n, err
		}
	}
	return n, nil
}

// FormatElapsed formats a duration as h:mm:ss.
func FormatElapsed(d time.Duration) string {
	d = d.Round(time.Second)
	h := d / time.Hour
	d -= h * time.Hour
	m := d / time.Minute
	d -= m * time.Minute
	s := d / time.Second
	return fmt.Sprintf("%d:%02d:%02d", h, m, s)
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, return the URL prefix
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
