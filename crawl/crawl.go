// Package crawl provides the single-host crawl engine: URL classification,
// robots.txt filtering, the breadth-first frontier and the fetch loop that
// feeds pages to a PageStore.
package crawl

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/bloom"
)

// DefaultTimeout bounds each individual fetch.
const DefaultTimeout = 30 * time.Second

// Bloom filter sizing for distinct-link estimation.
const (
	linkFilterExpected          = 100000
	linkFilterFalsePositiveRate = 0.001
)

// State is the lifecycle stage of a Crawler.
type State int32

const (
	StateIdle State = iota
	StateRunning
	StateFinished
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateRunning:
		return "running"
	case StateFinished:
		return "finished"
	default:
		return "unknown"
	}
}

// ProgressEvent reports progress during a crawl.
type ProgressEvent struct {
	Type    ProgressType
	URL     string
	Outcome sitecrawl.Outcome
	Saved   int
	Queued  int
	Error   error
}

// ProgressType indicates the type of progress event.
type ProgressType int

const (
	ProgressStarted ProgressType = iota
	ProgressCompleted
	ProgressFailed
	ProgressFinished
)

// ProgressFunc is a callback for reporting crawl progress.
type ProgressFunc func(event ProgressEvent)

// Crawler runs one breadth-first crawl of a single host.
// It performs at most one fetch at a time; the frontier and the metrics
// are owned by the Run call.
type Crawler struct {
	Fetcher   sitecrawl.Fetcher
	Store     sitecrawl.PageStore
	Extractor sitecrawl.LinkExtractor // defaults to RegexpExtractor
	Pacer     sitecrawl.Pacer         // optional
	Logger    *slog.Logger            // optional

	// NewFrontier builds the queue for a run, seeded with the canonical
	// seed URL. Defaults to an in-memory Frontier.
	NewFrontier func(seed string) sitecrawl.URLFrontier

	// MaxPages is the page budget: the run stops once this many pages
	// have been saved.
	MaxPages int

	// Timeout bounds each fetch. Defaults to DefaultTimeout.
	Timeout time.Duration

	// RetryDelays are the waits before retrying a transport error.
	// Nil means no retries.
	RetryDelays []time.Duration

	Progress ProgressFunc

	state atomic.Int32
}

// State returns the current lifecycle stage.
func (c *Crawler) State() State {
	return State(c.state.Load())
}

// Run crawls from seed until the frontier is exhausted, the page budget is
// reached, or ctx is canceled. Per-URL failures are counted, never
// returned: the only errors are invalid configuration and reuse of a
// Crawler that has already run.
func (c *Crawler) Run(ctx context.Context, seed string) (*Report, error) {
	if c.MaxPages <= 0 {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "max pages must be positive, got %d", c.MaxPages)
	}
	if c.Fetcher == nil || c.Store == nil {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "crawler requires a fetcher and a store")
	}
	norm, err := NewNormalizer(seed)
	if err != nil {
		return nil, err
	}
	if !c.state.CompareAndSwap(int32(StateIdle), int32(StateRunning)) {
		return nil, sitecrawl.Errorf(sitecrawl.EINVALID, "crawler is %s", c.State())
	}
	defer c.state.Store(int32(StateFinished))

	r := &run{
		Crawler:  c,
		norm:     norm,
		log:      c.logger(),
		frontier: c.newFrontier(norm.Seed()),
		links:    bloom.NewFilter(linkFilterExpected, linkFilterFalsePositiveRate),
	}
	return r.crawl(ctx), nil
}

func (c *Crawler) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.New(slog.DiscardHandler)
}

func (c *Crawler) newFrontier(seed string) sitecrawl.URLFrontier {
	if c.NewFrontier != nil {
		return c.NewFrontier(seed)
	}
	return NewFrontier(seed)
}

func (c *Crawler) extractor() sitecrawl.LinkExtractor {
	if c.Extractor != nil {
		return c.Extractor
	}
	return NewRegexpExtractor()
}

func (c *Crawler) timeout() time.Duration {
	if c.Timeout > 0 {
		return c.Timeout
	}
	return DefaultTimeout
}

func (c *Crawler) notify(event ProgressEvent) {
	if c.Progress != nil {
		c.Progress(event)
	}
}

// run holds the state of a single Run call.
type run struct {
	*Crawler
	norm     *Normalizer
	log      *slog.Logger
	robots   DisallowSet
	frontier sitecrawl.URLFrontier
	links    *bloom.Filter
	metrics  sitecrawl.Metrics
}

func (r *run) crawl(ctx context.Context) *Report {
	start := time.Now()
	seed := r.norm.Seed()

	robotsCtx, cancel := context.WithTimeout(ctx, r.timeout())
	r.robots = LoadRobots(robotsCtx, r.Fetcher, r.norm.Origin())
	cancel()
	r.log.Info("crawl started",
		"seed", seed,
		"max_pages", r.MaxPages,
		"disallowed_prefixes", r.robots.Len(),
	)
	r.notify(ProgressEvent{Type: ProgressStarted, URL: seed, Queued: r.frontier.Len()})

	var reason TerminationReason
	for {
		if ctx.Err() != nil {
			reason = ReasonCanceled
			break
		}
		if r.metrics.Saved >= r.MaxPages {
			reason = ReasonBudget
			break
		}
		url, ok := r.frontier.Dequeue()
		if !ok {
			reason = ReasonExhausted
			break
		}
		if r.Pacer != nil {
			if err := r.Pacer.Wait(ctx, r.norm.Host()); err != nil {
				reason = ReasonCanceled
				break
			}
		}

		outcome, err := r.visit(ctx, url)
		if interrupted(ctx, outcome) {
			reason = ReasonCanceled
			break
		}
		r.metrics.Record(outcome)

		event := ProgressEvent{
			Type:    ProgressCompleted,
			URL:     url,
			Outcome: outcome,
			Saved:   r.metrics.Saved,
			Queued:  r.frontier.Len(),
			Error:   err,
		}
		if outcome != sitecrawl.OutcomeSaved {
			event.Type = ProgressFailed
			r.log.Debug("page skipped", "url", url, "outcome", outcome.String(), "err", err)
		} else {
			r.log.Debug("page saved", "url", url, "saved", r.metrics.Saved, "queued", r.frontier.Len())
		}
		r.notify(event)
	}

	r.metrics.DistinctLinks = int(r.links.EstimatedCount())
	report := &Report{
		Seed:    seed,
		Metrics: r.metrics,
		Seen:    r.frontier.SeenCount(),
		Queued:  r.frontier.Len(),
		Elapsed: time.Since(start),
		Reason:  reason,
	}

	r.log.Info("crawl finished",
		"reason", string(reason),
		"saved", report.Saved,
		"seen", report.Seen,
		"queued", report.Queued,
		"fetch_errors", report.FetchErrors,
		"type_errors", report.TypeErrors,
		"duration", report.Elapsed,
	)
	r.notify(ProgressEvent{Type: ProgressFinished, Saved: report.Saved, Queued: report.Queued})

	return report
}

// interrupted reports whether a failed visit was cut short by
// cancellation rather than by the site or the store.
func interrupted(ctx context.Context, outcome sitecrawl.Outcome) bool {
	if ctx.Err() == nil {
		return false
	}
	return outcome == sitecrawl.OutcomeFetchFailed || outcome == sitecrawl.OutcomeStoreFailed
}

// visit fetches url, stores it if it is HTML and admits its links.
func (r *run) visit(ctx context.Context, url string) (sitecrawl.Outcome, error) {
	resp, err := r.fetch(ctx, url)
	if err != nil {
		return sitecrawl.OutcomeFetchFailed, err
	}
	if !resp.OK() {
		return sitecrawl.OutcomeFetchFailed, fmt.Errorf("HTTP %d for %s", resp.StatusCode, url)
	}
	if !resp.IsHTML() {
		return sitecrawl.OutcomeWrongContentType, fmt.Errorf("unsupported content type %q for %s", resp.ContentType, url)
	}

	page := &sitecrawl.Page{
		URL:       url,
		Content:   resp.Body,
		FetchedAt: time.Now().UTC(),
	}
	storeErr := r.Store.Save(ctx, page)

	// Links are admitted even when the store fails.
	r.admit(resp.Body)

	if storeErr != nil {
		return sitecrawl.OutcomeStoreFailed, storeErr
	}
	r.metrics.Bytes += len(resp.Body)
	return sitecrawl.OutcomeSaved, nil
}

func (r *run) fetch(ctx context.Context, url string) (*sitecrawl.Response, error) {
	timeout := r.timeout()
	fetchFn := func(ctx context.Context, url string) (*sitecrawl.Response, error) {
		ctx, cancel := context.WithTimeout(ctx, timeout)
		defer cancel()
		return r.Fetcher.Fetch(ctx, url)
	}
	logFn := func(format string, args ...any) {
		r.log.Debug(fmt.Sprintf(format, args...))
	}
	return FetchWithRetryDelays(ctx, url, fetchFn, logFn, r.RetryDelays)
}

// admit runs every link of body through the classifier and robots policy
// and offers survivors to the frontier, in document order.
func (r *run) admit(body string) {
	for raw := range r.extractor().ExtractLinks(body) {
		r.metrics.Discovered++
		r.links.Add(raw)

		canonical, err := r.norm.Normalize(raw)
		if err != nil {
			r.reject(err)
			continue
		}
		disallowed, err := r.robots.IsDisallowed(canonical)
		if err != nil {
			r.reject(err)
			continue
		}
		if disallowed {
			r.metrics.Disallowed++
			continue
		}
		if r.frontier.EnqueueIfNew(canonical) {
			r.metrics.Admitted++
		}
	}
}

func (r *run) reject(err error) {
	var rejection *sitecrawl.Rejection
	if errors.As(err, &rejection) {
		r.metrics.Reject(rejection.Reason)
		return
	}
	r.metrics.Reject(sitecrawl.RejectMalformed)
}
