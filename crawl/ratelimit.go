package crawl

import (
	"context"
	"sync"
	"time"

	"github.com/fwojciec/sitecrawl"
	"golang.org/x/time/rate"
)

var _ sitecrawl.Pacer = (*HostPacer)(nil)

// DefaultDelay is the pause enforced between requests to the same host.
const DefaultDelay = 50 * time.Millisecond

// HostPacer enforces a fixed minimum interval between requests to each host
// using token buckets with a burst of 1. The first request to a host is
// never delayed.
type HostPacer struct {
	mu       sync.Mutex
	limiters map[string]*rate.Limiter
	every    rate.Limit
}

// NewHostPacer creates a HostPacer that spaces requests by delay.
// A non-positive delay disables pacing.
func NewHostPacer(delay time.Duration) *HostPacer {
	every := rate.Inf
	if delay > 0 {
		every = rate.Every(delay)
	}
	return &HostPacer{
		limiters: make(map[string]*rate.Limiter),
		every:    every,
	}
}

// Wait blocks until the pause for host has elapsed.
// Returns an error if the context is canceled before the wait completes.
func (p *HostPacer) Wait(ctx context.Context, host string) error {
	p.mu.Lock()
	limiter, ok := p.limiters[host]
	if !ok {
		limiter = rate.NewLimiter(p.every, 1)
		p.limiters[host] = limiter
	}
	p.mu.Unlock()

	return limiter.Wait(ctx)
}
