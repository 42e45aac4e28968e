package crawl

import (
	"sync"

	"github.com/fwojciec/sitecrawl"
)

// Compile-time interface verification.
var _ sitecrawl.URLFrontier = (*Frontier)(nil)

// Frontier is an in-memory FIFO URL frontier with exact deduplication.
// It is safe for concurrent use by multiple goroutines; EnqueueIfNew is
// the single atomic check-and-add step.
type Frontier struct {
	mu    sync.Mutex
	seen  map[string]struct{}
	queue []string
}

// NewFrontier creates a Frontier whose seen-set and queue both start with seed.
func NewFrontier(seed string) *Frontier {
	return &Frontier{
		seen:  map[string]struct{}{seed: {}},
		queue: []string{seed},
	}
}

// EnqueueIfNew appends url to the queue unless it has been seen before.
// A URL is never queued twice, even after it has been dequeued.
func (f *Frontier) EnqueueIfNew(url string) bool {
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, ok := f.seen[url]; ok {
		return false
	}
	f.seen[url] = struct{}{}
	f.queue = append(f.queue, url)
	return true
}

// Dequeue removes and returns the oldest queued URL.
// The bool result is false if the queue is empty.
func (f *Frontier) Dequeue() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if len(f.queue) == 0 {
		return "", false
	}
	url := f.queue[0]
	f.queue[0] = ""
	f.queue = f.queue[1:]
	return url, true
}

// Len returns the number of URLs in the queue.
func (f *Frontier) Len() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queue)
}

// SeenCount returns the number of URLs ever enqueued, including the seed.
func (f *Frontier) SeenCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.seen)
}
