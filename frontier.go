package sitecrawl

import "context"

// URLFrontier manages the crawl queue with deduplication.
// Implementations must make EnqueueIfNew a single atomic step so that
// a URL is queued at most once for the lifetime of a run.
type URLFrontier interface {
	// EnqueueIfNew records url as seen and appends it to the queue.
	// Returns false if the URL has been seen before.
	EnqueueIfNew(url string) bool

	// Dequeue returns the oldest queued URL.
	// Returns false if the queue is empty.
	Dequeue() (string, bool)

	// Len returns the number of URLs still queued.
	Len() int

	// SeenCount returns the number of URLs ever enqueued.
	SeenCount() int
}

// Pacer throttles requests between crawl iterations.
type Pacer interface {
	// Wait blocks until the next request to host may proceed.
	// Returns an error if the context is canceled.
	Wait(ctx context.Context, host string) error
}
