package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.Fetcher = (*Fetcher)(nil)

// Fetcher is a mock implementation of sitecrawl.Fetcher.
type Fetcher struct {
	FetchFn func(ctx context.Context, url string) (*sitecrawl.Response, error)
	CloseFn func() error
}

func (f *Fetcher) Fetch(ctx context.Context, url string) (*sitecrawl.Response, error) {
	return f.FetchFn(ctx, url)
}

func (f *Fetcher) Close() error {
	return f.CloseFn()
}
