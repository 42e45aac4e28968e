package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.URLFrontier = (*URLFrontier)(nil)

// URLFrontier is a mock implementation of sitecrawl.URLFrontier.
type URLFrontier struct {
	EnqueueIfNewFn func(url string) bool
	DequeueFn      func() (string, bool)
	LenFn          func() int
	SeenCountFn    func() int
}

func (f *URLFrontier) EnqueueIfNew(url string) bool {
	return f.EnqueueIfNewFn(url)
}

func (f *URLFrontier) Dequeue() (string, bool) {
	return f.DequeueFn()
}

func (f *URLFrontier) Len() int {
	return f.LenFn()
}

func (f *URLFrontier) SeenCount() int {
	return f.SeenCountFn()
}

var _ sitecrawl.Pacer = (*Pacer)(nil)

// Pacer is a mock implementation of sitecrawl.Pacer.
type Pacer struct {
	WaitFn func(ctx context.Context, host string) error
}

func (p *Pacer) Wait(ctx context.Context, host string) error {
	return p.WaitFn(ctx, host)
}
