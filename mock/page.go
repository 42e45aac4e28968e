package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.PageStore = (*PageStore)(nil)

// PageStore is a mock implementation of sitecrawl.PageStore.
type PageStore struct {
	SaveFn   func(ctx context.Context, page *sitecrawl.Page) error
	CommitFn func() error
	AbortFn  func() error
}

func (s *PageStore) Save(ctx context.Context, page *sitecrawl.Page) error {
	return s.SaveFn(ctx, page)
}

func (s *PageStore) Commit() error {
	return s.CommitFn()
}

func (s *PageStore) Abort() error {
	return s.AbortFn()
}

var _ sitecrawl.PageService = (*PageService)(nil)

// PageService is a mock implementation of sitecrawl.PageService.
type PageService struct {
	FindPagesFn func(ctx context.Context, filter sitecrawl.PageFilter) ([]*sitecrawl.Page, error)
}

func (s *PageService) FindPages(ctx context.Context, filter sitecrawl.PageFilter) ([]*sitecrawl.Page, error) {
	return s.FindPagesFn(ctx, filter)
}
