package sitecrawl

import (
	"context"
	"time"
)

// Page is a fetched HTML page that is about to enter the corpus.
type Page struct {
	URL       string
	Content   string // Raw HTML
	FetchedAt time.Time
}

// Validate returns an error if the page contains invalid fields.
func (p *Page) Validate() error {
	if p.URL == "" {
		return Errorf(EINVALID, "page URL required")
	}
	return nil
}

// PageStore persists pages with atomic semantics.
// Save writes to a pending location; Commit makes changes permanent;
// Abort discards pending changes.
type PageStore interface {
	Save(ctx context.Context, page *Page) error
	Commit() error
	Abort() error
}

// PageService represents a service for reading stored pages.
type PageService interface {
	// FindPages retrieves pages matching the filter in save order.
	FindPages(ctx context.Context, filter PageFilter) ([]*Page, error)
}

// PageFilter represents a filter for FindPages.
type PageFilter struct {
	RunID *string `json:"runId"`
	URL   *string `json:"url"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
