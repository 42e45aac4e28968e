package sqlite

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/sitecrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var (
	_ sitecrawl.PageStore   = (*PageStore)(nil)
	_ sitecrawl.PageService = (*PageService)(nil)
)

// hashContent computes xxHash of content and returns hex string.
func hashContent(content string) string {
	return fmt.Sprintf("%016x", xxhash.Sum64String(content))
}

// PageStore implements sitecrawl.PageStore for a single run.
// Pages are written as they are saved; Abort deletes them again.
type PageStore struct {
	db    *DB
	runID string

	mu       sync.Mutex
	position int
}

// NewPageStore creates a PageStore that attaches pages to runID.
// The run must already exist.
func NewPageStore(db *DB, runID string) *PageStore {
	return &PageStore{db: db, runID: runID}
}

// RunID returns the run the store writes to.
func (s *PageStore) RunID() string {
	return s.runID
}

// Save inserts page with its position in save order.
func (s *PageStore) Save(ctx context.Context, page *sitecrawl.Page) error {
	if err := page.Validate(); err != nil {
		return err
	}

	fetchedAt := page.FetchedAt
	if fetchedAt.IsZero() {
		fetchedAt = time.Now().UTC()
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO pages (id, run_id, url, position, content, content_hash, fetched_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`, uuid.New().String(), s.runID, page.URL, s.position, page.Content, hashContent(page.Content),
		formatTime(fetchedAt))
	if err != nil {
		return err
	}

	s.position++
	return nil
}

// Commit marks the run as committed.
func (s *PageStore) Commit() error {
	return s.setStatus(context.Background(), sitecrawl.RunCommitted)
}

// Abort deletes the pages of the run and marks it aborted.
func (s *PageStore) Abort() error {
	ctx := context.Background()
	if _, err := s.db.ExecContext(ctx, "DELETE FROM pages WHERE run_id = ?", s.runID); err != nil {
		return err
	}
	return s.setStatus(ctx, sitecrawl.RunAborted)
}

func (s *PageStore) setStatus(ctx context.Context, status sitecrawl.RunStatus) error {
	result, err := s.db.ExecContext(ctx, "UPDATE runs SET status = ? WHERE id = ?", string(status), s.runID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return sitecrawl.Errorf(sitecrawl.ENOTFOUND, "run not found")
	}
	return nil
}

// PageService implements sitecrawl.PageService using SQLite.
type PageService struct {
	db *DB
}

// NewPageService creates a new PageService.
func NewPageService(db *DB) *PageService {
	return &PageService{db: db}
}

// FindPages retrieves pages matching the filter in save order.
func (s *PageService) FindPages(ctx context.Context, filter sitecrawl.PageFilter) ([]*sitecrawl.Page, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT url, content, fetched_at FROM pages WHERE 1=1")

	if filter.RunID != nil {
		query.WriteString(" AND run_id = ?")
		args = append(args, *filter.RunID)
	}
	if filter.URL != nil {
		query.WriteString(" AND url = ?")
		args = append(args, *filter.URL)
	}

	query.WriteString(" ORDER BY run_id, position")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var pages []*sitecrawl.Page
	for rows.Next() {
		var page sitecrawl.Page
		var fetchedAt string

		if err := rows.Scan(&page.URL, &page.Content, &fetchedAt); err != nil {
			return nil, err
		}
		if page.FetchedAt, err = parseTime(fetchedAt, "fetched_at"); err != nil {
			return nil, err
		}

		pages = append(pages, &page)
	}

	return pages, rows.Err()
}
