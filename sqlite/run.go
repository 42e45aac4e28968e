package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/google/uuid"
)

// Compile-time interface verification.
var _ sitecrawl.RunService = (*RunService)(nil)

const runColumns = `id, seed, status, reason, saved, discovered, admitted, fetch_errors, type_errors,
	store_errors, disallowed, rejected, distinct_links, bytes, seen, queued, elapsed_ms, started_at, finished_at`

// RunService implements sitecrawl.RunService using SQLite.
type RunService struct {
	db *DB
}

// NewRunService creates a new RunService.
func NewRunService(db *DB) *RunService {
	return &RunService{db: db}
}

// CreateRun records the start of a crawl with a generated ID.
func (s *RunService) CreateRun(ctx context.Context, run *sitecrawl.Run) error {
	if err := run.Validate(); err != nil {
		return err
	}

	run.ID = uuid.New().String()
	run.Status = sitecrawl.RunRunning
	run.StartedAt = time.Now().UTC()

	_, err := s.db.ExecContext(ctx, `
		INSERT INTO runs (id, seed, status, started_at)
		VALUES (?, ?, ?, ?)
	`, run.ID, run.Seed, string(run.Status), formatTime(run.StartedAt))

	return err
}

// FinishRun stores the counters, status and reason of run.
func (s *RunService) FinishRun(ctx context.Context, run *sitecrawl.Run) error {
	rejected, err := json.Marshal(run.Rejected)
	if err != nil {
		return fmt.Errorf("failed to encode rejected counts: %w", err)
	}
	if run.FinishedAt.IsZero() {
		run.FinishedAt = time.Now().UTC()
	}

	result, err := s.db.ExecContext(ctx, `
		UPDATE runs
		SET status = ?, reason = ?, saved = ?, discovered = ?, admitted = ?, fetch_errors = ?,
			type_errors = ?, store_errors = ?, disallowed = ?, rejected = ?, distinct_links = ?,
			bytes = ?, seen = ?, queued = ?, elapsed_ms = ?, finished_at = ?
		WHERE id = ?
	`, string(run.Status), run.Reason, run.Saved, run.Discovered, run.Admitted, run.FetchErrors,
		run.TypeErrors, run.StoreErrors, run.Disallowed, string(rejected), run.DistinctLinks,
		run.Bytes, run.Seen, run.Queued, run.Elapsed.Milliseconds(), formatTime(run.FinishedAt),
		run.ID)
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

// FindRunByID retrieves a run by ID.
func (s *RunService) FindRunByID(ctx context.Context, id string) (*sitecrawl.Run, error) {
	run, err := scanRun(s.db.QueryRowContext(ctx, "SELECT "+runColumns+" FROM runs WHERE id = ?", id))
	if err == sql.ErrNoRows {
		return nil, sitecrawl.Errorf(sitecrawl.ENOTFOUND, "run not found")
	}
	return run, err
}

// FindRuns retrieves runs matching the filter, newest first.
func (s *RunService) FindRuns(ctx context.Context, filter sitecrawl.RunFilter) ([]*sitecrawl.Run, error) {
	var query strings.Builder
	var args []any

	query.WriteString("SELECT " + runColumns + " FROM runs WHERE 1=1")

	if filter.ID != nil {
		query.WriteString(" AND id = ?")
		args = append(args, *filter.ID)
	}
	if filter.Seed != nil {
		query.WriteString(" AND seed = ?")
		args = append(args, *filter.Seed)
	}
	if filter.Status != nil {
		query.WriteString(" AND status = ?")
		args = append(args, string(*filter.Status))
	}

	query.WriteString(" ORDER BY started_at DESC, rowid DESC")
	appendPagination(&query, &args, filter.Limit, filter.Offset)

	rows, err := s.db.QueryContext(ctx, query.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var runs []*sitecrawl.Run
	for rows.Next() {
		run, err := scanRun(rows)
		if err != nil {
			return nil, err
		}
		runs = append(runs, run)
	}

	return runs, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRun(row scanner) (*sitecrawl.Run, error) {
	var run sitecrawl.Run
	var status, rejected, startedAt, finishedAt string
	var elapsedMS int64

	if err := row.Scan(&run.ID, &run.Seed, &status, &run.Reason, &run.Saved, &run.Discovered,
		&run.Admitted, &run.FetchErrors, &run.TypeErrors, &run.StoreErrors, &run.Disallowed,
		&rejected, &run.DistinctLinks, &run.Bytes, &run.Seen, &run.Queued, &elapsedMS,
		&startedAt, &finishedAt); err != nil {
		return nil, err
	}

	run.Status = sitecrawl.RunStatus(status)
	run.Elapsed = time.Duration(elapsedMS) * time.Millisecond
	if err := json.Unmarshal([]byte(rejected), &run.Rejected); err != nil {
		return nil, fmt.Errorf("failed to decode rejected counts: %w", err)
	}

	var err error
	if run.StartedAt, err = parseTime(startedAt, "started_at"); err != nil {
		return nil, err
	}
	if run.FinishedAt, err = parseTime(finishedAt, "finished_at"); err != nil {
		return nil, err
	}

	return &run, nil
}
