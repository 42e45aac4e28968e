package sitecrawl

import (
	"context"
	"time"
)

// RunStatus is the lifecycle stage of a recorded crawl.
type RunStatus string

const (
	RunRunning   RunStatus = "running"
	RunCommitted RunStatus = "committed"
	RunAborted   RunStatus = "aborted"
)

// Run is the history record of one crawl.
type Run struct {
	ID     string    `json:"id"`
	Seed   string    `json:"seed"`
	Status RunStatus `json:"status"`

	// Reason is why the crawl stopped. Empty while running.
	Reason string `json:"reason"`

	Metrics `json:"metrics"`
	Seen    int           `json:"seen"`
	Queued  int           `json:"queued"`
	Elapsed time.Duration `json:"elapsed"`

	StartedAt  time.Time `json:"startedAt"`
	FinishedAt time.Time `json:"finishedAt"`
}

// Validate returns an error if the run contains invalid fields.
func (r *Run) Validate() error {
	if r.Seed == "" {
		return Errorf(EINVALID, "run seed required")
	}
	return nil
}

// RunService represents a service for recording crawl history.
type RunService interface {
	// CreateRun records the start of a crawl.
	CreateRun(ctx context.Context, run *Run) error

	// FinishRun stores the final counters, status and reason of a run.
	// Returns ENOTFOUND if run does not exist.
	FinishRun(ctx context.Context, run *Run) error

	// FindRunByID retrieves a run by ID.
	// Returns ENOTFOUND if run does not exist.
	FindRunByID(ctx context.Context, id string) (*Run, error)

	// FindRuns retrieves runs matching the filter, newest first.
	FindRuns(ctx context.Context, filter RunFilter) ([]*Run, error)
}

// RunFilter represents a filter for FindRuns.
type RunFilter struct {
	ID     *string    `json:"id"`
	Seed   *string    `json:"seed"`
	Status *RunStatus `json:"status"`

	Offset int `json:"offset"`
	Limit  int `json:"limit"`
}
