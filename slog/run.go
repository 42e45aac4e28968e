package slog

import (
	"context"
	"log/slog"
	"time"

	"github.com/fwojciec/sitecrawl"
)

// Ensure LoggingRunService implements sitecrawl.RunService.
var _ sitecrawl.RunService = (*LoggingRunService)(nil)

// LoggingRunService wraps a RunService with logging of the writes.
type LoggingRunService struct {
	next   sitecrawl.RunService
	logger *slog.Logger
}

// NewLoggingRunService creates a new LoggingRunService.
func NewLoggingRunService(next sitecrawl.RunService, logger *slog.Logger) *LoggingRunService {
	return &LoggingRunService{next: next, logger: logger}
}

// CreateRun delegates to the wrapped service and logs the new run ID.
func (s *LoggingRunService) CreateRun(ctx context.Context, run *sitecrawl.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("run created",
			"id", run.ID,
			"seed", run.Seed,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.CreateRun(ctx, run)
}

// FinishRun delegates to the wrapped service and logs the final status.
func (s *LoggingRunService) FinishRun(ctx context.Context, run *sitecrawl.Run) (err error) {
	defer func(begin time.Time) {
		s.logger.Info("run finished",
			"id", run.ID,
			"status", string(run.Status),
			"reason", run.Reason,
			"saved", run.Saved,
			"duration", time.Since(begin),
			"err", err,
		)
	}(time.Now())
	return s.next.FinishRun(ctx, run)
}

// FindRunByID delegates to the wrapped service.
func (s *LoggingRunService) FindRunByID(ctx context.Context, id string) (*sitecrawl.Run, error) {
	return s.next.FindRunByID(ctx, id)
}

// FindRuns delegates to the wrapped service.
func (s *LoggingRunService) FindRuns(ctx context.Context, filter sitecrawl.RunFilter) ([]*sitecrawl.Run, error) {
	return s.next.FindRuns(ctx, filter)
}
