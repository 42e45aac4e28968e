package mock

import (
	"context"

	"github.com/fwojciec/sitecrawl"
)

var _ sitecrawl.RunService = (*RunService)(nil)

// RunService is a mock implementation of sitecrawl.RunService.
type RunService struct {
	CreateRunFn   func(ctx context.Context, run *sitecrawl.Run) error
	FinishRunFn   func(ctx context.Context, run *sitecrawl.Run) error
	FindRunByIDFn func(ctx context.Context, id string) (*sitecrawl.Run, error)
	FindRunsFn    func(ctx context.Context, filter sitecrawl.RunFilter) ([]*sitecrawl.Run, error)
}

func (s *RunService) CreateRun(ctx context.Context, run *sitecrawl.Run) error {
	return s.CreateRunFn(ctx, run)
}

func (s *RunService) FinishRun(ctx context.Context, run *sitecrawl.Run) error {
	return s.FinishRunFn(ctx, run)
}

func (s *RunService) FindRunByID(ctx context.Context, id string) (*sitecrawl.Run, error) {
	return s.FindRunByIDFn(ctx, id)
}

func (s *RunService) FindRuns(ctx context.Context, filter sitecrawl.RunFilter) ([]*sitecrawl.Run, error) {
	return s.FindRunsFn(ctx, filter)
}
