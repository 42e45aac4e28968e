package slog_test

import (
	"bytes"
	"context"
	"errors"
	"log/slog"
	"testing"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/mock"
	scslog "github.com/fwojciec/sitecrawl/slog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggingRunService(t *testing.T) {
	t.Parallel()

	t.Run("logs created run ID", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RunService{
			CreateRunFn: func(_ context.Context, run *sitecrawl.Run) error {
				run.ID = "run-1"
				return nil
			},
		}

		svc := scslog.NewLoggingRunService(inner, logger)
		err := svc.CreateRun(context.Background(), &sitecrawl.Run{Seed: "https://example.com"})

		require.NoError(t, err)
		output := buf.String()
		assert.Contains(t, output, "run created")
		assert.Contains(t, output, "id=run-1")
		assert.Contains(t, output, "seed=https://example.com")
	})

	t.Run("logs finish status and error", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RunService{
			FinishRunFn: func(context.Context, *sitecrawl.Run) error {
				return errors.New("database locked")
			},
		}

		svc := scslog.NewLoggingRunService(inner, logger)
		run := &sitecrawl.Run{ID: "run-1", Status: sitecrawl.RunCommitted, Reason: "budget"}
		err := svc.FinishRun(context.Background(), run)

		require.Error(t, err)
		output := buf.String()
		assert.Contains(t, output, "run finished")
		assert.Contains(t, output, "status=committed")
		assert.Contains(t, output, "reason=budget")
		assert.Contains(t, output, "err=\"database locked\"")
	})

	t.Run("delegates queries without logging", func(t *testing.T) {
		t.Parallel()

		var buf bytes.Buffer
		logger := slog.New(slog.NewTextHandler(&buf, nil))
		inner := &mock.RunService{
			FindRunByIDFn: func(_ context.Context, id string) (*sitecrawl.Run, error) {
				return &sitecrawl.Run{ID: id}, nil
			},
			FindRunsFn: func(context.Context, sitecrawl.RunFilter) ([]*sitecrawl.Run, error) {
				return []*sitecrawl.Run{{ID: "a"}, {ID: "b"}}, nil
			},
		}

		svc := scslog.NewLoggingRunService(inner, logger)
		run, err := svc.FindRunByID(context.Background(), "a")
		require.NoError(t, err)
		assert.Equal(t, "a", run.ID)

		runs, err := svc.FindRuns(context.Background(), sitecrawl.RunFilter{})
		require.NoError(t, err)
		assert.Len(t, runs, 2)
		assert.Empty(t, buf.String())
	})
}
