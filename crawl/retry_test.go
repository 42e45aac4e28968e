package crawl_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFetchWithRetryDelays(t *testing.T) {
	t.Parallel()

	t.Run("returns the first successful response", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (*sitecrawl.Response, error) {
			calls++
			return &sitecrawl.Response{StatusCode: 200}, nil
		}

		resp, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/a", fetch, nil, []time.Duration{time.Millisecond})

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 1, calls)
	})

	t.Run("does not retry HTTP error statuses", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (*sitecrawl.Response, error) {
			calls++
			return &sitecrawl.Response{StatusCode: 503}, nil
		}

		resp, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/a", fetch, nil, []time.Duration{time.Millisecond})

		require.NoError(t, err)
		assert.Equal(t, 503, resp.StatusCode)
		assert.Equal(t, 1, calls)
	})

	t.Run("retries transport errors and logs each retry", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (*sitecrawl.Response, error) {
			calls++
			if calls < 3 {
				return nil, errors.New("connection reset")
			}
			return &sitecrawl.Response{StatusCode: 200}, nil
		}
		var logs []string
		logger := func(format string, args ...any) { logs = append(logs, format) }

		resp, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/a", fetch, logger, []time.Duration{time.Millisecond, time.Millisecond})

		require.NoError(t, err)
		assert.Equal(t, 200, resp.StatusCode)
		assert.Equal(t, 3, calls)
		assert.Len(t, logs, 2)
	})

	t.Run("returns the last error when attempts run out", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (*sitecrawl.Response, error) {
			calls++
			return nil, errors.New("connection refused")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/a", fetch, nil, []time.Duration{time.Millisecond})

		require.EqualError(t, err, "connection refused")
		assert.Equal(t, 2, calls)
	})

	t.Run("nil delays means a single attempt", func(t *testing.T) {
		t.Parallel()

		calls := 0
		fetch := func(context.Context, string) (*sitecrawl.Response, error) {
			calls++
			return nil, errors.New("connection refused")
		}

		_, err := crawl.FetchWithRetryDelays(context.Background(), "https://example.com/a", fetch, nil, nil)

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("stops waiting when the context is canceled", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		fetch := func(context.Context, string) (*sitecrawl.Response, error) {
			cancel()
			return nil, errors.New("connection refused")
		}

		_, err := crawl.FetchWithRetryDelays(ctx, "https://example.com/a", fetch, nil, []time.Duration{time.Hour})

		assert.ErrorIs(t, err, context.Canceled)
	})

	t.Run("backoff doubles from one second", func(t *testing.T) {
		t.Parallel()

		assert.Equal(t, []time.Duration{time.Second, 2 * time.Second, 4 * time.Second}, crawl.BackoffDelays(3))
		assert.Equal(t, []time.Duration{time.Second}, crawl.BackoffDelays(1))
		assert.Nil(t, crawl.BackoffDelays(0))
		assert.Nil(t, crawl.BackoffDelays(-1))
	})
}
