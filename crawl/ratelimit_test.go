package crawl_test

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHostPacer(t *testing.T) {
	t.Parallel()

	t.Run("implements sitecrawl.Pacer interface", func(t *testing.T) {
		t.Parallel()
		var _ sitecrawl.Pacer = crawl.NewHostPacer(crawl.DefaultDelay)
	})

	t.Run("first request is immediate", func(t *testing.T) {
		t.Parallel()

		pacer := crawl.NewHostPacer(time.Second)

		start := time.Now()
		err := pacer.Wait(context.Background(), "example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "first request should be immediate")
	})

	t.Run("spaces requests to the same host by the delay", func(t *testing.T) {
		t.Parallel()

		pacer := crawl.NewHostPacer(100 * time.Millisecond)

		err := pacer.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		start := time.Now()
		err = pacer.Wait(context.Background(), "example.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.GreaterOrEqual(t, elapsed, 80*time.Millisecond, "should wait for the delay")
	})

	t.Run("different hosts have independent pauses", func(t *testing.T) {
		t.Parallel()

		pacer := crawl.NewHostPacer(time.Second)

		err := pacer.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		start := time.Now()
		err = pacer.Wait(context.Background(), "other.com")
		elapsed := time.Since(start)

		require.NoError(t, err)
		assert.Less(t, elapsed, 50*time.Millisecond, "different host should not wait")
	})

	t.Run("zero delay never waits", func(t *testing.T) {
		t.Parallel()

		pacer := crawl.NewHostPacer(0)

		start := time.Now()
		for range 10 {
			require.NoError(t, pacer.Wait(context.Background(), "example.com"))
		}
		assert.Less(t, time.Since(start), 50*time.Millisecond)
	})

	t.Run("respects context cancellation", func(t *testing.T) {
		t.Parallel()

		pacer := crawl.NewHostPacer(time.Second)

		err := pacer.Wait(context.Background(), "example.com")
		require.NoError(t, err)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err = pacer.Wait(ctx, "example.com")
		assert.Error(t, err, "should fail when context times out")
	})

	t.Run("concurrent waits all complete", func(t *testing.T) {
		t.Parallel()

		pacer := crawl.NewHostPacer(10 * time.Millisecond)

		var wg sync.WaitGroup
		var completed atomic.Int32
		for range 5 {
			wg.Add(1)
			go func() {
				defer wg.Done()
				if err := pacer.Wait(context.Background(), "example.com"); err == nil {
					completed.Add(1)
				}
			}()
		}

		wg.Wait()
		assert.Equal(t, int32(5), completed.Load(), "all requests should complete")
	})
}
