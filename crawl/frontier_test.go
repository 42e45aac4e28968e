package crawl_test

import (
	"fmt"
	"sync"
	"testing"

	"github.com/fwojciec/sitecrawl"
	"github.com/fwojciec/sitecrawl/crawl"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var _ sitecrawl.URLFrontier = (*crawl.Frontier)(nil)

func TestFrontier_starts_with_the_seed(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier("https://example.com/docs")

	assert.Equal(t, 1, f.Len())
	assert.Equal(t, 1, f.SeenCount())

	url, ok := f.Dequeue()
	require.True(t, ok)
	assert.Equal(t, "https://example.com/docs", url)
}

func TestFrontier_EnqueueIfNew_is_idempotent(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier("https://example.com/docs")

	assert.True(t, f.EnqueueIfNew("https://example.com/a"), "first enqueue should succeed")
	assert.False(t, f.EnqueueIfNew("https://example.com/a"), "duplicate URL should be rejected")
	assert.False(t, f.EnqueueIfNew("https://example.com/docs"), "seed is already seen")

	assert.Equal(t, 2, f.Len())
	assert.Equal(t, 2, f.SeenCount())
}

func TestFrontier_Dequeue_is_FIFO(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier("https://example.com/0")
	for i := 1; i <= 3; i++ {
		f.EnqueueIfNew(fmt.Sprintf("https://example.com/%d", i))
	}

	for i := 0; i <= 3; i++ {
		url, ok := f.Dequeue()
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("https://example.com/%d", i), url)
	}

	_, ok := f.Dequeue()
	assert.False(t, ok, "should return false when empty")
}

func TestFrontier_never_requeues_a_dequeued_URL(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier("https://example.com/docs")
	_, ok := f.Dequeue()
	require.True(t, ok)

	assert.False(t, f.EnqueueIfNew("https://example.com/docs"))
	assert.Equal(t, 0, f.Len())
	assert.Equal(t, 1, f.SeenCount())
}

func TestFrontier_concurrent_enqueue_admits_each_URL_once(t *testing.T) {
	t.Parallel()

	f := crawl.NewFrontier("https://example.com/docs")

	var wg sync.WaitGroup
	var mu sync.Mutex
	admitted := 0
	for range 8 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for i := range 100 {
				if f.EnqueueIfNew(fmt.Sprintf("https://example.com/page%d", i)) {
					mu.Lock()
					admitted++
					mu.Unlock()
				}
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 100, admitted)
	assert.Equal(t, 101, f.Len())
	assert.Equal(t, 101, f.SeenCount())
}
