package cache

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func (f *fakeClock) Now() time.Time {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.now
}

func (f *fakeClock) Advance(d time.Duration) {
	f.mu.Lock()
	f.now = f.now.Add(d)
	f.mu.Unlock()
}

func newTestCache(ttl time.Duration) (*Cache[int], *fakeClock) {
	clock := &fakeClock{now: time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)}
	c := New[int](ttl)
	c.now = clock.Now
	return c, clock
}

func counter() (LoadFunc[int], *atomic.Int32) {
	var calls atomic.Int32
	return func(context.Context) int {
		return int(calls.Add(1))
	}, &calls
}

func TestGet_MemoizesWithinTTL(t *testing.T) {
	c, clock := newTestCache(5 * time.Second)
	load, calls := counter()
	ctx := context.Background()

	assert.Equal(t, 1, c.Get(ctx, "apps", load))
	assert.Equal(t, 1, c.Get(ctx, "apps", load))
	assert.Equal(t, int32(1), calls.Load())

	clock.Advance(5 * time.Second)
	assert.Equal(t, 2, c.Get(ctx, "apps", load), "entry expires at the TTL boundary")
}

func TestGet_KeysAreIndependent(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	load, calls := counter()
	ctx := context.Background()

	c.Get(ctx, "apps|blue", load)
	c.Get(ctx, "apps|green", load)
	assert.Equal(t, int32(2), calls.Load())
	assert.Equal(t, 2, c.Len())
}

func TestGet_ZeroTTLDoesNotRetain(t *testing.T) {
	c, _ := newTestCache(0)
	load, calls := counter()
	ctx := context.Background()

	c.Get(ctx, "apps", load)
	c.Get(ctx, "apps", load)
	assert.Equal(t, int32(2), calls.Load())
	assert.Zero(t, c.Len())
}

func TestInvalidate(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	load, calls := counter()
	ctx := context.Background()

	c.Get(ctx, "apps", load)
	c.Invalidate()
	assert.Zero(t, c.Len())
	assert.Equal(t, 2, c.Get(ctx, "apps", load))
	assert.Equal(t, int32(2), calls.Load())
}

func TestGet_CollapsesConcurrentMisses(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	release := make(chan struct{})
	var calls atomic.Int32
	load := func(context.Context) int {
		calls.Add(1)
		<-release
		return 42
	}

	const callers = 8
	var started, done sync.WaitGroup
	results := make([]int, callers)
	started.Add(callers)
	done.Add(callers)
	for i := 0; i < callers; i++ {
		go func() {
			defer done.Done()
			started.Done()
			results[i] = c.Get(context.Background(), "apps", load)
		}()
	}
	started.Wait()
	// Give the goroutines a moment to join the flight before releasing it.
	require.Eventually(t, func() bool { return calls.Load() == 1 }, time.Second, time.Millisecond)
	time.Sleep(20 * time.Millisecond)
	close(release)
	done.Wait()

	for _, r := range results {
		assert.Equal(t, 42, r)
	}
	assert.LessOrEqual(t, calls.Load(), int32(2))
}

func TestInvalidate_DetachesInFlightLoad(t *testing.T) {
	c, _ := newTestCache(time.Minute)
	release := make(chan struct{})
	inFlight := make(chan struct{})

	go c.Get(context.Background(), "apps", func(context.Context) int {
		close(inFlight)
		<-release
		return 1
	})
	<-inFlight

	c.Invalidate()
	fresh := c.Get(context.Background(), "apps", func(context.Context) int { return 2 })
	assert.Equal(t, 2, fresh, "a read after Invalidate must not join the old flight")

	close(release)
	require.Eventually(t, func() bool {
		return c.Get(context.Background(), "apps", func(context.Context) int { return 3 }) == 2
	}, time.Second, 5*time.Millisecond, "the stale load must not overwrite the fresh entry")
}
