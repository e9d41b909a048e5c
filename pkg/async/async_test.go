package async_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/buildkit/pkg/async"
)

func TestSubmit(t *testing.T) {
	t.Parallel()

	t.Run("returns result", func(t *testing.T) {
		t.Parallel()
		f := async.Go(context.Background(), func(context.Context) (int, error) {
			return 42, nil
		})

		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 42, res)
		assert.True(t, f.IsComplete())
	})

	t.Run("propagates error", func(t *testing.T) {
		t.Parallel()
		expected := errors.New("boom")
		f := async.Go(context.Background(), func(context.Context) (string, error) {
			return "", expected
		})

		_, err := f.Await()
		assert.ErrorIs(t, err, expected)
	})

	t.Run("pre-cancelled context skips work", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		var called atomic.Bool
		f := async.Submit(ctx, async.NewPool(1), func(context.Context) (int, error) {
			called.Store(true)
			return 1, nil
		})

		res, err := f.Await()
		assert.ErrorIs(t, err, context.Canceled)
		assert.Zero(t, res)
		assert.False(t, called.Load())
	})

	t.Run("started work is not interrupted", func(t *testing.T) {
		t.Parallel()
		ctx, cancel := context.WithCancel(context.Background())
		f := async.Go(ctx, func(context.Context) (int, error) {
			cancel()
			return 7, nil
		})

		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, 7, res)
	})

	t.Run("recovers panics", func(t *testing.T) {
		t.Parallel()
		f := async.Go(context.Background(), func(context.Context) (int, error) {
			panic("kaboom")
		})

		_, err := f.Await()
		require.ErrorIs(t, err, async.ErrPanic)
		assert.Contains(t, err.Error(), "kaboom")
	})
}

func TestPoolLimitsConcurrency(t *testing.T) {
	t.Parallel()

	const size = 2
	pool := async.NewPool(size)
	assert.Equal(t, size, pool.Size())

	var (
		running atomic.Int32
		peak    atomic.Int32
	)

	futures := make([]*async.Future[struct{}], 0, 10)
	for range 10 {
		futures = append(futures, async.Submit(context.Background(), pool, func(context.Context) (struct{}, error) {
			n := running.Add(1)
			for {
				p := peak.Load()
				if n <= p || peak.CompareAndSwap(p, n) {
					break
				}
			}
			time.Sleep(10 * time.Millisecond)
			running.Add(-1)
			return struct{}{}, nil
		}))
	}

	for _, f := range futures {
		_, err := f.Await()
		require.NoError(t, err)
	}
	assert.LessOrEqual(t, peak.Load(), int32(size))
}

func TestUnboundedPool(t *testing.T) {
	t.Parallel()

	assert.Equal(t, 0, async.NewPool(0).Size())

	var nilPool *async.Pool
	assert.Equal(t, 0, nilPool.Size())

	var wg sync.WaitGroup
	wg.Add(3)
	futures := make([]*async.Future[int], 0, 3)
	for i := range 3 {
		futures = append(futures, async.Submit(context.Background(), nilPool, func(context.Context) (int, error) {
			wg.Done()
			// every unit must be running at the same time for Wait to return
			wg.Wait()
			return i, nil
		}))
	}

	for i, f := range futures {
		res, err := f.Await()
		require.NoError(t, err)
		assert.Equal(t, i, res)
	}
}

func TestAwaitWithTimeout(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	f := async.Go(context.Background(), func(context.Context) (bool, error) {
		<-release
		return true, nil
	})

	_, err := f.AwaitWithTimeout(10 * time.Millisecond)
	assert.ErrorIs(t, err, async.ErrTimeout)
	assert.False(t, f.IsComplete())

	close(release)
	res, err := f.AwaitWithTimeout(time.Second)
	require.NoError(t, err)
	assert.True(t, res)
}

func TestAwaitContext(t *testing.T) {
	t.Parallel()

	release := make(chan struct{})
	defer close(release)
	f := async.Go(context.Background(), func(context.Context) (int, error) {
		<-release
		return 1, nil
	})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := f.AwaitContext(ctx)
	assert.ErrorIs(t, err, context.Canceled)

	select {
	case <-f.Done():
		t.Fatal("future must still be running")
	default:
	}
}
