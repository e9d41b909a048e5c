package async

import (
	"context"
	"fmt"

	"golang.org/x/sync/semaphore"
)

// Pool bounds the number of units of work running at the same time.
// A nil *Pool, or one created with a non-positive size, is unbounded:
// every submitted unit gets its own goroutine immediately.
type Pool struct {
	sem  *semaphore.Weighted
	size int
}

// NewPool creates a pool that runs at most size units concurrently.
func NewPool(size int) *Pool {
	if size <= 0 {
		return &Pool{}
	}
	return &Pool{sem: semaphore.NewWeighted(int64(size)), size: size}
}

// Size returns the concurrency limit, or 0 for an unbounded pool.
func (p *Pool) Size() int {
	if p == nil {
		return 0
	}
	return p.size
}

func (p *Pool) acquire(ctx context.Context) error {
	if p == nil || p.sem == nil {
		return ctx.Err()
	}
	if err := p.sem.Acquire(ctx, 1); err != nil {
		return err
	}
	// Acquire may succeed on a context that is already done.
	if err := ctx.Err(); err != nil {
		p.sem.Release(1)
		return err
	}
	return nil
}

func (p *Pool) release() {
	if p == nil || p.sem == nil {
		return
	}
	p.sem.Release(1)
}

// Submit schedules fn on the pool and returns a Future for its result.
//
// If ctx is already done when a slot becomes available, fn is never called and the
// future completes with ctx.Err(). Once fn has started it runs to completion; cancelling
// ctx afterwards is only visible to fn itself. A panic inside fn is recovered and
// reported as ErrPanic.
func Submit[U any](ctx context.Context, p *Pool, fn func(context.Context) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		defer close(f.done)

		if err := p.acquire(ctx); err != nil {
			f.err = err
			return
		}
		defer p.release()

		f.result, f.err = run(ctx, fn)
	}()

	return f
}

// Go runs fn on its own goroutine. It is Submit on an unbounded pool.
func Go[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	return Submit(ctx, nil, fn)
}

func run[U any](ctx context.Context, fn func(context.Context) (U, error)) (res U, err error) {
	defer func() {
		if r := recover(); r != nil {
			var zero U
			res = zero
			err = fmt.Errorf("%w: %v", ErrPanic, r)
		}
	}()
	return fn(ctx)
}
