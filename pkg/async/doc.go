// Package async provides generic futures and a bounded task pool for running
// units of work off the calling goroutine.
//
// A Future represents the eventual result of a unit of work. Submit schedules a
// function on a Pool and immediately returns a *Future; the caller waits with
// Await, AwaitContext or AwaitWithTimeout, or polls with IsComplete.
//
// A Pool limits how many submitted units run at once. It is backed by a weighted
// semaphore from golang.org/x/sync; a nil or zero-sized pool is unbounded and Go
// is a shorthand for submitting to it.
//
// # Usage
//
//	pool := async.NewPool(4)
//	f := async.Submit(ctx, pool, func(ctx context.Context) (string, error) {
//	    return fetch(ctx)
//	})
//
//	// do other work …
//	res, err := f.Await()
//
// # Cancellation
//
// Submit checks ctx once, when the unit is about to start. A unit whose context is
// already done never runs and its future completes with ctx.Err(). A unit that has
// started is never interrupted; the function receives ctx and may observe it itself.
//
// # Error Handling
//
// Futures carry the error returned by the submitted function. Panics are recovered
// and reported as ErrPanic; AwaitWithTimeout returns ErrTimeout when it gives up.
package async
