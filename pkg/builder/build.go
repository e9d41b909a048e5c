package builder

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/dmitrymomot/buildkit/pkg/async"
	"github.com/dmitrymomot/buildkit/pkg/logger"
	"github.com/dmitrymomot/buildkit/pkg/metrics"
)

// Build runs the seed and then every queued modification in order.
//
// Cancellation is checked before the seed and before each modification. When
// it is observed before the seed, the zero R is returned and the seed never
// runs. Later, the partially built object is returned together with an error
// matching both ErrOperationCancelled and the context's error. Work already
// running is never interrupted. A nil bc is replaced with a fresh default
// context.
func (b *Builder[R]) Build(bc *Context) (R, error) {
	var zero R
	if b == nil || b.seed == nil {
		return zero, ErrNilSeed
	}
	bc = normalize(bc)
	r := b.start(bc, metrics.ModeSync)

	if err := r.checkpoint(-1); err != nil {
		return zero, r.finish(err)
	}
	obj := b.seed(bc)

	for i, step := range b.steps {
		if err := r.checkpoint(i); err != nil {
			return obj, r.finish(err)
		}
		began := time.Now()
		obj = step(obj, bc)
		r.stepDone(began)
	}
	return obj, r.finish(nil)
}

// BuildAsync runs the same pipeline as Build without blocking the caller. The
// seed call and each modification are dispatched to the context's pool as
// separate units, each awaited before the next is submitted. A panic inside a
// unit is reported through the future as async.ErrPanic.
func (b *Builder[R]) BuildAsync(bc *Context) *async.Future[R] {
	bc = normalize(bc)
	// The orchestrator must start even when bc is already cancelled so the
	// cancellation is reported through its own checkpoint.
	return async.Go(context.WithoutCancel(bc), func(context.Context) (R, error) {
		return b.buildAsync(bc)
	})
}

func (b *Builder[R]) buildAsync(bc *Context) (R, error) {
	var zero R
	if b == nil || b.seed == nil {
		return zero, ErrNilSeed
	}
	r := b.start(bc, metrics.ModeAsync)

	if err := r.checkpoint(-1); err != nil {
		return zero, r.finish(err)
	}
	obj, err := async.Submit(bc, bc.pool, func(context.Context) (R, error) {
		return b.seed(bc), nil
	}).Await()
	if err != nil {
		return zero, r.finish(r.unitError(-1, err))
	}

	for i, step := range b.steps {
		if err := r.checkpoint(i); err != nil {
			return obj, r.finish(err)
		}
		began := time.Now()
		cur := obj
		next, err := async.Submit(bc, bc.pool, func(context.Context) (R, error) {
			return step(cur, bc), nil
		}).Await()
		if err != nil {
			return obj, r.finish(r.unitError(i, err))
		}
		obj = next
		r.stepDone(began)
	}
	return obj, r.finish(nil)
}

// run tracks logging and metrics for a single build invocation.
type run struct {
	bc    *Context
	mode  metrics.Mode
	began time.Time
	log   *slog.Logger
}

func (b *Builder[R]) start(bc *Context, mode metrics.Mode) *run {
	log := bc.log.With(
		logger.BuildID(uuid.New()),
		logger.Builder(fmt.Sprintf("%T", b)),
		logger.Mode(string(mode)),
	)
	log.DebugContext(bc, "build started", logger.Steps(len(b.steps)))
	return &run{bc: bc, mode: mode, began: time.Now(), log: log}
}

// checkpoint returns a cancellation error if bc is done. step is -1 before the seed.
func (r *run) checkpoint(step int) error {
	err := r.bc.Err()
	if err == nil {
		return nil
	}
	r.log.DebugContext(r.bc, "build cancelled", logger.Step(step), logger.Error(err))
	return errors.Join(ErrOperationCancelled, err)
}

func (r *run) unitError(step int, err error) error {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		r.log.DebugContext(r.bc, "build cancelled", logger.Step(step), logger.Error(err))
		return errors.Join(ErrOperationCancelled, err)
	}
	if step < 0 {
		return fmt.Errorf("builder: seed: %w", err)
	}
	return fmt.Errorf("builder: step %d: %w", step, err)
}

func (r *run) stepDone(began time.Time) {
	r.bc.recorder.ObserveStepDuration(r.mode, time.Since(began))
}

func (r *run) finish(err error) error {
	elapsed := time.Since(r.began)
	outcome := metrics.OutcomeSuccess
	switch {
	case err == nil:
	case errors.Is(err, ErrOperationCancelled):
		outcome = metrics.OutcomeCanceled
	default:
		outcome = metrics.OutcomeFailed
	}
	r.bc.recorder.ObserveBuildDuration(r.mode, elapsed)
	r.bc.recorder.IncBuildOutcome(r.mode, outcome)

	if outcome == metrics.OutcomeFailed {
		r.log.ErrorContext(r.bc, "build failed", logger.Duration(elapsed), logger.Error(err))
	} else {
		r.log.DebugContext(r.bc, "build finished", logger.Duration(elapsed), slog.String("outcome", string(outcome)))
	}
	return err
}
