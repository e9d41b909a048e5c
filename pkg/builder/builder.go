package builder

import "fmt"

// SeedFunc produces the initial object of a build.
type SeedFunc[R any] func(bc *Context) R

// Step is a context-aware modification applied to the object under construction.
type Step[R any] func(obj R, bc *Context)

// Defaulter supplies the default object for builders that have no seed of their own.
type Defaulter[R any] interface {
	CreateDefault() R
}

type modification[R any] func(obj R, bc *Context) R

// Builder is an immutable queue of deferred modifications over a seed.
// Every Set-style call returns a new Builder; the receiver is never changed.
type Builder[R any] struct {
	seed  SeedFunc[R]
	steps []modification[R]
}

// New creates a builder whose seed ignores the build context.
func New[R any](seed func() R) (*Builder[R], error) {
	if seed == nil {
		return nil, ErrNilSeed
	}
	return &Builder[R]{seed: func(*Context) R { return seed() }}, nil
}

// NewWithContext creates a builder whose seed receives the build context.
func NewWithContext[R any](seed SeedFunc[R]) (*Builder[R], error) {
	if seed == nil {
		return nil, ErrNilSeed
	}
	return &Builder[R]{seed: seed}, nil
}

// FromDefaulter creates a builder seeded by d.CreateDefault.
func FromDefaulter[R any](d Defaulter[R]) (*Builder[R], error) {
	if d == nil {
		return nil, ErrNilSeed
	}
	return &Builder[R]{seed: func(*Context) R { return d.CreateDefault() }}, nil
}

// Must panics if err is non-nil.
func Must[R any](b *Builder[R], err error) *Builder[R] {
	if err != nil {
		panic(err)
	}
	return b
}

// MustNew is New that panics on error.
func MustNew[R any](seed func() R) *Builder[R] {
	return Must(New(seed))
}

// Core returns the engine. Derived builders that embed *Builder[R] get it promoted,
// which makes them Extendable.
func (b *Builder[R]) Core() *Builder[R] {
	return b
}

// Len reports the number of queued modifications.
func (b *Builder[R]) Len() int {
	if b == nil {
		return 0
	}
	return len(b.steps)
}

// Set queues plain modifications.
func (b *Builder[R]) Set(steps ...func(R)) (*Builder[R], error) {
	mods, err := plainSteps(steps)
	if err != nil {
		return nil, err
	}
	return b.with(mods)
}

// SetContext queues modifications that receive the build context.
func (b *Builder[R]) SetContext(steps ...Step[R]) (*Builder[R], error) {
	mods, err := contextSteps(steps)
	if err != nil {
		return nil, err
	}
	return b.with(mods)
}

// Transform queues modifications that return the next object. Use it when R has
// value semantics and a step cannot mutate the object in place.
func (b *Builder[R]) Transform(fns ...func(R, *Context) R) (*Builder[R], error) {
	mods, err := transformSteps(fns)
	if err != nil {
		return nil, err
	}
	return b.with(mods)
}

func (b *Builder[R]) with(mods []modification[R]) (*Builder[R], error) {
	if b == nil || b.seed == nil {
		return nil, ErrNilSeed
	}
	return &Builder[R]{seed: b.seed, steps: appendSteps(b.steps, mods)}, nil
}

// appendSteps always allocates so sibling builders never share a backing array.
func appendSteps[R any](prev, next []modification[R]) []modification[R] {
	out := make([]modification[R], 0, len(prev)+len(next))
	out = append(out, prev...)
	return append(out, next...)
}

func plainSteps[R any](steps []func(R)) ([]modification[R], error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	mods := make([]modification[R], len(steps))
	for i, s := range steps {
		if s == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilStep, i)
		}
		mods[i] = func(obj R, _ *Context) R {
			s(obj)
			return obj
		}
	}
	return mods, nil
}

func contextSteps[R any](steps []Step[R]) ([]modification[R], error) {
	if len(steps) == 0 {
		return nil, ErrNoSteps
	}
	mods := make([]modification[R], len(steps))
	for i, s := range steps {
		if s == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilStep, i)
		}
		mods[i] = func(obj R, bc *Context) R {
			s(obj, bc)
			return obj
		}
	}
	return mods, nil
}

func transformSteps[R any](fns []func(R, *Context) R) ([]modification[R], error) {
	if len(fns) == 0 {
		return nil, ErrNoSteps
	}
	mods := make([]modification[R], len(fns))
	for i, fn := range fns {
		if fn == nil {
			return nil, fmt.Errorf("%w at index %d", ErrNilStep, i)
		}
		mods[i] = fn
	}
	return mods, nil
}
