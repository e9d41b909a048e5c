package builder

import (
	"context"
	"fmt"
	"reflect"
)

// Extendable is implemented by every builder that exposes its engine, including
// types embedding *Builder[R].
//
// Reconstruction factories (NewWithContextSeed, NewWithSeed, NewDefault) must
// return a builder around a newly allocated engine, since the resolver installs
// the step queue on the engine it gets back. An engine that already has queued
// modifications is rejected with ErrMissingConstructor.
type Extendable[R any] interface {
	Core() *Builder[R]
}

// ContextSeedConstructor is the preferred reconstruction capability: the factory
// receives the parent's seed verbatim.
type ContextSeedConstructor[R any] interface {
	NewWithContextSeed(seed SeedFunc[R]) Extendable[R]
}

// SeedConstructor receives a seed that replays the parent's with a background context.
type SeedConstructor[R any] interface {
	NewWithSeed(seed func() R) Extendable[R]
}

// DefaultConstructor produces a fresh builder with its own default seed.
type DefaultConstructor[R any] interface {
	NewDefault() Extendable[R]
}

// Extend queues plain modifications on b and returns a new builder of the same
// concrete type as b.
func Extend[B Extendable[R], R any](b B, steps ...func(R)) (B, error) {
	mods, err := plainSteps(steps)
	if err != nil {
		var zero B
		return zero, err
	}
	return extend(b, mods)
}

// ExtendContext is Extend for context-aware modifications.
func ExtendContext[B Extendable[R], R any](b B, steps ...Step[R]) (B, error) {
	mods, err := contextSteps(steps)
	if err != nil {
		var zero B
		return zero, err
	}
	return extend(b, mods)
}

// MustExtend is Extend that panics on error.
func MustExtend[B Extendable[R], R any](b B, steps ...func(R)) B {
	next, err := Extend(b, steps...)
	if err != nil {
		panic(err)
	}
	return next
}

// MustExtendContext is ExtendContext that panics on error.
func MustExtendContext[B Extendable[R], R any](b B, steps ...Step[R]) B {
	next, err := ExtendContext(b, steps...)
	if err != nil {
		panic(err)
	}
	return next
}

// SetAs queues modifications on b and returns the result as T. It fails with
// ErrNotSupported unless b is a T (or implements T when T is an interface).
func SetAs[T Extendable[R], R any](b Extendable[R], steps ...func(R)) (T, error) {
	var zero T
	if _, ok := b.(T); !ok {
		return zero, notSupported[T](b)
	}
	mods, err := plainSteps(steps)
	if err != nil {
		return zero, err
	}
	return reconstructAs[T](b, mods)
}

// SetAsContext is SetAs for context-aware modifications.
func SetAsContext[T Extendable[R], R any](b Extendable[R], steps ...Step[R]) (T, error) {
	var zero T
	if _, ok := b.(T); !ok {
		return zero, notSupported[T](b)
	}
	mods, err := contextSteps(steps)
	if err != nil {
		return zero, err
	}
	return reconstructAs[T](b, mods)
}

func extend[B Extendable[R], R any](b B, mods []modification[R]) (B, error) {
	return reconstructAs[B](Extendable[R](b), mods)
}

func reconstructAs[T Extendable[R], R any](b Extendable[R], mods []modification[R]) (T, error) {
	var zero T
	next, err := reconstruct(b, mods)
	if err != nil {
		return zero, err
	}
	out, ok := next.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %T rebuilt itself as %T", ErrMissingConstructor, b, next)
	}
	return out, nil
}

// reconstruct asks b's concrete type for a fresh instance of itself and
// installs the parent's steps followed by mods on it.
func reconstruct[R any](b Extendable[R], mods []modification[R]) (Extendable[R], error) {
	if b == nil {
		return nil, ErrNilSeed
	}
	parent := b.Core()
	if parent == nil || parent.seed == nil {
		return nil, ErrNilSeed
	}

	var next Extendable[R]
	switch f := b.(type) {
	case *Builder[R]:
		nb, err := f.with(mods)
		if err != nil {
			return nil, err
		}
		return nb, nil
	case ContextSeedConstructor[R]:
		next = f.NewWithContextSeed(parent.seed)
	case SeedConstructor[R]:
		seed := parent.seed
		next = f.NewWithSeed(func() R {
			return seed(NewContext(context.Background()))
		})
	case DefaultConstructor[R]:
		next = f.NewDefault()
	default:
		return nil, fmt.Errorf("%w: %T implements none of NewWithContextSeed, NewWithSeed, NewDefault", ErrMissingConstructor, b)
	}

	if next == nil {
		return nil, fmt.Errorf("%w: %T returned no builder", ErrMissingConstructor, b)
	}
	core := next.Core()
	if core == nil || core.seed == nil {
		return nil, fmt.Errorf("%w: %T returned a builder without a seed", ErrMissingConstructor, b)
	}
	if core == parent {
		return nil, fmt.Errorf("%w: %T returned its own engine instead of a new one", ErrMissingConstructor, b)
	}
	if len(core.steps) != 0 {
		return nil, fmt.Errorf("%w: %T returned an engine with queued modifications", ErrMissingConstructor, b)
	}
	core.steps = appendSteps(parent.steps, mods)
	return next, nil
}

func notSupported[T any](b any) error {
	return fmt.Errorf("%w: %T is not %s", ErrNotSupported, b, reflect.TypeFor[T]())
}
