package recordbuilder

import (
	"fmt"
	"reflect"
)

// Extendable is implemented by every record builder, including types
// embedding *Builder[R].
type Extendable[R any] interface {
	Core() *Builder[R]
}

// Rebinder wraps a new engine into the derived builder type B.
type Rebinder[R, B any] interface {
	Rebind(core *Builder[R]) B
}

// WithNamed is Set for derived builders: it returns a B instead of the engine.
func WithNamed[B Extendable[R], R any](b B, name string, producer Producer) (B, error) {
	var zero B
	rb, ok := any(b).(Rebinder[R, B])
	if !ok {
		return zero, missingRebind[R](b)
	}
	core, err := b.Core().Set(name, producer)
	if err != nil {
		return zero, err
	}
	return rb.Rebind(core), nil
}

// With is SetField for derived builders.
func With[B Extendable[R], R, S, V any](b B, sel func(*S) *V, producer func() V) (B, error) {
	var zero B
	rb, ok := any(b).(Rebinder[R, B])
	if !ok {
		return zero, missingRebind[R](b)
	}
	core, err := SetField(b.Core(), sel, producer)
	if err != nil {
		return zero, err
	}
	return rb.Rebind(core), nil
}

// MustWith is With that panics on error.
func MustWith[B Extendable[R], R, S, V any](b B, sel func(*S) *V, producer func() V) B {
	next, err := With[B, R](b, sel, producer)
	if err != nil {
		panic(err)
	}
	return next
}

func missingRebind[R any](b any) error {
	return fmt.Errorf("%w: %T has no Rebind(*recordbuilder.Builder[%s]) method returning itself",
		ErrMissingConstructor, b, reflect.TypeFor[R]())
}
