package recordbuilder

import (
	"fmt"
	"maps"
	"reflect"
	"strings"
)

// Producer returns the value for one parameter at build time.
type Producer func() any

// Builder assembles an immutable record of type R by invoking its constructor
// with named arguments. Set-style calls return new builders and never change
// the receiver.
type Builder[R any] struct {
	ctor      *Constructor[R]
	err       error
	producers map[string]Producer
}

// New returns a builder for the struct record R. If R cannot be described
// as a record the error is reported by the first Set or Build call.
func New[R any]() *Builder[R] {
	ctor, err := Struct[R]()
	return &Builder[R]{ctor: ctor, err: err}
}

// NewWith returns a builder backed by ctor.
func NewWith[R any](ctor *Constructor[R]) *Builder[R] {
	if ctor == nil {
		return &Builder[R]{err: fmt.Errorf("%w: nil constructor for %s", ErrMissingConstructor, reflect.TypeFor[R]())}
	}
	return &Builder[R]{ctor: ctor}
}

// Core returns the builder itself; derived builders embedding *Builder[R] get it promoted.
func (b *Builder[R]) Core() *Builder[R] {
	return b
}

// Err reports a construction error deferred by New.
func (b *Builder[R]) Err() error {
	if b == nil || (b.ctor == nil && b.err == nil) {
		return fmt.Errorf("%w: builder for %s has no constructor", ErrMissingConstructor, reflect.TypeFor[R]())
	}
	return b.err
}

// Params lists the constructor parameters of R.
func (b *Builder[R]) Params() []Param {
	if b.Err() != nil {
		return nil
	}
	return b.ctor.Params()
}

// Set registers producer for the parameter called name, replacing any
// producer previously registered for it.
func (b *Builder[R]) Set(name string, producer Producer) (*Builder[R], error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: parameter name is blank", ErrInvalidArgument)
	}
	if producer == nil {
		return nil, fmt.Errorf("%w: producer for %q is nil", ErrInvalidArgument, name)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	if !b.ctor.has(name) {
		return nil, fmt.Errorf("%w: %s has no parameter %q", ErrUnknownField, reflect.TypeFor[R](), name)
	}

	producers := make(map[string]Producer, len(b.producers)+1)
	maps.Copy(producers, b.producers)
	producers[name] = producer
	return &Builder[R]{ctor: b.ctor, producers: producers}, nil
}

// MustSet is Set that panics on error.
func (b *Builder[R]) MustSet(name string, producer Producer) *Builder[R] {
	next, err := b.Set(name, producer)
	if err != nil {
		panic(err)
	}
	return next
}

// SetField registers producer for the parameter that sets the field sel points to.
// S is the struct behind R (R itself, or its element type when R is a pointer).
func SetField[R, S, V any](b *Builder[R], sel func(*S) *V, producer func() V) (*Builder[R], error) {
	if sel == nil {
		return nil, fmt.Errorf("%w: selector is nil", ErrInvalidArgument)
	}
	if producer == nil {
		return nil, fmt.Errorf("%w: producer is nil", ErrInvalidArgument)
	}
	if err := b.Err(); err != nil {
		return nil, err
	}
	if st, rt := reflect.TypeFor[S](), recordStruct[R](); st != rt {
		return nil, fmt.Errorf("%w: selector is over %s, record is %s", ErrInvalidArgument, st, rt)
	}
	field, err := fieldOf(sel)
	if err != nil {
		return nil, err
	}
	return b.Set(b.ctor.paramForField(field), func() any { return producer() })
}

// MustSetField is SetField that panics on error.
func MustSetField[R, S, V any](b *Builder[R], sel func(*S) *V, producer func() V) *Builder[R] {
	next, err := SetField(b, sel, producer)
	if err != nil {
		panic(err)
	}
	return next
}

// Build invokes the constructor of R. Each parameter takes, in order of
// preference, the value of its registered producer, its declared default,
// or the zero value of its type.
func (b *Builder[R]) Build() (R, error) {
	var zero R
	if err := b.Err(); err != nil {
		return zero, err
	}

	args := make([]reflect.Value, len(b.ctor.params))
	for i, p := range b.ctor.params {
		produce, ok := b.producers[p.Name]
		switch {
		case ok:
			v, err := coerce(produce(), p.Type)
			if err != nil {
				return zero, fmt.Errorf("parameter %q: %w", p.Name, err)
			}
			args[i] = v
		case p.HasDefault:
			args[i] = cloneValue(p.def)
		default:
			args[i] = reflect.Zero(p.Type)
		}
	}

	out, err := b.ctor.invoke(args)
	if err != nil {
		return zero, fmt.Errorf("recordbuilder: construct %s: %w", reflect.TypeFor[R](), err)
	}
	return out, nil
}

// MustBuild is Build that panics on error.
func (b *Builder[R]) MustBuild() R {
	out, err := b.Build()
	if err != nil {
		panic(err)
	}
	return out
}
