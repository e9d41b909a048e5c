package recordbuilder

import (
	"fmt"
	"math"
	"reflect"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	paramTag   = "param"
	defaultTag = "default"
)

var errorType = reflect.TypeFor[error]()

// Param describes one constructor parameter.
type Param struct {
	Name       string
	Type       reflect.Type
	Default    any
	HasDefault bool

	def reflect.Value
}

// Arg names a positional parameter of a constructor function.
func Arg(name string) Param {
	return Param{Name: name}
}

// ArgDefault names a positional parameter and declares its default value.
func ArgDefault(name string, value any) Param {
	return Param{Name: name, Default: value, HasDefault: true}
}

// Constructor is the ordered parameter list of R and the means to invoke it.
type Constructor[R any] struct {
	params []Param
	index  map[string]int
	fields map[string]string // struct field name -> parameter name
	invoke func(args []reflect.Value) (R, error)
}

// Params returns a copy of the parameter list in declaration order.
func (c *Constructor[R]) Params() []Param {
	out := make([]Param, len(c.params))
	copy(out, c.params)
	for i := range out {
		if out[i].HasDefault {
			out[i].def = cloneValue(out[i].def)
			out[i].Default = out[i].def.Interface()
		}
	}
	return out
}

func (c *Constructor[R]) has(name string) bool {
	_, ok := c.index[name]
	return ok
}

// paramForField maps a struct field of R to the parameter that sets it.
// Function constructors are matched by field name.
func (c *Constructor[R]) paramForField(field string) string {
	if name, ok := c.fields[field]; ok {
		return name
	}
	return field
}

// Struct describes R as a record whose exported fields are its parameters.
// R must be a struct or a pointer to a struct.
//
// A field is named by its `param` tag, or by its Go name when the tag is absent;
// `param:"-"` excludes it, and tag options are rejected. A `default` tag
// declares the value used when no producer is registered, parsed the way
// environment values are. Each build receives its own copy of the default.
func Struct[R any]() (*Constructor[R], error) {
	rt := reflect.TypeFor[R]()
	st, isPtr := rt, false
	if st.Kind() == reflect.Pointer {
		st, isPtr = st.Elem(), true
	}
	if st.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: %s is not a struct", ErrMissingConstructor, rt)
	}

	c := &Constructor[R]{
		index:  make(map[string]int),
		fields: make(map[string]string),
	}
	var fieldIdx []int
	var withDefault bool
	for i := range st.NumField() {
		f := st.Field(i)
		if !f.IsExported() {
			continue
		}
		name := f.Name
		if tag, ok := f.Tag.Lookup(paramTag); ok {
			tag = strings.TrimSpace(tag)
			if tag == "-" {
				continue
			}
			if strings.Contains(tag, ",") {
				return nil, fmt.Errorf("%w: %s.%s: param tag %q takes a name only", ErrInvalidArgument, rt, f.Name, tag)
			}
			if tag != "" {
				name = tag
			}
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("%w: %s declares parameter %q twice", ErrInvalidArgument, rt, name)
		}

		_, hasDefault := f.Tag.Lookup(defaultTag)
		withDefault = withDefault || hasDefault
		c.index[name] = len(c.params)
		c.fields[f.Name] = name
		c.params = append(c.params, Param{Name: name, Type: f.Type, HasDefault: hasDefault})
		fieldIdx = append(fieldIdx, i)
	}

	if withDefault {
		defaults, err := parseDefaults(st)
		if err != nil {
			return nil, err
		}
		for j := range c.params {
			if c.params[j].HasDefault {
				c.params[j].def = defaults.Field(fieldIdx[j])
				c.params[j].Default = c.params[j].def.Interface()
			}
		}
	}

	c.invoke = func(args []reflect.Value) (R, error) {
		v := reflect.New(st).Elem()
		for j, arg := range args {
			v.Field(fieldIdx[j]).Set(arg)
		}
		if isPtr {
			return v.Addr().Interface().(R), nil
		}
		return v.Interface().(R), nil
	}
	return c, nil
}

// parseDefaults fills a fresh st from its `default` tags only.
func parseDefaults(st reflect.Type) (reflect.Value, error) {
	v := reflect.New(st)
	err := env.ParseWithOptions(v.Interface(), env.Options{
		Environment:           map[string]string{},
		TagName:               paramTag,
		DefaultValueTagName:   defaultTag,
		UseFieldNameByDefault: true,
	})
	if err != nil {
		return reflect.Value{}, fmt.Errorf("%w: default values of %s: %w", ErrInvalidArgument, st, err)
	}
	return v.Elem(), nil
}

// Func describes a constructor function. fn must return R or (R, error) and
// take exactly one argument per entry in params, in order.
func Func[R any](fn any, params ...Param) (*Constructor[R], error) {
	rt := reflect.TypeFor[R]()
	fv := reflect.ValueOf(fn)
	if fn == nil || fv.Kind() != reflect.Func || fv.IsNil() {
		return nil, fmt.Errorf("%w: %T is not a function", ErrMissingConstructor, fn)
	}

	ft := fv.Type()
	var withErr bool
	switch {
	case ft.NumOut() == 1 && ft.Out(0).AssignableTo(rt):
	case ft.NumOut() == 2 && ft.Out(0).AssignableTo(rt) && ft.Out(1) == errorType:
		withErr = true
	default:
		return nil, fmt.Errorf("%w: %s does not return %s", ErrMissingConstructor, ft, rt)
	}
	if ft.NumIn() != len(params) {
		return nil, fmt.Errorf("%w: %s takes %d arguments, %d names given", ErrInvalidArgument, ft, ft.NumIn(), len(params))
	}

	c := &Constructor[R]{
		params: make([]Param, len(params)),
		index:  make(map[string]int, len(params)),
	}
	for i, p := range params {
		name := strings.TrimSpace(p.Name)
		if name == "" {
			return nil, fmt.Errorf("%w: argument %d of %s has no name", ErrInvalidArgument, i, ft)
		}
		if _, dup := c.index[name]; dup {
			return nil, fmt.Errorf("%w: parameter %q named twice", ErrInvalidArgument, name)
		}

		out := Param{Name: name, Type: ft.In(i)}
		if p.HasDefault {
			v, err := coerce(p.Default, out.Type)
			if err != nil {
				return nil, fmt.Errorf("default for %q: %w", name, err)
			}
			out.def = cloneValue(v)
			out.Default = out.def.Interface()
			out.HasDefault = true
		}
		c.index[name] = i
		c.params[i] = out
	}

	c.invoke = func(args []reflect.Value) (R, error) {
		var res []reflect.Value
		if ft.IsVariadic() {
			res = fv.CallSlice(args)
		} else {
			res = fv.Call(args)
		}
		if withErr && !res[1].IsNil() {
			var zero R
			return zero, res[1].Interface().(error)
		}
		out, _ := res[0].Interface().(R)
		return out, nil
	}
	return c, nil
}

// coerce converts val to t. Values assignable to t pass through; numeric
// values convert between numeric kinds; nil becomes the zero value of
// nillable types.
func coerce(val any, t reflect.Type) (reflect.Value, error) {
	if val == nil {
		if nillable(t.Kind()) {
			return reflect.Zero(t), nil
		}
		return reflect.Value{}, fmt.Errorf("%w: nil is not a valid %s", ErrTypeMismatch, t)
	}
	v := reflect.ValueOf(val)
	if v.Type().AssignableTo(t) {
		return v, nil
	}
	if numeric(v.Kind()) && numeric(t.Kind()) {
		if !representable(v, t) {
			return reflect.Value{}, fmt.Errorf("%w: %v does not fit in %s", ErrTypeMismatch, v, t)
		}
		return v.Convert(t), nil
	}
	return reflect.Value{}, fmt.Errorf("%w: %s is not assignable to %s", ErrTypeMismatch, v.Type(), t)
}

func nillable(k reflect.Kind) bool {
	switch k {
	case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
		return true
	}
	return false
}

func numeric(k reflect.Kind) bool {
	return signed(k) || unsigned(k) || floating(k)
}

func signed(k reflect.Kind) bool {
	switch k {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return true
	}
	return false
}

func unsigned(k reflect.Kind) bool {
	switch k {
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64, reflect.Uintptr:
		return true
	}
	return false
}

func floating(k reflect.Kind) bool {
	return k == reflect.Float32 || k == reflect.Float64
}

// Bounds of the int64 and uint64 ranges as exact float64 values.
const (
	minInt64Float  = -(1 << 63)
	maxInt64Float  = 1 << 63
	maxUint64Float = 1 << 64
)

// representable reports whether numeric v converts to t without changing its value.
// Float to float conversions only need to stay in range; rounding to the
// narrower mantissa is accepted.
func representable(v reflect.Value, t reflect.Type) bool {
	target := reflect.New(t).Elem()
	switch k := v.Kind(); {
	case signed(k):
		n := v.Int()
		switch {
		case signed(t.Kind()):
			return !target.OverflowInt(n)
		case unsigned(t.Kind()):
			return n >= 0 && !target.OverflowUint(uint64(n))
		default:
			f := v.Convert(t).Float()
			return f >= minInt64Float && f < maxInt64Float && int64(f) == n
		}
	case unsigned(k):
		u := v.Uint()
		switch {
		case signed(t.Kind()):
			return u <= math.MaxInt64 && !target.OverflowInt(int64(u))
		case unsigned(t.Kind()):
			return !target.OverflowUint(u)
		default:
			f := v.Convert(t).Float()
			return f < maxUint64Float && uint64(f) == u
		}
	default:
		x := v.Float()
		switch {
		case floating(t.Kind()):
			return !target.OverflowFloat(x)
		case x != math.Trunc(x):
			return false
		case signed(t.Kind()):
			return x >= minInt64Float && x < maxInt64Float && !target.OverflowInt(int64(x))
		default:
			return x >= 0 && x < maxUint64Float && !target.OverflowUint(uint64(x))
		}
	}
}

// cloneValue returns a deep copy of v so values handed to one record never
// share slices, maps or pointed-to data with another.
func cloneValue(v reflect.Value) reflect.Value {
	switch v.Kind() {
	case reflect.Slice:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeSlice(v.Type(), v.Len(), v.Len())
		for i := range v.Len() {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out
	case reflect.Map:
		if v.IsNil() {
			return v
		}
		out := reflect.MakeMapWithSize(v.Type(), v.Len())
		iter := v.MapRange()
		for iter.Next() {
			out.SetMapIndex(cloneValue(iter.Key()), cloneValue(iter.Value()))
		}
		return out
	case reflect.Pointer:
		if v.IsNil() {
			return v
		}
		out := reflect.New(v.Type().Elem())
		out.Elem().Set(cloneValue(v.Elem()))
		return out
	case reflect.Array:
		out := reflect.New(v.Type()).Elem()
		for i := range v.Len() {
			out.Index(i).Set(cloneValue(v.Index(i)))
		}
		return out
	case reflect.Struct:
		out := reflect.New(v.Type()).Elem()
		out.Set(v)
		for i := range v.NumField() {
			if v.Type().Field(i).IsExported() {
				out.Field(i).Set(cloneValue(v.Field(i)))
			}
		}
		return out
	}
	return v
}
