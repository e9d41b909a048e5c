package recordbuilder

import (
	"fmt"
	"reflect"
)

// fieldOf returns the name of the top-level field of S that sel points into.
// The selector is called once on a zero S; the returned pointer is matched
// against field offsets and the field type must be V.
func fieldOf[S, V any](sel func(*S) *V) (string, error) {
	st := reflect.TypeFor[S]()
	if st.Kind() != reflect.Struct {
		return "", fmt.Errorf("%w: selector receiver %s is not a struct", ErrInvalidArgument, st)
	}

	probe := new(S)
	ptr := sel(probe)
	if ptr == nil {
		return "", fmt.Errorf("%w: selector returned nil", ErrUnknownField)
	}

	base := reflect.ValueOf(probe).Pointer()
	addr := reflect.ValueOf(ptr).Pointer()
	vt := reflect.TypeFor[V]()
	if addr >= base {
		off := addr - base
		for i := range st.NumField() {
			f := st.Field(i)
			if f.Offset == off && f.Type == vt {
				return f.Name, nil
			}
		}
	}
	return "", fmt.Errorf("%w: selector does not point to a %s field of %s", ErrUnknownField, vt, st)
}

// recordStruct is the struct type behind R.
func recordStruct[R any]() reflect.Type {
	t := reflect.TypeFor[R]()
	if t.Kind() == reflect.Pointer {
		return t.Elem()
	}
	return t
}
