// Package recordbuilder builds immutable records by invoking their constructor
// with named arguments.
//
// A record is described by a Constructor: either a struct whose exported fields
// are the parameters (Struct), or a constructor function whose positional
// arguments are given names (Func). A Builder keeps one producer per parameter
// name; Build calls every producer, falls back to declared defaults and then to
// zero values, and invokes the constructor once.
//
//	type Point struct {
//		X, Y float64
//		Z    float64 `default:"1"`
//	}
//
//	b := recordbuilder.New[Point]().MustSet("X", func() any { return 10 })
//	b = recordbuilder.MustSetField(b, func(p *Point) *float64 { return &p.Y }, func() float64 { return 20 })
//	p, err := b.Build() // Point{X: 10, Y: 20, Z: 1}
//
// Struct fields are named by their `param` tag (`param:"-"` skips a field) and
// take defaults from `default` tags, parsed with the same rules as environment
// configuration. Numeric producer values are converted to the parameter type.
//
// Derived builders embed *Builder[R] and implement Rebind to keep their own
// type through With and WithNamed.
package recordbuilder
