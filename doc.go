// Package buildkit is a toolkit for constructing objects through immutable,
// composable builders.
//
// The module is organised as focused packages under pkg/:
//
//   - builder: the generic builder engine. A Builder[R] holds a seed function
//     and an ordered queue of deferred modifications; every Set returns a new
//     builder. Build and BuildAsync run the queue with cancellation checkpoints
//     before the seed and before each modification. Derived builders embed the
//     engine and keep their own type through Extend.
//   - recordbuilder: builds immutable records by calling their constructor with
//     named arguments, falling back to declared defaults and zero values.
//   - async: futures and a bounded task pool used by BuildAsync.
//   - logger: slog factory and attribute helpers used by the build pipeline.
//   - config: cached, typed environment configuration.
//   - metrics: build duration and outcome recording, with a Prometheus backend.
//
// Basic usage:
//
//	b := builder.MustNew(func() *Car { return &Car{} })
//	b, err := b.Set(
//		func(c *Car) { c.Color = "Red" },
//		func(c *Car) { c.NumDoors = 2 },
//	)
//	if err != nil {
//		return err
//	}
//
//	bc := builder.NewContext(ctx, builder.WithLogger(log))
//	car, err := b.Build(bc)
//
// Records:
//
//	type Point struct{ X, Y, Z float64 }
//
//	p, err := recordbuilder.New[Point]().
//		MustSet("X", func() any { return 10 }).
//		MustSet("Y", func() any { return 20 }).
//		Build()
package buildkit
