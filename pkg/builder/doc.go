// Package builder provides an immutable, generic builder for constructing objects
// through a chain of deferred modifications.
//
// A Builder holds a seed function and an ordered list of modifications. Every call
// to Set, SetContext or Transform returns a new Builder; earlier builders are never
// changed, so a partially configured builder can be shared and branched freely.
// Nothing runs until Build or BuildAsync is called.
//
// # Basic usage
//
//	b := builder.MustNew(func() *Car { return &Car{} })
//	red, err := b.Set(func(c *Car) { c.Color = "red" })
//	if err != nil {
//		return err
//	}
//	car, err := red.Build(nil)
//
// # Build context and cancellation
//
// Build and BuildAsync take a *Context, which embeds context.Context and carries
// a logger, a task pool and a metrics recorder:
//
//	bc := builder.NewContext(ctx,
//		builder.WithLogger(log),
//		builder.WithPool(async.NewPool(4)),
//		builder.WithRecorder(rec),
//	)
//	car, err := red.Build(bc)
//	if errors.Is(err, builder.ErrOperationCancelled) {
//		// car holds the seed with the steps that ran before cancellation
//	}
//
// Cancellation is checked before the seed and before every modification. A
// modification that has started always runs to completion.
//
// # Derived builders
//
// Domain builders embed *Builder[R] and add fluent methods. To keep returning
// their own type from chained calls they implement one of the reconstruction
// capabilities, checked in this order:
//
//   - ContextSeedConstructor: NewWithContextSeed(SeedFunc[R]) Extendable[R]
//   - SeedConstructor: NewWithSeed(func() R) Extendable[R]
//   - DefaultConstructor: NewDefault() Extendable[R]
//
// and use Extend:
//
//	type FerrariBuilder struct{ *builder.Builder[*Car] }
//
//	func (FerrariBuilder) NewWithSeed(seed func() *Car) builder.Extendable[*Car] {
//		return FerrariBuilder{builder.MustNew(seed)}
//	}
//
//	func (b FerrariBuilder) WithColor(c string) FerrariBuilder {
//		return builder.MustExtend(b, func(car *Car) { car.Color = c })
//	}
//
// A type with none of the capabilities fails with ErrMissingConstructor.
//
// # Configuration
//
// LoadConfig reads BUILDER_LOG_LEVEL, BUILDER_LOG_FORMAT, BUILDER_COMPONENT and
// BUILDER_ASYNC_WORKERS; NewContextFromConfig turns them into a Context.
package builder
