package builder_test

import (
	"context"
	"sync/atomic"

	"github.com/dmitrymomot/buildkit/pkg/builder"
)

const (
	defaultColor = "Black"
	defaultModel = "Generic"
)

type Car struct {
	ID       int64
	Color    string
	Model    string
	NumDoors int
}

func newCar() *Car {
	return &Car{Color: defaultColor, Model: defaultModel}
}

var ferrariIDs atomic.Int64

// FerrariBuilder reconstructs itself through a plain seed.
type FerrariBuilder struct{ *builder.Builder[*Car] }

func NewFerrariBuilder() FerrariBuilder {
	return FerrariBuilder{builder.MustNew(func() *Car {
		return &Car{ID: ferrariIDs.Add(1), Color: "Red", Model: "Ferrari", NumDoors: 2}
	})}
}

func (FerrariBuilder) NewWithSeed(seed func() *Car) builder.Extendable[*Car] {
	return FerrariBuilder{builder.MustNew(seed)}
}

func (b FerrariBuilder) WithColor(color string) FerrariBuilder {
	return builder.MustExtend(b, func(c *Car) { c.Color = color })
}

func (b FerrariBuilder) WithDoors(n int) FerrariBuilder {
	return builder.MustExtend(b, func(c *Car) { c.NumDoors = n })
}

type dieselDefaults struct{}

func (dieselDefaults) CreateDefault() *Car {
	return &Car{Color: "SlateGray", Model: "318d", NumDoors: 5}
}

// DieselBmwBuilder has no seed of its own; it relies on a default factory.
type DieselBmwBuilder struct{ *builder.Builder[*Car] }

func NewDieselBmwBuilder() DieselBmwBuilder {
	return DieselBmwBuilder{builder.Must(builder.FromDefaulter[*Car](dieselDefaults{}))}
}

func (DieselBmwBuilder) NewDefault() builder.Extendable[*Car] {
	return NewDieselBmwBuilder()
}

func (b DieselBmwBuilder) WithDoors(n int) DieselBmwBuilder {
	return builder.MustExtend(b, func(c *Car) { c.NumDoors = n })
}

type tenantKey struct{}

// TenantCarBuilder seeds from the build context and reconstructs with the
// parent's context-aware seed.
type TenantCarBuilder struct {
	*builder.Builder[*Car]
	rebuilt int
}

func NewTenantCarBuilder() *TenantCarBuilder {
	return &TenantCarBuilder{Builder: builder.Must(builder.NewWithContext(func(bc *builder.Context) *Car {
		c := newCar()
		if tenant, ok := bc.Value(tenantKey{}).(string); ok {
			c.Model = tenant
		}
		return c
	}))}
}

func (b *TenantCarBuilder) NewWithContextSeed(seed builder.SeedFunc[*Car]) builder.Extendable[*Car] {
	return &TenantCarBuilder{Builder: builder.Must(builder.NewWithContext(seed)), rebuilt: b.rebuilt + 1}
}

// NewWithSeed must never be chosen over NewWithContextSeed.
func (b *TenantCarBuilder) NewWithSeed(func() *Car) builder.Extendable[*Car] {
	panic("NewWithSeed called on a builder that supports context seeds")
}

func (b *TenantCarBuilder) WithDoors(n int) *TenantCarBuilder {
	return builder.MustExtend(b, func(c *Car) { c.NumDoors = n })
}

// NoCtorBuilder embeds the engine but implements no reconstruction capability.
type NoCtorBuilder struct{ *builder.Builder[*Car] }

func NewNoCtorBuilder() NoCtorBuilder {
	return NoCtorBuilder{builder.MustNew(newCar)}
}

// SelfReturningBuilder hands back its own engine instead of a new one.
type SelfReturningBuilder struct{ *builder.Builder[*Car] }

func (b SelfReturningBuilder) NewDefault() builder.Extendable[*Car] {
	return b
}

// ShapeShiftingBuilder rebuilds itself as a different type.
type ShapeShiftingBuilder struct{ *builder.Builder[*Car] }

func (ShapeShiftingBuilder) NewDefault() builder.Extendable[*Car] {
	return NewFerrariBuilder()
}

// NilFactoryBuilder returns nothing from its factory.
type NilFactoryBuilder struct{ *builder.Builder[*Car] }

func (NilFactoryBuilder) NewDefault() builder.Extendable[*Car] {
	return nil
}

// templateCar is a shared engine with a modification already queued.
var templateCar = builder.Must(builder.MustNew(newCar).Set(func(c *Car) { c.Model = "Template" }))

// TemplateBuilder hands out the shared template instead of a fresh engine.
type TemplateBuilder struct{ *builder.Builder[*Car] }

func (TemplateBuilder) NewDefault() builder.Extendable[*Car] {
	return TemplateBuilder{templateCar}
}

// Sporty is satisfied by FerrariBuilder only.
type Sporty interface {
	builder.Extendable[*Car]
	WithColor(string) FerrariBuilder
}

func contextWithValue(key, val any) context.Context {
	return context.WithValue(context.Background(), key, val)
}
