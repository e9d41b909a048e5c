package builder

import (
	"context"
	"log/slog"

	"github.com/dmitrymomot/buildkit/pkg/async"
	"github.com/dmitrymomot/buildkit/pkg/logger"
	"github.com/dmitrymomot/buildkit/pkg/metrics"
)

// Context is the ambient state shared by a seed function and every step of a
// single build. It embeds context.Context, so it can be handed to any
// context-aware API, and carries the logger, task pool and metrics recorder
// the build pipeline reports to.
type Context struct {
	context.Context

	log      *slog.Logger
	pool     *async.Pool
	recorder metrics.Recorder
}

// ContextOption configures a Context.
type ContextOption func(*Context)

// WithLogger sets the logger used by the build pipeline. Nil is ignored.
func WithLogger(l *slog.Logger) ContextOption {
	return func(c *Context) {
		if l != nil {
			c.log = l
		}
	}
}

// WithPool sets the pool BuildAsync dispatches work units to.
// A nil pool means unbounded concurrency.
func WithPool(p *async.Pool) ContextOption {
	return func(c *Context) {
		c.pool = p
	}
}

// WithRecorder sets the metrics recorder. Nil is ignored.
func WithRecorder(r metrics.Recorder) ContextOption {
	return func(c *Context) {
		if r != nil {
			c.recorder = r
		}
	}
}

// NewContext wraps ctx into a build Context. A nil ctx is treated as
// context.Background().
func NewContext(ctx context.Context, opts ...ContextOption) *Context {
	if ctx == nil {
		ctx = context.Background()
	}
	c := &Context{
		Context:  ctx,
		log:      logger.Discard(),
		recorder: metrics.NoopRecorder{},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Cancelled reports whether cancellation has been requested.
func (c *Context) Cancelled() bool {
	return c.Err() != nil
}

func (c *Context) Logger() *slog.Logger {
	return c.log
}

func (c *Context) Pool() *async.Pool {
	return c.pool
}

func (c *Context) Recorder() metrics.Recorder {
	return c.recorder
}

// normalize returns a usable Context for nil or zero-value input.
func normalize(c *Context) *Context {
	if c == nil {
		return NewContext(context.Background())
	}
	if c.Context != nil && c.log != nil && c.recorder != nil {
		return c
	}
	n := *c
	if n.Context == nil {
		n.Context = context.Background()
	}
	if n.log == nil {
		n.log = logger.Discard()
	}
	if n.recorder == nil {
		n.recorder = metrics.NoopRecorder{}
	}
	return &n
}
