package builder

import (
	"context"
	"errors"

	"github.com/dmitrymomot/buildkit/pkg/async"
	"github.com/dmitrymomot/buildkit/pkg/config"
	"github.com/dmitrymomot/buildkit/pkg/logger"
)

// Config holds the environment-driven settings for build contexts.
type Config struct {
	LogLevel     string `env:"BUILDER_LOG_LEVEL" envDefault:"info"`
	LogFormat    string `env:"BUILDER_LOG_FORMAT" envDefault:"json"`
	Component    string `env:"BUILDER_COMPONENT" envDefault:"builder"`
	AsyncWorkers int    `env:"BUILDER_ASYNC_WORKERS" envDefault:"0"`
}

// LoadConfig reads Config from the environment. Results are cached by the config package.
func LoadConfig() (Config, error) {
	var cfg Config
	if err := config.Load(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// NewContextFromConfig builds a Context whose logger and pool follow cfg.
// AsyncWorkers <= 0 means unbounded. Options are applied after the configured ones,
// so they can override them.
func NewContextFromConfig(ctx context.Context, cfg Config, opts ...ContextOption) (*Context, error) {
	level, err := logger.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}
	format, err := logger.ParseFormat(cfg.LogFormat)
	if err != nil {
		return nil, errors.Join(ErrInvalidConfig, err)
	}

	log := logger.New(
		logger.WithLevel(level),
		logger.WithFormat(format),
		logger.WithAttr(logger.Component(cfg.Component)),
	)

	base := []ContextOption{
		WithLogger(log),
		WithPool(async.NewPool(cfg.AsyncWorkers)),
	}
	return NewContext(ctx, append(base, opts...)...), nil
}
