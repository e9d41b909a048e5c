package builder_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/buildkit/pkg/builder"
	"github.com/dmitrymomot/buildkit/pkg/config"
	"github.com/dmitrymomot/buildkit/pkg/logger"
)

// Tests in this file change the process environment and must not run in parallel.

func TestLoadConfig(t *testing.T) {
	t.Run("defaults", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)

		cfg, err := builder.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, builder.Config{
			LogLevel:     "info",
			LogFormat:    "json",
			Component:    "builder",
			AsyncWorkers: 0,
		}, cfg)
	})

	t.Run("from environment", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)
		t.Setenv("BUILDER_LOG_LEVEL", "debug")
		t.Setenv("BUILDER_LOG_FORMAT", "text")
		t.Setenv("BUILDER_COMPONENT", "cars")
		t.Setenv("BUILDER_ASYNC_WORKERS", "4")

		cfg, err := builder.LoadConfig()
		require.NoError(t, err)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "text", cfg.LogFormat)
		assert.Equal(t, "cars", cfg.Component)
		assert.Equal(t, 4, cfg.AsyncWorkers)
	})

	t.Run("invalid number", func(t *testing.T) {
		config.ResetCache()
		t.Cleanup(config.ResetCache)
		t.Setenv("BUILDER_ASYNC_WORKERS", "many")

		_, err := builder.LoadConfig()
		assert.ErrorIs(t, err, config.ErrParsingConfig)
	})
}

func TestNewContextFromConfig(t *testing.T) {
	t.Parallel()

	valid := builder.Config{LogLevel: "warn", LogFormat: "text", Component: "cars", AsyncWorkers: 2}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()

		bc, err := builder.NewContextFromConfig(context.Background(), valid)
		require.NoError(t, err)
		assert.Equal(t, 2, bc.Pool().Size())
		assert.NotNil(t, bc.Logger())

		car, err := builder.MustNew(newCar).BuildAsync(bc).Await()
		require.NoError(t, err)
		assert.Equal(t, newCar(), car)
	})

	t.Run("options override config", func(t *testing.T) {
		t.Parallel()

		log := logger.Discard()
		bc, err := builder.NewContextFromConfig(context.Background(), valid, builder.WithLogger(log))
		require.NoError(t, err)
		assert.Same(t, log, bc.Logger())
	})

	t.Run("invalid level", func(t *testing.T) {
		t.Parallel()

		cfg := valid
		cfg.LogLevel = "loud"
		_, err := builder.NewContextFromConfig(context.Background(), cfg)
		require.ErrorIs(t, err, builder.ErrInvalidConfig)
		assert.ErrorIs(t, err, logger.ErrInvalidLevel)
	})

	t.Run("invalid format", func(t *testing.T) {
		t.Parallel()

		cfg := valid
		cfg.LogFormat = "xml"
		_, err := builder.NewContextFromConfig(context.Background(), cfg)
		require.ErrorIs(t, err, builder.ErrInvalidConfig)
		assert.ErrorIs(t, err, logger.ErrInvalidFormat)
	})
}
