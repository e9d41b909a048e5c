// Package config loads typed configuration structs from environment variables.
//
// It wraps github.com/caarlos0/env/v11 for struct-tag parsing and
// github.com/joho/godotenv for .env files:
//
//   - Load parses the environment into any struct using `env` and `envDefault`
//     tags and caches the result per type.
//   - Reload discards the cached value for one type and parses again.
//   - LoadEnv reads one or more .env files into the process environment.
//   - MustLoad and MustLoadEnv panic instead of returning an error.
//   - ResetCache clears the cache between tests.
//
// # Usage
//
//	type Config struct {
//	    LogLevel string `env:"BUILDER_LOG_LEVEL" envDefault:"info"`
//	    Workers  int    `env:"BUILDER_ASYNC_WORKERS" envDefault:"0"`
//	}
//
//	var cfg Config
//	if err := config.Load(&cfg); err != nil {
//	    return err
//	}
//
// # Error Handling
//
// Errors wrap the sentinels ErrParsingConfig, ErrNilPointer and ErrLoadingEnvFile;
// use errors.Is to branch on them.
package config
