package logger

import "log/slog"

// Config holds logger settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	// Level is one of debug, info, warn, error.
	Level string `env:"LOG_LEVEL" envDefault:"info" yaml:"level"`
	// Format is json or text.
	Format string       `env:"LOG_FORMAT" envDefault:"json" yaml:"format"`
	Sentry SentryConfig `yaml:"sentry"`
}

// SentryConfig holds Sentry integration configuration.
type SentryConfig struct {
	DSN         string `env:"SENTRY_DSN" yaml:"dsn"`
	Environment string `env:"SENTRY_ENVIRONMENT" envDefault:"production" yaml:"environment"`
	// MinLevel determines which log levels are stored in Sentry as logs
	// (warn or error). Errors always create Sentry issues.
	MinLevel string `env:"SENTRY_MIN_LEVEL" envDefault:"warn" yaml:"min_level"`
}

// parseLevel maps a level name to slog.Level, falling back to fallback
// for empty or unknown names.
func parseLevel(name string, fallback slog.Level) slog.Level {
	var lvl slog.Level
	if err := lvl.UnmarshalText([]byte(name)); err != nil {
		return fallback
	}
	return lvl
}
