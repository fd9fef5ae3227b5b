package shardcache

import (
	"context"
	"log/slog"
	"time"
)

// ErrorHook observes failures the facade swallows. It runs after the
// failure is logged, on the caller's goroutine.
type ErrorHook func(ctx context.Context, op string, err error)

// Option configures the facade.
type Option func(*Facade)

// WithLogger sets the logger for swallowed failures.
// If nil, logging stays disabled.
func WithLogger(l *slog.Logger) Option {
	return func(f *Facade) {
		if l != nil {
			f.logger = l
		}
	}
}

// WithTimeout bounds every operation by d on top of the caller's context.
// Zero or negative disables the bound (the default).
func WithTimeout(d time.Duration) Option {
	return func(f *Facade) {
		f.timeout = max(d, 0)
	}
}

// WithErrorHook registers a hook called for every swallowed failure.
// Misses are not failures and never reach the hook.
func WithErrorHook(h ErrorHook) Option {
	return func(f *Facade) {
		f.onError = h
	}
}
