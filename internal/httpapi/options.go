package httpapi

import (
	"context"
	"log/slog"
	"time"

	"github.com/dmitrymomot/shardcache/pkg/health"
)

// Option configures the server.
type Option func(*Server)

// WithAddress sets the listen address. Default ":8080".
func WithAddress(addr string) Option {
	return func(s *Server) {
		if addr != "" {
			s.address = addr
		}
	}
}

// WithLogger sets the logger for requests, panics and lifecycle events.
func WithLogger(l *slog.Logger) Option {
	return func(s *Server) {
		if l != nil {
			s.logger = l
		}
	}
}

// WithShutdownTimeout bounds graceful shutdown, hooks included. Default 30s.
func WithShutdownTimeout(d time.Duration) Option {
	return func(s *Server) {
		if d > 0 {
			s.shutdownTimeout = d
		}
	}
}

// WithShutdownHook registers fn to run after the HTTP server stops.
func WithShutdownHook(fn func(context.Context) error) Option {
	return func(s *Server) {
		s.shutdownHooks = append(s.shutdownHooks, fn)
	}
}

// WithHealthCheck adds a named readiness check.
func WithHealthCheck(name string, fn health.CheckFunc) Option {
	return func(s *Server) {
		s.checks[name] = fn
	}
}
