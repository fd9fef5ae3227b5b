package httpapi

import (
	"context"
	"errors"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/dmitrymomot/shardcache/pkg/health"
	"github.com/dmitrymomot/shardcache/pkg/logger"
)

const (
	defaultAddress           = ":8080"
	defaultReadTimeout       = 15 * time.Second
	defaultWriteTimeout      = 30 * time.Second
	defaultIdleTimeout       = 120 * time.Second
	defaultReadHeaderTimeout = 5 * time.Second
	defaultMaxHeaderBytes    = 1 << 20 // 1MB
	defaultShutdownTimeout   = 30 * time.Second

	livenessPath  = "/health/live"
	readinessPath = "/health/ready"
)

// Server exposes a Cache over HTTP.
type Server struct {
	cache           Cache
	router          chi.Router
	logger          *slog.Logger
	checks          health.Checks
	address         string
	shutdownTimeout time.Duration
	shutdownHooks   []func(context.Context) error
}

// New builds the server and its routes.
//
// Example:
//
//	srv := httpapi.New(facade,
//	    httpapi.WithAddress(":8080"),
//	    httpapi.WithLogger(log),
//	    httpapi.WithHealthCheck("redis", redis.Healthcheck(ring)),
//	    httpapi.WithShutdownHook(redis.Shutdown(ring)),
//	)
//	err := srv.Run(ctx)
func New(c Cache, opts ...Option) *Server {
	s := &Server{
		cache:           c,
		logger:          logger.NewNope(),
		checks:          health.Checks{},
		address:         defaultAddress,
		shutdownTimeout: defaultShutdownTimeout,
	}
	for _, opt := range opts {
		opt(s)
	}

	s.router = s.routes()
	return s
}

// Handler returns the root handler with all middleware applied.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(requestID, requestLogger(s.logger), recoverer(s.logger))

	r.Get(livenessPath, health.LivenessHandler())
	r.Get(readinessPath, health.ReadinessHandler(s.checks, health.WithLogger(s.logger)))

	r.Route("/v1", func(r chi.Router) {
		r.Route("/kv/{key}", func(r chi.Router) {
			r.Get("/", s.getValue)
			r.Put("/", s.putValue)
			r.Delete("/", s.deleteValue)
			r.Post("/expire", s.expireValue)
		})
		r.Post("/counters/{key}", s.incrCounter)
		r.Route("/hashes/{key}", func(r chi.Router) {
			r.Get("/", s.hashKeys)
			r.Get("/{field}", s.hashGet)
			r.Put("/{field}", s.hashSet)
		})
		r.Route("/lists/{key}", func(r chi.Router) {
			r.Get("/", s.listRange)
			r.Post("/", s.listPush)
			r.Post("/pop", s.listPop)
			r.Post("/trim", s.listTrim)
		})
		r.Post("/sets/{key}", s.setAdd)
		r.Post("/batch", s.batchInsert)
	})

	return r
}

// Run serves until ctx is cancelled, then shuts the server down and runs
// the shutdown hooks in registration order.
func (s *Server) Run(ctx context.Context) error {
	server := &http.Server{
		Addr:              s.address,
		Handler:           s.router,
		ReadTimeout:       defaultReadTimeout,
		WriteTimeout:      defaultWriteTimeout,
		IdleTimeout:       defaultIdleTimeout,
		ReadHeaderTimeout: defaultReadHeaderTimeout,
		MaxHeaderBytes:    defaultMaxHeaderBytes,
		BaseContext:       func(net.Listener) context.Context { return context.WithoutCancel(ctx) },
	}

	// Listen first to get actual address
	ln, err := net.Listen("tcp", server.Addr)
	if err != nil {
		return err
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info("server starting", slog.String("address", ln.Addr().String()))
		if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	var errs []error
	select {
	case err := <-errCh:
		if err != nil {
			errs = append(errs, err)
		}
	case <-ctx.Done():
	}

	s.logger.Info("shutting down server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), s.shutdownTimeout)
	defer cancel()

	if err := server.Shutdown(shutdownCtx); err != nil {
		errs = append(errs, err)
	}

	for _, hook := range s.shutdownHooks {
		if err := hook(shutdownCtx); err != nil {
			errs = append(errs, err)
			s.logger.Error("shutdown hook failed", slog.Any("error", err))
		}
	}

	if len(errs) > 0 {
		s.logger.Error("shutdown completed with errors")
		return errors.Join(errs...)
	}

	s.logger.Info("shutdown completed")
	return nil
}
