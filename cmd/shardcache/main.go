// Command shardcache serves a sharded Redis cache over HTTP.
package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"

	"github.com/dmitrymomot/shardcache"
	"github.com/dmitrymomot/shardcache/internal/config"
	"github.com/dmitrymomot/shardcache/internal/httpapi"
	"github.com/dmitrymomot/shardcache/pkg/cache"
	"github.com/dmitrymomot/shardcache/pkg/logger"
	"github.com/dmitrymomot/shardcache/pkg/redis"
)

const sentryFlushTimeout = 2 * time.Second

func main() {
	if err := run(); err != nil {
		slog.Error("shardcache failed", slog.String("error", err.Error()))
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	log := logger.New(cfg.Log, httpapi.RequestIDExtractor())

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	ring, err := redis.OpenConfig(ctx, cfg.Redis)
	if err != nil {
		return err
	}
	log.Info("connected to redis", slog.Int("shards", len(cfg.Redis.Shards)))

	facade := shardcache.New(
		cache.NewStore(ring, cache.WithPrefix(cfg.Cache.Prefix)),
		shardcache.WithLogger(log),
		shardcache.WithTimeout(cfg.Cache.OpTimeout),
	)

	opts := []httpapi.Option{
		httpapi.WithAddress(cfg.HTTP.Addr),
		httpapi.WithLogger(log),
		httpapi.WithShutdownTimeout(cfg.HTTP.ShutdownTimeout),
		httpapi.WithHealthCheck("redis", redis.Healthcheck(ring)),
	}

	// Stop reporting before the ring closes.
	if cfg.StatsSchedule != "" {
		stopStats, err := redis.StartStatsReporter(ring, log, cfg.StatsSchedule)
		if err != nil {
			_ = ring.Close()
			return err
		}
		opts = append(opts, httpapi.WithShutdownHook(func(context.Context) error {
			stopStats()
			return nil
		}))
	}

	opts = append(opts, httpapi.WithShutdownHook(redis.Shutdown(ring)))

	if cfg.Log.Sentry.DSN != "" {
		opts = append(opts, httpapi.WithShutdownHook(func(context.Context) error {
			sentry.Flush(sentryFlushTimeout)
			return nil
		}))
	}

	return httpapi.New(facade, opts...).Run(ctx)
}
