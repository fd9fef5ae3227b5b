package redis

import (
	"context"
	"errors"
	"io"
	"log/slog"

	"github.com/redis/go-redis/v9"
	"github.com/robfig/cron/v3"
)

// poolStatser is the part of *redis.Ring the stats reporter reads.
type poolStatser interface {
	PoolStats() *redis.PoolStats
	Len() int
}

// StartStatsReporter logs ring pool statistics on the given cron schedule
// (standard 5-field expression or a descriptor such as "@every 1m").
// The returned stop function blocks until a running report finishes.
func StartStatsReporter(ring poolStatser, logger *slog.Logger, schedule string) (func(), error) {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	c := cron.New()
	if _, err := c.AddFunc(schedule, func() {
		logPoolStats(context.Background(), ring, logger)
	}); err != nil {
		return nil, errors.Join(ErrInvalidSchedule, err)
	}
	c.Start()

	return func() {
		<-c.Stop().Done()
	}, nil
}

func logPoolStats(ctx context.Context, ring poolStatser, logger *slog.Logger) {
	stats := ring.PoolStats()
	if stats == nil {
		return
	}
	logger.InfoContext(ctx, "redis pool stats",
		slog.Int("shards_up", ring.Len()),
		slog.Uint64("hits", uint64(stats.Hits)),
		slog.Uint64("misses", uint64(stats.Misses)),
		slog.Uint64("timeouts", uint64(stats.Timeouts)),
		slog.Uint64("total_conns", uint64(stats.TotalConns)),
		slog.Uint64("idle_conns", uint64(stats.IdleConns)),
		slog.Uint64("stale_conns", uint64(stats.StaleConns)),
	)
}
