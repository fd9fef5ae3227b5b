// Package redis opens sharded Redis clients for the cache facade.
//
// This package wraps [github.com/redis/go-redis/v9] and returns a [redis.Ring]:
// keys are spread over several independent Redis servers by consistent hashing
// on the shard name, and every shard owns its own connection pool. The ring
// is the "sharded client" and "connection pool" the facade delegates to.
//
// # Features
//
//   - One connection URL per shard (redis:// and rediss://), with per-shard credentials, DB and TLS
//   - Pool limits and timeouts applied to every shard
//   - Startup ping of every shard with retry and linear backoff
//   - Health check that fails when any shard is unreachable
//   - Periodic pool statistics logging on a cron schedule
//
// # Configuration
//
// All settings are configured via functional options:
//
//   - WithPoolSize(n int): Maximum connections per shard (default: 10)
//   - WithMinIdleConns(n int): Minimum idle connections per shard (default: 5)
//   - WithMaxIdleTime(d time.Duration): Maximum connection idle time (default: 10m)
//   - WithMaxActiveTime(d time.Duration): Maximum connection lifetime (default: 30m)
//   - WithRetry(attempts int, interval time.Duration): Startup retry attempts and base interval (default: 3 attempts, 5s)
//   - WithReadTimeout(d time.Duration): Read operation timeout (default: 3s)
//   - WithWriteTimeout(d time.Duration): Write operation timeout (default: 3s)
//   - WithDialTimeout(d time.Duration): Connection dial timeout (default: 5s)
//   - WithPoolTimeout(d time.Duration): Wait for a free pooled connection (default: 4s)
//   - WithHeartbeatFrequency(d time.Duration): Shard liveness probing (default: 500ms)
//
// or from a [Config] populated by caarlos0/env:
//
//	var cfg redis.Config
//	if err := env.Parse(&cfg); err != nil {
//		log.Fatal(err)
//	}
//	ring, err := redis.OpenConfig(ctx, cfg)
//
// # Usage
//
//	ring, err := redis.Open(ctx, map[string]string{
//		"shard1": "redis://10.0.0.1:6379/0",
//		"shard2": "redis://10.0.0.2:6379/0",
//	}, redis.WithPoolSize(20))
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer ring.Close()
//
// # Pool Statistics
//
//	stop, err := redis.StartStatsReporter(ring, logger, "@every 1m")
//	if err != nil {
//		log.Fatal(err)
//	}
//	defer stop()
//
// # Error Handling
//
//   - [ErrNoShards] - No shard configured
//   - [ErrEmptyConnectionURL] - Empty shard URL
//   - [ErrFailedToParseURL] - Invalid shard URL format or scheme
//   - [ErrConnectionFailed] - Some shard unreachable after all retry attempts
//   - [ErrHealthcheckFailed] - Some shard failed to answer a ping
//   - [ErrInvalidSchedule] - Stats reporter schedule could not be parsed
//
// Errors are wrapped using [errors.Join] to preserve the original error context.
package redis
