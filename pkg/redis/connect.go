package redis

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// Open creates a sharded Redis client (a go-redis Ring) over the given shards.
// The map key is the shard name, the value its connection URL. Both redis://
// and rediss:// (TLS) schemes are supported; credentials, database and TLS
// settings are taken from each shard's own URL. Every shard needs its own
// host:port; two databases of one server cannot be separate shards.
//
// Keys are distributed over shards by consistent hashing on the shard names,
// so renaming a shard moves its keys while changing its URL does not.
//
// Example:
//
//	ring, err := redis.Open(ctx, map[string]string{
//	    "shard1": "redis://10.0.0.1:6379/0",
//	    "shard2": "redis://10.0.0.2:6379/0",
//	}, redis.WithPoolSize(20))
func Open(ctx context.Context, shards map[string]string, opts ...Option) (*redis.Ring, error) {
	if len(shards) == 0 {
		return nil, ErrNoShards
	}

	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}

	addrs := make(map[string]string, len(shards))
	perAddr := make(map[string]*redis.Options, len(shards))
	for name, url := range shards {
		shardOpts, err := parseShardURL(url)
		if err != nil {
			return nil, fmt.Errorf("redis: shard %q: %w", name, err)
		}
		if _, dup := perAddr[shardOpts.Addr]; dup {
			return nil, fmt.Errorf("redis: shard %q: %w", name, ErrDuplicateShardAddr)
		}
		addrs[name] = shardOpts.Addr
		perAddr[shardOpts.Addr] = shardOpts
	}

	ringOpts := &redis.RingOptions{
		Addrs:              addrs,
		HeartbeatFrequency: o.heartbeatFrequency,
		PoolSize:           o.poolSize,
		MinIdleConns:       o.minIdleConns,
		ConnMaxIdleTime:    o.maxIdleTime,
		ConnMaxLifetime:    o.maxActiveTime,
		ReadTimeout:        o.readTimeout,
		WriteTimeout:       o.writeTimeout,
		DialTimeout:        o.dialTimeout,
		PoolTimeout:        o.poolTimeout,
		NewClient: func(opt *redis.Options) *redis.Client {
			if shard, ok := perAddr[opt.Addr]; ok {
				opt.Username = shard.Username
				opt.Password = shard.Password
				opt.DB = shard.DB
				opt.TLSConfig = shard.TLSConfig
			}
			return redis.NewClient(opt)
		},
	}

	return connect(ctx, ringOpts, o.retryAttempts, o.retryInterval)
}

// MustOpen creates a sharded Redis client or exits on failure.
// Use for simple applications where startup failure is fatal.
func MustOpen(ctx context.Context, shards map[string]string, opts ...Option) *redis.Ring {
	ring, err := Open(ctx, shards, opts...)
	if err != nil {
		slog.Error("failed to open redis ring", "error", err)
		os.Exit(1)
	}
	return ring
}

func parseShardURL(url string) (*redis.Options, error) {
	if url == "" {
		return nil, ErrEmptyConnectionURL
	}

	if !strings.HasPrefix(url, "redis://") && !strings.HasPrefix(url, "rediss://") {
		return nil, ErrFailedToParseURL
	}

	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, errors.Join(ErrFailedToParseURL, err)
	}
	return opts, nil
}

// connect builds the ring and waits until every shard answers a ping,
// retrying with a linearly growing delay.
func connect(ctx context.Context, opts *redis.RingOptions, attempts int, interval time.Duration) (*redis.Ring, error) {
	attempts = max(attempts, 1)

	for i := range attempts {
		ring := redis.NewRing(opts)

		if err := pingShards(ctx, ring); err == nil {
			return ring, nil
		}

		_ = ring.Close()

		if i == attempts-1 {
			break
		}
		if waitErr := wait(ctx, time.Duration(i+1)*interval); waitErr != nil {
			return nil, errors.Join(ErrConnectionFailed, waitErr)
		}
	}

	return nil, ErrConnectionFailed
}

func pingShards(ctx context.Context, ring shardIterator) error {
	return ring.ForEachShard(ctx, func(ctx context.Context, client *redis.Client) error {
		return client.Ping(ctx).Err()
	})
}

func wait(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}
