package redis

import (
	"context"
	"errors"

	"github.com/redis/go-redis/v9"
)

// shardIterator is the part of *redis.Ring used to reach every shard.
type shardIterator interface {
	ForEachShard(ctx context.Context, fn func(ctx context.Context, client *redis.Client) error) error
}

// Healthcheck returns a closure that pings every shard of the ring.
// The check fails as soon as a single shard is unreachable, since keys
// hashed to that shard would be unavailable.
// Compatible with health.CheckFunc.
func Healthcheck(ring shardIterator) func(context.Context) error {
	return func(ctx context.Context) error {
		if ring == nil {
			return ErrHealthcheckFailed
		}
		if err := pingShards(ctx, ring); err != nil {
			return errors.Join(ErrHealthcheckFailed, err)
		}
		return nil
	}
}
