package cache_test

import (
	"context"
	"testing"
	"time"

	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shardcache/pkg/cache"
)

// newUnreachableStore returns a store whose only shard refuses connections.
func newUnreachableStore(t *testing.T) *cache.Store {
	t.Helper()

	ring := goredis.NewRing(&goredis.RingOptions{
		Addrs:              map[string]string{"down": "127.0.0.1:1"},
		DialTimeout:        100 * time.Millisecond,
		MaxRetries:         -1,
		HeartbeatFrequency: time.Hour,
	})
	t.Cleanup(func() { _ = ring.Close() })

	return cache.NewStore(ring, cache.WithPrefix("unreachable"))
}

func TestStore_UnreachableShard(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	s := newUnreachableStore(t)

	ops := map[string]func() error{
		"Get": func() error {
			_, err := s.Get(ctx, "k")
			return err
		},
		"Set": func() error {
			return s.Set(ctx, "k", "v", time.Minute)
		},
		"SetNX": func() error {
			_, err := s.SetNX(ctx, "k", "v", time.Minute)
			return err
		},
		"Delete": func() error {
			_, err := s.Delete(ctx, "k")
			return err
		},
		"Expire": func() error {
			_, err := s.Expire(ctx, "k", time.Minute)
			return err
		},
		"HGet": func() error {
			_, err := s.HGet(ctx, "h", "f")
			return err
		},
		"HSet": func() error {
			_, err := s.HSet(ctx, "h", "f", "v", 0)
			return err
		},
		"HSet with ttl": func() error {
			_, err := s.HSet(ctx, "h", "f", "v", time.Minute)
			return err
		},
		"HKeys": func() error {
			_, err := s.HKeys(ctx, "h")
			return err
		},
		"RPush": func() error {
			_, err := s.RPush(ctx, "l", "a", "b")
			return err
		},
		"LPop": func() error {
			_, err := s.LPop(ctx, "l")
			return err
		},
		"LRange": func() error {
			_, err := s.LRange(ctx, "l", 0, -1)
			return err
		},
		"LTrim": func() error {
			return s.LTrim(ctx, "l", 0, 10)
		},
		"SAdd": func() error {
			_, err := s.SAdd(ctx, "s", "m", time.Minute)
			return err
		},
		"IncrBy": func() error {
			_, err := s.IncrBy(ctx, "c", 3, 0)
			return err
		},
		"IncrBy with ttl": func() error {
			_, err := s.IncrBy(ctx, "c", 1, time.Minute)
			return err
		},
		"BatchSet": func() error {
			return s.BatchSet(ctx, map[string]string{"a": "1", "b": "2"}, time.Minute)
		},
	}

	for name, op := range ops {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			err := op()
			require.Error(t, err)
			require.NotErrorIs(t, err, cache.ErrNotFound)
		})
	}
}
