package cache

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

// Store exposes key-value, hash, list, set and counter primitives over a
// sharded Redis client. Every method returns the client's error unchanged,
// except misses, which are reported as ErrNotFound.
//
// TTL semantics: a positive ttl expires the key after that duration, zero or
// negative leaves the key without expiry. Expire is the exception, see there.
type Store struct {
	client redis.Cmdable
	opts   *options
	group  singleflight.Group
}

// NewStore creates a Store on top of client, usually the *redis.Ring
// returned by pkg/redis.Open.
//
// Example:
//
//	ring := redis.MustOpen(ctx, shards)
//	store := cache.NewStore(ring, cache.WithPrefix("app"))
func NewStore(client redis.Cmdable, opts ...Option) *Store {
	o := defaultOptions()
	for _, opt := range opts {
		opt(o)
	}
	return &Store{client: client, opts: o}
}

// Get returns the string value of key.
func (s *Store) Get(ctx context.Context, key string) (string, error) {
	val, err := s.client.Get(ctx, s.prefixedKey(key)).Result()
	return val, notFound(err)
}

// Set stores value under key.
func (s *Store) Set(ctx context.Context, key, value string, ttl time.Duration) error {
	return s.client.Set(ctx, s.prefixedKey(key), value, expiration(ttl)).Err()
}

// SetNX stores value under key only if key does not exist yet.
// Value and TTL are written by a single SET NX command, so a created key
// always carries its expiry. Reports whether the key was created.
func (s *Store) SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error) {
	return s.client.SetNX(ctx, s.prefixedKey(key), value, expiration(ttl)).Result()
}

// Delete removes key and reports whether it existed.
func (s *Store) Delete(ctx context.Context, key string) (bool, error) {
	n, err := s.client.Del(ctx, s.prefixedKey(key)).Result()
	return n > 0, err
}

// Expire sets the time to live of an existing key, with millisecond precision.
// Reports false if the key does not exist. Like Redis itself, a non-positive
// ttl deletes the key.
func (s *Store) Expire(ctx context.Context, key string, ttl time.Duration) (bool, error) {
	return s.client.PExpire(ctx, s.prefixedKey(key), ttl).Result()
}

// HGet returns the value of field in the hash stored at key.
func (s *Store) HGet(ctx context.Context, key, field string) (string, error) {
	val, err := s.client.HGet(ctx, s.prefixedKey(key), field).Result()
	return val, notFound(err)
}

// HSet sets field in the hash stored at key and returns the number of
// fields that were added (0 when an existing field was overwritten).
// With a positive ttl the whole hash is (re)expired in the same transaction.
func (s *Store) HSet(ctx context.Context, key, field, value string, ttl time.Duration) (int64, error) {
	key = s.prefixedKey(key)
	if ttl <= 0 {
		return s.client.HSet(ctx, key, field, value).Result()
	}

	var added *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.HSet(ctx, key, field, value)
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added.Val(), nil
}

// HKeys returns all field names of the hash stored at key.
// A missing key yields an empty slice, not ErrNotFound.
func (s *Store) HKeys(ctx context.Context, key string) ([]string, error) {
	return s.client.HKeys(ctx, s.prefixedKey(key)).Result()
}

// RPush appends values to the tail of the list stored at key and returns
// the list length after the push.
func (s *Store) RPush(ctx context.Context, key string, values ...string) (int64, error) {
	args := make([]any, len(values))
	for i, v := range values {
		args[i] = v
	}
	return s.client.RPush(ctx, s.prefixedKey(key), args...).Result()
}

// LPop removes and returns the head of the list stored at key.
func (s *Store) LPop(ctx context.Context, key string) (string, error) {
	val, err := s.client.LPop(ctx, s.prefixedKey(key)).Result()
	return val, notFound(err)
}

// LRange returns the elements between start and stop (inclusive, negative
// indexes count from the tail).
func (s *Store) LRange(ctx context.Context, key string, start, stop int64) ([]string, error) {
	return s.client.LRange(ctx, s.prefixedKey(key), start, stop).Result()
}

// LTrim keeps only the elements between start and stop.
func (s *Store) LTrim(ctx context.Context, key string, start, stop int64) error {
	return s.client.LTrim(ctx, s.prefixedKey(key), start, stop).Err()
}

// SAdd adds member to the set stored at key and returns 1 if it was new.
// With a positive ttl the set is expired after the add, in the same transaction.
func (s *Store) SAdd(ctx context.Context, key, member string, ttl time.Duration) (int64, error) {
	key = s.prefixedKey(key)
	if ttl <= 0 {
		return s.client.SAdd(ctx, key, member).Result()
	}

	var added *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		added = pipe.SAdd(ctx, key, member)
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return added.Val(), nil
}

// IncrBy adds n to the integer stored at key (a missing key counts as 0)
// and returns the new value. With a positive ttl the counter is (re)expired
// in the same transaction on every call.
func (s *Store) IncrBy(ctx context.Context, key string, n int64, ttl time.Duration) (int64, error) {
	key = s.prefixedKey(key)
	if ttl <= 0 {
		return s.client.IncrBy(ctx, key, n).Result()
	}

	var val *redis.IntCmd
	_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		val = pipe.IncrBy(ctx, key, n)
		pipe.PExpire(ctx, key, ttl)
		return nil
	})
	if err != nil {
		return 0, err
	}
	return val.Val(), nil
}

// BatchSet writes all entries through one pipeline. The ring splits the
// pipeline per shard, so the batch is not atomic: on failure some entries
// may have been written. The first failed command's error is returned.
func (s *Store) BatchSet(ctx context.Context, entries map[string]string, ttl time.Duration) error {
	if len(entries) == 0 {
		return nil
	}

	exp := expiration(ttl)
	_, err := s.client.Pipelined(ctx, func(pipe redis.Pipeliner) error {
		for key, value := range entries {
			pipe.Set(ctx, s.prefixedKey(key), value, exp)
		}
		return nil
	})
	return err
}

// GetOrSet returns the value of key, or calls fn to compute it on a miss.
// Concurrent misses on the same key within this Store share a single fn
// call. If fn fails nothing is cached and its error is returned; caching
// the computed value is best effort.
func (s *Store) GetOrSet(ctx context.Context, key string, ttl time.Duration, fn func(ctx context.Context) (string, error)) (string, error) {
	if v, err := s.Get(ctx, key); err == nil {
		return v, nil
	}

	v, err, _ := s.group.Do(s.prefixedKey(key), func() (any, error) {
		return fn(ctx)
	})
	if err != nil {
		return "", err
	}

	val := v.(string)
	_ = s.Set(ctx, key, val, ttl)

	return val, nil
}

// prefixedKey returns the full Redis key with prefix.
func (s *Store) prefixedKey(key string) string {
	if s.opts.prefix == "" {
		return key
	}
	return s.opts.prefix + ":" + key
}

// expiration maps a ttl to go-redis semantics, where 0 means no expiry and
// negative values have special meaning (KEEPTTL).
func expiration(ttl time.Duration) time.Duration {
	return max(ttl, 0)
}

func notFound(err error) error {
	if errors.Is(err, redis.Nil) {
		return ErrNotFound
	}
	return err
}
