package shardcache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/dmitrymomot/shardcache/pkg/cache"
	"github.com/dmitrymomot/shardcache/pkg/logger"
)

// Backend is the set of cache primitives the facade delegates to.
// *cache.Store implements it on top of a sharded Redis ring.
type Backend interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key, value string, ttl time.Duration) error
	SetNX(ctx context.Context, key, value string, ttl time.Duration) (bool, error)
	Delete(ctx context.Context, key string) (bool, error)
	Expire(ctx context.Context, key string, ttl time.Duration) (bool, error)
	HGet(ctx context.Context, key, field string) (string, error)
	HSet(ctx context.Context, key, field, value string, ttl time.Duration) (int64, error)
	HKeys(ctx context.Context, key string) ([]string, error)
	RPush(ctx context.Context, key string, values ...string) (int64, error)
	LPop(ctx context.Context, key string) (string, error)
	LRange(ctx context.Context, key string, start, stop int64) ([]string, error)
	LTrim(ctx context.Context, key string, start, stop int64) error
	SAdd(ctx context.Context, key, member string, ttl time.Duration) (int64, error)
	IncrBy(ctx context.Context, key string, n int64, ttl time.Duration) (int64, error)
	BatchSet(ctx context.Context, entries map[string]string, ttl time.Duration) error
}

var _ Backend = (*cache.Store)(nil)

// Facade runs cache operations against a Backend and never returns errors.
// A failed call is logged, reported to the error hook and degraded to the
// operation's sentinel result. A miss is not a failure and is not logged.
//
// Facade holds no mutable state and is safe for concurrent use.
type Facade struct {
	backend Backend
	logger  *slog.Logger
	onError ErrorHook
	timeout time.Duration
}

// New creates a facade over backend.
//
// Example:
//
//	ring := redis.MustOpen(ctx, shards)
//	f := shardcache.New(cache.NewStore(ring),
//	    shardcache.WithLogger(log),
//	    shardcache.WithTimeout(500*time.Millisecond),
//	)
func New(backend Backend, opts ...Option) *Facade {
	f := &Facade{
		backend: backend,
		logger:  logger.NewNope(),
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Get returns the value stored at key.
// ok is false both when the key is missing and when the call failed.
func (f *Facade) Get(ctx context.Context, key string) (string, bool) {
	return callValue(ctx, f, "get", key, "", func(ctx context.Context) (string, error) {
		return f.backend.Get(ctx, key)
	})
}

// Set stores value under key without expiry.
func (f *Facade) Set(ctx context.Context, key, value string) bool {
	return f.call(ctx, "set", key, func(ctx context.Context) error {
		return f.backend.Set(ctx, key, value, 0)
	})
}

// SetEx stores value under key with the given time to live.
func (f *Facade) SetEx(ctx context.Context, key, value string, ttl time.Duration) bool {
	return f.call(ctx, "setex", key, func(ctx context.Context) error {
		return f.backend.Set(ctx, key, value, ttl)
	})
}

// SetNX stores value under key only if key is absent, expiring it after ttl
// (no expiry when ttl <= 0). Reports whether this call created the key.
func (f *Facade) SetNX(ctx context.Context, key, value string, ttl time.Duration) bool {
	created, ok := callValue(ctx, f, "setnx", key, false, func(ctx context.Context) (bool, error) {
		return f.backend.SetNX(ctx, key, value, ttl)
	})
	return ok && created
}

// Delete removes key and reports whether it existed.
func (f *Facade) Delete(ctx context.Context, key string) bool {
	existed, ok := callValue(ctx, f, "delete", key, false, func(ctx context.Context) (bool, error) {
		return f.backend.Delete(ctx, key)
	})
	return ok && existed
}

// Expire sets the time to live of an existing key.
// Reports false if the key does not exist or the call failed.
func (f *Facade) Expire(ctx context.Context, key string, ttl time.Duration) bool {
	set, ok := callValue(ctx, f, "expire", key, false, func(ctx context.Context) (bool, error) {
		return f.backend.Expire(ctx, key, ttl)
	})
	return ok && set
}

// HGet returns field of the hash stored at key.
// ok is false both when the field is missing and when the call failed.
func (f *Facade) HGet(ctx context.Context, key, field string) (string, bool) {
	return callValue(ctx, f, "hget", key, "", func(ctx context.Context) (string, error) {
		return f.backend.HGet(ctx, key, field)
	})
}

// HSet sets field of the hash stored at key and returns how many fields were added.
func (f *Facade) HSet(ctx context.Context, key, field, value string) (int64, bool) {
	return callValue(ctx, f, "hset", key, 0, func(ctx context.Context) (int64, error) {
		return f.backend.HSet(ctx, key, field, value, 0)
	})
}

// HSetExpire is HSet followed by expiring the whole hash after ttl.
func (f *Facade) HSetExpire(ctx context.Context, key, field, value string, ttl time.Duration) (int64, bool) {
	return callValue(ctx, f, "hset_expire", key, 0, func(ctx context.Context) (int64, error) {
		return f.backend.HSet(ctx, key, field, value, ttl)
	})
}

// HKeys returns the field names of the hash stored at key, or nil on failure.
func (f *Facade) HKeys(ctx context.Context, key string) []string {
	keys, _ := callValue[[]string](ctx, f, "hkeys", key, nil, func(ctx context.Context) ([]string, error) {
		return f.backend.HKeys(ctx, key)
	})
	return keys
}

// RPush appends value to the tail of the list stored at key.
func (f *Facade) RPush(ctx context.Context, key, value string) bool {
	_, ok := callValue(ctx, f, "rpush", key, 0, func(ctx context.Context) (int64, error) {
		return f.backend.RPush(ctx, key, value)
	})
	return ok
}

// LPop removes and returns the head of the list stored at key.
// ok is false both when the list is empty and when the call failed.
func (f *Facade) LPop(ctx context.Context, key string) (string, bool) {
	return callValue(ctx, f, "lpop", key, "", func(ctx context.Context) (string, error) {
		return f.backend.LPop(ctx, key)
	})
}

// LRange returns the list elements between start and stop inclusive, or nil on failure.
func (f *Facade) LRange(ctx context.Context, key string, start, stop int64) []string {
	items, _ := callValue[[]string](ctx, f, "lrange", key, nil, func(ctx context.Context) ([]string, error) {
		return f.backend.LRange(ctx, key, start, stop)
	})
	return items
}

// LTrim keeps only the list elements between start and stop inclusive.
func (f *Facade) LTrim(ctx context.Context, key string, start, stop int64) bool {
	return f.call(ctx, "ltrim", key, func(ctx context.Context) error {
		return f.backend.LTrim(ctx, key, start, stop)
	})
}

// SAdd adds member to the set stored at key and expires the set after ttl
// (no expiry when ttl <= 0). Reports whether member was new.
func (f *Facade) SAdd(ctx context.Context, key, member string, ttl time.Duration) bool {
	added, ok := callValue(ctx, f, "sadd", key, 0, func(ctx context.Context) (int64, error) {
		return f.backend.SAdd(ctx, key, member, ttl)
	})
	return ok && added > 0
}

// Incr increments the counter at key by one and returns the new value, or -1 on failure.
func (f *Facade) Incr(ctx context.Context, key string) int64 {
	return f.incr(ctx, "incr", key, 1, 0)
}

// IncrBy increments the counter at key by n and returns the new value, or -1 on failure.
func (f *Facade) IncrBy(ctx context.Context, key string, n int64) int64 {
	return f.incr(ctx, "incrby", key, n, 0)
}

// IncrExpire increments the counter at key by one and (re)expires it after ttl.
// Returns the new value, or -1 on failure.
func (f *Facade) IncrExpire(ctx context.Context, key string, ttl time.Duration) int64 {
	return f.incr(ctx, "incr_expire", key, 1, ttl)
}

func (f *Facade) incr(ctx context.Context, op, key string, n int64, ttl time.Duration) int64 {
	val, _ := callValue(ctx, f, op, key, -1, func(ctx context.Context) (int64, error) {
		return f.backend.IncrBy(ctx, key, n, ttl)
	})
	return val
}

// BatchInsert stores every entry with the given time to live through one
// pipeline. It is not atomic: when it reports false, any subset of the
// entries may have been written.
func (f *Facade) BatchInsert(ctx context.Context, entries map[string]string, ttl time.Duration) bool {
	return f.call(ctx, "batch_insert", "", func(ctx context.Context) error {
		return f.backend.BatchSet(ctx, entries, ttl)
	})
}

// call runs fn as one scoped cache operation. The backend's pooled
// connection is checked out and returned inside fn; call adds the optional
// deadline and turns every failure, including a panic, into false.
func (f *Facade) call(ctx context.Context, op, key string, fn func(ctx context.Context) error) (ok bool) {
	if f.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, f.timeout)
		defer cancel()
	}

	defer func() {
		if r := recover(); r != nil {
			f.fail(ctx, op, key, fmt.Errorf("%w: %v", ErrPanic, r))
			ok = false
		}
	}()

	err := fn(ctx)
	switch {
	case err == nil:
		return true
	case errors.Is(err, cache.ErrNotFound):
		return false
	}

	f.fail(ctx, op, key, err)
	return false
}

func (f *Facade) fail(ctx context.Context, op, key string, err error) {
	kind := Classify(err)

	msg := "cache operation failed"
	if kind == KindConnection {
		msg = "cache connection failure"
	}

	attrs := []any{
		slog.String("op", op),
		slog.String("error_kind", string(kind)),
		slog.String("error", err.Error()),
	}
	if key != "" {
		attrs = append(attrs, slog.String("key", key))
	}
	f.logger.ErrorContext(ctx, msg, attrs...)

	if f.onError != nil {
		f.onError(ctx, op, err)
	}
}

// callValue is call for operations with a result. On failure or miss it
// returns fallback and false.
func callValue[T any](ctx context.Context, f *Facade, op, key string, fallback T, fn func(ctx context.Context) (T, error)) (T, bool) {
	var val T
	ok := f.call(ctx, op, key, func(ctx context.Context) error {
		var err error
		val, err = fn(ctx)
		return err
	})
	if !ok {
		return fallback, false
	}
	return val, true
}
