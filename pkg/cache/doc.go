// Package cache provides an error-returning Store over a sharded Redis client.
//
// [Store] covers the primitives the shardcache facade exposes: strings,
// hashes, lists, sets, counters, expiry and pipelined batch writes. Unlike
// the facade, it never swallows errors, so callers that must tell a missing
// key from an unreachable shard use it directly.
//
// # Usage
//
// Build the store on the ring returned by pkg/redis:
//
//	ring := redis.MustOpen(ctx, map[string]string{
//	    "a": "redis://10.0.0.1:6379/0",
//	    "b": "redis://10.0.0.2:6379/0",
//	})
//	store := cache.NewStore(ring, cache.WithPrefix("orders"))
//
//	if err := store.Set(ctx, "order:42", "paid", time.Hour); err != nil {
//	    return err
//	}
//	status, err := store.Get(ctx, "order:42")
//	switch {
//	case errors.Is(err, cache.ErrNotFound):
//	    // miss
//	case err != nil:
//	    // shard unreachable, timeout, wrong type, ...
//	}
//
// # TTL Semantics
//
//   - Positive duration: the key expires after this duration
//   - Zero or negative: no expiry
//
// [Store.Expire] follows Redis instead: a non-positive ttl deletes the key.
// Compound operations with a TTL ([Store.HSet], [Store.SAdd], [Store.IncrBy])
// run as a MULTI/EXEC transaction on the shard that owns the key.
//
// # Batches
//
// [Store.BatchSet] sends every entry through one pipeline. The ring splits it
// per shard, so a batch spanning shards is not atomic.
//
// # Cache Stampede Prevention
//
// [Store.GetOrSet] uses singleflight so that concurrent misses on a key call
// the loader once:
//
//	val, err := store.GetOrSet(ctx, "user:123", 5*time.Minute, func(ctx context.Context) (string, error) {
//	    return repo.UserJSON(ctx, "123")
//	})
//
// # Error Handling
//
//   - [ErrNotFound]: key, hash field or list element does not exist
//
// All other errors come straight from go-redis.
package cache
