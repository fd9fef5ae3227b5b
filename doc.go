// Package shardcache is a cache access facade over a sharded Redis cluster.
//
// The [Facade] exposes a fixed set of string, hash, list, set and counter
// operations. Each operation is one scoped call: a pooled connection is
// checked out from the shard that owns the key, the primitive runs, and the
// connection goes back to the pool on every exit path. Failures never reach
// the caller. They are logged, passed to an optional [ErrorHook] and turned
// into a sentinel result (false, nil, "" or -1, see each method).
//
// # Quick Start
//
//	ring, err := redis.Open(ctx, map[string]string{
//	    "a": "redis://10.0.0.1:6379/0",
//	    "b": "redis://10.0.0.2:6379/0",
//	})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer ring.Close()
//
//	c := shardcache.New(cache.NewStore(ring), shardcache.WithLogger(logger))
//
//	c.SetEx(ctx, "session:42", token, 30*time.Minute)
//	if c.SetNX(ctx, "lock:report", "worker-1", time.Minute) {
//	    // this caller owns the lock
//	}
//	hits := c.Incr(ctx, "hits:home")
//
// # Operations
//
//   - Strings: Get, Set, SetEx, SetNX, Delete, Expire
//   - Hashes: HGet, HSet, HSetExpire, HKeys
//   - Lists: RPush, LPop, LRange, LTrim
//   - Sets: SAdd
//   - Counters: Incr, IncrBy, IncrExpire
//   - Batches: BatchInsert (pipelined, not atomic across shards)
//
// A ttl of zero or less means no expiry, except for Expire, which follows
// Redis and deletes the key.
//
// # Misses and Failures
//
// Read operations return the same result for a missing key and for a failed
// call: Get, HGet and LPop report ok == false in both cases. Callers that
// must tell them apart have three options:
//
//   - call the [cache.Store] directly, which returns [cache.ErrNotFound] for misses
//     and the transport error otherwise;
//   - register [WithErrorHook], which only sees failures;
//   - read the error_kind attribute of the logged failure.
//
// # Error Classification
//
// [Classify] splits failures into [KindConnection] (dial and I/O errors,
// timeouts, closed or exhausted pools, all shards down) and [KindUnknown]
// (everything else, including recovered panics wrapped in [ErrPanic]). Both
// are logged at error level, as "cache connection failure" and
// "cache operation failed" respectively.
//
// # Concurrency
//
// The facade has no locks and no mutable state. Concurrency limits and
// connection reuse come from the ring's per-shard pools. Use [WithTimeout]
// to bound each call in addition to the caller's context.
package shardcache
