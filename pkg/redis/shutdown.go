package redis

import (
	"context"
	"io"
)

// Shutdown returns a hook that closes the ring and every shard pool.
// Register it with httpapi.WithShutdownHook so the ring outlives in-flight requests.
func Shutdown(ring io.Closer) func(ctx context.Context) error {
	return func(context.Context) error {
		return ring.Close()
	}
}
