package shardcache

import (
	"context"
	"errors"
	"io"
	"net"
	"strings"
	"syscall"

	"github.com/redis/go-redis/v9"
)

// ErrPanic wraps a panic recovered from the backend.
var ErrPanic = errors.New("shardcache: backend panicked")

// ErrorKind classifies a failed operation for logging.
type ErrorKind string

const (
	// KindConnection covers failures to reach a shard: dial and I/O errors,
	// timeouts, closed or exhausted pools, every shard marked down.
	KindConnection ErrorKind = "connection"
	// KindUnknown covers everything else, e.g. WRONGTYPE replies or panics.
	KindUnknown ErrorKind = "unknown"
)

// go-redis reports these without a typed error.
var connectionMessages = []string{
	"all ring shards are down",
	"connection pool timeout",
	"connection refused",
	"connection reset",
	"broken pipe",
	"i/o timeout",
}

// Classify reports whether err is a connectivity failure or something else.
func Classify(err error) ErrorKind {
	if err == nil {
		return KindUnknown
	}

	var netErr net.Error
	switch {
	case errors.As(err, &netErr),
		errors.Is(err, io.EOF),
		errors.Is(err, io.ErrUnexpectedEOF),
		errors.Is(err, syscall.ECONNREFUSED),
		errors.Is(err, syscall.ECONNRESET),
		errors.Is(err, syscall.EPIPE),
		errors.Is(err, redis.ErrClosed),
		errors.Is(err, context.DeadlineExceeded):
		return KindConnection
	}

	msg := err.Error()
	for _, m := range connectionMessages {
		if strings.Contains(msg, m) {
			return KindConnection
		}
	}
	return KindUnknown
}
