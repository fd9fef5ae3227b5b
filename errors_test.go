package shardcache_test

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"syscall"
	"testing"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/shardcache"
)

func TestClassify(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want shardcache.ErrorKind
	}{
		{"nil", nil, shardcache.KindUnknown},
		{"dial refused", &net.OpError{Op: "dial", Net: "tcp", Err: syscall.ECONNREFUSED}, shardcache.KindConnection},
		{"wrapped refused", fmt.Errorf("shard a: %w", syscall.ECONNREFUSED), shardcache.KindConnection},
		{"reset", syscall.ECONNRESET, shardcache.KindConnection},
		{"broken pipe", syscall.EPIPE, shardcache.KindConnection},
		{"eof", io.EOF, shardcache.KindConnection},
		{"unexpected eof", io.ErrUnexpectedEOF, shardcache.KindConnection},
		{"closed client", redis.ErrClosed, shardcache.KindConnection},
		{"deadline", context.DeadlineExceeded, shardcache.KindConnection},
		{"ring down", errors.New("redis: all ring shards are down"), shardcache.KindConnection},
		{"pool timeout", errors.New("redis: connection pool timeout"), shardcache.KindConnection},
		{"wrong type", errors.New("WRONGTYPE Operation against a key holding the wrong kind of value"), shardcache.KindUnknown},
		{"not an integer", errors.New("ERR value is not an integer or out of range"), shardcache.KindUnknown},
		{"panic", fmt.Errorf("%w: boom", shardcache.ErrPanic), shardcache.KindUnknown},
		{"canceled", context.Canceled, shardcache.KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, shardcache.Classify(tt.err))
		})
	}
}
