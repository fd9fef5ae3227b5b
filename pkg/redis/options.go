package redis

import "time"

// Option configures a Redis ring connection.
type Option func(*options)

type options struct {
	poolSize           int
	minIdleConns       int
	maxIdleTime        time.Duration
	maxActiveTime      time.Duration
	retryAttempts      int
	retryInterval      time.Duration
	readTimeout        time.Duration
	writeTimeout       time.Duration
	dialTimeout        time.Duration
	poolTimeout        time.Duration
	heartbeatFrequency time.Duration
}

func defaultOptions() *options {
	return &options{
		poolSize:           10,
		minIdleConns:       5,
		maxIdleTime:        10 * time.Minute,
		maxActiveTime:      30 * time.Minute,
		retryAttempts:      3,
		retryInterval:      5 * time.Second,
		readTimeout:        3 * time.Second,
		writeTimeout:       3 * time.Second,
		dialTimeout:        5 * time.Second,
		poolTimeout:        4 * time.Second,
		heartbeatFrequency: 500 * time.Millisecond,
	}
}

// WithPoolSize sets the maximum number of connections per shard.
// Default: 10
func WithPoolSize(n int) Option {
	return func(o *options) {
		o.poolSize = n
	}
}

// WithMinIdleConns sets the minimum number of idle connections kept open per shard.
// Default: 5
func WithMinIdleConns(n int) Option {
	return func(o *options) {
		o.minIdleConns = n
	}
}

// WithMaxIdleTime sets the maximum time a connection can be idle before being closed.
// Default: 10 minutes
func WithMaxIdleTime(d time.Duration) Option {
	return func(o *options) {
		o.maxIdleTime = d
	}
}

// WithMaxActiveTime sets the maximum lifetime of a connection.
// Default: 30 minutes
func WithMaxActiveTime(d time.Duration) Option {
	return func(o *options) {
		o.maxActiveTime = d
	}
}

// WithRetry configures startup connection retry behavior.
// Default: 3 attempts, 5 second base interval growing linearly per attempt.
func WithRetry(attempts int, interval time.Duration) Option {
	return func(o *options) {
		o.retryAttempts = attempts
		o.retryInterval = interval
	}
}

// WithReadTimeout sets the timeout for read operations.
// Default: 3 seconds
func WithReadTimeout(d time.Duration) Option {
	return func(o *options) {
		o.readTimeout = d
	}
}

// WithWriteTimeout sets the timeout for write operations.
// Default: 3 seconds
func WithWriteTimeout(d time.Duration) Option {
	return func(o *options) {
		o.writeTimeout = d
	}
}

// WithDialTimeout sets the timeout for establishing new connections.
// Default: 5 seconds
func WithDialTimeout(d time.Duration) Option {
	return func(o *options) {
		o.dialTimeout = d
	}
}

// WithPoolTimeout sets how long a caller waits for a free connection
// when every connection of a shard's pool is checked out.
// Default: 4 seconds
func WithPoolTimeout(d time.Duration) Option {
	return func(o *options) {
		o.poolTimeout = d
	}
}

// WithHeartbeatFrequency sets how often the ring pings shards to
// detect ones that went down or came back.
// Default: 500 milliseconds
func WithHeartbeatFrequency(d time.Duration) Option {
	return func(o *options) {
		o.heartbeatFrequency = d
	}
}
