package redis

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
)

// Config holds ring connection settings.
// Embed this in your app config for env parsing with caarlos0/env.
type Config struct {
	// Shards maps shard names to connection URLs, e.g. "a=redis://host1:6379/0,b=redis://host2:6379/0".
	Shards map[string]string `env:"REDIS_SHARDS" envSeparator:"," envKeyValSeparator:"=" yaml:"shards"`

	PoolSize           int           `env:"REDIS_POOL_SIZE" envDefault:"10" yaml:"pool_size"`
	MinIdleConns       int           `env:"REDIS_MIN_IDLE_CONNS" envDefault:"5" yaml:"min_idle_conns"`
	MaxIdleTime        time.Duration `env:"REDIS_MAX_IDLE_TIME" envDefault:"10m" yaml:"max_idle_time"`
	MaxActiveTime      time.Duration `env:"REDIS_MAX_ACTIVE_TIME" envDefault:"30m" yaml:"max_active_time"`
	ReadTimeout        time.Duration `env:"REDIS_READ_TIMEOUT" envDefault:"3s" yaml:"read_timeout"`
	WriteTimeout       time.Duration `env:"REDIS_WRITE_TIMEOUT" envDefault:"3s" yaml:"write_timeout"`
	DialTimeout        time.Duration `env:"REDIS_DIAL_TIMEOUT" envDefault:"5s" yaml:"dial_timeout"`
	PoolTimeout        time.Duration `env:"REDIS_POOL_TIMEOUT" envDefault:"4s" yaml:"pool_timeout"`
	HeartbeatFrequency time.Duration `env:"REDIS_HEARTBEAT_FREQUENCY" envDefault:"500ms" yaml:"heartbeat_frequency"`
	RetryAttempts      int           `env:"REDIS_RETRY_ATTEMPTS" envDefault:"3" yaml:"retry_attempts"`
	RetryInterval      time.Duration `env:"REDIS_RETRY_INTERVAL" envDefault:"5s" yaml:"retry_interval"`
}

// Options converts the config into Open options.
func (c Config) Options() []Option {
	return []Option{
		WithPoolSize(c.PoolSize),
		WithMinIdleConns(c.MinIdleConns),
		WithMaxIdleTime(c.MaxIdleTime),
		WithMaxActiveTime(c.MaxActiveTime),
		WithReadTimeout(c.ReadTimeout),
		WithWriteTimeout(c.WriteTimeout),
		WithDialTimeout(c.DialTimeout),
		WithPoolTimeout(c.PoolTimeout),
		WithHeartbeatFrequency(c.HeartbeatFrequency),
		WithRetry(c.RetryAttempts, c.RetryInterval),
	}
}

// OpenConfig opens a ring from a Config.
func OpenConfig(ctx context.Context, cfg Config) (*redis.Ring, error) {
	return Open(ctx, cfg.Shards, cfg.Options()...)
}
