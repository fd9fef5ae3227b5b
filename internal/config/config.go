// Package config loads daemon settings from the environment and an optional
// YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"gopkg.in/yaml.v3"

	"github.com/dmitrymomot/shardcache/pkg/logger"
	"github.com/dmitrymomot/shardcache/pkg/redis"
)

var (
	ErrParseEnv  = errors.New("config: failed to parse environment")
	ErrReadFile  = errors.New("config: failed to read file")
	ErrParseFile = errors.New("config: failed to parse file")
	ErrNoShards  = errors.New("config: no redis shards configured")
)

// Config is the daemon configuration.
type Config struct {
	// File names a YAML file whose values override the environment.
	File string `env:"SHARDCACHE_CONFIG" yaml:"-"`

	HTTP  HTTPConfig    `yaml:"http"`
	Redis redis.Config  `yaml:"redis"`
	Log   logger.Config `yaml:"log"`
	Cache CacheConfig   `yaml:"cache"`

	// StatsSchedule is a cron spec for pool statistics logging. Empty disables it.
	StatsSchedule string `env:"STATS_SCHEDULE" envDefault:"@every 1m" yaml:"stats_schedule"`
}

// HTTPConfig configures the gateway.
type HTTPConfig struct {
	Addr            string        `env:"HTTP_ADDR" envDefault:":8080" yaml:"addr"`
	ShutdownTimeout time.Duration `env:"HTTP_SHUTDOWN_TIMEOUT" envDefault:"30s" yaml:"shutdown_timeout"`
}

// CacheConfig configures the store and the facade.
type CacheConfig struct {
	Prefix    string        `env:"CACHE_PREFIX" yaml:"prefix"`
	OpTimeout time.Duration `env:"CACHE_OP_TIMEOUT" yaml:"op_timeout"`
}

// Load reads the process environment, then the file named by SHARDCACHE_CONFIG.
func Load() (Config, error) {
	return load(env.Options{})
}

func load(opts env.Options) (Config, error) {
	var cfg Config
	if err := env.ParseWithOptions(&cfg, opts); err != nil {
		return cfg, errors.Join(ErrParseEnv, err)
	}

	if cfg.File != "" {
		data, err := os.ReadFile(cfg.File)
		if err != nil {
			return cfg, errors.Join(ErrReadFile, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, errors.Join(ErrParseFile, fmt.Errorf("%s: %w", cfg.File, err))
		}
	}

	if len(cfg.Redis.Shards) == 0 {
		return cfg, ErrNoShards
	}
	return cfg, nil
}
