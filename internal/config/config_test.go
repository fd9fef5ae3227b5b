package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	t.Parallel()

	t.Run("defaults with shards from env", func(t *testing.T) {
		t.Parallel()

		cfg, err := load(env.Options{Environment: map[string]string{
			"REDIS_SHARDS": "a=redis://10.0.0.1:6379/0,b=redis://10.0.0.2:6379/1",
		}})
		require.NoError(t, err)

		require.Equal(t, map[string]string{
			"a": "redis://10.0.0.1:6379/0",
			"b": "redis://10.0.0.2:6379/1",
		}, cfg.Redis.Shards)
		require.Equal(t, ":8080", cfg.HTTP.Addr)
		require.Equal(t, 30*time.Second, cfg.HTTP.ShutdownTimeout)
		require.Equal(t, 10, cfg.Redis.PoolSize)
		require.Equal(t, 500*time.Millisecond, cfg.Redis.HeartbeatFrequency)
		require.Equal(t, "info", cfg.Log.Level)
		require.Equal(t, "json", cfg.Log.Format)
		require.Equal(t, "@every 1m", cfg.StatsSchedule)
		require.Empty(t, cfg.Cache.Prefix)
		require.Zero(t, cfg.Cache.OpTimeout)
	})

	t.Run("env overrides", func(t *testing.T) {
		t.Parallel()

		cfg, err := load(env.Options{Environment: map[string]string{
			"REDIS_SHARDS":     "a=redis://localhost:6379/0",
			"REDIS_POOL_SIZE":  "64",
			"HTTP_ADDR":        "127.0.0.1:9000",
			"CACHE_PREFIX":     "app",
			"CACHE_OP_TIMEOUT": "250ms",
			"LOG_LEVEL":        "debug",
		}})
		require.NoError(t, err)

		require.Equal(t, 64, cfg.Redis.PoolSize)
		require.Equal(t, "127.0.0.1:9000", cfg.HTTP.Addr)
		require.Equal(t, "app", cfg.Cache.Prefix)
		require.Equal(t, 250*time.Millisecond, cfg.Cache.OpTimeout)
		require.Equal(t, "debug", cfg.Log.Level)
	})

	t.Run("file overlays env", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "shardcache.yaml")
		require.NoError(t, os.WriteFile(path, []byte(`
http:
  addr: ":9090"
redis:
  shards:
    east: redis://east:6379/0
    west: rediss://west:6380/0
  pool_size: 20
  dial_timeout: 2s
cache:
  prefix: svc
stats_schedule: ""
`), 0o600))

		cfg, err := load(env.Options{Environment: map[string]string{
			"SHARDCACHE_CONFIG": path,
			"LOG_FORMAT":        "text",
		}})
		require.NoError(t, err)

		require.Equal(t, ":9090", cfg.HTTP.Addr)
		require.Equal(t, map[string]string{
			"east": "redis://east:6379/0",
			"west": "rediss://west:6380/0",
		}, cfg.Redis.Shards)
		require.Equal(t, 20, cfg.Redis.PoolSize)
		require.Equal(t, 2*time.Second, cfg.Redis.DialTimeout)
		require.Equal(t, 3*time.Second, cfg.Redis.ReadTimeout)
		require.Equal(t, "svc", cfg.Cache.Prefix)
		require.Equal(t, "text", cfg.Log.Format)
		require.Empty(t, cfg.StatsSchedule)
	})

	t.Run("no shards", func(t *testing.T) {
		t.Parallel()

		_, err := load(env.Options{Environment: map[string]string{}})
		require.ErrorIs(t, err, ErrNoShards)
	})

	t.Run("invalid env value", func(t *testing.T) {
		t.Parallel()

		_, err := load(env.Options{Environment: map[string]string{
			"REDIS_SHARDS":    "a=redis://localhost:6379/0",
			"REDIS_POOL_SIZE": "many",
		}})
		require.ErrorIs(t, err, ErrParseEnv)
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := load(env.Options{Environment: map[string]string{
			"SHARDCACHE_CONFIG": filepath.Join(t.TempDir(), "missing.yaml"),
		}})
		require.ErrorIs(t, err, ErrReadFile)
	})

	t.Run("malformed file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "bad.yaml")
		require.NoError(t, os.WriteFile(path, []byte("redis: [unclosed"), 0o600))

		_, err := load(env.Options{Environment: map[string]string{"SHARDCACHE_CONFIG": path}})
		require.ErrorIs(t, err, ErrParseFile)
	})
}
