package redis

import "errors"

var (
	ErrNoShards           = errors.New("redis: no shards configured")
	ErrEmptyConnectionURL = errors.New("redis: empty connection URL")
	ErrFailedToParseURL   = errors.New("redis: failed to parse connection URL")
	ErrDuplicateShardAddr = errors.New("redis: shard address used by another shard")
	ErrConnectionFailed   = errors.New("redis: failed to establish connection")
	ErrHealthcheckFailed  = errors.New("redis: healthcheck failed")
	ErrInvalidSchedule    = errors.New("redis: invalid stats schedule")
)
