package health

import "errors"

var (
	// ErrCheckFailed is returned when one or more health checks fail.
	ErrCheckFailed = errors.New("health: check failed")

	// ErrCheckTimeout marks a health check that exceeded the run timeout.
	ErrCheckTimeout = errors.New("health: check timeout")
)
