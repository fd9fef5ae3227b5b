// Package health provides HTTP handlers for liveness and readiness probes.
//
// [LivenessHandler] always answers OK while the process runs.
// [ReadinessHandler] runs a set of named [Checks] in parallel, typically one
// redis.Healthcheck per ring, and answers 503 when any of them fails:
//
//	r.Get("/health/live", health.LivenessHandler())
//	r.Get("/health/ready", health.ReadinessHandler(health.Checks{
//	    "redis": redis.Healthcheck(ring),
//	}, health.WithTimeout(2*time.Second), health.WithLogger(log)))
//
// Responses are plain text by default. Send Accept: application/json or add
// ?format=json to get the detailed form:
//
//	{
//	  "status": "unhealthy",
//	  "checks": {
//	    "redis": {"status": "unhealthy", "error": "redis: healthcheck failed\ndial tcp ...: connection refused"}
//	  }
//	}
//
// [Run] executes checks outside HTTP, e.g. at startup. It returns
// [ErrCheckFailed] when a check failed; checks that outlived the timeout
// report [ErrCheckTimeout].
package health
