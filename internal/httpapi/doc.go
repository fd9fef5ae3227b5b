// Package httpapi exposes the cache facade over HTTP for operators and
// non-Go clients.
//
// Routes live under /v1 (kv, counters, hashes, lists, sets, batch). Values
// travel as raw request and response bodies, everything else as JSON.
// A sentinel result from the facade maps to 404 for reads of missing data
// and to 503 otherwise. Invalid parameters give 400.
//
// Every request gets an ID (reused from X-Request-ID or X-Correlation-ID, or
// a fresh UUID), is logged once after completion and is shielded from
// handler panics. Use [RequestIDExtractor] with logger.New to carry the ID
// into every log line, including the facade's failure logs.
//
// Liveness and readiness probes are served at /health/live and /health/ready.
package httpapi
