// Package ollama provides a resilient HTTP client for a local Ollama daemon.
// It is structured into small files by concern:
//
//   - client.go: core Client type, constructor, Generate/Chat entry points.
//   - profiles.go: task category to model and sampling profile resolution.
//   - admission.go: bounded in-flight slot acquisition and release.
//   - validate.go: construction-time connection probing with retries.
//   - request.go: single-request retry loop and response classification.
//   - batch.go: bounded-parallel batch generation.
//   - errors.go: error types and helpers (IsTooBusy, IsConnectionError).
//   - helpers.go: small utilities (duration conversion, context-aware sleep).
//   - metrics.go: Prometheus collectors for requests, admission and probes.
//
// The client is safe for concurrent use. Every call first takes one of the
// ConcurrentLimit admission slots, so the daemon never sees more than that
// many requests at once. Transient upstream failures (non-2xx statuses,
// malformed bodies, network errors, per-attempt timeouts) are retried with a
// fixed delay and, once the attempt budget is spent, reported through the
// InferenceResult rather than the error return. The error return is reserved
// for admission rejections and caller cancellation.
package ollama
