package ollama

import "fmt"

// tooBusyError signals admission timeout/overflow for 429 mapping.
type tooBusyError struct{ limit int }

func (e tooBusyError) Error() string {
	return fmt.Sprintf("too busy: %d requests in flight", e.limit)
}

// ErrTooBusy constructs a tooBusyError for the given concurrency limit.
func ErrTooBusy(limit int) error { return tooBusyError{limit: limit} }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	_, ok := err.(tooBusyError)
	return ok
}

// connectionError signals that the daemon could not be reached during
// construction-time validation. It is fatal: New returns it and no client
// is handed out.
type connectionError struct {
	attempts int
	last     error
}

func (e connectionError) Error() string {
	return fmt.Sprintf("failed to connect to ollama after %d attempts: %v", e.attempts, e.last)
}

func (e connectionError) Unwrap() error { return e.last }

// IsConnectionError reports whether err came from connection validation.
func IsConnectionError(err error) bool {
	_, ok := err.(connectionError)
	return ok
}
