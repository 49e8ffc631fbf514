package ollama

import (
	"context"
	"sync"
	"time"
)

// acquire reserves one of the bounded in-flight slots. Returns a release func
// to be deferred; release is safe to call more than once but frees the slot
// exactly once.
func (c *Client) acquire(ctx context.Context) (func(), error) {
	// Fast path: respect an already-canceled context
	if err := ctx.Err(); err != nil {
		return func() {}, err
	}

	var timeout <-chan time.Time
	if c.acquireWait > 0 {
		timer := time.NewTimer(c.acquireWait)
		defer timer.Stop()
		timeout = timer.C
	}
	select {
	case c.slots <- struct{}{}:
		ollamaInflight.Inc()
		var once sync.Once
		return func() {
			once.Do(func() {
				<-c.slots
				ollamaInflight.Dec()
			})
		}, nil
	case <-ctx.Done():
		return func() {}, ctx.Err()
	case <-timeout:
		admissionTimeoutsTotal.Inc()
		return func() {}, tooBusyError{limit: cap(c.slots)}
	}
}

// InFlight reports how many requests currently hold an admission slot.
func (c *Client) InFlight() int {
	return len(c.slots)
}
