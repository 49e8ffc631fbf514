package ollama

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"agency/internal/config"
)

func TestAcquire_ReleaseExactlyOnce(t *testing.T) {
	c := &Client{slots: make(chan struct{}, 1)}
	release, err := c.acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire: %v", err)
	}
	if got := c.InFlight(); got != 1 {
		t.Fatalf("InFlight = %d, want 1", got)
	}
	release()
	release() // second call must be a no-op
	if got := c.InFlight(); got != 0 {
		t.Fatalf("InFlight after double release = %d, want 0", got)
	}
	// The slot stays usable afterwards.
	release2, err := c.acquire(context.Background())
	if err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	release2()
}

func TestAcquire_TimesOutWhenFull(t *testing.T) {
	c := &Client{slots: make(chan struct{}, 1), acquireWait: 20 * time.Millisecond}
	release, err := c.acquire(context.Background())
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer release()
	_, err = c.acquire(context.Background())
	if err == nil || !IsTooBusy(err) {
		t.Fatalf("expected tooBusyError, got %v", err)
	}
}

func TestAcquire_CanceledWhileWaiting(t *testing.T) {
	c := &Client{slots: make(chan struct{}, 1)}
	release, err := c.acquire(context.Background())
	if err != nil {
		t.Fatalf("first acquire: %v", err)
	}
	defer release()
	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()
	if _, err := c.acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestAcquire_PreCanceledContext(t *testing.T) {
	c := &Client{slots: make(chan struct{}, 1)}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := c.acquire(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
	if got := c.InFlight(); got != 0 {
		t.Fatalf("InFlight = %d, want 0", got)
	}
}

func TestConcurrencyNeverExceedsLimit(t *testing.T) {
	var cur, peak, total atomic.Int64
	handler := func(w http.ResponseWriter, r *http.Request) {
		n := cur.Add(1)
		for {
			p := peak.Load()
			if n <= p || peak.CompareAndSwap(p, n) {
				break
			}
		}
		time.Sleep(10 * time.Millisecond)
		cur.Add(-1)
		total.Add(1)
		fmt.Fprint(w, `{"response":"ok"}`)
	}
	c := newTestClient(t, handler, func(cfg *config.Config) {
		cfg.Ollama.Requests.ConcurrentLimit = 3
		cfg.Ollama.ErrorHandling.MaxRetries = 1
	})

	var wg sync.WaitGroup
	for i := 0; i < 12; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			res, err := c.Generate(context.Background(), "p", "default")
			if err != nil {
				t.Errorf("Generate: %v", err)
				return
			}
			if !res.Success {
				t.Errorf("Generate failed: %s", res.Error)
			}
		}()
	}
	wg.Wait()

	if got := peak.Load(); got > 3 {
		t.Fatalf("max concurrent requests = %d, want <= 3", got)
	}
	if got := total.Load(); got != 12 {
		t.Fatalf("completed requests = %d, want 12", got)
	}
	if got := c.InFlight(); got != 0 {
		t.Fatalf("InFlight after drain = %d, want 0", got)
	}
}
