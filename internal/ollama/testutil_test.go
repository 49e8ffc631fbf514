package ollama

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"agency/internal/config"
	"agency/pkg/types"
)

// testConfig returns a valid config pointed at endpoint, tuned for fast
// tests: millisecond retry delay, sub-second timeouts.
func testConfig(endpoint string) config.Config {
	var cfg config.Config
	cfg.Ollama.Connection.Endpoint = endpoint
	cfg.Ollama.Connection.Timeout = 0.5
	cfg.Ollama.Connection.MaxRetries = 1
	cfg.Ollama.Models = map[string]string{
		"default":  "llama2",
		"research": "mistral",
	}
	temp := 0.9
	cfg.Ollama.ModelConfigs = map[string]types.ModelProfile{
		"research": {Temperature: &temp},
	}
	cfg.Ollama.Requests.MaxTokens = 64
	cfg.Ollama.Requests.BatchSize = 2
	cfg.Ollama.Requests.ConcurrentLimit = 2
	cfg.Ollama.Requests.RequestTimeout = 0.5
	cfg.Ollama.ErrorHandling.RetryDelay = 0.001
	cfg.Ollama.ErrorHandling.MaxRetries = 3
	cfg.Ollama.ErrorHandling.FallbackBehavior = config.FallbackNone
	return cfg
}

// fakeDaemon answers the liveness probe on GET / and delegates everything
// else to handler.
func fakeDaemon(handler http.HandlerFunc) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodGet && r.URL.Path == "/" {
			w.WriteHeader(http.StatusOK)
			return
		}
		handler(w, r)
	})
}

// newTestClient starts a fake daemon around handler and connects a client to
// it. mutate, when non-nil, adjusts the config before New runs.
func newTestClient(t *testing.T, handler http.HandlerFunc, mutate func(*config.Config)) *Client {
	t.Helper()
	srv := httptest.NewServer(fakeDaemon(handler))
	t.Cleanup(srv.Close)
	cfg := testConfig(strings.TrimPrefix(srv.URL, "http://"))
	if mutate != nil {
		mutate(&cfg)
	}
	c, err := New(testCtx(t), cfg)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return c
}

// decodeBody reads and decodes a JSON request payload.
func decodeBody(t *testing.T, r *http.Request) map[string]any {
	t.Helper()
	data, err := io.ReadAll(r.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	var m map[string]any
	if err := json.Unmarshal(data, &m); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	return m
}

// testCtx returns a context with a short timeout, canceled on test cleanup.
func testCtx(t *testing.T) context.Context {
	t.Helper()
	c, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	t.Cleanup(cancel)
	return c
}
