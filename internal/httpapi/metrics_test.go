package httpapi

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// TestMetricsMiddleware_EmitsRequestCounters verifies that wrapping a handler
// with MetricsMiddleware results in request metrics being exposed via the
// Prometheus /metrics handler.
func TestMetricsMiddleware_EmitsRequestCounters(t *testing.T) {
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	MetricsMiddleware(next).ServeHTTP(rr, req)
	if rr.Code != http.StatusOK {
		t.Fatalf("expected status 200, got %d", rr.Code)
	}

	body := scrapeMetrics(t)
	if !bytes.Contains(body, []byte("agency_http_requests_total")) {
		t.Fatalf("expected agency_http_requests_total in metrics; got: %q", preview(body))
	}
	if !bytes.Contains(body, []byte("agency_http_response_bytes_total")) {
		t.Fatalf("expected agency_http_response_bytes_total in metrics; got: %q", preview(body))
	}
}

// TestMetricsMiddleware_UsesRoutePattern ensures the metrics middleware labels
// by the chi route pattern instead of the raw URL path.
func TestMetricsMiddleware_UsesRoutePattern(t *testing.T) {
	r := chi.NewRouter()
	r.Post("/api/generate", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	h := MetricsMiddleware(r)

	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/generate", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rr.Code)
	}

	body := scrapeMetrics(t)
	if !bytes.Contains(body, []byte("agency_http_requests_total")) || !bytes.Contains(body, []byte("/api/generate")) {
		t.Fatalf("expected metrics labeled with /api/generate; got: %q", preview(body))
	}
}

func TestIncrementBackpressure_DefaultsReason(t *testing.T) {
	IncrementBackpressure("")
	body := scrapeMetrics(t)
	if !bytes.Contains(body, []byte(`agency_http_backpressure_total{reason="unspecified"}`)) {
		t.Fatalf("expected unspecified backpressure counter; got: %q", preview(body))
	}
}

func scrapeMetrics(t *testing.T) []byte {
	t.Helper()
	rr := httptest.NewRecorder()
	promhttp.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("/metrics status=%d", rr.Code)
	}
	return rr.Body.Bytes()
}

func preview(b []byte) string {
	if len(b) > 400 {
		b = b[:400]
	}
	return string(b)
}
