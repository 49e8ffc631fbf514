package httpapi

import (
	"bytes"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
)

func TestParseLevel(t *testing.T) {
	cases := []struct {
		in   string
		want LogLevel
	}{
		{"", LevelOff},
		{"off", LevelOff},
		{"error", LevelError},
		{"info", LevelInfo},
		{"debug", LevelDebug},
		{"1", LevelDebug},
		{"weird", LevelInfo},
	}
	for _, c := range cases {
		if got := parseLevel(c.in); got != c.want {
			t.Fatalf("parseLevel(%q) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestRequestLogLevel(t *testing.T) {
	if got := requestLogLevel(httptest.NewRequest("GET", "/x?log=debug", nil)); got != LevelDebug {
		t.Fatalf("query override: got %v", got)
	}
	if got := requestLogLevel(httptest.NewRequest("GET", "/x?log=1", nil)); got != LevelDebug {
		t.Fatalf("log=1 shorthand: got %v", got)
	}
	r := httptest.NewRequest("GET", "/x", nil)
	r.Header.Set("X-Log-Level", "error")
	if got := requestLogLevel(r); got != LevelError {
		t.Fatalf("header override: got %v", got)
	}
	if got := requestLogLevel(httptest.NewRequest("GET", "/x", nil)); got != defaultLogLevel {
		t.Fatalf("no override: got %v, want the process default", got)
	}
	// Query beats header when both are present.
	r = httptest.NewRequest("GET", "/x?log=off", nil)
	r.Header.Set("X-Log-Level", "debug")
	if got := requestLogLevel(r); got != LevelOff {
		t.Fatalf("precedence: got %v, want off", got)
	}
}

func TestRequestLogging_WritesThroughInstalledLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer func() { zlog = nil }()

	r := httptest.NewRequest("POST", "/api/generate", nil)
	start := time.Now()
	logRequestStart(r, LevelInfo, "generate", "research")
	logRequestEnd(r, LevelInfo, "generate", 200, start, nil)

	out := buf.String()
	if !strings.Contains(out, "generate start") || !strings.Contains(out, "generate end") {
		t.Fatalf("missing request log lines: %q", out)
	}
	if !strings.Contains(out, `"category":"research"`) || !strings.Contains(out, `"status":200`) {
		t.Fatalf("missing structured fields: %q", out)
	}
}

func TestRequestLogging_SilentBelowInfo(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))
	defer func() { zlog = nil }()

	r := httptest.NewRequest("POST", "/api/chat", nil)
	logRequestStart(r, LevelError, "chat", "")
	logRequestEnd(r, LevelError, "chat", 200, time.Now(), nil)
	// A dropped connection reports status 0 and is skipped too.
	logRequestEnd(r, LevelInfo, "chat", 0, time.Now(), nil)
	if buf.Len() != 0 {
		t.Fatalf("expected silence, got %q", buf.String())
	}
}
