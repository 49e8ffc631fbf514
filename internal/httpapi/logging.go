package httpapi

import (
	"log"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog"
)

// zlog carries the optional structured logger; request logging falls back
// to log.Printf while it is unset.
var zlog *zerolog.Logger

// SetLogger installs the structured logger used by the gateway handlers.
func SetLogger(l zerolog.Logger) { zlog = &l }

// LogLevel controls per-request logging behavior.
type LogLevel int

const (
	LevelOff LogLevel = iota
	LevelError
	LevelInfo
	LevelDebug
)

// parseLevel accepts the level names plus "1" as a debug shorthand.
// Unknown values mean info so a typo never silences logging.
func parseLevel(s string) LogLevel {
	switch s {
	case "off", "":
		return LevelOff
	case "error":
		return LevelError
	case "info":
		return LevelInfo
	case "debug", "1":
		return LevelDebug
	default:
		return LevelInfo
	}
}

// Process default, read once at startup.
var defaultLogLevel = parseLevel(os.Getenv("AGENCY_LOG_LEVEL"))

// requestLogLevel resolves the level for one request: the log query
// parameter wins, then the X-Log-Level header, then the process default.
func requestLogLevel(r *http.Request) LogLevel {
	if v := r.URL.Query().Get("log"); v != "" {
		return parseLevel(v)
	}
	if v := r.Header.Get("X-Log-Level"); v != "" {
		return parseLevel(v)
	}
	return defaultLogLevel
}

func logRequestStart(r *http.Request, lvl LogLevel, op, category string) {
	if lvl < LevelInfo {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("path", r.URL.Path).Str("op", op).Str("category", category)
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		z.Msg(op + " start")
		return
	}
	log.Printf("%s start path=%s category=%s", op, r.URL.Path, category)
}

func logRequestEnd(r *http.Request, lvl LogLevel, op string, status int, start time.Time, err error) {
	if lvl < LevelInfo || status == 0 {
		return
	}
	if zlog != nil {
		z := zlog.Info().Str("op", op).Int("status", status).Dur("dur", time.Since(start))
		if rid := middleware.GetReqID(r.Context()); rid != "" {
			z = z.Str("request_id", rid)
		}
		if err != nil {
			z = z.Err(err)
		}
		z.Msg(op + " end")
		return
	}
	log.Printf("%s end status=%d dur=%s", op, status, time.Since(start))
}
