// Package logging builds the process-wide zerolog logger from configuration.
package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"agency/internal/common/fsutil"
)

// New constructs a logger writing to stderr and, when file is non-empty, to
// that file as well. Unknown levels fall back to info.
func New(level string, pretty bool, file string) (zerolog.Logger, error) {
	lvl := ParseLevel(level)
	var console io.Writer = os.Stderr
	if pretty {
		console = zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}
	}
	out := console
	if file != "" {
		path, err := fsutil.ExpandHome(file)
		if err != nil {
			return zerolog.Nop(), err
		}
		f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
		if err != nil {
			return zerolog.Nop(), err
		}
		out = io.MultiWriter(console, f)
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}

// ParseLevel maps a config level string to a zerolog level, defaulting to
// info on unknown values.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(level) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "info":
		return zerolog.InfoLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "off", "disabled":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}
