package cli

import (
	"fmt"
	"os"

	"agency/internal/config"
)

// Config carries the persistent CLI settings shared by every subcommand.
type Config struct {
	ConfigPath string
	LogLevel   string
}

// MainWithArgs is a testable variant of Main that accepts args explicitly.
// It returns an exit code (0 for success, non-zero on error).
func MainWithArgs(args []string) int {
	cfg := &Config{
		ConfigPath: envStr("AGENCY_CONFIG", config.Discover()),
		LogLevel:   envStr("AGENCY_LOG_LEVEL", "warn"),
	}
	root := buildRootCmdWith(cfg)
	root.SetArgs(args)
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		return 1
	}
	return 0
}

// Main returns an exit code (0 for success, non-zero on error) for use by cmd/agency.
func Main() int { return MainWithArgs(os.Args[1:]) }

func envStr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
