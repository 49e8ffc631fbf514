// Package fsutil has small filesystem helpers shared by the config loader
// and the logging setup.
package fsutil

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// ExpandHome expands a leading '~' to the user's home directory. Paths
// without the prefix pass through untouched.
func ExpandHome(path string) (string, error) {
	switch {
	case path == "" || path[0] != '~':
		return path, nil
	case path == "~":
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home dir: %w", err)
		}
		return home, nil
	case strings.HasPrefix(path, "~/"):
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("home dir: %w", err)
		}
		return filepath.Join(home, path[2:]), nil
	}
	// ~user form is not supported; leave it for the OS to reject.
	return path, nil
}

// PathExists reports whether the path can be stat'd. Errors other than
// "not exist" count as existing so callers do not silently skip unreadable
// files.
func PathExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil || !errors.Is(err, os.ErrNotExist)
}
