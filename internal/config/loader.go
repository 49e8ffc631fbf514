package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"agency/internal/common/fsutil"
)

// DefaultPaths lists the file names probed when no explicit path is given.
var DefaultPaths = []string{"agency.yaml", "agency.toml", "agency.json"}

// Discover returns the first existing path from DefaultPaths. When none
// exists it returns the first entry so the caller's error names the
// conventional file.
func Discover() string {
	for _, p := range DefaultPaths {
		if fsutil.PathExists(p) {
			return p
		}
	}
	return DefaultPaths[0]
}

// Load reads a configuration file based on its extension, fills defaults, and
// validates the result. Supports: .yaml/.yml, .json, .toml
func Load(path string) (Config, error) {
	var cfg Config
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	expanded, err := fsutil.ExpandHome(path)
	if err != nil {
		return cfg, err
	}
	b, err := os.ReadFile(expanded)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(expanded)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	cfg.Normalize()
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}
