package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// LoadT2048 loads the tile merge rules.
// Search order: customPath -> ~/.tilemerge/configs/t2048.yaml -> ./configs/t2048.yaml -> embedded default
func LoadT2048(customPath string) (T2048Config, error) {
	return load(customPath, "t2048.yaml", defaultT2048YAML, DefaultT2048Config)
}

// load reads a YAML config from the first location that parses.
// An explicit customPath must exist and parse; the other locations are optional.
func load[T any](customPath, filename string, embedded []byte, fallback func() T) (T, error) {
	cfg := fallback()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, fmt.Errorf("config: failed to read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("config: failed to parse %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(filename); userCfgPath != "" {
		if parsed, ok := parse(userCfgPath, fallback); ok {
			return parsed, nil
		}
	}

	// Try local configs directory
	if parsed, ok := parse(filepath.Join("configs", filename), fallback); ok {
		return parsed, nil
	}

	// Use embedded default YAML
	parsed := fallback()
	if err := yaml.Unmarshal(embedded, &parsed); err != nil {
		return fallback(), nil // Fallback to hardcoded if embed fails
	}
	return parsed, nil
}

// parse reads one optional config file layered over the hardcoded defaults.
func parse[T any](path string, fallback func() T) (T, bool) {
	cfg := fallback()
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, false
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, false
	}
	return cfg, true
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".tilemerge", "configs", filename)
}
