package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

const tunablesFile = "tunables.yaml"

// LoadTunables loads simulation tunables.
// Search order: customPath -> ~/.something/tunables.yaml -> ./configs/tunables.yaml -> embedded default.
// Keys missing from a file keep their default values.
func LoadTunables(customPath string) (Tunables, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return DefaultTunables(), fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := ParseTunables(data)
		if err != nil {
			return DefaultTunables(), fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath(tunablesFile); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := ParseTunables(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile(filepath.Join("configs", tunablesFile)); err == nil {
		if cfg, err := ParseTunables(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := ParseTunables(defaultTunablesYAML)
	if err != nil {
		return DefaultTunables(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// ParseTunables decodes YAML over the defaults and validates the result.
func ParseTunables(data []byte) (Tunables, error) {
	cfg := DefaultTunables()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, err
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// MarshalTunables encodes t as YAML.
func MarshalTunables(t Tunables) ([]byte, error) {
	return yaml.Marshal(t)
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".something", filename)
}
