package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

// Server configures the SSH server. It is read from TOML.
type Server struct {
	Address     string        `toml:"address"`
	HostKeyPath string        `toml:"host_key"`
	DBPath      string        `toml:"db_path"`
	IdleTimeout time.Duration `toml:"idle_timeout"`
	TickRate    int           `toml:"tick_rate"`
	Level       string        `toml:"level"`
	Tunables    string        `toml:"tunables"`
	Logging     Logging       `toml:"logging"`
}

// Logging selects log verbosity.
type Logging struct {
	Level string `toml:"level"`
}

// DefaultServer returns the server defaults.
func DefaultServer() Server {
	return Server{
		Address:     ":23234",
		DBPath:      "~/.something/rooms.db",
		IdleTimeout: 30 * time.Minute,
		TickRate:    30,
		Level:       "caves",
		Logging:     Logging{Level: "info"},
	}
}

// LoadServer reads a TOML server config over the defaults.
// An empty path returns the defaults.
func LoadServer(path string) (Server, error) {
	cfg := DefaultServer()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	if cfg.TickRate <= 0 {
		return cfg, fmt.Errorf("parse config %s: tick_rate must be positive", path)
	}
	return cfg, nil
}
