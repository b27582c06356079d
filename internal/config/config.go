// Package config loads the service configuration from YAML.
package config

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Config is the full service configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Planning PlanningConfig `yaml:"planning"`
	Metrics  MetricsConfig  `yaml:"metrics"`
	Log      LogConfig      `yaml:"log"`
}

// ServerConfig configures the API listener.
type ServerConfig struct {
	Port int `yaml:"port"`
}

// DatabaseConfig selects the catalog store. Driver is sqlite3, postgres or
// memory.
type DatabaseConfig struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
	Seed   bool   `yaml:"seed"`
}

// PlanningConfig holds the defaults applied when an event order leaves them out.
type PlanningConfig struct {
	DefaultBuffer float64 `yaml:"default_buffer"`
	StepMinutes   int     `yaml:"step_minutes"`
}

// MetricsConfig configures the Prometheus listener.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled"`
	Port    int    `yaml:"port"`
	Path    string `yaml:"path"`
}

// LogConfig sets the log level. LOG_LEVEL overrides it.
type LogConfig struct {
	Level string `yaml:"level"`
}

// Default returns the configuration used when no file is given.
func Default() Config {
	return Config{
		Server:   ServerConfig{Port: 8080},
		Database: DatabaseConfig{Driver: "sqlite3", DSN: "banquetprep.db", Seed: true},
		Planning: PlanningConfig{DefaultBuffer: 10, StepMinutes: 30},
		Metrics:  MetricsConfig{Enabled: true, Port: 9090, Path: "/metrics"},
		Log:      LogConfig{Level: "info"},
	}
}

// Load reads path over the defaults. An empty path returns the defaults.
func Load(path string) (Config, error) {
	cfg := Default()
	if path == "" {
		return cfg, nil
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, cfg.Validate()
}

// Validate rejects values the service cannot start with.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case "sqlite3", "postgres", "memory":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	if c.Database.Driver != "memory" && c.Database.DSN == "" {
		return fmt.Errorf("database dsn is required for driver %s", c.Database.Driver)
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("invalid server port %d", c.Server.Port)
	}
	if c.Metrics.Enabled && c.Metrics.Port <= 0 {
		return fmt.Errorf("invalid metrics port %d", c.Metrics.Port)
	}
	if c.Metrics.Enabled && !strings.HasPrefix(c.Metrics.Path, "/") {
		return fmt.Errorf("metrics path must start with /, got %q", c.Metrics.Path)
	}
	if c.Planning.DefaultBuffer < 0 {
		return fmt.Errorf("default buffer must not be negative, got %v", c.Planning.DefaultBuffer)
	}
	return nil
}
