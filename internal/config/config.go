// Package config loads tasker configuration from YAML and the environment.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap/zapcore"
)

// Config is the complete application configuration.
type Config struct {
	Server   ServerConfig   `koanf:"server"`
	Database DatabaseConfig `koanf:"database"`
	Log      LogConfig      `koanf:"log"`
	Timezone string         `koanf:"timezone"`
	Watch    WatchConfig    `koanf:"watch"`
	CLI      CLIConfig      `koanf:"cli"`
}

// ServerConfig holds HTTP server configuration.
type ServerConfig struct {
	Host            string        `koanf:"host"`
	Port            int           `koanf:"port"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// Addr returns host:port for the listener.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type DatabaseConfig struct {
	Path string `koanf:"path"`
}

type LogConfig struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}

// WatchConfig controls the terminal reconciliation loop.
type WatchConfig struct {
	PollInterval time.Duration `koanf:"poll_interval"`
	CachePath    string        `koanf:"cache_path"`
}

type CLIConfig struct {
	User string `koanf:"user"`
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	applyDefaults(cfg)
	return cfg
}

func applyDefaults(cfg *Config) {
	if cfg.Server.Host == "" {
		cfg.Server.Host = "127.0.0.1"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}
	if cfg.Server.ShutdownTimeout == 0 {
		cfg.Server.ShutdownTimeout = 10 * time.Second
	}

	if cfg.Database.Path == "" {
		cfg.Database.Path = "tasker.db"
	}

	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "json"
	}

	if cfg.Watch.PollInterval == 0 {
		cfg.Watch.PollInterval = time.Minute
	}
	if cfg.Watch.CachePath == "" {
		cfg.Watch.CachePath = defaultCachePath()
	}
}

func defaultCachePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = os.TempDir()
	}
	return filepath.Join(dir, "tasker", "active_session.json")
}

// Validate checks the configuration for values the application cannot run with.
func (c *Config) Validate() error {
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server port: %d (must be 1-65535)", c.Server.Port)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return errors.New("shutdown timeout must be positive")
	}
	if strings.TrimSpace(c.Database.Path) == "" {
		return errors.New("database path is required")
	}
	if _, err := zapcore.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("invalid log level %q: %w", c.Log.Level, err)
	}
	if c.Log.Format != "json" && c.Log.Format != "console" {
		return fmt.Errorf("invalid log format %q (must be json or console)", c.Log.Format)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.Watch.PollInterval < time.Second {
		return fmt.Errorf("watch poll interval %s is below one second", c.Watch.PollInterval)
	}
	return nil
}

// Location resolves Timezone. Empty or "Local" selects the host time zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}
