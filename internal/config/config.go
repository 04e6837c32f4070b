package config

import (
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds all runtime settings.
type Config struct {
	DatabasePath string `yaml:"database_path"`

	// Timezone names the IANA zone that defines "today" for streaks and
	// toggles. Empty means the process local zone.
	Timezone string `yaml:"timezone"`

	WindowDays         int `yaml:"window_days"`
	SummaryConcurrency int `yaml:"summary_concurrency"`

	// ToggleTimeoutMs bounds a single toggle's store write. Zero disables it.
	ToggleTimeoutMs int `yaml:"toggle_timeout_ms"`

	LogLevel    string `yaml:"log_level"`
	LogUseCases bool   `yaml:"log_use_cases"`

	// MetricsAddr, when set, serves Prometheus metrics on this address for
	// the life of the process.
	MetricsAddr string `yaml:"metrics_addr"`
}

// Default returns a Config with sensible defaults rooted at home.
func Default(home string) Config {
	return Config{
		DatabasePath:       filepath.Join(home, ".fitcoach", "fitcoach.db"),
		WindowDays:         7,
		SummaryConcurrency: 4,
		ToggleTimeoutMs:    0,
		LogLevel:           "warn",
	}
}

// Load builds the configuration: defaults, then the YAML file (if present),
// then environment variables.
func Load() (Config, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return Config{}, fmt.Errorf("finding home directory: %w", err)
	}
	cfg := Default(home)

	path := os.Getenv("FITCOACH_CONFIG")
	if path == "" {
		path = filepath.Join(home, ".fitcoach", "config.yaml")
	}
	if err := cfg.mergeFile(path); err != nil {
		return Config{}, err
	}

	cfg.applyEnv()
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// mergeFile overlays YAML values onto cfg. A missing file is not an error.
func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("reading config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv("FITCOACH_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("FITCOACH_TZ"); v != "" {
		c.Timezone = v
	}
	if v := os.Getenv("FITCOACH_WINDOW_DAYS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.WindowDays = n
		}
	}
	if v := os.Getenv("FITCOACH_SUMMARY_CONCURRENCY"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			c.SummaryConcurrency = n
		}
	}
	if v := os.Getenv("FITCOACH_TOGGLE_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			c.ToggleTimeoutMs = n
		}
	}
	if v := os.Getenv("FITCOACH_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
	if v := os.Getenv("FITCOACH_LOG_USE_CASES"); v != "" {
		c.LogUseCases, _ = strconv.ParseBool(v)
	}
	if v := os.Getenv("FITCOACH_METRICS_ADDR"); v != "" {
		c.MetricsAddr = v
	}
}

// Validate rejects settings the engine cannot run with.
func (c Config) Validate() error {
	if c.DatabasePath == "" {
		return fmt.Errorf("database path is required")
	}
	if c.WindowDays <= 0 {
		return fmt.Errorf("window_days must be positive, got %d", c.WindowDays)
	}
	if c.SummaryConcurrency <= 0 {
		return fmt.Errorf("summary_concurrency must be positive, got %d", c.SummaryConcurrency)
	}
	if c.ToggleTimeoutMs < 0 {
		return fmt.Errorf("toggle_timeout_ms must not be negative, got %d", c.ToggleTimeoutMs)
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// Location resolves Timezone.
func (c Config) Location() (*time.Location, error) {
	if c.Timezone == "" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("invalid timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// ToggleTimeout returns the per-toggle deadline, or zero for none.
func (c Config) ToggleTimeout() time.Duration {
	return time.Duration(c.ToggleTimeoutMs) * time.Millisecond
}

// ParseLevel maps a level name to a slog.Level.
func ParseLevel(s string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "info":
		return slog.LevelInfo, nil
	case "debug":
		return slog.LevelDebug, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("invalid log level %q", s)
	}
}
