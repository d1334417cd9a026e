// Package config resolves worklog settings from defaults, an optional TOML
// file and WORKLOG_* environment variables, in that order of precedence.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/calsync"
)

// Config holds the main worklog configuration.
type Config struct {
	DBPath   string         `toml:"db_path"`
	Timezone string         `toml:"timezone"`
	Calendar calsync.Config `toml:"calendar"`
	Logging  LoggingConfig  `toml:"logging"`
	Watch    WatchConfig    `toml:"watch"`
}

type LoggingConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `toml:"level"`
	// Format is text or json.
	Format string `toml:"format"`
	// File receives log output; empty means stderr.
	File string `toml:"file"`
}

type WatchConfig struct {
	Refresh string `toml:"refresh"`
}

// Dir returns the worklog home directory: $WORKLOG_HOME or ~/.worklog.
func Dir() (string, error) {
	if v := os.Getenv("WORKLOG_HOME"); v != "" {
		return v, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("finding home directory: %w", err)
	}
	return filepath.Join(home, ".worklog"), nil
}

// DefaultPath returns the config file location: $WORKLOG_CONFIG or
// config.toml inside Dir.
func DefaultPath() (string, error) {
	if v := os.Getenv("WORKLOG_CONFIG"); v != "" {
		return v, nil
	}
	dir, err := Dir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, "config.toml"), nil
}

// DefaultConfig returns the built-in settings rooted at dir.
func DefaultConfig(dir string) *Config {
	return &Config{
		DBPath:   filepath.Join(dir, "worklog.db"),
		Timezone: "Local",
		Calendar: calsync.DefaultConfig(),
		Logging: LoggingConfig{
			Level:  "warn",
			Format: "text",
		},
		Watch: WatchConfig{
			Refresh: "1s",
		},
	}
}

// Location resolves Timezone. "Local" and "" use the system zone.
func (c *Config) Location() (*time.Location, error) {
	if c.Timezone == "" || strings.EqualFold(c.Timezone, "local") {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("loading timezone %q: %w", c.Timezone, err)
	}
	return loc, nil
}

// RefreshInterval parses Watch.Refresh, falling back to one second.
func (c *Config) RefreshInterval() time.Duration {
	d, err := time.ParseDuration(c.Watch.Refresh)
	if err != nil || d <= 0 {
		return time.Second
	}
	return d
}

// Validate reports settings that cannot be used.
func (c *Config) Validate() error {
	if c.DBPath == "" {
		return fmt.Errorf("db_path must not be empty")
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if _, err := ParseLevel(c.Logging.Level); err != nil {
		return err
	}
	switch strings.ToLower(c.Logging.Format) {
	case "", "text", "json":
	default:
		return fmt.Errorf("logging.format must be text or json, got %q", c.Logging.Format)
	}
	if c.Calendar.Enabled && c.Calendar.Token == "" {
		return fmt.Errorf("calendar.enabled requires calendar.token (or WORKLOG_CALENDAR_TOKEN)")
	}
	return nil
}
