package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/BurntSushi/toml"
)

// Load reads config from path, applying defaults for missing values.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig(filepath.Dir(path))

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	md, err := toml.Decode(string(data), cfg)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		return nil, fmt.Errorf("parsing %s: unknown key %q", path, undecoded[0].String())
	}

	return cfg, nil
}

// LoadOrCreate loads config or writes the defaults if the file is missing.
func LoadOrCreate(path string) (*Config, error) {
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg := DefaultConfig(filepath.Dir(path))
		return cfg, Save(path, cfg)
	}
	return Load(path)
}

// Save writes config to path.
func Save(path string, cfg *Config) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()

	encoder := toml.NewEncoder(f)
	return encoder.Encode(cfg)
}

// LoadConfig resolves the effective configuration: defaults, then the file
// at path when it exists, then WORKLOG_* environment overrides.
func LoadConfig(path string) (*Config, error) {
	var cfg *Config
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		cfg = DefaultConfig(filepath.Dir(path))
	} else {
		loaded, err := Load(path)
		if err != nil {
			return nil, err
		}
		cfg = loaded
	}

	ApplyEnv(cfg)
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

// ApplyEnv overrides cfg with any WORKLOG_* variables that are set.
// Malformed numeric or boolean values are ignored.
func ApplyEnv(cfg *Config) {
	if v := os.Getenv("WORKLOG_DB"); v != "" {
		cfg.DBPath = v
	}
	if v := os.Getenv("WORKLOG_TZ"); v != "" {
		cfg.Timezone = v
	}

	if v := os.Getenv("WORKLOG_CALENDAR_ENABLED"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Calendar.Enabled = b
		}
	}
	if v := os.Getenv("WORKLOG_CALENDAR_ENDPOINT"); v != "" {
		cfg.Calendar.Endpoint = v
	}
	if v := os.Getenv("WORKLOG_CALENDAR_ID"); v != "" {
		cfg.Calendar.CalendarID = v
	}
	if v := os.Getenv("WORKLOG_CALENDAR_TOKEN"); v != "" {
		cfg.Calendar.Token = v
	}
	if v := os.Getenv("WORKLOG_CALENDAR_TIMEOUT_MS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			cfg.Calendar.TimeoutMs = n
		}
	}
	if v := os.Getenv("WORKLOG_CALENDAR_MAX_RETRIES"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			cfg.Calendar.MaxRetries = n
		}
	}
	if v := os.Getenv("WORKLOG_CALENDAR_LOG_CALLS"); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			cfg.Calendar.LogCalls = b
		}
	}

	if v := os.Getenv("WORKLOG_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("WORKLOG_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("WORKLOG_LOG_FILE"); v != "" {
		cfg.Logging.File = v
	}

	if v := os.Getenv("WORKLOG_WATCH_REFRESH"); v != "" {
		cfg.Watch.Refresh = v
	}
}
