package calsync

import (
	"net/url"
	"strings"
	"time"
)

// DefaultEndpoint is the Google Calendar v3 API root.
const DefaultEndpoint = "https://www.googleapis.com/calendar/v3"

// Config holds calendar sync settings.
type Config struct {
	Enabled    bool   `toml:"enabled" yaml:"enabled"`
	Endpoint   string `toml:"endpoint" yaml:"endpoint"`
	CalendarID string `toml:"calendar_id" yaml:"calendar_id"`
	// Token is an OAuth access token obtained outside worklog.
	Token      string `toml:"token" yaml:"token"`
	TimeoutMs  int    `toml:"timeout_ms" yaml:"timeout_ms"`
	MaxRetries int    `toml:"max_retries" yaml:"max_retries"`
	LogCalls   bool   `toml:"log_calls" yaml:"log_calls"`
}

// DefaultConfig returns a Config with sync disabled.
func DefaultConfig() Config {
	return Config{
		Enabled:    false,
		Endpoint:   DefaultEndpoint,
		CalendarID: "primary",
		TimeoutMs:  10000,
		MaxRetries: 1,
	}
}

// Timeout returns the per-push timeout.
func (c Config) Timeout() time.Duration {
	if c.TimeoutMs <= 0 {
		return 10 * time.Second
	}
	return time.Duration(c.TimeoutMs) * time.Millisecond
}

// EventsURL is the collection URL new events are POSTed to.
func (c Config) EventsURL() string {
	id := c.CalendarID
	if id == "" {
		id = "primary"
	}
	return strings.TrimRight(c.Endpoint, "/") + "/calendars/" + url.PathEscape(id) + "/events"
}
