package calsync

import (
	"log/slog"
)

// PushEvent records metadata about a single calendar push.
type PushEvent struct {
	EventID   string
	Attempts  int
	LatencyMs int64
	Status    int
	Success   bool
	ErrorCode string
}

// Observer receives events about calendar pushes for logging and metrics.
type Observer interface {
	OnPushComplete(event PushEvent)
}

// LogObserver writes push events to a slog.Logger.
type LogObserver struct {
	logger *slog.Logger
}

// NewLogObserver creates an Observer that logs events to logger.
func NewLogObserver(logger *slog.Logger) *LogObserver {
	return &LogObserver{logger: logger}
}

func (o *LogObserver) OnPushComplete(event PushEvent) {
	attrs := []any{
		"event_id", event.EventID,
		"attempts", event.Attempts,
		"latency_ms", event.LatencyMs,
		"status", event.Status,
	}
	if !event.Success {
		o.logger.Warn("calendar_push", append(attrs, "error_code", event.ErrorCode)...)
		return
	}
	o.logger.Info("calendar_push", attrs...)
}

// NoopObserver discards all events. Useful for tests.
type NoopObserver struct{}

func (NoopObserver) OnPushComplete(PushEvent) {}
