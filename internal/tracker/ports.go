package tracker

import (
	"context"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// EventStore is the durable mirror of the tracker's event collection.
type EventStore interface {
	CreateEvent(ctx context.Context, e *domain.WorkEvent) error
	UpdateEvent(ctx context.Context, e *domain.WorkEvent) error
	DeleteEvent(ctx context.Context, id string) error
	// ListEvents returns all events, newest StartTime first.
	ListEvents(ctx context.Context) ([]*domain.WorkEvent, error)
}

// StateStore persists which event is active so that a paused active event
// survives a restart.
type StateStore interface {
	ActiveEventID(ctx context.Context) (string, error)
	SetActiveEventID(ctx context.Context, id string) error
}

// CalendarSync pushes finished events to an external calendar.
type CalendarSync interface {
	Authenticated() bool
	Push(ctx context.Context, e domain.WorkEvent) error
}

// Clock is the tracker's time source.
type Clock interface {
	Now() time.Time
}

// SystemClock reads the wall clock.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

type noopStateStore struct{}

func (noopStateStore) ActiveEventID(context.Context) (string, error)  { return "", nil }
func (noopStateStore) SetActiveEventID(context.Context, string) error { return nil }
