package testutil

import (
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/google/uuid"
)

// Event options
type EventOption func(*domain.WorkEvent)

func WithEventType(t domain.EventType) EventOption {
	return func(e *domain.WorkEvent) {
		e.Type = t
	}
}

func WithNotes(n string) EventOption {
	return func(e *domain.WorkEvent) {
		e.Notes = n
	}
}

func WithStartTime(t time.Time) EventOption {
	return func(e *domain.WorkEvent) {
		e.StartTime = t
		e.EndTime = t.Add(domain.PlaceholderLength)
	}
}

func WithEndTime(t time.Time) EventOption {
	return func(e *domain.WorkEvent) {
		e.EndTime = t
	}
}

// WithAccumulated marks the event paused with the given total.
func WithAccumulated(d time.Duration) EventOption {
	return func(e *domain.WorkEvent) {
		e.IsPaused = true
		e.LastStartTime = nil
		e.TotalAccumulated = d
	}
}

// WithRunningSince marks the event running with an open session from t.
func WithRunningSince(t time.Time) EventOption {
	return func(e *domain.WorkEvent) {
		started := t
		e.IsPaused = false
		e.LastStartTime = &started
	}
}

func WithEventID(id string) EventOption {
	return func(e *domain.WorkEvent) {
		e.ID = id
	}
}

// NewTestEvent returns a stopped Task event that started an hour ago with no
// accumulated time.
func NewTestEvent(title string, opts ...EventOption) *domain.WorkEvent {
	start := time.Now().Add(-time.Hour).Truncate(time.Second)
	e := &domain.WorkEvent{
		ID:        uuid.New().String(),
		Title:     title,
		StartTime: start,
		EndTime:   start.Add(domain.PlaceholderLength),
		Type:      domain.EventTask,
		IsPaused:  true,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Todo options
type TodoOption func(*domain.TodoItem)

func WithTodoNotes(n string) TodoOption {
	return func(t *domain.TodoItem) {
		t.Notes = n
	}
}

func WithTodoType(typ domain.EventType) TodoOption {
	return func(t *domain.TodoItem) {
		t.Type = typ
	}
}

func WithCompleted() TodoOption {
	return func(t *domain.TodoItem) {
		t.IsCompleted = true
	}
}

func WithPlannedWindow(start, end time.Time) TodoOption {
	return func(t *domain.TodoItem) {
		t.PlannedStart = &start
		t.PlannedEnd = &end
	}
}

func NewTestTodo(title string, day time.Time, opts ...TodoOption) *domain.TodoItem {
	t := &domain.TodoItem{
		ID:         uuid.New().String(),
		Title:      title,
		TargetDate: domain.StartOfDay(day),
		Type:       domain.EventTask,
	}
	for _, opt := range opts {
		opt(t)
	}
	return t
}
