package domain

import (
	"fmt"
	"time"
)

// PlaceholderLength is the provisional length given to a new event's end
// time until the event is stopped.
const PlaceholderLength = time.Hour

// WorkEvent is one tracked unit of work.
type WorkEvent struct {
	ID        string
	Title     string
	Notes     string
	StartTime time.Time
	EndTime   time.Time
	Type      EventType

	// Pause/resume accounting. LastStartTime is set exactly when the event
	// is running (IsPaused == false).
	IsPaused         bool
	TotalAccumulated time.Duration
	LastStartTime    *time.Time
}

// NewWorkEvent returns a running event whose first session opens at now.
func NewWorkEvent(id, title, notes string, typ EventType, now time.Time) WorkEvent {
	started := now
	return WorkEvent{
		ID:            id,
		Title:         title,
		Notes:         notes,
		StartTime:     now,
		EndTime:       now.Add(PlaceholderLength),
		Type:          typ,
		LastStartTime: &started,
	}
}

// Validate checks the running/LastStartTime invariant.
func (e *WorkEvent) Validate() error {
	if !e.IsPaused && e.LastStartTime == nil {
		return fmt.Errorf("event %s is running without a session start: %w", e.ID, ErrInvariantViolation)
	}
	if e.IsPaused && e.LastStartTime != nil {
		return fmt.Errorf("event %s is paused with an open session: %w", e.ID, ErrInvariantViolation)
	}
	return nil
}

// IsRunning reports whether the event is currently accruing time.
func (e *WorkEvent) IsRunning() bool {
	return !e.IsPaused
}

// HasNotes reports whether the event carries non-empty notes.
func (e *WorkEvent) HasNotes() bool {
	return e.Notes != ""
}

// OpenSession starts a new session at now. Opening an already running
// event is a no-op so that no open time is discarded.
func (e *WorkEvent) OpenSession(now time.Time) {
	if e.IsRunning() && e.LastStartTime != nil {
		return
	}
	started := now
	e.IsPaused = false
	e.LastStartTime = &started
}

// CloseSession folds the open session into TotalAccumulated and marks the
// event paused. Closing a paused event is a no-op.
func (e *WorkEvent) CloseSession(now time.Time) error {
	if e.IsPaused {
		return nil
	}
	if e.LastStartTime == nil {
		return fmt.Errorf("closing session of %s: %w", e.ID, ErrInvariantViolation)
	}
	e.TotalAccumulated += now.Sub(*e.LastStartTime)
	e.IsPaused = true
	e.LastStartTime = nil
	return nil
}

// Finish closes any open session and finalizes EndTime at now.
func (e *WorkEvent) Finish(now time.Time) error {
	if err := e.CloseSession(now); err != nil {
		return err
	}
	e.EndTime = now
	return nil
}

// Clone returns a deep copy of e.
func (e WorkEvent) Clone() WorkEvent {
	if e.LastStartTime != nil {
		t := *e.LastStartTime
		e.LastStartTime = &t
	}
	return e
}
