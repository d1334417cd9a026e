package domain

import "time"

// TodoItem is a task planned for a given day. It is independent of event
// tracking; starting a todo creates a new WorkEvent and leaves the todo as is.
type TodoItem struct {
	ID          string
	Title       string
	Notes       string
	TargetDate  time.Time
	IsCompleted bool
	Type        EventType

	// Optional time-of-day hints.
	PlannedStart *time.Time
	PlannedEnd   *time.Time
}

// Toggle flips the completion flag.
func (t *TodoItem) Toggle() {
	t.IsCompleted = !t.IsCompleted
}

// StartOfDay returns local midnight of the day containing d, in d's location.
func StartOfDay(d time.Time) time.Time {
	y, m, day := d.Date()
	return time.Date(y, m, day, 0, 0, 0, 0, d.Location())
}

// SameDay reports whether a and b fall on the same calendar day in a's location.
func SameDay(a, b time.Time) bool {
	b = b.In(a.Location())
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}
