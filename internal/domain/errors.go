package domain

import "errors"

var (
	// ErrNotFound indicates an operation targeted an id that does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvariantViolation indicates an event is running without a session
	// start time. It always points at a defect in an earlier transition.
	ErrInvariantViolation = errors.New("event invariant violated")

	// ErrEmptyTitle is returned when creating an event or todo without a title.
	ErrEmptyTitle = errors.New("title must not be empty")

	// ErrAmbiguousID is returned when an id prefix matches more than one record.
	ErrAmbiguousID = errors.New("ambiguous id prefix")
)
