package calsync

import "errors"

var (
	// ErrUnavailable indicates the calendar API is unreachable.
	ErrUnavailable = errors.New("calendar api unavailable")

	// ErrTimeout indicates the push exceeded the configured timeout.
	ErrTimeout = errors.New("calendar push timed out")

	// ErrUnauthorized indicates the token was rejected.
	ErrUnauthorized = errors.New("calendar token rejected")

	// ErrRejected indicates a non-retryable 4xx response.
	ErrRejected = errors.New("calendar rejected event")

	// ErrRetryExhausted indicates all retry attempts have been exhausted.
	ErrRetryExhausted = errors.New("calendar retry attempts exhausted")
)
