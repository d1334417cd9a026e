package domain

import (
	"fmt"
	"time"
)

// Elapsed returns the event's total tracked time as of now: the accumulated
// duration of completed sessions plus the open session, if any.
func (e *WorkEvent) Elapsed(now time.Time) (time.Duration, error) {
	if e.IsPaused {
		return e.TotalAccumulated, nil
	}
	if e.LastStartTime == nil {
		return 0, fmt.Errorf("elapsed of %s: %w", e.ID, ErrInvariantViolation)
	}
	return e.TotalAccumulated + now.Sub(*e.LastStartTime), nil
}

// FormatDuration renders d as "N min" below one hour and "Hh Mm" otherwise.
// Seconds are truncated to whole minutes.
func FormatDuration(d time.Duration) string {
	return FormatMinutes(int(d / time.Minute))
}

// FormatMinutes renders a minute count the way FormatDuration does.
func FormatMinutes(minutes int) string {
	if minutes <= 0 {
		return "0 min"
	}
	if minutes >= 60 {
		return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
	}
	return fmt.Sprintf("%d min", minutes)
}

// FormatCompact renders d as zero-padded MM:SS. Minutes wrap at 60; hours
// are not shown.
func FormatCompact(d time.Duration) string {
	total := int(d / time.Second)
	if total < 0 {
		total = 0
	}
	minutes := (total % 3600) / 60
	seconds := total % 60
	return fmt.Sprintf("%02d:%02d", minutes, seconds)
}

// FormatHoursMinutes renders d as "Hh Mm", including a zero hour.
func FormatHoursMinutes(d time.Duration) string {
	minutes := int(d / time.Minute)
	if minutes < 0 {
		minutes = 0
	}
	return fmt.Sprintf("%dh %dm", minutes/60, minutes%60)
}
