package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

const dateLayout = "2006-01-02"

// ValidateDocument checks the document for errors before conversion.
// Returns a slice of all validation errors found.
func ValidateDocument(doc *Document) []error {
	var errs []error

	if doc.Version > DocumentVersion {
		errs = append(errs, fmt.Errorf("version %d is newer than supported version %d", doc.Version, DocumentVersion))
	}

	errs = append(errs, validateEvents(doc.Events)...)
	errs = append(errs, validateTodos(doc.Todos)...)

	return errs
}

func validateEvents(events []EventRecord) []error {
	var errs []error
	ids := make(map[string]bool)
	running := 0

	for i, e := range events {
		prefix := fmt.Sprintf("events[%d]", i)
		if e.ID != "" {
			if ids[e.ID] {
				errs = append(errs, fmt.Errorf("%s: duplicate id %q", prefix, e.ID))
			}
			ids[e.ID] = true
		}
		if e.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if e.Type != "" {
			if _, err := domain.ParseEventType(e.Type); err != nil {
				errs = append(errs, fmt.Errorf("%s.type: %w", prefix, err))
			}
		}

		start, startErr := parseTimestamp(e.StartTime)
		if startErr != nil {
			errs = append(errs, fmt.Errorf("%s.start_time: %w", prefix, startErr))
		}
		end, endErr := parseTimestamp(e.EndTime)
		if endErr != nil {
			errs = append(errs, fmt.Errorf("%s.end_time: %w", prefix, endErr))
		}
		if startErr == nil && endErr == nil && end.Before(start) {
			errs = append(errs, fmt.Errorf("%s.end_time %q is before start_time %q", prefix, e.EndTime, e.StartTime))
		}

		if e.Accumulated != "" {
			d, err := time.ParseDuration(e.Accumulated)
			if err != nil {
				errs = append(errs, fmt.Errorf("%s.accumulated: invalid duration %q", prefix, e.Accumulated))
			} else if d < 0 {
				errs = append(errs, fmt.Errorf("%s.accumulated must not be negative", prefix))
			}
		}

		switch {
		case e.IsPaused && e.LastStartTime != nil:
			errs = append(errs, fmt.Errorf("%s: paused event must not have last_start_time", prefix))
		case !e.IsPaused && e.LastStartTime == nil:
			errs = append(errs, fmt.Errorf("%s: running event requires last_start_time", prefix))
		case !e.IsPaused:
			running++
			if _, err := parseTimestamp(*e.LastStartTime); err != nil {
				errs = append(errs, fmt.Errorf("%s.last_start_time: %w", prefix, err))
			}
		}
	}

	if running > 1 {
		errs = append(errs, fmt.Errorf("events: %d running events, at most one is allowed", running))
	}
	return errs
}

func validateTodos(todos []TodoRecord) []error {
	var errs []error
	ids := make(map[string]bool)

	for i, t := range todos {
		prefix := fmt.Sprintf("todos[%d]", i)
		if t.ID != "" {
			if ids[t.ID] {
				errs = append(errs, fmt.Errorf("%s: duplicate id %q", prefix, t.ID))
			}
			ids[t.ID] = true
		}
		if t.Title == "" {
			errs = append(errs, fmt.Errorf("%s.title is required", prefix))
		}
		if t.TargetDate == "" {
			errs = append(errs, fmt.Errorf("%s.target_date is required", prefix))
		} else if _, err := time.Parse(dateLayout, t.TargetDate); err != nil {
			errs = append(errs, fmt.Errorf("%s.target_date: invalid date format %q (expected YYYY-MM-DD)", prefix, t.TargetDate))
		}
		if t.Type != "" {
			if _, err := domain.ParseEventType(t.Type); err != nil {
				errs = append(errs, fmt.Errorf("%s.type: %w", prefix, err))
			}
		}
		if t.PlannedStart != nil {
			if _, err := parseTimestamp(*t.PlannedStart); err != nil {
				errs = append(errs, fmt.Errorf("%s.planned_start: %w", prefix, err))
			}
		}
		if t.PlannedEnd != nil {
			if _, err := parseTimestamp(*t.PlannedEnd); err != nil {
				errs = append(errs, fmt.Errorf("%s.planned_end: %w", prefix, err))
			}
		}
	}
	return errs
}

func parseTimestamp(s string) (time.Time, error) {
	if s == "" {
		return time.Time{}, fmt.Errorf("timestamp is required")
	}
	t, err := time.Parse(time.RFC3339Nano, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q (expected RFC3339)", s)
	}
	return t, nil
}
