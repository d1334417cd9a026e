package importer

import (
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/google/uuid"
)

// Converted holds the domain objects decoded from a Document.
type Converted struct {
	Events []*domain.WorkEvent
	Todos  []*domain.TodoItem
}

// Convert transforms a validated Document into domain objects ready for
// persistence. Call ValidateDocument first; Convert assumes the document is
// valid. Records without an id get a fresh uuid. Target dates are read as
// midnight in loc.
func Convert(doc *Document, loc *time.Location) (*Converted, error) {
	if loc == nil {
		loc = time.Local
	}
	out := &Converted{
		Events: make([]*domain.WorkEvent, 0, len(doc.Events)),
		Todos:  make([]*domain.TodoItem, 0, len(doc.Todos)),
	}

	for i, r := range doc.Events {
		e, err := convertEvent(r)
		if err != nil {
			return nil, fmt.Errorf("events[%d]: %w", i, err)
		}
		out.Events = append(out.Events, e)
	}

	for i, r := range doc.Todos {
		t, err := convertTodo(r, loc)
		if err != nil {
			return nil, fmt.Errorf("todos[%d]: %w", i, err)
		}
		out.Todos = append(out.Todos, t)
	}

	return out, nil
}

func convertEvent(r EventRecord) (*domain.WorkEvent, error) {
	start, err := parseTimestamp(r.StartTime)
	if err != nil {
		return nil, err
	}
	end, err := parseTimestamp(r.EndTime)
	if err != nil {
		return nil, err
	}
	var accumulated time.Duration
	if r.Accumulated != "" {
		if accumulated, err = time.ParseDuration(r.Accumulated); err != nil {
			return nil, err
		}
	}
	var lastStart *time.Time
	if r.LastStartTime != nil {
		t, err := parseTimestamp(*r.LastStartTime)
		if err != nil {
			return nil, err
		}
		lastStart = &t
	}

	e := &domain.WorkEvent{
		ID:               r.ID,
		Title:            r.Title,
		Notes:            r.Notes,
		StartTime:        start,
		EndTime:          end,
		Type:             domain.EventOthers,
		IsPaused:         r.IsPaused,
		TotalAccumulated: accumulated,
		LastStartTime:    lastStart,
	}
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	if r.Type != "" {
		e.Type = domain.EventTypeOrOthers(r.Type)
	}
	return e, e.Validate()
}

func convertTodo(r TodoRecord, loc *time.Location) (*domain.TodoItem, error) {
	day, err := time.ParseInLocation(dateLayout, r.TargetDate, loc)
	if err != nil {
		return nil, fmt.Errorf("parsing target_date: %w", err)
	}
	t := &domain.TodoItem{
		ID:          r.ID,
		Title:       r.Title,
		Notes:       r.Notes,
		TargetDate:  day,
		IsCompleted: r.Completed,
		Type:        domain.EventTask,
	}
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if r.Type != "" {
		t.Type = domain.EventTypeOrOthers(r.Type)
	}
	if t.PlannedStart, err = parseOptionalTimestamp(r.PlannedStart); err != nil {
		return nil, fmt.Errorf("parsing planned_start: %w", err)
	}
	if t.PlannedEnd, err = parseOptionalTimestamp(r.PlannedEnd); err != nil {
		return nil, fmt.Errorf("parsing planned_end: %w", err)
	}
	return t, nil
}

func parseOptionalTimestamp(s *string) (*time.Time, error) {
	if s == nil {
		return nil, nil
	}
	t, err := parseTimestamp(*s)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// FromDomain builds an export Document. Event timestamps keep their offset
// and nanoseconds so that a re-import is lossless.
func FromDomain(events []*domain.WorkEvent, todos []*domain.TodoItem, exportedAt time.Time) *Document {
	doc := &Document{
		Version:    DocumentVersion,
		ExportedAt: exportedAt.Format(time.RFC3339),
		Events:     make([]EventRecord, 0, len(events)),
	}

	for _, e := range events {
		r := EventRecord{
			ID:        e.ID,
			Title:     e.Title,
			Notes:     e.Notes,
			Type:      string(e.Type),
			StartTime: e.StartTime.Format(time.RFC3339Nano),
			EndTime:   e.EndTime.Format(time.RFC3339Nano),
			IsPaused:  e.IsPaused,
		}
		if e.TotalAccumulated != 0 {
			r.Accumulated = e.TotalAccumulated.String()
		}
		r.LastStartTime = formatOptionalTimestamp(e.LastStartTime)
		doc.Events = append(doc.Events, r)
	}

	for _, t := range todos {
		doc.Todos = append(doc.Todos, TodoRecord{
			ID:           t.ID,
			Title:        t.Title,
			Notes:        t.Notes,
			TargetDate:   t.TargetDate.Format(dateLayout),
			Completed:    t.IsCompleted,
			Type:         string(t.Type),
			PlannedStart: formatOptionalTimestamp(t.PlannedStart),
			PlannedEnd:   formatOptionalTimestamp(t.PlannedEnd),
		})
	}

	return doc
}

func formatOptionalTimestamp(t *time.Time) *string {
	if t == nil {
		return nil
	}
	s := t.Format(time.RFC3339Nano)
	return &s
}
