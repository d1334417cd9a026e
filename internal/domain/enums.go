package domain

import (
	"fmt"
	"strings"
)

// EventType tags a work event. The string value is the display name and is
// what gets stored and rendered in standup output.
type EventType string

const (
	EventMeeting    EventType = "Meeting"
	EventTask       EventType = "Task"
	EventCodeReview EventType = "Code Review"
	EventPlanning   EventType = "Planning"
	EventOthers     EventType = "Others"
	EventBounding   EventType = "Bounding"

	// EventWorkBlock is a legacy type kept so older rows still load.
	EventWorkBlock EventType = "Work Block"
)

// EventTypes lists the selectable event types in display order.
// EventWorkBlock is deliberately absent.
var EventTypes = []EventType{
	EventMeeting,
	EventTask,
	EventCodeReview,
	EventPlanning,
	EventOthers,
	EventBounding,
}

var eventTypeAliases = map[string]EventType{
	"meeting":     EventMeeting,
	"meet":        EventMeeting,
	"task":        EventTask,
	"code review": EventCodeReview,
	"code-review": EventCodeReview,
	"codereview":  EventCodeReview,
	"review":      EventCodeReview,
	"cr":          EventCodeReview,
	"planning":    EventPlanning,
	"plan":        EventPlanning,
	"others":      EventOthers,
	"other":       EventOthers,
	"bounding":    EventBounding,
	"work block":  EventWorkBlock,
	"work-block":  EventWorkBlock,
	"workblock":   EventWorkBlock,
}

// ParseEventType resolves a user- or storage-supplied name to an EventType.
func ParseEventType(s string) (EventType, error) {
	key := strings.ToLower(strings.TrimSpace(s))
	if t, ok := eventTypeAliases[key]; ok {
		return t, nil
	}
	return "", fmt.Errorf("unknown event type %q", s)
}

// EventTypeOrOthers is ParseEventType with the storage fallback applied.
func EventTypeOrOthers(s string) EventType {
	t, err := ParseEventType(s)
	if err != nil {
		return EventOthers
	}
	return t
}

// Slug returns the lowercase, dash-separated form used on the command line.
func (t EventType) Slug() string {
	return strings.ReplaceAll(strings.ToLower(string(t)), " ", "-")
}

// Icon returns a single-glyph marker for the type.
func (t EventType) Icon() string {
	switch t {
	case EventMeeting:
		return "◉"
	case EventTask:
		return "▣"
	case EventCodeReview:
		return "⌘"
	case EventPlanning:
		return "✦"
	case EventBounding:
		return "∞"
	case EventWorkBlock:
		return "◷"
	default:
		return "◌"
	}
}

// Color returns the hex color associated with the type.
func (t EventType) Color() string {
	switch t {
	case EventMeeting:
		return "#b366e6"
	case EventTask, EventWorkBlock:
		return "#4a90e2"
	case EventCodeReview:
		return "#f5a623"
	case EventPlanning:
		return "#7ed321"
	case EventBounding:
		return "#ff6fa8"
	default:
		return "#9b9b9b"
	}
}

// IsDeepWork reports whether time spent on this type counts as focused
// individual work in summaries.
func (t EventType) IsDeepWork() bool {
	switch t {
	case EventTask, EventCodeReview, EventWorkBlock:
		return true
	}
	return false
}

// EventState is the per-event tracking state derived from pause state and
// the tracker's active reference.
type EventState string

const (
	StateRunning EventState = "running"
	StatePaused  EventState = "paused"
	StateStopped EventState = "stopped"
)
