// Package summary aggregates tracked events into per-day totals, the
// standup clipboard text and multi-day reports. Everything here is pure:
// callers pass the events and the current time.
package summary

import (
	"sort"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// Entry is one event with its duration as of the summary's build time.
type Entry struct {
	Event    domain.WorkEvent
	Duration time.Duration
}

// Bucket totals the events of one type.
type Bucket struct {
	Type  domain.EventType
	Total time.Duration
	Count int
}

// DaySummary is the aggregate of one calendar day.
type DaySummary struct {
	Day     time.Time
	Entries []Entry
	// Buckets lists only types that occur, in domain.EventTypes order
	// followed by legacy types.
	Buckets      []Bucket
	Meetings     time.Duration
	MeetingCount int
	DeepWork     time.Duration
	Total        time.Duration
	Count        int
}

// DayBounds returns [start of day, start of next day) in day's location.
func DayBounds(day time.Time) (time.Time, time.Time) {
	start := domain.StartOfDay(day)
	return start, start.AddDate(0, 0, 1)
}

// ForDay returns the events whose StartTime falls on day, in input order.
func ForDay(events []domain.WorkEvent, day time.Time) []domain.WorkEvent {
	from, to := DayBounds(day)
	var out []domain.WorkEvent
	for _, e := range events {
		if !e.StartTime.Before(from) && e.StartTime.Before(to) {
			out = append(out, e)
		}
	}
	return out
}

// Timeline returns the day's events sorted by StartTime ascending. Events
// with equal start times keep their input order.
func Timeline(events []domain.WorkEvent, day time.Time) []domain.WorkEvent {
	out := ForDay(events, day)
	sort.SliceStable(out, func(i, j int) bool { return out[i].StartTime.Before(out[j].StartTime) })
	return out
}

// Build aggregates the events of day. Running events are counted up to now.
func Build(events []domain.WorkEvent, day, now time.Time) (DaySummary, error) {
	s := DaySummary{Day: domain.StartOfDay(day)}
	totals := make(map[domain.EventType]*Bucket)

	for _, e := range Timeline(events, day) {
		d, err := e.Elapsed(now)
		if err != nil {
			return DaySummary{}, err
		}
		s.Entries = append(s.Entries, Entry{Event: e, Duration: d})
		s.Total += d
		s.Count++
		if e.Type == domain.EventMeeting {
			s.Meetings += d
			s.MeetingCount++
		}
		if e.Type.IsDeepWork() {
			s.DeepWork += d
		}
		addToBucket(totals, e.Type, d)
	}

	s.Buckets = orderedBuckets(totals)
	return s, nil
}

// Bucket returns the totals for typ, zero when no event has that type.
func (s DaySummary) Bucket(typ domain.EventType) Bucket {
	for _, b := range s.Buckets {
		if b.Type == typ {
			return b
		}
	}
	return Bucket{Type: typ}
}

func orderedBuckets(totals map[domain.EventType]*Bucket) []Bucket {
	var out []Bucket
	for _, typ := range append(append([]domain.EventType(nil), domain.EventTypes...), domain.EventWorkBlock) {
		if b, ok := totals[typ]; ok {
			out = append(out, *b)
		}
	}
	return out
}
