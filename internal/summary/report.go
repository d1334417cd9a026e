package summary

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// GroupBy selects how Report buckets days.
type GroupBy string

const (
	GroupByDay  GroupBy = "day"
	GroupByWeek GroupBy = "week"
)

// ParseGroupBy accepts "day"/"daily" and "week"/"weekly".
func ParseGroupBy(s string) (GroupBy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "day", "daily":
		return GroupByDay, nil
	case "week", "weekly":
		return GroupByWeek, nil
	}
	return "", fmt.Errorf("unknown grouping %q (want day or week)", s)
}

// GroupKey returns the sortable key of t's group: 2006-01-02 for days and
// the ISO week (2006-W02) for weeks.
func GroupKey(t time.Time, groupBy GroupBy) string {
	if groupBy == GroupByWeek {
		year, week := t.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return t.Format("2006-01-02")
}

// GroupTitle returns a human-readable label for t's group.
func GroupTitle(t time.Time, groupBy GroupBy) string {
	if groupBy == GroupByWeek {
		start, end := WeekRange(t)
		return fmt.Sprintf("%s - %s", start.Format("Jan 02"), end.Format("Jan 02, 2006"))
	}
	return t.Format("Monday, 02 Jan 2006")
}

// WeekRange returns the Monday and Sunday of t's ISO week.
func WeekRange(t time.Time) (time.Time, time.Time) {
	offset := int(t.Weekday())
	if offset == 0 {
		offset = 7
	}
	start := domain.StartOfDay(t).AddDate(0, 0, -offset+1)
	return start, start.AddDate(0, 0, 6)
}

// Group is one row of a Report.
type Group struct {
	Key      string
	Title    string
	Buckets  []Bucket
	Meetings time.Duration
	DeepWork time.Duration
	Total    time.Duration
	Count    int
}

// Report aggregates a date range.
type Report struct {
	From    time.Time
	To      time.Time
	GroupBy GroupBy
	Groups  []Group
	Totals  []Bucket
	Total   time.Duration
	Count   int
}

// BuildReport rolls up the events that start on any day in [from, to]
// (both inclusive calendar days) into groups ordered by key. Days without
// events produce no group.
func BuildReport(events []domain.WorkEvent, from, to time.Time, groupBy GroupBy, now time.Time) (Report, error) {
	start := domain.StartOfDay(from)
	_, end := DayBounds(to)
	r := Report{From: start, To: domain.StartOfDay(to), GroupBy: groupBy}
	if !end.After(start) {
		return r, fmt.Errorf("report range ends (%s) before it starts (%s)", to.Format("2006-01-02"), from.Format("2006-01-02"))
	}

	type acc struct {
		group  Group
		totals map[domain.EventType]*Bucket
	}
	groups := make(map[string]*acc)
	overall := make(map[domain.EventType]*Bucket)

	for _, e := range events {
		startTime := e.StartTime.In(start.Location())
		if startTime.Before(start) || !startTime.Before(end) {
			continue
		}
		d, err := e.Elapsed(now)
		if err != nil {
			return Report{}, err
		}

		key := GroupKey(startTime, groupBy)
		g, ok := groups[key]
		if !ok {
			g = &acc{
				group:  Group{Key: key, Title: GroupTitle(startTime, groupBy)},
				totals: make(map[domain.EventType]*Bucket),
			}
			groups[key] = g
		}
		g.group.Total += d
		g.group.Count++
		if e.Type == domain.EventMeeting {
			g.group.Meetings += d
		}
		if e.Type.IsDeepWork() {
			g.group.DeepWork += d
		}
		addToBucket(g.totals, e.Type, d)
		addToBucket(overall, e.Type, d)
		r.Total += d
		r.Count++
	}

	keys := make([]string, 0, len(groups))
	for k := range groups {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		g := groups[k]
		g.group.Buckets = orderedBuckets(g.totals)
		r.Groups = append(r.Groups, g.group)
	}
	r.Totals = orderedBuckets(overall)
	return r, nil
}

func addToBucket(m map[domain.EventType]*Bucket, typ domain.EventType, d time.Duration) {
	b, ok := m[typ]
	if !ok {
		b = &Bucket{Type: typ}
		m[typ] = b
	}
	b.Total += d
	b.Count++
}
