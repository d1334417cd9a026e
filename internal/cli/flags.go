package cli

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/spf13/pflag"
)

// eventTypeValue is a pflag.Value accepting any name or alias that
// domain.ParseEventType understands.
type eventTypeValue struct {
	typ *domain.EventType
	set bool
}

var _ pflag.Value = (*eventTypeValue)(nil)

func newEventTypeValue(def domain.EventType, p *domain.EventType) *eventTypeValue {
	*p = def
	return &eventTypeValue{typ: p}
}

func (v *eventTypeValue) String() string {
	if v.typ == nil {
		return ""
	}
	return v.typ.Slug()
}

func (v *eventTypeValue) Set(s string) error {
	t, err := domain.ParseEventType(s)
	if err != nil {
		return err
	}
	*v.typ = t
	v.set = true
	return nil
}

func (v *eventTypeValue) Type() string {
	return "type"
}

// eventTypeUsage lists the accepted --type values.
func eventTypeUsage() string {
	slugs := make([]string, 0, len(domain.EventTypes))
	for _, t := range domain.EventTypes {
		slugs = append(slugs, t.Slug())
	}
	return "Event type: " + strings.Join(slugs, ", ")
}

// addEventTypeFlag registers --type/-t on fs and returns its value holder.
func addEventTypeFlag(fs *pflag.FlagSet, def domain.EventType, p *domain.EventType) *eventTypeValue {
	v := newEventTypeValue(def, p)
	fs.VarP(v, "type", "t", eventTypeUsage())
	return v
}

const dateLayout = "2006-01-02"

// parseDay resolves a --date style argument relative to now: "today",
// "yesterday", "tomorrow", a signed day offset such as "-2", or YYYY-MM-DD
// in now's location. Empty means today.
func parseDay(s string, now time.Time) (time.Time, error) {
	today := domain.StartOfDay(now)
	switch v := strings.ToLower(strings.TrimSpace(s)); v {
	case "", "today":
		return today, nil
	case "yesterday":
		return today.AddDate(0, 0, -1), nil
	case "tomorrow":
		return today.AddDate(0, 0, 1), nil
	default:
		if offset, err := strconv.Atoi(v); err == nil && (strings.HasPrefix(v, "-") || strings.HasPrefix(v, "+")) {
			return today.AddDate(0, 0, offset), nil
		}
		d, err := time.ParseInLocation(dateLayout, v, now.Location())
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid date %q (want YYYY-MM-DD, today, yesterday or -N)", s)
		}
		return d, nil
	}
}

// parseClock resolves "HH:MM" or "HH.MM" on day.
func parseClock(s string, day time.Time) (time.Time, error) {
	normalized := strings.ReplaceAll(strings.TrimSpace(s), ".", ":")
	t, err := time.Parse("15:04", normalized)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid time %q (want HH:MM)", s)
	}
	d := domain.StartOfDay(day)
	return d.Add(time.Duration(t.Hour())*time.Hour + time.Duration(t.Minute())*time.Minute), nil
}
