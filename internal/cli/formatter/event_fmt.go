package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// StateFor derives the tracking state of e given the tracker's active id.
func StateFor(e domain.WorkEvent, activeID string) domain.EventState {
	switch {
	case e.IsRunning():
		return domain.StateRunning
	case e.ID != "" && e.ID == activeID:
		return domain.StatePaused
	default:
		return domain.StateStopped
	}
}

// FormatActive renders the status panel for the active event.
func FormatActive(e domain.WorkEvent, state domain.EventState, now time.Time) string {
	elapsed, err := e.Elapsed(now)
	if err != nil {
		elapsed = e.TotalAccumulated
	}

	var b strings.Builder
	b.WriteString(StateIndicator(state) + "  " + Bold(e.Title) + "\n\n")
	b.WriteString(fmt.Sprintf("%-9s %s\n", "Type", TypeBadge(e.Type)))
	b.WriteString(fmt.Sprintf("%-9s %s %s\n", "Started", ClockTime(e.StartTime), Dim("("+DayLabel(e.StartTime, now)+")")))
	b.WriteString(fmt.Sprintf("%-9s %s %s\n", "Elapsed", domain.FormatCompact(elapsed), Dim(domain.FormatDuration(elapsed))))
	if e.HasNotes() {
		b.WriteString(fmt.Sprintf("%-9s %s\n", "Notes", e.Notes))
	}
	b.WriteString(fmt.Sprintf("%-9s %s", "ID", TruncID(e.ID)))

	return RenderBox("Tracking", b.String())
}

// FormatIdle is shown when no event is active.
func FormatIdle() string {
	return Dim("Nothing is being tracked. Run `worklog start <title>` to begin.") + "\n"
}

// FormatTransition renders a one-line confirmation such as
// "Started Design review [Code Review] (3f2a9c1e)".
func FormatTransition(verb string, e domain.WorkEvent) string {
	return fmt.Sprintf("%s %s %s %s\n",
		StyleGreen.Render(verb),
		Bold(e.Title),
		TypeStyle(e.Type).Render("["+string(e.Type)+"]"),
		Dim("("+ShortID(e.ID)+")"),
	)
}

// FormatEventDetail renders every stored field of an event.
func FormatEventDetail(e domain.WorkEvent, state domain.EventState, now time.Time) string {
	elapsed, err := e.Elapsed(now)
	if err != nil {
		elapsed = e.TotalAccumulated
	}

	var b strings.Builder
	b.WriteString(Bold(e.Title) + "  " + StateIndicator(state) + "\n")
	b.WriteString(fmt.Sprintf("  %-9s %s\n", "ID", e.ID))
	b.WriteString(fmt.Sprintf("  %-9s %s\n", "Type", TypeLabel(e.Type)))
	b.WriteString(fmt.Sprintf("  %-9s %s\n", "Start", e.StartTime.Format("2006-01-02 15.04")))
	if state == domain.StateStopped {
		b.WriteString(fmt.Sprintf("  %-9s %s\n", "End", e.EndTime.Format("2006-01-02 15.04")))
	}
	b.WriteString(fmt.Sprintf("  %-9s %s\n", "Duration", domain.FormatDuration(elapsed)))
	if e.HasNotes() {
		b.WriteString(fmt.Sprintf("  %-9s %s\n", "Notes", e.Notes))
	}
	return b.String()
}
