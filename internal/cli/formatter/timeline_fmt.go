package formatter

import (
	"strings"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/summary"
)

const timelineTitleWidth = 40

// FormatTimeline renders a day's entries as a table in start-time order.
// activeID marks the tracker's active event so a paused one is shown as such.
func FormatTimeline(entries []summary.Entry, activeID string) string {
	if len(entries) == 0 {
		return Dim("No events recorded.") + "\n"
	}

	headers := []string{"ID", "TIME", "TYPE", "TITLE", "DURATION", "STATE"}
	rows := make([][]string, 0, len(entries))
	for _, entry := range entries {
		e := entry.Event
		state := StateFor(e, activeID)
		title := Truncate(e.Title, timelineTitleWidth)
		if e.HasNotes() {
			title += Dim(" *")
		}
		rows = append(rows, []string{
			TruncID(e.ID),
			TimeRange(e, state),
			TypeLabel(e.Type),
			title,
			domain.FormatDuration(entry.Duration),
			StateStyle(state).Render(string(state)),
		})
	}
	return RenderTableRight(headers, rows, 4)
}

// FormatNotes lists the notes of the entries that have any, one per line.
func FormatNotes(entries []summary.Entry) string {
	var b strings.Builder
	for _, entry := range entries {
		if !entry.Event.HasNotes() {
			continue
		}
		b.WriteString(TruncID(entry.Event.ID) + "  " + Dim("└─ ") + entry.Event.Notes + "\n")
	}
	return b.String()
}
