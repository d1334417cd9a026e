package summary

import (
	"strings"

	"github.com/alexanderramin/worklog/internal/domain"
)

// StandupDateLayout is the date shown in the standup header.
const StandupDateLayout = "Jan 2, 2006"

// Standup renders the plain-text standup report for a day summary.
func Standup(s DaySummary) string {
	var b strings.Builder
	b.WriteString("🚀 Standup Summary - ")
	b.WriteString(s.Day.Format(StandupDateLayout))
	b.WriteString("\n\n")

	if len(s.Entries) > 0 {
		b.WriteString("✅ Completed:\n")
		for _, entry := range s.Entries {
			e := entry.Event
			b.WriteString("• [")
			b.WriteString(string(e.Type))
			b.WriteString("] ")
			b.WriteString(e.Title)
			b.WriteString(" (")
			b.WriteString(domain.FormatDuration(entry.Duration))
			b.WriteString(")\n")
			if e.HasNotes() {
				b.WriteString("  └─ ")
				b.WriteString(e.Notes)
				b.WriteString("\n")
			}
		}
		b.WriteString("\n")
	}

	b.WriteString("📊 Stats:\n")
	b.WriteString("• Meetings: " + domain.FormatHoursMinutes(s.Meetings) + "\n")
	b.WriteString("• Total Time: " + domain.FormatHoursMinutes(s.Total) + "\n")
	return b.String()
}
