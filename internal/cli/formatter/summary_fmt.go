package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/summary"
)

const shareBarWidth = 10

// FormatDaySummary renders the day view: the timeline, per-type totals and
// the meeting/deep-work/total stats.
func FormatDaySummary(s summary.DaySummary, activeID string, now time.Time) string {
	var b strings.Builder

	b.WriteString(Header(DayLabel(s.Day, now)) + "\n")
	b.WriteString(FormatTimeline(s.Entries, activeID))
	if notes := FormatNotes(s.Entries); notes != "" {
		b.WriteString("\n" + notes)
	}

	if len(s.Buckets) > 0 {
		b.WriteString("\n" + Header("By type") + "\n")
		b.WriteString(FormatBuckets(s.Buckets, s.Total))
	}

	b.WriteString("\n")
	b.WriteString(FormatStats(s))
	return b.String()
}

// FormatBuckets renders per-type totals with each type's share of total.
func FormatBuckets(buckets []summary.Bucket, total time.Duration) string {
	headers := []string{"TYPE", "EVENTS", "TIME", "SHARE"}
	rows := make([][]string, 0, len(buckets))
	for _, bk := range buckets {
		rows = append(rows, []string{
			TypeLabel(bk.Type),
			fmt.Sprintf("%d", bk.Count),
			domain.FormatHoursMinutes(bk.Total),
			RenderShare(bk.Total, total, shareBarWidth, TypeStyle(bk.Type)),
		})
	}
	return RenderTableRight(headers, rows, 1, 2)
}

// FormatStats renders the meeting, deep-work and total lines of a day.
func FormatStats(s summary.DaySummary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%-10s %s %s\n", "Meetings", domain.FormatHoursMinutes(s.Meetings), Dim(plural(s.MeetingCount, "meeting"))))
	b.WriteString(fmt.Sprintf("%-10s %s\n", "Deep work", domain.FormatHoursMinutes(s.DeepWork)))
	b.WriteString(fmt.Sprintf("%-10s %s %s\n", "Total", Bold(domain.FormatHoursMinutes(s.Total)), Dim(plural(s.Count, "event"))))
	return b.String()
}

func plural(n int, noun string) string {
	if n == 1 {
		return fmt.Sprintf("(1 %s)", noun)
	}
	return fmt.Sprintf("(%d %ss)", n, noun)
}
