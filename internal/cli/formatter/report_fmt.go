package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/summary"
)

// FormatReport renders a multi-day report: one row per group, then the
// per-type totals of the whole range.
func FormatReport(r summary.Report) string {
	var b strings.Builder

	title := fmt.Sprintf("Report %s - %s", r.From.Format("Jan 2"), r.To.Format("Jan 2, 2006"))
	b.WriteString(Header(title) + "\n")

	if len(r.Groups) == 0 {
		b.WriteString(Dim("No events in range.") + "\n")
		return b.String()
	}

	period := "DAY"
	if r.GroupBy == summary.GroupByWeek {
		period = "WEEK"
	}
	headers := []string{period, "EVENTS", "MEETINGS", "DEEP WORK", "TOTAL"}
	rows := make([][]string, 0, len(r.Groups))
	for _, g := range r.Groups {
		rows = append(rows, []string{
			g.Title,
			fmt.Sprintf("%d", g.Count),
			domain.FormatHoursMinutes(g.Meetings),
			domain.FormatHoursMinutes(g.DeepWork),
			domain.FormatHoursMinutes(g.Total),
		})
	}
	b.WriteString(RenderTableRight(headers, rows, 1, 2, 3, 4))

	b.WriteString("\n" + Header("By type") + "\n")
	b.WriteString(FormatBuckets(r.Totals, r.Total))

	b.WriteString(fmt.Sprintf("\n%-10s %s %s\n", "Total", Bold(domain.FormatHoursMinutes(r.Total)), Dim(plural(r.Count, "event"))))
	return b.String()
}
