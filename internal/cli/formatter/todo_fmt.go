package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// FormatTodoList renders the todos planned for day.
func FormatTodoList(todos []*domain.TodoItem, day, now time.Time) string {
	var b strings.Builder
	b.WriteString(Header("Todos "+DayLabel(day, now)) + "\n")

	if len(todos) == 0 {
		b.WriteString(Dim("Nothing planned.") + "\n")
		return b.String()
	}

	headers := []string{"", "ID", "TYPE", "TITLE", "PLANNED"}
	rows := make([][]string, 0, len(todos))
	done := 0
	for _, t := range todos {
		check := "[ ]"
		title := t.Title
		if t.IsCompleted {
			done++
			check = StyleGreen.Render("[x]")
			title = Dim(title)
		}
		rows = append(rows, []string{
			check,
			TruncID(t.ID),
			TypeLabel(t.Type),
			title,
			PlannedWindow(t),
		})
	}
	b.WriteString(RenderTable(headers, rows))
	b.WriteString(Dim(fmt.Sprintf("%d of %d done", done, len(todos))) + "\n")
	return b.String()
}

// PlannedWindow renders a todo's planned time hints, or "--" when unset.
func PlannedWindow(t *domain.TodoItem) string {
	switch {
	case t.PlannedStart != nil && t.PlannedEnd != nil:
		return ClockTime(*t.PlannedStart) + "-" + ClockTime(*t.PlannedEnd)
	case t.PlannedStart != nil:
		return ClockTime(*t.PlannedStart) + "-"
	case t.PlannedEnd != nil:
		return "-" + ClockTime(*t.PlannedEnd)
	}
	return Dim("--")
}

// FormatTodo renders a single todo with its notes.
func FormatTodo(t *domain.TodoItem) string {
	check := "[ ]"
	if t.IsCompleted {
		check = StyleGreen.Render("[x]")
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s %s %s %s\n", check, Bold(t.Title), TypeStyle(t.Type).Render("["+string(t.Type)+"]"), Dim("("+ShortID(t.ID)+")")))
	b.WriteString(fmt.Sprintf("    %-8s %s\n", "Date", t.TargetDate.Format("2006-01-02")))
	if t.PlannedStart != nil || t.PlannedEnd != nil {
		b.WriteString(fmt.Sprintf("    %-8s %s\n", "Planned", PlannedWindow(t)))
	}
	if t.Notes != "" {
		b.WriteString(fmt.Sprintf("    %-8s %s\n", "Notes", t.Notes))
	}
	return b.String()
}
