package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

func newTodoCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "todo",
		Short: "Plan todos for a day and start tracking them",
	}

	cmd.AddCommand(
		newTodoAddCmd(app),
		newTodoListCmd(app),
		newTodoDoneCmd(app),
		newTodoEditCmd(app),
		newTodoRemoveCmd(app),
		newTodoStartCmd(app),
	)

	return cmd
}

// plannedWindowFlags holds --from/--until time-of-day hints.
type plannedWindowFlags struct {
	from, until string
}

func (p *plannedWindowFlags) register(fs *pflag.FlagSet) {
	fs.StringVar(&p.from, "from", "", "Planned start time (HH:MM)")
	fs.StringVar(&p.until, "until", "", "Planned end time (HH:MM)")
}

// apply sets the planned window on t for the flags that were given.
func (p *plannedWindowFlags) apply(fs *pflag.FlagSet, t *domain.TodoItem) error {
	if fs.Changed("from") {
		start, err := optionalClock(p.from, t.TargetDate)
		if err != nil {
			return err
		}
		t.PlannedStart = start
	}
	if fs.Changed("until") {
		end, err := optionalClock(p.until, t.TargetDate)
		if err != nil {
			return err
		}
		t.PlannedEnd = end
	}
	return nil
}

// optionalClock parses a time of day on day; an empty value clears it.
func optionalClock(s string, day time.Time) (*time.Time, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	t, err := parseClock(s, day)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func newTodoAddCmd(app *App) *cobra.Command {
	var notes, dateFlag string
	var typ domain.EventType
	var window plannedWindowFlags

	cmd := &cobra.Command{
		Use:   "add [title...]",
		Short: "Add a todo",
		RunE: func(cmd *cobra.Command, args []string) error {
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" && app.interactive() {
				if err := eventForm("Todo", &title, &notes, &typ).Run(); err != nil {
					return err
				}
			}

			day, err := parseDay(dateFlag, app.Tracker.Now())
			if err != nil {
				return err
			}
			t := &domain.TodoItem{
				Title:      title,
				Notes:      strings.TrimSpace(notes),
				TargetDate: day,
				Type:       typ,
			}
			if err := window.apply(cmd.Flags(), t); err != nil {
				return err
			}
			if err := app.Todos.Add(cmd.Context(), t); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				formatter.StyleGreen.Render("Added"),
				formatter.Bold(t.Title),
				formatter.Dim(fmt.Sprintf("(%s, %s)", formatter.ShortID(t.ID), t.TargetDate.Format(dateLayout))),
			)
			return nil
		},
	}

	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes")
	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Target day (default: today)")
	addEventTypeFlag(cmd.Flags(), domain.EventTask, &typ)
	window.register(cmd.Flags())

	return cmd
}

func newTodoListCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List the todos of a day",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.Tracker.Now()
			day, err := parseDay(dateFlag, now)
			if err != nil {
				return err
			}
			todos, err := app.Todos.ListForDate(cmd.Context(), day)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodoList(todos, day, now))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Day to list (default: today)")
	return cmd
}

func newTodoDoneCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "done <id>",
		Short: "Toggle a todo's completion",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			t, err := app.Todos.Toggle(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodo(t))
			return nil
		},
	}
}

func newTodoEditCmd(app *App) *cobra.Command {
	var title, notes, dateFlag string
	var typ domain.EventType
	var window plannedWindowFlags

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Todos.Get(ctx, args[0])
			if err != nil {
				return err
			}

			flags := cmd.Flags()
			if flags.Changed("title") {
				t.Title = title
			}
			if flags.Changed("notes") {
				t.Notes = strings.TrimSpace(notes)
			}
			if flags.Changed("type") {
				t.Type = typ
			}
			if flags.Changed("date") {
				day, err := parseDay(dateFlag, app.Tracker.Now())
				if err != nil {
					return err
				}
				t.TargetDate = day
				t.PlannedStart = moveToDay(t.PlannedStart, day)
				t.PlannedEnd = moveToDay(t.PlannedEnd, day)
			}
			if err := window.apply(flags, t); err != nil {
				return err
			}

			if err := app.Todos.Update(ctx, t); err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatTodo(t))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "New notes (empty clears)")
	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Move to another day")
	addEventTypeFlag(cmd.Flags(), domain.EventTask, &typ)
	window.register(cmd.Flags())

	return cmd
}

// moveToDay keeps t's time of day but places it on day.
func moveToDay(t *time.Time, day time.Time) *time.Time {
	if t == nil {
		return nil
	}
	moved := time.Date(day.Year(), day.Month(), day.Day(), t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), day.Location())
	return &moved
}

func newTodoRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <id>",
		Aliases: []string{"delete"},
		Short:   "Delete a todo",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			t, err := app.Todos.Get(ctx, args[0])
			if err != nil {
				return err
			}
			if err := app.Todos.Delete(ctx, t.ID); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s %s %s\n",
				formatter.StyleGreen.Render("Deleted"),
				formatter.Bold(t.Title),
				formatter.Dim("("+formatter.ShortID(t.ID)+")"),
			)
			return nil
		},
	}
}

func newTodoStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start <id>",
		Short: "Start tracking an event from a todo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			prev, hadActive := app.Tracker.Active()
			e, err := app.Todos.Start(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if hadActive {
				if stopped, ok := app.Tracker.Get(prev.ID); ok {
					fmt.Fprint(out, formatter.FormatTransition("Stopped", stopped))
				}
			}
			fmt.Fprint(out, formatter.FormatTransition("Started", e))
			waitForSync(cmd, app)
			return nil
		},
	}
}
