package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/tracker"
	"github.com/spf13/cobra"
)

func newLogCmd(app *App) *cobra.Command {
	var dateFlag string

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Show the timeline of a day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.Tracker.Now()
			day, err := parseDay(dateFlag, now)
			if err != nil {
				return err
			}
			s, err := app.Summary.Day(cmd.Context(), day)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, formatter.Header(formatter.DayLabel(s.Day, now)))
			fmt.Fprint(out, formatter.FormatTimeline(s.Entries, app.activeID()))
			if notes := formatter.FormatNotes(s.Entries); notes != "" {
				fmt.Fprint(out, "\n"+notes)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Day to show (YYYY-MM-DD, today, yesterday, -N)")
	return cmd
}

func newEditCmd(app *App) *cobra.Command {
	var title, notes, endFlag string
	var typ domain.EventType
	var accumulated time.Duration

	cmd := &cobra.Command{
		Use:   "edit <id>",
		Short: "Change an event's title, notes, type, end time or duration",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Tracker.ResolveID(args[0])
			if err != nil {
				return err
			}
			current, _ := app.Tracker.Get(id)

			var patch tracker.EventPatch
			flags := cmd.Flags()
			if flags.Changed("title") {
				t := strings.TrimSpace(title)
				if t == "" {
					return fmt.Errorf("editing event: %w", domain.ErrEmptyTitle)
				}
				patch.Title = &t
			}
			if flags.Changed("notes") {
				n := strings.TrimSpace(notes)
				patch.Notes = &n
			}
			if flags.Changed("type") {
				patch.Type = &typ
			}
			if flags.Changed("end") {
				end, err := parseClock(endFlag, current.StartTime)
				if err != nil {
					return err
				}
				if end.Before(current.StartTime) {
					return fmt.Errorf("end %s is before the event started at %s", formatter.ClockTime(end), formatter.ClockTime(current.StartTime))
				}
				patch.EndTime = &end
			}
			if flags.Changed("duration") {
				patch.TotalAccumulated = &accumulated
			}
			if patch.IsEmpty() {
				return fmt.Errorf("nothing to change: pass at least one of --title, --notes, --type, --end, --duration")
			}

			e, ok, err := app.Tracker.Update(cmd.Context(), id, patch)
			if err != nil {
				return err
			}
			if !ok {
				return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
			}

			state, _ := app.Tracker.StateOf(e.ID)
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatTransition("Updated", e))
			fmt.Fprint(out, formatter.FormatEventDetail(e, state, app.Tracker.Now()))
			return nil
		},
	}

	cmd.Flags().StringVar(&title, "title", "", "New title")
	cmd.Flags().StringVarP(&notes, "notes", "n", "", "New notes (empty clears)")
	addEventTypeFlag(cmd.Flags(), domain.EventTask, &typ)
	cmd.Flags().StringVar(&endFlag, "end", "", "End time of day (HH:MM)")
	cmd.Flags().DurationVar(&accumulated, "duration", 0, "Tracked duration, e.g. 1h30m")

	return cmd
}

func newDeleteCmd(app *App) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:     "delete <id>",
		Aliases: []string{"rm"},
		Short:   "Delete an event",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := app.Tracker.ResolveID(args[0])
			if err != nil {
				return err
			}
			e, _ := app.Tracker.Get(id)

			out := cmd.OutOrStdout()
			if !yes && app.interactive() {
				prompt := fmt.Sprintf("Delete %q (%s)? [y/N]: ", e.Title, formatter.ShortID(e.ID))
				if !promptYesNoIO(cmd.InOrStdin(), out, prompt, false) {
					fmt.Fprintln(out, formatter.Dim("Cancelled."))
					return nil
				}
			}

			if !app.Tracker.Delete(cmd.Context(), id) {
				return fmt.Errorf("event %s: %w", id, domain.ErrNotFound)
			}
			fmt.Fprint(out, formatter.FormatTransition("Deleted", e))
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "Skip confirmation")
	return cmd
}
