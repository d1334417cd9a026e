package cli

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/spf13/cobra"
)

func newStartCmd(app *App) *cobra.Command {
	var notes string
	var typ domain.EventType

	cmd := &cobra.Command{
		Use:   "start [title...]",
		Short: "Start tracking a new event, stopping the active one",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			title := strings.TrimSpace(strings.Join(args, " "))
			if title == "" {
				if !app.interactive() {
					return fmt.Errorf("starting event: %w", domain.ErrEmptyTitle)
				}
				if err := eventForm("Title", &title, &notes, &typ).Run(); err != nil {
					return err
				}
				title = strings.TrimSpace(title)
			}

			prev, hadActive := app.Tracker.Active()
			e, err := app.Tracker.Start(ctx, title, strings.TrimSpace(notes), typ)
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

	cmd.Flags().StringVarP(&notes, "notes", "n", "", "Notes for the event")
	addEventTypeFlag(cmd.Flags(), domain.EventTask, &typ)

	return cmd
}

func newPauseCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "pause",
		Short: "Pause the running event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok, err := app.Tracker.Pause(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, formatter.Dim("Nothing is running."))
				return nil
			}
			fmt.Fprint(out, formatter.FormatTransition("Paused", e))
			fmt.Fprintf(out, "  %s %s\n", formatter.Dim("tracked so far"), domain.FormatDuration(e.TotalAccumulated))
			return nil
		},
	}
}

func newResumeCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "resume [id]",
		Short: "Resume the paused active event, or any event by id",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			id := ""
			if len(args) == 1 {
				resolved, err := app.Tracker.ResolveID(args[0])
				if err != nil {
					return err
				}
				id = resolved
			}

			prev, hadActive := app.Tracker.Active()
			e, ok, err := app.Tracker.Resume(ctx, id)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if !ok {
				if e.ID != "" {
					fmt.Fprint(out, formatter.FormatTransition("Already running", e))
				} else {
					fmt.Fprintln(out, formatter.Dim("Nothing to resume."))
				}
				return nil
			}
			if hadActive && prev.ID != e.ID {
				if stopped, found := app.Tracker.Get(prev.ID); found {
					fmt.Fprint(out, formatter.FormatTransition("Stopped", stopped))
				}
			}
			fmt.Fprint(out, formatter.FormatTransition("Resumed", e))
			waitForSync(cmd, app)
			return nil
		},
	}
}

func newStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop",
		Short: "Stop the active event",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, ok, err := app.Tracker.Stop(cmd.Context())
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			if !ok {
				fmt.Fprintln(out, formatter.Dim("Nothing is being tracked."))
				return nil
			}
			fmt.Fprint(out, formatter.FormatTransition("Stopped", e))
			fmt.Fprintf(out, "  %s %s\n", formatter.Dim("total"), domain.FormatDuration(e.TotalAccumulated))
			waitForSync(cmd, app)
			return nil
		},
	}
}

func newStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the active event and today's total",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.Tracker.Now()
			out := cmd.OutOrStdout()

			if e, ok := app.Tracker.Active(); ok {
				state, _ := app.Tracker.StateOf(e.ID)
				fmt.Fprintln(out, formatter.FormatActive(e, state, now))
			} else {
				fmt.Fprint(out, formatter.FormatIdle())
			}

			day, err := app.Summary.Day(ctx, now)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "%s %s %s\n",
				formatter.Dim("Today"),
				formatter.Bold(domain.FormatHoursMinutes(day.Total)),
				formatter.Dim(fmt.Sprintf("across %d events", day.Count)),
			)
			return nil
		},
	}
}

// waitForSync blocks until background calendar pushes finish so the
// process does not exit mid-request.
func waitForSync(cmd *cobra.Command, app *App) {
	if app.interactive() {
		formatter.WaitWithSpinner(cmd.ErrOrStderr(), "Syncing to calendar", app.Tracker.Wait)
		return
	}
	app.Tracker.Wait()
}
