package cli

import (
	"fmt"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/summary"
	"github.com/spf13/cobra"
)

func newSummaryCmd(app *App) *cobra.Command {
	var dateFlag string
	var standup bool

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Summarize a day by event type",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			now := app.Tracker.Now()
			day, err := parseDay(dateFlag, now)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if standup {
				text, err := app.Summary.Standup(ctx, day)
				if err != nil {
					return err
				}
				fmt.Fprint(out, text)
				return nil
			}

			s, err := app.Summary.Day(ctx, day)
			if err != nil {
				return err
			}
			fmt.Fprint(out, formatter.FormatDaySummary(s, app.activeID(), now))
			return nil
		},
	}

	cmd.Flags().StringVarP(&dateFlag, "date", "d", "", "Day to summarize (YYYY-MM-DD, today, yesterday, -N)")
	cmd.Flags().BoolVar(&standup, "standup", false, "Print the plain-text standup report instead")
	return cmd
}

func newReportCmd(app *App) *cobra.Command {
	var fromFlag, toFlag, byFlag string

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Report tracked time over a date range",
		Long: `Report tracked time over a date range, grouped by day or ISO week.
Both --from and --to are inclusive. The default range is the last 7 days.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.Tracker.Now()
			groupBy, err := summary.ParseGroupBy(byFlag)
			if err != nil {
				return err
			}
			to, err := parseDay(toFlag, now)
			if err != nil {
				return err
			}
			from := to.AddDate(0, 0, -6)
			if fromFlag != "" {
				if from, err = parseDay(fromFlag, now); err != nil {
					return err
				}
			}

			r, err := app.Summary.Report(cmd.Context(), from, to, groupBy)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatReport(r))
			return nil
		},
	}

	cmd.Flags().StringVar(&fromFlag, "from", "", "First day (default: 6 days before --to)")
	cmd.Flags().StringVar(&toFlag, "to", "", "Last day (default: today)")
	cmd.Flags().StringVar(&byFlag, "by", "day", "Grouping: day or week")
	return cmd
}
