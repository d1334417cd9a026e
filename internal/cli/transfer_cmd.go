package cli

import (
	"fmt"
	"io"
	"os"

	"github.com/alexanderramin/worklog/internal/cli/formatter"
	"github.com/alexanderramin/worklog/internal/importer"
	"github.com/alexanderramin/worklog/internal/service"
	"github.com/spf13/cobra"
)

func newExportCmd(app *App) *cobra.Command {
	var formatFlag, fromFlag, toFlag, outPath string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export events and todos as JSON or YAML",
		Long: `Export events and todos as JSON or YAML.
Without -o the document is written to stdout. --from and --to are inclusive days.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := app.Tracker.Now()
			var opts service.ExportOptions
			if fromFlag != "" {
				from, err := parseDay(fromFlag, now)
				if err != nil {
					return err
				}
				opts.From = from
			}
			if toFlag != "" {
				to, err := parseDay(toFlag, now)
				if err != nil {
					return err
				}
				opts.To = to.AddDate(0, 0, 1)
			}

			format := importer.FormatJSON
			if outPath != "" {
				format = importer.FormatFromPath(outPath)
			}
			if cmd.Flags().Changed("format") {
				f, err := importer.ParseFormat(formatFlag)
				if err != nil {
					return err
				}
				format = f
			}

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				f, err := os.Create(outPath)
				if err != nil {
					return fmt.Errorf("creating export file: %w", err)
				}
				defer f.Close()
				w = f
			}

			result, err := app.Transfer.Export(cmd.Context(), w, format, opts)
			if err != nil {
				return err
			}
			if outPath != "" {
				fmt.Fprintf(cmd.OutOrStdout(), "%s %d events and %d todos to %s\n",
					formatter.StyleGreen.Render("Exported"), result.EventCount, result.TodoCount, outPath)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "Output format: json or yaml")
	cmd.Flags().StringVar(&fromFlag, "from", "", "First day to include")
	cmd.Flags().StringVar(&toFlag, "to", "", "Last day to include")
	cmd.Flags().StringVarP(&outPath, "output", "o", "", "Write to file instead of stdout")
	return cmd
}

func newImportCmd(app *App) *cobra.Command {
	var formatFlag string

	cmd := &cobra.Command{
		Use:   "import <file|->",
		Short: "Import events and todos from a JSON or YAML export",
		Long: `Import events and todos from a JSON or YAML export.
Records are matched by id: existing ones are replaced, new ones are added.
The whole file is validated first and nothing is written if it has errors.
Use "-" to read from stdin (requires --format for YAML).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			var result *service.ImportResult
			var err error
			if args[0] == "-" {
				format, ferr := importer.ParseFormat(formatFlag)
				if ferr != nil {
					return ferr
				}
				result, err = app.Transfer.Import(ctx, cmd.InOrStdin(), format)
			} else if cmd.Flags().Changed("format") {
				format, ferr := importer.ParseFormat(formatFlag)
				if ferr != nil {
					return ferr
				}
				f, oerr := os.Open(args[0])
				if oerr != nil {
					return fmt.Errorf("opening import file: %w", oerr)
				}
				defer f.Close()
				result, err = app.Transfer.Import(ctx, f, format)
			} else {
				result, err = app.Transfer.ImportFile(ctx, args[0])
			}
			if err != nil {
				return err
			}

			// The tracker holds its own copy of the events; pick up the import.
			if err := app.Tracker.Load(ctx); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s %d events and %d todos\n",
				formatter.StyleGreen.Render("Imported"), result.EventCount, result.TodoCount)
			return nil
		},
	}

	cmd.Flags().StringVarP(&formatFlag, "format", "f", "json", "Input format: json or yaml")
	return cmd
}
