package cli

import (
	"log/slog"
	"time"

	"github.com/alexanderramin/worklog/internal/service"
	"github.com/spf13/cobra"
)

// App holds the tracker and service interfaces used by CLI commands.
type App struct {
	Tracker  Tracker
	Todos    service.TodoService
	Summary  service.SummaryService
	Transfer service.TransferService
	Logger   *slog.Logger

	// IsInteractive reports whether stdin is a terminal, enabling prompts.
	IsInteractive func() bool

	// WatchPath is the database file the watch view monitors for writes by
	// other worklog processes. Empty disables file watching.
	WatchPath string

	// RefreshInterval is the watch view's redraw tick.
	RefreshInterval time.Duration

	// ConfigPath is the TOML file "config init" writes.
	ConfigPath string
}

// NewRootCmd creates the top-level "worklog" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "worklog",
		Short:         "Personal time tracker with pause/resume accounting",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.AddCommand(
		newStartCmd(app),
		newPauseCmd(app),
		newResumeCmd(app),
		newStopCmd(app),
		newStatusCmd(app),
		newLogCmd(app),
		newEditCmd(app),
		newDeleteCmd(app),
		newSummaryCmd(app),
		newReportCmd(app),
		newTodoCmd(app),
		newExportCmd(app),
		newImportCmd(app),
		newWatchCmd(app),
		newConfigCmd(app),
	)

	return root
}
