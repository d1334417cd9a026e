package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/alexanderramin/worklog/internal/calsync"
	"github.com/alexanderramin/worklog/internal/cli"
	"github.com/alexanderramin/worklog/internal/config"
	"github.com/alexanderramin/worklog/internal/db"
	"github.com/alexanderramin/worklog/internal/repository"
	"github.com/alexanderramin/worklog/internal/service"
	"github.com/alexanderramin/worklog/internal/tracker"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// Resolve config: defaults, ~/.worklog/config.toml, then WORKLOG_* env.
	cfgPath, err := config.DefaultPath()
	if err != nil {
		return err
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		return err
	}

	logger, closeLog, err := cfg.Logging.NewLogger(os.Stderr)
	if err != nil {
		return fmt.Errorf("configuring logging: %w", err)
	}
	defer closeLog()

	loc, err := cfg.Location()
	if err != nil {
		return err
	}
	// Day boundaries and --date parsing follow the configured zone.
	time.Local = loc

	// Open database
	database, err := db.OpenDB(cfg.DBPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}
	defer database.Close()

	// Wire repositories
	eventRepo := repository.NewSQLiteEventRepo(database)
	stateRepo := repository.NewSQLiteStateRepo(database)
	todoRepo := repository.NewSQLiteTodoRepo(database)

	// Wire unit of work for transactional operations
	uow := db.NewSQLiteUnitOfWork(database)

	// Calendar sync is optional; without it finished events stay local.
	var calendar tracker.CalendarSync = calsync.Noop{}
	if cfg.Calendar.Enabled {
		var observer calsync.Observer = calsync.NoopObserver{}
		if cfg.Calendar.LogCalls {
			observer = calsync.NewLogObserver(logger)
		}
		calendar = calsync.NewGoogleClient(cfg.Calendar, observer)
	}

	tr := tracker.New(eventRepo,
		tracker.WithStateStore(stateRepo),
		tracker.WithCalendarSync(calendar),
		tracker.WithLogger(logger),
		tracker.WithSyncTimeout(cfg.Calendar.Timeout()),
	)
	if err := tr.Load(context.Background()); err != nil {
		return fmt.Errorf("loading events: %w", err)
	}
	defer tr.Wait()

	// Wire services
	obs := service.NewLogUseCaseObserver(logger)
	app := &cli.App{
		Tracker:         tr,
		Todos:           service.NewTodoService(todoRepo, uow, tr, obs),
		Summary:         service.NewSummaryService(tr, obs),
		Transfer:        service.NewTransferService(eventRepo, todoRepo, uow, obs),
		Logger:          logger,
		WatchPath:       cfg.DBPath,
		RefreshInterval: cfg.RefreshInterval(),
		ConfigPath:      cfgPath,
	}

	// Detect interactive terminal for prompts and the sync spinner.
	app.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	// Execute root command
	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
