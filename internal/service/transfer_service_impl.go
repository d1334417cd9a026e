package service

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/alexanderramin/worklog/internal/db"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/importer"
	"github.com/alexanderramin/worklog/internal/repository"
)

// maxExportTime bounds open-ended exports.
var maxExportTime = time.Date(9999, 12, 31, 0, 0, 0, 0, time.UTC)

type transferService struct {
	events   repository.EventRepo
	todos    repository.TodoRepo
	uow      db.UnitOfWork
	loc      *time.Location
	now      func() time.Time
	observer UseCaseObserver
}

func NewTransferService(events repository.EventRepo, todos repository.TodoRepo, uow db.UnitOfWork, observers ...UseCaseObserver) TransferService {
	return &transferService{
		events:   events,
		todos:    todos,
		uow:      uow,
		loc:      time.Local,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *transferService) Export(ctx context.Context, w io.Writer, format importer.Format, opts ExportOptions) (result *ExportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"format": string(format)}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "export",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	to := opts.To
	if to.IsZero() {
		to = maxExportTime
	}
	if !opts.From.IsZero() && !to.After(opts.From) {
		return nil, fmt.Errorf("export range: end %s is not after start %s",
			to.Format("2006-01-02"), opts.From.Format("2006-01-02"))
	}

	events, err := s.events.ListEventsBetween(ctx, opts.From, to)
	if err != nil {
		return nil, fmt.Errorf("listing events: %w", err)
	}
	all, err := s.todos.ListTodos(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	todos := make([]*domain.TodoItem, 0, len(all))
	for _, t := range all {
		if !t.TargetDate.Before(domain.StartOfDay(opts.From)) && t.TargetDate.Before(to) {
			todos = append(todos, t)
		}
	}

	doc := importer.FromDomain(events, todos, s.now())
	if err := importer.Encode(w, doc, format); err != nil {
		return nil, err
	}

	fields["event_count"] = len(events)
	fields["todo_count"] = len(todos)
	return &ExportResult{EventCount: len(events), TodoCount: len(todos)}, nil
}

func (s *transferService) Import(ctx context.Context, r io.Reader, format importer.Format) (*ImportResult, error) {
	doc, err := importer.Decode(r, format)
	if err != nil {
		return nil, err
	}
	return s.ImportDocument(ctx, doc)
}

func (s *transferService) ImportFile(ctx context.Context, path string) (*ImportResult, error) {
	doc, err := importer.LoadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("loading import file: %w", err)
	}
	return s.ImportDocument(ctx, doc)
}

// ImportDocument upserts every event and todo in one transaction. Records
// whose id already exists are replaced.
func (s *transferService) ImportDocument(ctx context.Context, doc *importer.Document) (result *ImportResult, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "import",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if errs := importer.ValidateDocument(doc); len(errs) > 0 {
		return nil, formatValidationErrors(errs)
	}

	converted, err := importer.Convert(doc, s.loc)
	if err != nil {
		return nil, fmt.Errorf("converting import document: %w", err)
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txEvents := repository.NewSQLiteEventRepo(tx)
		txTodos := repository.NewSQLiteTodoRepo(tx)

		for _, e := range converted.Events {
			if err := txEvents.UpdateEvent(ctx, e); err != nil {
				return fmt.Errorf("importing event %q: %w", e.Title, err)
			}
		}
		for _, t := range converted.Todos {
			if err := txTodos.UpsertTodo(ctx, t); err != nil {
				return fmt.Errorf("importing todo %q: %w", t.Title, err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	fields["event_count"] = len(converted.Events)
	fields["todo_count"] = len(converted.Todos)
	return &ImportResult{
		EventCount: len(converted.Events),
		TodoCount:  len(converted.Todos),
	}, nil
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%s", msg)
}
