package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/worklog/internal/db"
	"github.com/alexanderramin/worklog/internal/domain"
	"github.com/alexanderramin/worklog/internal/repository"
	"github.com/google/uuid"
)

type todoService struct {
	todos    repository.TodoRepo
	uow      db.UnitOfWork
	starter  EventStarter
	now      func() time.Time
	observer UseCaseObserver
}

func NewTodoService(todos repository.TodoRepo, uow db.UnitOfWork, starter EventStarter, observers ...UseCaseObserver) TodoService {
	return &todoService{
		todos:    todos,
		uow:      uow,
		starter:  starter,
		now:      time.Now,
		observer: useCaseObserverOrNoop(observers),
	}
}

func (s *todoService) Add(ctx context.Context, t *domain.TodoItem) (err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "add-todo",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"target_date": t.TargetDate.Format("2006-01-02")},
		})
	}()

	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	if t.TargetDate.IsZero() {
		t.TargetDate = s.now()
	}
	if t.Type == "" {
		t.Type = domain.EventTask
	}
	if err = normalizeTodo(t); err != nil {
		return err
	}
	return s.todos.CreateTodo(ctx, t)
}

func (s *todoService) Get(ctx context.Context, id string) (*domain.TodoItem, error) {
	t, err := s.todos.GetTodo(ctx, id)
	if err == nil {
		return t, nil
	}
	if !errors.Is(err, domain.ErrNotFound) {
		return nil, err
	}

	all, err := s.todos.ListTodos(ctx)
	if err != nil {
		return nil, err
	}
	var match *domain.TodoItem
	for _, candidate := range all {
		if id != "" && strings.HasPrefix(candidate.ID, id) {
			if match != nil {
				return nil, fmt.Errorf("todo %q: %w", id, domain.ErrAmbiguousID)
			}
			match = candidate
		}
	}
	if match == nil {
		return nil, fmt.Errorf("todo %q: %w", id, domain.ErrNotFound)
	}
	return match, nil
}

func (s *todoService) ListForDate(ctx context.Context, day time.Time) ([]*domain.TodoItem, error) {
	return s.todos.ListTodosForDate(ctx, day)
}

func (s *todoService) Update(ctx context.Context, t *domain.TodoItem) error {
	if err := normalizeTodo(t); err != nil {
		return err
	}
	return s.todos.UpdateTodo(ctx, t)
}

func (s *todoService) Toggle(ctx context.Context, id string) (toggled *domain.TodoItem, err error) {
	startedAt := time.Now().UTC()
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "toggle-todo",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    map[string]any{"todo_id": id},
		})
	}()

	resolved, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txTodos := repository.NewSQLiteTodoRepo(tx)

		// Re-read within the transaction so concurrent toggles do not cancel out.
		t, err := txTodos.GetTodo(ctx, resolved.ID)
		if err != nil {
			return err
		}
		t.Toggle()
		if err := txTodos.UpdateTodo(ctx, t); err != nil {
			return err
		}
		toggled = t
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toggled, nil
}

func (s *todoService) Delete(ctx context.Context, id string) error {
	t, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	return s.todos.DeleteTodo(ctx, t.ID)
}

func (s *todoService) Start(ctx context.Context, id string) (event domain.WorkEvent, err error) {
	startedAt := time.Now().UTC()
	fields := map[string]any{"todo_id": id}
	defer func() {
		s.observer.ObserveUseCase(ctx, UseCaseEvent{
			Name:      "start-todo",
			StartedAt: startedAt,
			Duration:  time.Since(startedAt),
			Success:   err == nil,
			Err:       err,
			Fields:    fields,
		})
	}()

	if s.starter == nil {
		return domain.WorkEvent{}, fmt.Errorf("starting todo: no tracker configured")
	}
	t, err := s.Get(ctx, id)
	if err != nil {
		return domain.WorkEvent{}, err
	}
	event, err = s.starter.Start(ctx, t.Title, t.Notes, t.Type)
	if err != nil {
		return domain.WorkEvent{}, fmt.Errorf("starting todo %s: %w", t.ID, err)
	}
	fields["event_id"] = event.ID
	return event, nil
}

// normalizeTodo trims the title, snaps TargetDate to local midnight and
// checks the planned window.
func normalizeTodo(t *domain.TodoItem) error {
	t.Title = strings.TrimSpace(t.Title)
	if t.Title == "" {
		return domain.ErrEmptyTitle
	}
	t.TargetDate = domain.StartOfDay(t.TargetDate)
	if t.PlannedStart != nil && t.PlannedEnd != nil && t.PlannedEnd.Before(*t.PlannedStart) {
		return fmt.Errorf("todo %q: planned end %s is before planned start %s",
			t.Title, t.PlannedEnd.Format("15:04"), t.PlannedStart.Format("15:04"))
	}
	return nil
}
