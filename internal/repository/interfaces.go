package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/domain"
)

// ErrNotFound is returned when a row does not exist. It matches
// domain.ErrNotFound under errors.Is.
var ErrNotFound = fmt.Errorf("record %w", domain.ErrNotFound)

type EventRepo interface {
	CreateEvent(ctx context.Context, e *domain.WorkEvent) error
	UpdateEvent(ctx context.Context, e *domain.WorkEvent) error
	DeleteEvent(ctx context.Context, id string) error
	GetEvent(ctx context.Context, id string) (*domain.WorkEvent, error)
	ListEvents(ctx context.Context) ([]*domain.WorkEvent, error)
	ListEventsBetween(ctx context.Context, from, to time.Time) ([]*domain.WorkEvent, error)
}

type TodoRepo interface {
	CreateTodo(ctx context.Context, t *domain.TodoItem) error
	UpdateTodo(ctx context.Context, t *domain.TodoItem) error
	DeleteTodo(ctx context.Context, id string) error
	GetTodo(ctx context.Context, id string) (*domain.TodoItem, error)
	ListTodosForDate(ctx context.Context, day time.Time) ([]*domain.TodoItem, error)
	ListTodos(ctx context.Context) ([]*domain.TodoItem, error)
}

type StateRepo interface {
	ActiveEventID(ctx context.Context) (string, error)
	SetActiveEventID(ctx context.Context, id string) error
}
