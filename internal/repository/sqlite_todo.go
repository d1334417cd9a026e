package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/alexanderramin/worklog/internal/db"
	"github.com/alexanderramin/worklog/internal/domain"
)

// SQLiteTodoRepo implements TodoRepo using a SQLite database.
type SQLiteTodoRepo struct {
	db db.DBTX
}

// NewSQLiteTodoRepo creates a new SQLiteTodoRepo.
func NewSQLiteTodoRepo(d db.DBTX) *SQLiteTodoRepo {
	return &SQLiteTodoRepo{db: d}
}

const todoColumns = `id, title, notes, target_date, is_completed, type, planned_start, planned_end`

func (r *SQLiteTodoRepo) CreateTodo(ctx context.Context, t *domain.TodoItem) error {
	query := `INSERT INTO todo_items (` + todoColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Notes,
		formatDate(t.TargetDate),
		boolToInt(t.IsCompleted),
		string(t.Type),
		nullableTimeToString(t.PlannedStart),
		nullableTimeToString(t.PlannedEnd),
	)
	if err != nil {
		return fmt.Errorf("inserting todo: %w", err)
	}
	return nil
}

func (r *SQLiteTodoRepo) UpdateTodo(ctx context.Context, t *domain.TodoItem) error {
	query := `UPDATE todo_items SET title = ?, notes = ?, target_date = ?, is_completed = ?, type = ?, planned_start = ?, planned_end = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		t.Title,
		t.Notes,
		formatDate(t.TargetDate),
		boolToInt(t.IsCompleted),
		string(t.Type),
		nullableTimeToString(t.PlannedStart),
		nullableTimeToString(t.PlannedEnd),
		t.ID,
	)
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("updating todo: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("todo %s: %w", t.ID, ErrNotFound)
	}
	return nil
}

// UpsertTodo inserts t or overwrites the row with the same id.
func (r *SQLiteTodoRepo) UpsertTodo(ctx context.Context, t *domain.TodoItem) error {
	query := `INSERT INTO todo_items (` + todoColumns + `) VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			notes = excluded.notes,
			target_date = excluded.target_date,
			is_completed = excluded.is_completed,
			type = excluded.type,
			planned_start = excluded.planned_start,
			planned_end = excluded.planned_end`
	_, err := r.db.ExecContext(ctx, query,
		t.ID,
		t.Title,
		t.Notes,
		formatDate(t.TargetDate),
		boolToInt(t.IsCompleted),
		string(t.Type),
		nullableTimeToString(t.PlannedStart),
		nullableTimeToString(t.PlannedEnd),
	)
	if err != nil {
		return fmt.Errorf("upserting todo: %w", err)
	}
	return nil
}

func (r *SQLiteTodoRepo) DeleteTodo(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM todo_items WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting todo: %w", err)
	}
	return nil
}

func (r *SQLiteTodoRepo) GetTodo(ctx context.Context, id string) (*domain.TodoItem, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+todoColumns+` FROM todo_items WHERE id = ?`, id)
	t, err := scanTodo(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("todo %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return t, nil
}

// ListTodosForDate returns the todos planned for the calendar day of day,
// open items first, then by planned start, then in creation order.
func (r *SQLiteTodoRepo) ListTodosForDate(ctx context.Context, day time.Time) ([]*domain.TodoItem, error) {
	query := `SELECT ` + todoColumns + ` FROM todo_items
		WHERE target_date = ?
		ORDER BY is_completed, planned_start IS NULL, planned_start, rowid`
	rows, err := r.db.QueryContext(ctx, query, formatDate(day))
	if err != nil {
		return nil, fmt.Errorf("listing todos for date: %w", err)
	}
	defer rows.Close()
	return scanTodos(rows)
}

// ListTodos returns every todo ordered by target date.
func (r *SQLiteTodoRepo) ListTodos(ctx context.Context) ([]*domain.TodoItem, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+todoColumns+` FROM todo_items ORDER BY target_date, rowid`)
	if err != nil {
		return nil, fmt.Errorf("listing todos: %w", err)
	}
	defer rows.Close()
	return scanTodos(rows)
}

func scanTodos(rows *sql.Rows) ([]*domain.TodoItem, error) {
	var todos []*domain.TodoItem
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating todos: %w", err)
	}
	return todos, nil
}

func scanTodo(s scanner) (*domain.TodoItem, error) {
	var t domain.TodoItem
	var targetStr, typ string
	var completed int
	var plannedStart, plannedEnd sql.NullString

	err := s.Scan(&t.ID, &t.Title, &t.Notes, &targetStr, &completed, &typ, &plannedStart, &plannedEnd)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning todo: %w", err)
	}

	if t.TargetDate, err = parseDate(targetStr); err != nil {
		return nil, fmt.Errorf("todo %s target_date: %w", t.ID, err)
	}
	if t.PlannedStart, err = parseNullableTime(plannedStart); err != nil {
		return nil, fmt.Errorf("todo %s planned_start: %w", t.ID, err)
	}
	if t.PlannedEnd, err = parseNullableTime(plannedEnd); err != nil {
		return nil, fmt.Errorf("todo %s planned_end: %w", t.ID, err)
	}
	t.IsCompleted = intToBool(completed)
	t.Type = domain.EventTypeOrOthers(typ)
	return &t, nil
}
