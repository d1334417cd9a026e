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

// SQLiteEventRepo implements EventRepo using a SQLite database.
type SQLiteEventRepo struct {
	db db.DBTX
}

// NewSQLiteEventRepo creates a new SQLiteEventRepo. Pass a *sql.Tx to scope
// it to a transaction.
func NewSQLiteEventRepo(d db.DBTX) *SQLiteEventRepo {
	return &SQLiteEventRepo{db: d}
}

const eventColumns = `id, title, notes, start_time, end_time, type, is_paused, total_accumulated_ns, last_start_time`

func (r *SQLiteEventRepo) CreateEvent(ctx context.Context, e *domain.WorkEvent) error {
	query := `INSERT INTO work_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`
	if _, err := r.db.ExecContext(ctx, query, eventArgs(e)...); err != nil {
		return fmt.Errorf("inserting work event: %w", err)
	}
	return nil
}

// UpdateEvent writes every field of e. A row that is missing, for example
// because its create failed, is inserted.
func (r *SQLiteEventRepo) UpdateEvent(ctx context.Context, e *domain.WorkEvent) error {
	query := `INSERT INTO work_events (` + eventColumns + `)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			title = excluded.title,
			notes = excluded.notes,
			start_time = excluded.start_time,
			end_time = excluded.end_time,
			type = excluded.type,
			is_paused = excluded.is_paused,
			total_accumulated_ns = excluded.total_accumulated_ns,
			last_start_time = excluded.last_start_time`
	if _, err := r.db.ExecContext(ctx, query, eventArgs(e)...); err != nil {
		return fmt.Errorf("updating work event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) DeleteEvent(ctx context.Context, id string) error {
	if _, err := r.db.ExecContext(ctx, `DELETE FROM work_events WHERE id = ?`, id); err != nil {
		return fmt.Errorf("deleting work event: %w", err)
	}
	return nil
}

func (r *SQLiteEventRepo) GetEvent(ctx context.Context, id string) (*domain.WorkEvent, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+eventColumns+` FROM work_events WHERE id = ?`, id)
	e, err := scanEvent(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work event %s: %w", id, ErrNotFound)
		}
		return nil, err
	}
	return e, nil
}

// ListEvents returns every event, newest start time first.
func (r *SQLiteEventRepo) ListEvents(ctx context.Context) ([]*domain.WorkEvent, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT `+eventColumns+` FROM work_events ORDER BY start_time DESC, rowid DESC`)
	if err != nil {
		return nil, fmt.Errorf("listing work events: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

// ListEventsBetween returns events starting in [from, to), oldest first.
func (r *SQLiteEventRepo) ListEventsBetween(ctx context.Context, from, to time.Time) ([]*domain.WorkEvent, error) {
	query := `SELECT ` + eventColumns + ` FROM work_events
		WHERE start_time >= ? AND start_time < ?
		ORDER BY start_time, rowid`
	rows, err := r.db.QueryContext(ctx, query, formatTime(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("listing work events in range: %w", err)
	}
	defer rows.Close()
	return scanEvents(rows)
}

func eventArgs(e *domain.WorkEvent) []any {
	return []any{
		e.ID,
		e.Title,
		e.Notes,
		formatTime(e.StartTime),
		formatTime(e.EndTime),
		string(e.Type),
		boolToInt(e.IsPaused),
		int64(e.TotalAccumulated),
		nullableTimeToString(e.LastStartTime),
	}
}

func scanEvents(rows *sql.Rows) ([]*domain.WorkEvent, error) {
	var events []*domain.WorkEvent
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, err
		}
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating work events: %w", err)
	}
	return events, nil
}

func scanEvent(s scanner) (*domain.WorkEvent, error) {
	var e domain.WorkEvent
	var startStr, endStr, typ string
	var paused int
	var totalNS int64
	var lastStart sql.NullString

	err := s.Scan(&e.ID, &e.Title, &e.Notes, &startStr, &endStr, &typ, &paused, &totalNS, &lastStart)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work event: %w", err)
	}

	if e.StartTime, err = parseTime(startStr); err != nil {
		return nil, fmt.Errorf("work event %s start_time: %w", e.ID, err)
	}
	if e.EndTime, err = parseTime(endStr); err != nil {
		return nil, fmt.Errorf("work event %s end_time: %w", e.ID, err)
	}
	if e.LastStartTime, err = parseNullableTime(lastStart); err != nil {
		return nil, fmt.Errorf("work event %s last_start_time: %w", e.ID, err)
	}
	e.Type = domain.EventTypeOrOthers(typ)
	e.IsPaused = intToBool(paused)
	e.TotalAccumulated = time.Duration(totalNS)
	return &e, nil
}
