package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/alexanderramin/worklog/internal/db"
)

const activeEventKey = "active_event_id"

// SQLiteStateRepo stores tracker state as key/value rows.
type SQLiteStateRepo struct {
	db db.DBTX
}

func NewSQLiteStateRepo(d db.DBTX) *SQLiteStateRepo {
	return &SQLiteStateRepo{db: d}
}

// ActiveEventID returns "" when no event is active.
func (r *SQLiteStateRepo) ActiveEventID(ctx context.Context) (string, error) {
	var id string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM tracker_state WHERE key = ?`, activeEventKey).Scan(&id)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("reading active event id: %w", err)
	}
	return id, nil
}

// SetActiveEventID records id as active. An empty id clears it.
func (r *SQLiteStateRepo) SetActiveEventID(ctx context.Context, id string) error {
	if id == "" {
		if _, err := r.db.ExecContext(ctx, `DELETE FROM tracker_state WHERE key = ?`, activeEventKey); err != nil {
			return fmt.Errorf("clearing active event id: %w", err)
		}
		return nil
	}
	query := `INSERT INTO tracker_state (key, value) VALUES (?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value`
	if _, err := r.db.ExecContext(ctx, query, activeEventKey, id); err != nil {
		return fmt.Errorf("writing active event id: %w", err)
	}
	return nil
}
