package db

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// Tolerate "duplicate column name" errors from ALTER TABLE
			// since the migration system re-runs all statements.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	if err := runOnce(db, "backfill_legacy_durations", migrateBackfillLegacyDurations); err != nil {
		return fmt.Errorf("backfilling legacy durations: %w", err)
	}
	return nil
}

// runOnce applies a data migration the first time it is seen and records it
// in schema_migrations.
func runOnce(db *sql.DB, name string, fn func(ctx context.Context, tx *sql.Tx) error) error {
	ctx := context.Background()
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting migration transaction: %w", err)
	}
	committed := false
	defer func() {
		if !committed {
			_ = tx.Rollback()
		}
	}()

	res, err := tx.ExecContext(ctx, `INSERT OR IGNORE INTO schema_migrations (name) VALUES (?)`, name)
	if err != nil {
		return fmt.Errorf("recording migration %s: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("recording migration %s: %w", name, err)
	}
	if n > 0 {
		if err := fn(ctx, tx); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing migration %s: %w", name, err)
	}
	committed = true
	return nil
}

// migrateBackfillLegacyDurations gives events recorded before pause/resume
// accounting existed an accumulated duration equal to their wall-clock span.
func migrateBackfillLegacyDurations(ctx context.Context, tx *sql.Tx) error {
	_, err := tx.ExecContext(ctx, `UPDATE work_events
		SET total_accumulated_ns = MAX(0, CAST(ROUND((julianday(end_time) - julianday(start_time)) * 86400) AS INTEGER)) * 1000000000
		WHERE is_paused = 1 AND last_start_time IS NULL AND total_accumulated_ns = 0`)
	if err != nil {
		return fmt.Errorf("updating work_events: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS schema_migrations (
		name       TEXT PRIMARY KEY,
		applied_at TEXT NOT NULL DEFAULT (strftime('%Y-%m-%dT%H:%M:%SZ', 'now'))
	)`,

	`CREATE TABLE IF NOT EXISTS work_events (
		id         TEXT PRIMARY KEY,
		title      TEXT NOT NULL,
		notes      TEXT NOT NULL DEFAULT '',
		start_time TEXT NOT NULL,
		end_time   TEXT NOT NULL,
		type       TEXT NOT NULL DEFAULT 'Others'
	)`,

	`CREATE INDEX IF NOT EXISTS idx_work_events_start ON work_events(start_time)`,

	// Pause/resume accounting columns.
	`ALTER TABLE work_events ADD COLUMN is_paused INTEGER NOT NULL DEFAULT 1`,
	`ALTER TABLE work_events ADD COLUMN total_accumulated_ns INTEGER NOT NULL DEFAULT 0`,
	`ALTER TABLE work_events ADD COLUMN last_start_time TEXT`,

	`CREATE TABLE IF NOT EXISTS todo_items (
		id           TEXT PRIMARY KEY,
		title        TEXT NOT NULL,
		notes        TEXT NOT NULL DEFAULT '',
		target_date  TEXT NOT NULL,
		is_completed INTEGER NOT NULL DEFAULT 0
	)`,

	`CREATE INDEX IF NOT EXISTS idx_todo_items_target ON todo_items(target_date)`,

	// Planned type and time window for todos.
	`ALTER TABLE todo_items ADD COLUMN type TEXT NOT NULL DEFAULT 'Task'`,
	`ALTER TABLE todo_items ADD COLUMN planned_start TEXT`,
	`ALTER TABLE todo_items ADD COLUMN planned_end TEXT`,

	`CREATE TABLE IF NOT EXISTS tracker_state (
		key   TEXT PRIMARY KEY,
		value TEXT NOT NULL
	)`,
}
