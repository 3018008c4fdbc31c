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
	if err := migrateBackfillOccurredOn(db); err != nil {
		return fmt.Errorf("backfilling occurred_on: %w", err)
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS tasks (
		id         TEXT PRIMARY KEY,
		user_id    TEXT NOT NULL,
		title      TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_tasks_user ON tasks(user_id)`,

	`CREATE TABLE IF NOT EXISTS schedule_blocks (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		task_id        TEXT REFERENCES tasks(id) ON DELETE SET NULL,
		title          TEXT NOT NULL DEFAULT '',
		week_start     TEXT NOT NULL,
		day_of_week    INTEGER NOT NULL CHECK(day_of_week BETWEEN 0 AND 6),
		start_hour     INTEGER NOT NULL CHECK(start_hour BETWEEN 0 AND 23),
		duration_hours REAL NOT NULL,
		created_at     TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_schedule_blocks_user_week ON schedule_blocks(user_id, week_start)`,

	// occurred_at keeps the original offset; ratings are not constrained here
	// because imported rows may carry missing ratings.
	`CREATE TABLE IF NOT EXISTS focus_sessions (
		id             TEXT PRIMARY KEY,
		user_id        TEXT NOT NULL,
		block_id       TEXT NOT NULL,
		occurred_at    TEXT,
		actual_minutes INTEGER NOT NULL DEFAULT 0,
		focus_rating   INTEGER NOT NULL DEFAULT 0,
		note           TEXT NOT NULL DEFAULT '',
		created_at     TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS manual_entries (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL,
		task_id      TEXT NOT NULL REFERENCES tasks(id) ON DELETE CASCADE,
		occurred_at  TEXT,
		minutes      INTEGER NOT NULL DEFAULT 0,
		focus_rating INTEGER NOT NULL DEFAULT 0,
		note         TEXT NOT NULL DEFAULT '',
		created_at   TEXT NOT NULL
	)`,

	// Calendar date of occurred_at in its own zone, used for week filtering.
	`ALTER TABLE focus_sessions ADD COLUMN occurred_on TEXT`,
	`ALTER TABLE manual_entries ADD COLUMN occurred_on TEXT`,

	`CREATE INDEX IF NOT EXISTS idx_focus_sessions_user_day ON focus_sessions(user_id, occurred_on)`,
	`CREATE INDEX IF NOT EXISTS idx_manual_entries_user_day ON manual_entries(user_id, occurred_on)`,
	`CREATE INDEX IF NOT EXISTS idx_manual_entries_task ON manual_entries(task_id)`,
}

// migrateBackfillOccurredOn derives occurred_on for rows written before the
// column existed. An RFC3339 timestamp starts with its local date, so the
// first ten characters are the date in the timestamp's own zone. Rows whose
// occurred_at is null or not date-shaped keep a null occurred_on.
// Idempotent: only touches rows where occurred_on is still null.
func migrateBackfillOccurredOn(db *sql.DB) error {
	ctx := context.Background()

	for _, table := range []string{"focus_sessions", "manual_entries"} {
		query := `UPDATE ` + table + `
			SET occurred_on = substr(occurred_at, 1, 10)
			WHERE occurred_on IS NULL
			  AND occurred_at GLOB '[0-9][0-9][0-9][0-9]-[0-9][0-9]-[0-9][0-9]*'`
		if _, err := db.ExecContext(ctx, query); err != nil {
			return fmt.Errorf("updating %s: %w", table, err)
		}
	}
	return nil
}
