package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate applies the schema. Every statement is safe to re-run.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS subjects (
		id         TEXT PRIMARY KEY,
		name       TEXT NOT NULL,
		created_at TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS tracked_items (
		id             TEXT PRIMARY KEY,
		subject_id     TEXT NOT NULL REFERENCES subjects(id) ON DELETE CASCADE,
		category       TEXT NOT NULL
		               CHECK(category IN ('workout','nutrition','habit')),
		title          TEXT NOT NULL,
		cadence_kind   TEXT NOT NULL DEFAULT 'daily'
		               CHECK(cadence_kind IN ('daily','weekly')),
		times_per_week INTEGER NOT NULL DEFAULT 0,
		start_date     TEXT NOT NULL,
		active         INTEGER NOT NULL DEFAULT 1,
		created_at     TEXT NOT NULL
	)`,
	`CREATE INDEX IF NOT EXISTS idx_tracked_items_subject ON tracked_items(subject_id)`,
	// (tracked_item_id, log_date) is the natural key of a completion.
	`CREATE TABLE IF NOT EXISTS log_entries (
		tracked_item_id TEXT NOT NULL REFERENCES tracked_items(id) ON DELETE CASCADE,
		log_date        TEXT NOT NULL,
		source          TEXT NOT NULL DEFAULT 'toggle'
		                CHECK(source IN ('toggle','backfill')),
		created_at      TEXT NOT NULL,
		PRIMARY KEY (tracked_item_id, log_date)
	)`,
	`CREATE INDEX IF NOT EXISTS idx_log_entries_date ON log_entries(log_date)`,
}
