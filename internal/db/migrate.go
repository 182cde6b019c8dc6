package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent and re-run
// on every open.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			// ALTER TABLE ADD COLUMN is not idempotent in SQLite.
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS employees (
		id          TEXT PRIMARY KEY,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL DEFAULT '',
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS projects (
		id          TEXT PRIMARY KEY,
		name        TEXT NOT NULL UNIQUE COLLATE NOCASE,
		created_at  TEXT NOT NULL
	)`,

	`CREATE TABLE IF NOT EXISTS assignments (
		id           TEXT PRIMARY KEY,
		employee_id  TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		project_id   TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		start_date   TEXT NOT NULL,
		end_date     TEXT,
		created_at   TEXT NOT NULL,
		CHECK(end_date IS NULL OR end_date >= start_date),
		UNIQUE(employee_id, project_id, start_date)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_assignments_employee ON assignments(employee_id, start_date)`,

	`CREATE TABLE IF NOT EXISTS timesheets (
		id            TEXT PRIMARY KEY,
		employee_id   TEXT NOT NULL REFERENCES employees(id) ON DELETE CASCADE,
		project_id    TEXT NOT NULL REFERENCES projects(id) ON DELETE CASCADE,
		date_worked   TEXT NOT NULL,
		hours_worked  REAL NOT NULL CHECK(hours_worked > 0 AND hours_worked <= 24),
		created_at    TEXT NOT NULL,
		UNIQUE(employee_id, project_id, date_worked)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_timesheets_employee_date ON timesheets(employee_id, date_worked)`,
	`CREATE INDEX IF NOT EXISTS idx_timesheets_project ON timesheets(project_id)`,

	// Free-text note carried on an entry, added after the first release.
	`ALTER TABLE timesheets ADD COLUMN note TEXT NOT NULL DEFAULT ''`,
}
