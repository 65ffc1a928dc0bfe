package db

import (
	"database/sql"

	"github.com/cockroachdb/errors"
)

// Migrate runs all schema migrations. Every statement is idempotent.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			return errors.Wrapf(err, "migration %d", i)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS worklog_journal (
		id         TEXT PRIMARY KEY,
		worker     TEXT NOT NULL,
		work_date  TEXT NOT NULL,
		task_key   TEXT NOT NULL,
		seconds    INTEGER NOT NULL CHECK(seconds > 0),
		created_at TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_worklog_journal_worker_date ON worklog_journal(worker, work_date)`,
}
