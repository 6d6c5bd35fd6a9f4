package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Every statement is idempotent so the
// full list is replayed on each open.
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
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id          TEXT PRIMARY KEY,
		email       TEXT NOT NULL,
		first_name  TEXT NOT NULL,
		last_name   TEXT NOT NULL DEFAULT '',
		role        TEXT NOT NULL DEFAULT 'USER' CHECK(role IN ('ADMIN','USER')),
		daily_hours REAL NOT NULL DEFAULT 8 CHECK(daily_hours >= 0),
		created_at  TEXT NOT NULL
	)`,

	`CREATE UNIQUE INDEX IF NOT EXISTS idx_users_email ON users(email)`,

	`CREATE TABLE IF NOT EXISTS work_sessions (
		id           TEXT PRIMARY KEY,
		user_id      TEXT NOT NULL REFERENCES users(id) ON DELETE CASCADE,
		started_at   TEXT NOT NULL,
		ended_at     TEXT,
		duration_sec INTEGER,
		CHECK ((ended_at IS NULL) = (duration_sec IS NULL)),
		CHECK (duration_sec IS NULL OR duration_sec >= 0)
	)`,

	// At most one open session per user.
	`CREATE UNIQUE INDEX IF NOT EXISTS idx_work_sessions_open_user
		ON work_sessions(user_id) WHERE ended_at IS NULL`,

	`CREATE INDEX IF NOT EXISTS idx_work_sessions_user_started ON work_sessions(user_id, started_at)`,
}
