package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/tasker-app/tasker/internal/db"
	"github.com/tasker-app/tasker/internal/domain"
)

// SQLiteSessionRepo implements SessionRepo using a SQLite database.
type SQLiteSessionRepo struct {
	db db.DBTX
}

// NewSQLiteSessionRepo creates a new SQLiteSessionRepo.
func NewSQLiteSessionRepo(conn db.DBTX) *SQLiteSessionRepo {
	return &SQLiteSessionRepo{db: conn}
}

const sessionColumns = `id, user_id, started_at, ended_at, duration_sec`

func (r *SQLiteSessionRepo) Create(ctx context.Context, s *domain.WorkSession) error {
	query := `INSERT INTO work_sessions (` + sessionColumns + `) VALUES (?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		s.ID,
		s.UserID,
		formatTime(s.StartedAt),
		nullableTimeToString(s.EndedAt),
		nullableInt64ToValue(s.DurationSec),
	)
	if err != nil {
		if isUniqueViolation(err, "work_sessions.user_id") {
			return ErrOpenSessionExists
		}
		return fmt.Errorf("inserting work session: %w", err)
	}
	return nil
}

func (r *SQLiteSessionRepo) GetByID(ctx context.Context, id string) (*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE id = ?`
	return r.scanSession(r.db.QueryRowContext(ctx, query, id))
}

func (r *SQLiteSessionRepo) GetOpenByUser(ctx context.Context, userID string) (*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions WHERE user_id = ? AND ended_at IS NULL`
	return r.scanSession(r.db.QueryRowContext(ctx, query, userID))
}

func (r *SQLiteSessionRepo) ListByUser(ctx context.Context, userID string) ([]*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions
		WHERE user_id = ? ORDER BY started_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing sessions by user: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

func (r *SQLiteSessionRepo) ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions
		WHERE user_id = ? AND started_at >= ?
		ORDER BY started_at DESC, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatLowerBound(since))
	if err != nil {
		return nil, fmt.Errorf("listing sessions since: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

// ListClosedInRange returns closed sessions that started at or after from and
// ended at or before to, oldest first. Open sessions have no end to bound and
// are excluded.
func (r *SQLiteSessionRepo) ListClosedInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.WorkSession, error) {
	query := `SELECT ` + sessionColumns + ` FROM work_sessions
		WHERE user_id = ?
		  AND started_at >= ?
		  AND ended_at IS NOT NULL
		  AND ended_at <= ?
		ORDER BY started_at ASC, id`
	rows, err := r.db.QueryContext(ctx, query, userID, formatLowerBound(from), formatTime(to))
	if err != nil {
		return nil, fmt.Errorf("listing sessions in range: %w", err)
	}
	defer rows.Close()
	return r.scanSessions(rows)
}

// Close persists the end time and duration of an open session. The update is
// guarded on ended_at IS NULL so a closed session is never modified again.
func (r *SQLiteSessionRepo) Close(ctx context.Context, s *domain.WorkSession) error {
	if s.EndedAt == nil || s.DurationSec == nil {
		return fmt.Errorf("closing work session %s: end time and duration are required", s.ID)
	}
	query := `UPDATE work_sessions SET ended_at = ?, duration_sec = ?
		WHERE id = ? AND ended_at IS NULL`
	res, err := r.db.ExecContext(ctx, query, formatTime(*s.EndedAt), *s.DurationSec, s.ID)
	if err != nil {
		return fmt.Errorf("closing work session: %w", err)
	}
	return expectOneRow(res, ErrSessionNotOpen)
}

func (r *SQLiteSessionRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM work_sessions WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting work session: %w", err)
	}
	if err := expectOneRow(res, ErrNotFound); err != nil {
		if errors.Is(err, ErrNotFound) {
			return fmt.Errorf("work session: %w", err)
		}
		return err
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

// scanSession scans a single session from a *sql.Row.
func (r *SQLiteSessionRepo) scanSession(row *sql.Row) (*domain.WorkSession, error) {
	s, err := r.scanInto(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("work session: %w", ErrNotFound)
		}
		return nil, err
	}
	return s, nil
}

// scanSessions scans multiple sessions from *sql.Rows.
func (r *SQLiteSessionRepo) scanSessions(rows *sql.Rows) ([]*domain.WorkSession, error) {
	sessions := []*domain.WorkSession{}
	for rows.Next() {
		s, err := r.scanInto(rows)
		if err != nil {
			return nil, err
		}
		sessions = append(sessions, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating sessions: %w", err)
	}
	return sessions, nil
}

func (r *SQLiteSessionRepo) scanInto(row rowScanner) (*domain.WorkSession, error) {
	var s domain.WorkSession
	var startedAtStr string
	var endedAtStr sql.NullString
	var durationSec sql.NullInt64

	if err := row.Scan(&s.ID, &s.UserID, &startedAtStr, &endedAtStr, &durationSec); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning work session: %w", err)
	}

	var err error
	if s.StartedAt, err = parseTime(startedAtStr, "started_at"); err != nil {
		return nil, err
	}
	if s.EndedAt, err = parseNullableTime(endedAtStr, "ended_at"); err != nil {
		return nil, err
	}
	s.DurationSec = nullInt64ToPtr(durationSec)
	return &s, nil
}
