package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/tasker-app/tasker/internal/db"
	"github.com/tasker-app/tasker/internal/domain"
)

// SQLiteUserRepo implements UserRepo using a SQLite database.
type SQLiteUserRepo struct {
	db db.DBTX
}

// NewSQLiteUserRepo creates a new SQLiteUserRepo.
func NewSQLiteUserRepo(conn db.DBTX) *SQLiteUserRepo {
	return &SQLiteUserRepo{db: conn}
}

// userSelect joins the open session, if any, to derive CurrentSessionID.
const userSelect = `SELECT u.id, u.email, u.first_name, u.last_name, u.role, u.daily_hours, u.created_at, s.id
	FROM users u
	LEFT JOIN work_sessions s ON s.user_id = u.id AND s.ended_at IS NULL`

func (r *SQLiteUserRepo) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (id, email, first_name, last_name, role, daily_hours, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		u.ID,
		u.Email,
		u.FirstName,
		u.LastName,
		string(u.Role),
		u.DailyHours,
		formatTime(u.CreatedAt),
	)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return fmt.Errorf("user email %q: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("inserting user: %w", err)
	}
	return nil
}

func (r *SQLiteUserRepo) GetByID(ctx context.Context, id string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx, userSelect+` WHERE u.id = ?`, id)
	u, err := r.scanUser(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("user: %w", ErrNotFound)
		}
		return nil, err
	}
	return u, nil
}

func (r *SQLiteUserRepo) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx, userSelect+` ORDER BY u.created_at, u.email`)
	if err != nil {
		return nil, fmt.Errorf("listing users: %w", err)
	}
	defer rows.Close()

	users := []*domain.User{}
	for rows.Next() {
		u, err := r.scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating users: %w", err)
	}
	return users, nil
}

func (r *SQLiteUserRepo) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email = ?, first_name = ?, last_name = ?, role = ?, daily_hours = ?
		WHERE id = ?`
	res, err := r.db.ExecContext(ctx, query,
		u.Email,
		u.FirstName,
		u.LastName,
		string(u.Role),
		u.DailyHours,
		u.ID,
	)
	if err != nil {
		if isUniqueViolation(err, "users.email") {
			return fmt.Errorf("user email %q: %w", u.Email, ErrDuplicate)
		}
		return fmt.Errorf("updating user: %w", err)
	}
	return expectOneRow(res, fmt.Errorf("user: %w", ErrNotFound))
}

// Delete removes the user. Work sessions go with it through ON DELETE CASCADE.
func (r *SQLiteUserRepo) Delete(ctx context.Context, id string) error {
	res, err := r.db.ExecContext(ctx, `DELETE FROM users WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("deleting user: %w", err)
	}
	return expectOneRow(res, fmt.Errorf("user: %w", ErrNotFound))
}

func (r *SQLiteUserRepo) scanUser(row rowScanner) (*domain.User, error) {
	var u domain.User
	var roleStr, createdAtStr string
	var currentSessionID sql.NullString

	err := row.Scan(
		&u.ID, &u.Email, &u.FirstName, &u.LastName,
		&roleStr, &u.DailyHours, &createdAtStr, &currentSessionID,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scanning user: %w", err)
	}

	u.Role = domain.Role(roleStr)
	if u.CreatedAt, err = parseTime(createdAtStr, "created_at"); err != nil {
		return nil, err
	}
	u.CurrentSessionID = nullStringToPtr(currentSessionID)
	return &u, nil
}
