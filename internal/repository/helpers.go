package repository

import (
	"database/sql"
	"fmt"
	"time"
)

// timeLayout is the storage format for instants. Values are always stored in
// UTC at second precision so lexical order matches chronological order.
const timeLayout = time.RFC3339

func formatTime(t time.Time) string {
	return t.UTC().Truncate(time.Second).Format(timeLayout)
}

// formatLowerBound rounds a sub-second instant up to the next stored second,
// so a ">=" comparison never admits rows from before t.
func formatLowerBound(t time.Time) string {
	sec := t.UTC().Truncate(time.Second)
	if sec.Before(t) {
		sec = sec.Add(time.Second)
	}
	return sec.Format(timeLayout)
}

func parseTime(s string, column string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("parsing %s: %w", column, err)
	}
	return t.UTC(), nil
}

// parseNullableTime parses a sql.NullString into a *time.Time.
// Returns nil if the value is NULL or empty.
func parseNullableTime(s sql.NullString, column string) (*time.Time, error) {
	if !s.Valid || s.String == "" {
		return nil, nil
	}
	t, err := parseTime(s.String, column)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

// nullableTimeToString converts a *time.Time to a value suitable for SQLite storage.
// Returns nil (SQL NULL) if the pointer is nil.
func nullableTimeToString(t *time.Time) interface{} {
	if t == nil {
		return nil
	}
	return formatTime(*t)
}

// nullableInt64ToValue converts a *int64 to a value suitable for SQLite storage.
func nullableInt64ToValue(v *int64) interface{} {
	if v == nil {
		return nil
	}
	return *v
}

func nullInt64ToPtr(v sql.NullInt64) *int64 {
	if !v.Valid {
		return nil
	}
	n := v.Int64
	return &n
}

func nullStringToPtr(v sql.NullString) *string {
	if !v.Valid || v.String == "" {
		return nil
	}
	s := v.String
	return &s
}

// expectOneRow checks the affected row count of a targeted write.
func expectOneRow(res sql.Result, notMatched error) error {
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("reading affected rows: %w", err)
	}
	if n == 0 {
		return notMatched
	}
	return nil
}
