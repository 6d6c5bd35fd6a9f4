package repository

import (
	"errors"
	"strings"
)

var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicate         = errors.New("duplicate")
	ErrOpenSessionExists = errors.New("user already has an open work session")
	ErrSessionNotOpen    = errors.New("work session is not open")
)

// isUniqueViolation reports whether err is a SQLite UNIQUE constraint failure
// on the given table.column target.
func isUniqueViolation(err error, target string) bool {
	if err == nil {
		return false
	}
	msg := err.Error()
	return strings.Contains(msg, "UNIQUE constraint failed") && strings.Contains(msg, target)
}
