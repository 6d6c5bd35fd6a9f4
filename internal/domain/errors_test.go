package domain

import (
	"errors"
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestError_IsMatchesByCode(t *testing.T) {
	err := NotFound("user not found")

	assert.ErrorIs(t, err, ErrNotFound)
	assert.NotErrorIs(t, err, ErrConflict)

	wrapped := fmt.Errorf("stopping work: %w", err)
	assert.ErrorIs(t, wrapped, ErrNotFound)
	assert.Equal(t, CodeNotFound, CodeOf(wrapped))
	assert.Equal(t, "user not found", MessageOf(wrapped))
}

func TestCodeOf_UnclassifiedIsInternal(t *testing.T) {
	err := errors.New("disk I/O error")

	assert.Equal(t, CodeInternal, CodeOf(err))
	assert.Equal(t, "internal server error", MessageOf(err))
}

func TestInternal_HidesCauseFromMessage(t *testing.T) {
	cause := errors.New("database is locked")
	err := Internal("starting work session", cause)

	assert.ErrorIs(t, err, ErrInternal)
	assert.ErrorIs(t, err, cause)
	assert.Equal(t, "internal server error", MessageOf(err))
	assert.Contains(t, err.Error(), "database is locked")
}

func TestUser_Validate(t *testing.T) {
	tests := []struct {
		name    string
		user    User
		wantErr string
	}{
		{"valid", User{Email: "ana@example.com", FirstName: "Ana"}, ""},
		{"missing email", User{FirstName: "Ana"}, "email is required"},
		{"bad email", User{Email: "nope", FirstName: "Ana"}, "not a valid address"},
		{"missing first name", User{Email: "ana@example.com"}, "first name is required"},
		{"bad role", User{Email: "ana@example.com", FirstName: "Ana", Role: "ROOT"}, "must be ADMIN or USER"},
		{"negative hours", User{Email: "ana@example.com", FirstName: "Ana", DailyHours: -1}, "between 0 and 24"},
		{"too many hours", User{Email: "ana@example.com", FirstName: "Ana", DailyHours: 30}, "between 0 and 24"},
		{"NaN hours", User{Email: "ana@example.com", FirstName: "Ana", DailyHours: math.NaN()}, "between 0 and 24"},
		{"full day", User{Email: "ana@example.com", FirstName: "Ana", DailyHours: 24}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := tt.user
			u.Normalize()
			err := u.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorIs(t, err, ErrInvalidArgument)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestUser_NormalizeDefaultsRole(t *testing.T) {
	u := User{Email: "  Ana@Example.COM ", FirstName: " Ana ", Role: "admin"}
	u.Normalize()

	assert.Equal(t, "ana@example.com", u.Email)
	assert.Equal(t, "Ana", u.FirstName)
	assert.Equal(t, RoleAdmin, u.Role)

	blank := User{}
	blank.Normalize()
	assert.Equal(t, RoleUser, blank.Role)
}
