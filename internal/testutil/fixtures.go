package testutil

import (
	"fmt"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/tasker-app/tasker/internal/domain"
)

var testEmailCounter atomic.Int64

// User options
type UserOption func(*domain.User)

func WithEmail(email string) UserOption {
	return func(u *domain.User) {
		u.Email = email
	}
}

func WithRole(r domain.Role) UserOption {
	return func(u *domain.User) {
		u.Role = r
	}
}

func WithDailyHours(h float64) UserOption {
	return func(u *domain.User) {
		u.DailyHours = h
	}
}

func WithLastName(name string) UserOption {
	return func(u *domain.User) {
		u.LastName = name
	}
}

func defaultEmail(name string) string {
	n := testEmailCounter.Add(1)
	return fmt.Sprintf("%s.%02d@example.com", strings.ToLower(strings.ReplaceAll(name, " ", ".")), n)
}

func NewTestUser(firstName string, opts ...UserOption) *domain.User {
	u := &domain.User{
		ID:         uuid.New().String(),
		Email:      defaultEmail(firstName),
		FirstName:  firstName,
		Role:       domain.RoleUser,
		DailyHours: domain.DefaultDailyHours,
		CreatedAt:  time.Now().UTC().Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// WorkSession options
type SessionOption func(*domain.WorkSession)

func WithStartedAt(t time.Time) SessionOption {
	return func(s *domain.WorkSession) {
		s.StartedAt = t.UTC().Truncate(time.Second)
	}
}

// WithDuration closes the session d after its start.
func WithDuration(d time.Duration) SessionOption {
	return func(s *domain.WorkSession) {
		s.EndedAt = nil
		s.DurationSec = nil
		if err := s.Close(s.StartedAt.Add(d)); err != nil {
			panic(err)
		}
	}
}

// NewTestSession returns an open session started an hour ago. Apply
// WithStartedAt before WithDuration when both are used.
func NewTestSession(userID string, opts ...SessionOption) *domain.WorkSession {
	s := &domain.WorkSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartedAt: time.Now().UTC().Add(-time.Hour).Truncate(time.Second),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}
