package http

import (
	"time"

	"github.com/tasker-app/tasker/internal/app"
	"github.com/tasker-app/tasker/internal/domain"
)

// envelope is embedded in every response body.
type envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

func ok(msg string) envelope {
	return envelope{Success: true, Message: msg}
}

type UserResponse struct {
	ID               string    `json:"id"`
	Email            string    `json:"email"`
	FirstName        string    `json:"firstName"`
	LastName         string    `json:"lastName"`
	Role             string    `json:"role"`
	DailyHours       float64   `json:"dailyHours"`
	CreatedAt        time.Time `json:"createdAt"`
	CurrentSessionID *string   `json:"currentSessionId"`
	IsWorking        bool      `json:"isWorking"`
}

func toUserResponse(u *domain.User) UserResponse {
	return UserResponse{
		ID:               u.ID,
		Email:            u.Email,
		FirstName:        u.FirstName,
		LastName:         u.LastName,
		Role:             string(u.Role),
		DailyHours:       u.DailyHours,
		CreatedAt:        u.CreatedAt,
		CurrentSessionID: u.CurrentSessionID,
		IsWorking:        u.IsWorking(),
	}
}

type SessionResponse struct {
	ID              string     `json:"id"`
	UserID          string     `json:"userId"`
	StartedAt       time.Time  `json:"startedAt"`
	EndedAt         *time.Time `json:"endedAt"`
	DurationSec     *int64     `json:"durationSec"`
	DurationMinutes *int64     `json:"durationMinutes"`
}

func toSessionResponse(s *domain.WorkSession) *SessionResponse {
	if s == nil {
		return nil
	}
	return &SessionResponse{
		ID:              s.ID,
		UserID:          s.UserID,
		StartedAt:       s.StartedAt,
		EndedAt:         s.EndedAt,
		DurationSec:     s.DurationSec,
		DurationMinutes: s.DurationMinutes(),
	}
}

func toSessionResponses(sessions []*domain.WorkSession) []*SessionResponse {
	out := make([]*SessionResponse, 0, len(sessions))
	for _, s := range sessions {
		out = append(out, toSessionResponse(s))
	}
	return out
}

type userBody struct {
	envelope
	User UserResponse `json:"user"`
}

type usersBody struct {
	envelope
	Users []UserResponse `json:"users"`
}

type sessionBody struct {
	envelope
	Session *SessionResponse `json:"session"`
}

type sessionsBody struct {
	envelope
	Sessions []*SessionResponse `json:"sessions"`
}

type todayBody struct {
	envelope
	Sessions     []*SessionResponse `json:"sessions"`
	IsWorking    bool               `json:"isWorking"`
	Active       *SessionResponse   `json:"active"`
	LastFinished *SessionResponse   `json:"lastFinished"`
	TotalSec     int64              `json:"totalSec"`
}

func toTodayBody(v *app.TodayView) todayBody {
	return todayBody{
		envelope:     ok("today's work sessions"),
		Sessions:     toSessionResponses(v.Sessions),
		IsWorking:    v.IsWorking(),
		Active:       toSessionResponse(v.Active),
		LastFinished: toSessionResponse(v.LastFinished),
		TotalSec:     v.TotalSec,
	}
}

type dailyTotalsBody struct {
	envelope
	Totals domain.DailyTotals `json:"totals"`
}

type rangeBody struct {
	envelope
	From       time.Time          `json:"from"`
	To         time.Time          `json:"to"`
	Sessions   []*SessionResponse `json:"sessions"`
	TotalSec   int64              `json:"totalSec"`
	TotalHours float64            `json:"totalHours"`
}

// CreateUserRequest is the request body for POST /api/v1/users.
type CreateUserRequest struct {
	Email      string  `json:"email"`
	FirstName  string  `json:"firstName"`
	LastName   string  `json:"lastName"`
	Role       string  `json:"role"`
	DailyHours float64 `json:"dailyHours"`
}

// DailyHoursRequest is the request body for PATCH /api/v1/users/:id/hours.
type DailyHoursRequest struct {
	DailyHours *float64 `json:"dailyHours"`
}

// RenameRequest is the request body for PATCH /api/v1/users/:id/name.
type RenameRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}
