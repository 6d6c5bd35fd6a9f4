package app

import (
	"context"
	"time"

	"github.com/tasker-app/tasker/internal/domain"
)

// WorkLifecycleUseCase opens and closes work sessions.
type WorkLifecycleUseCase interface {
	StartSession(ctx context.Context, userID string) (*domain.WorkSession, error)
	StopSession(ctx context.Context, userID, sessionID string) (*domain.User, error)
	DeleteSession(ctx context.Context, sessionID string) error
}

// WorkQueryUseCase reads a user's sessions and aggregates.
type WorkQueryUseCase interface {
	CurrentSession(ctx context.Context, userID string) (*domain.WorkSession, error)
	ListSessions(ctx context.Context, userID string) ([]*domain.WorkSession, error)
	DailyTotals(ctx context.Context, userID string) (domain.DailyTotals, error)
	TodaySessions(ctx context.Context, userID string) (*TodayView, error)
	RangeTotal(ctx context.Context, userID string, from, to time.Time) (*RangeReport, error)
}
