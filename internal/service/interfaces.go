package service

import (
	"context"

	"github.com/tasker-app/tasker/internal/app"
	"github.com/tasker-app/tasker/internal/domain"
)

// SessionService is the work-session accounting core.
type SessionService interface {
	app.WorkLifecycleUseCase
	app.WorkQueryUseCase
}

type UserService interface {
	CreateUser(ctx context.Context, u *domain.User) (*domain.User, error)
	GetUser(ctx context.Context, id string) (*domain.User, error)
	ListUsers(ctx context.Context) ([]*domain.User, error)
	RemoveUser(ctx context.Context, id string) error
	SetDailyHours(ctx context.Context, id string, hours float64) (*domain.User, error)
	RenameUser(ctx context.Context, id, firstName, lastName string) (*domain.User, error)
}
