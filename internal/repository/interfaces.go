package repository

import (
	"context"
	"time"

	"github.com/tasker-app/tasker/internal/domain"
)

type UserRepo interface {
	Create(ctx context.Context, u *domain.User) error
	GetByID(ctx context.Context, id string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	Update(ctx context.Context, u *domain.User) error
	Delete(ctx context.Context, id string) error
}

type SessionRepo interface {
	Create(ctx context.Context, s *domain.WorkSession) error
	GetByID(ctx context.Context, id string) (*domain.WorkSession, error)
	GetOpenByUser(ctx context.Context, userID string) (*domain.WorkSession, error)
	ListByUser(ctx context.Context, userID string) ([]*domain.WorkSession, error)
	ListByUserSince(ctx context.Context, userID string, since time.Time) ([]*domain.WorkSession, error)
	ListClosedInRange(ctx context.Context, userID string, from, to time.Time) ([]*domain.WorkSession, error)
	Close(ctx context.Context, s *domain.WorkSession) error
	Delete(ctx context.Context, id string) error
}
