package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/tasker-app/tasker/internal/db"
	"github.com/tasker-app/tasker/internal/domain"
	"github.com/tasker-app/tasker/internal/repository"
)

type userService struct {
	users repository.UserRepo
	uow   db.UnitOfWork
	opts  options
}

func NewUserService(users repository.UserRepo, uow db.UnitOfWork, opts ...Option) UserService {
	return &userService{users: users, uow: uow, opts: buildOptions(opts)}
}

// CreateUser validates and stores a new user. A zero DailyHours gets the
// default working day.
func (s *userService) CreateUser(ctx context.Context, u *domain.User) (created *domain.User, err error) {
	startedAt := time.Now()
	fields := map[string]any{}
	defer func() { s.opts.observe(ctx, "create-user", startedAt, fields, err) }()

	if u == nil {
		return nil, domain.InvalidArgument("user is required")
	}
	u.Normalize()
	if u.DailyHours == 0 {
		u.DailyHours = domain.DefaultDailyHours
	}
	if err = u.Validate(); err != nil {
		return nil, err
	}
	if u.ID == "" {
		u.ID = uuid.New().String()
	}
	u.CreatedAt = s.opts.now().UTC().Truncate(time.Second)
	u.CurrentSessionID = nil
	fields["user_id"] = u.ID

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteUserRepo(tx).Create(ctx, u); err != nil {
			if errors.Is(err, repository.ErrDuplicate) {
				return domain.Conflict(fmt.Sprintf("a user with email %s already exists", u.Email))
			}
			return domain.Internal("creating user", err)
		}
		return nil
	})
	if err != nil {
		err = classify(err, "creating user")
		return nil, err
	}
	return u, nil
}

func (s *userService) GetUser(ctx context.Context, id string) (*domain.User, error) {
	if id == "" {
		return nil, domain.InvalidArgument("user id is required")
	}
	u, err := s.users.GetByID(ctx, id)
	if err != nil {
		return nil, notFoundOr(err, "user", id)
	}
	return u, nil
}

func (s *userService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	users, err := s.users.List(ctx)
	if err != nil {
		return nil, domain.Internal("listing users", err)
	}
	return users, nil
}

// RemoveUser deletes the user together with all of their work sessions.
func (s *userService) RemoveUser(ctx context.Context, id string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": id}
	defer func() { s.opts.observe(ctx, "remove-user", startedAt, fields, err) }()

	if id == "" {
		return domain.InvalidArgument("user id is required")
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		if err := repository.NewSQLiteUserRepo(tx).Delete(ctx, id); err != nil {
			return notFoundOr(err, "user", id)
		}
		return nil
	})
	err = classify(err, "removing user")
	return err
}

func (s *userService) SetDailyHours(ctx context.Context, id string, hours float64) (*domain.User, error) {
	if err := domain.ValidateDailyHours(hours); err != nil {
		return nil, err
	}
	return s.update(ctx, "set-daily-hours", id, func(u *domain.User) error {
		u.DailyHours = hours
		return nil
	})
}

func (s *userService) RenameUser(ctx context.Context, id, firstName, lastName string) (*domain.User, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, domain.InvalidArgument("first name is required")
	}
	return s.update(ctx, "rename-user", id, func(u *domain.User) error {
		u.FirstName = firstName
		u.LastName = lastName
		return nil
	})
}

// update applies mutate to the stored user inside one transaction and
// returns the refreshed record.
func (s *userService) update(ctx context.Context, name, id string, mutate func(*domain.User) error) (updated *domain.User, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": id}
	defer func() { s.opts.observe(ctx, name, startedAt, fields, err) }()

	if id == "" {
		return nil, domain.InvalidArgument("user id is required")
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUsers := repository.NewSQLiteUserRepo(tx)
		u, err := txUsers.GetByID(ctx, id)
		if err != nil {
			return notFoundOr(err, "user", id)
		}
		if err := mutate(u); err != nil {
			return err
		}
		if err := txUsers.Update(ctx, u); err != nil {
			return notFoundOr(err, "user", id)
		}
		updated = u
		return nil
	})
	if err != nil {
		err = classify(err, "updating user")
		return nil, err
	}
	return updated, nil
}
