package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/tasker-app/tasker/internal/app"
	"github.com/tasker-app/tasker/internal/db"
	"github.com/tasker-app/tasker/internal/domain"
	"github.com/tasker-app/tasker/internal/repository"
)

type sessionService struct {
	users    repository.UserRepo
	sessions repository.SessionRepo
	uow      db.UnitOfWork
	opts     options
}

func NewSessionService(
	users repository.UserRepo,
	sessions repository.SessionRepo,
	uow db.UnitOfWork,
	opts ...Option,
) SessionService {
	return &sessionService{
		users:    users,
		sessions: sessions,
		uow:      uow,
		opts:     buildOptions(opts),
	}
}

func (s *sessionService) now() time.Time {
	return s.opts.now().UTC().Truncate(time.Second)
}

// StartSession opens a new session for the user. A user with an open session
// is rejected with Conflict, including when a concurrent start wins the race.
func (s *sessionService) StartSession(ctx context.Context, userID string) (session *domain.WorkSession, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer func() { s.opts.observe(ctx, "start-session", startedAt, fields, err) }()

	if userID == "" {
		return nil, domain.InvalidArgument("user id is required")
	}

	created := &domain.WorkSession{
		ID:        uuid.New().String(),
		UserID:    userID,
		StartedAt: s.now(),
	}
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUsers := repository.NewSQLiteUserRepo(tx)
		txSessions := repository.NewSQLiteSessionRepo(tx)

		if _, err := txUsers.GetByID(ctx, userID); err != nil {
			return notFoundOr(err, "user", userID)
		}

		open, err := txSessions.GetOpenByUser(ctx, userID)
		switch {
		case err == nil:
			return domain.Conflict(fmt.Sprintf("user %s already has an active work session %s", userID, open.ID))
		case !errors.Is(err, repository.ErrNotFound):
			return domain.Internal("looking up active work session", err)
		}

		if err := txSessions.Create(ctx, created); err != nil {
			if errors.Is(err, repository.ErrOpenSessionExists) {
				return domain.Conflict(fmt.Sprintf("user %s already has an active work session", userID))
			}
			return domain.Internal("creating work session", err)
		}
		return nil
	})
	if err != nil {
		err = classify(err, "starting work session")
		return nil, err
	}

	fields["session_id"] = created.ID
	return created, nil
}

// StopSession closes the user's active session and returns the refreshed
// user, whose CurrentSessionID is then nil.
func (s *sessionService) StopSession(ctx context.Context, userID, sessionID string) (user *domain.User, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID, "session_id": sessionID}
	defer func() { s.opts.observe(ctx, "stop-session", startedAt, fields, err) }()

	if userID == "" || sessionID == "" {
		return nil, domain.InvalidArgument("user id and session id are required")
	}

	endedAt := s.now()
	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txUsers := repository.NewSQLiteUserRepo(tx)
		txSessions := repository.NewSQLiteSessionRepo(tx)

		if _, err := txUsers.GetByID(ctx, userID); err != nil {
			return notFoundOr(err, "user", userID)
		}

		session, err := txSessions.GetByID(ctx, sessionID)
		if err != nil {
			return notFoundOr(err, "work session", sessionID)
		}
		if session.UserID != userID {
			return domain.InvalidState(fmt.Sprintf("work session %s is not the active session of user %s", sessionID, userID))
		}
		if err := session.Close(endedAt); err != nil {
			return err
		}

		if err := txSessions.Close(ctx, session); err != nil {
			if errors.Is(err, repository.ErrSessionNotOpen) {
				return domain.InvalidState("work session is already closed")
			}
			return domain.Internal("closing work session", err)
		}
		fields["duration_sec"] = *session.DurationSec

		user, err = txUsers.GetByID(ctx, userID)
		if err != nil {
			return notFoundOr(err, "user", userID)
		}
		return nil
	})
	if err != nil {
		err = classify(err, "stopping work session")
		return nil, err
	}
	return user, nil
}

// DeleteSession removes a closed session. The active session cannot be deleted.
func (s *sessionService) DeleteSession(ctx context.Context, sessionID string) (err error) {
	startedAt := time.Now()
	fields := map[string]any{"session_id": sessionID}
	defer func() { s.opts.observe(ctx, "delete-session", startedAt, fields, err) }()

	if sessionID == "" {
		return domain.InvalidArgument("session id is required")
	}

	err = s.uow.WithinTx(ctx, func(ctx context.Context, tx db.DBTX) error {
		txSessions := repository.NewSQLiteSessionRepo(tx)

		session, err := txSessions.GetByID(ctx, sessionID)
		if err != nil {
			return notFoundOr(err, "work session", sessionID)
		}
		if session.IsOpen() {
			return domain.InvalidState("cannot delete an active work session")
		}
		if err := txSessions.Delete(ctx, sessionID); err != nil {
			return notFoundOr(err, "work session", sessionID)
		}
		return nil
	})
	err = classify(err, "deleting work session")
	return err
}

// CurrentSession returns the user's open session, or nil when idle.
func (s *sessionService) CurrentSession(ctx context.Context, userID string) (*domain.WorkSession, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	open, err := s.sessions.GetOpenByUser(ctx, userID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, nil
		}
		return nil, domain.Internal("looking up active work session", err)
	}
	return open, nil
}

func (s *sessionService) ListSessions(ctx context.Context, userID string) ([]*domain.WorkSession, error) {
	if err := s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		return nil, domain.Internal("listing work sessions", err)
	}
	return sessions, nil
}

// DailyTotals buckets all of the user's sessions by the calendar day they
// started on, in the configured location.
func (s *sessionService) DailyTotals(ctx context.Context, userID string) (totals domain.DailyTotals, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer func() { s.opts.observe(ctx, "daily-totals", startedAt, fields, err) }()

	if err = s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	sessions, err := s.sessions.ListByUser(ctx, userID)
	if err != nil {
		err = domain.Internal("listing work sessions", err)
		return nil, err
	}
	totals = domain.ComputeDailyTotals(sessions, s.opts.now(), s.opts.loc)
	fields["days"] = len(totals)
	return totals, nil
}

// TodaySessions returns the sessions started since local midnight.
func (s *sessionService) TodaySessions(ctx context.Context, userID string) (view *app.TodayView, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer func() { s.opts.observe(ctx, "today-sessions", startedAt, fields, err) }()

	if err = s.requireUser(ctx, userID); err != nil {
		return nil, err
	}
	now := s.opts.now()
	sessions, err := s.sessions.ListByUserSince(ctx, userID, domain.StartOfDay(now, s.opts.loc))
	if err != nil {
		err = domain.Internal("listing today's work sessions", err)
		return nil, err
	}
	view = app.NewTodayView(sessions, now)
	fields["sessions"] = len(sessions)
	return view, nil
}

// RangeTotal sums the closed sessions that lie entirely inside [from, to].
func (s *sessionService) RangeTotal(ctx context.Context, userID string, from, to time.Time) (report *app.RangeReport, err error) {
	startedAt := time.Now()
	fields := map[string]any{"user_id": userID}
	defer func() { s.opts.observe(ctx, "range-total", startedAt, fields, err) }()

	if from.IsZero() || to.IsZero() {
		return nil, domain.InvalidArgument("both from and to are required")
	}
	if to.Before(from) {
		return nil, domain.InvalidArgument("to must not be before from")
	}
	if err = s.requireUser(ctx, userID); err != nil {
		return nil, err
	}

	sessions, err := s.sessions.ListClosedInRange(ctx, userID, from, to)
	if err != nil {
		err = domain.Internal("listing work sessions in range", err)
		return nil, err
	}
	report = &app.RangeReport{
		From:     from,
		To:       to,
		Sessions: sessions,
		TotalSec: domain.TotalSeconds(sessions, s.opts.now()),
	}
	fields["sessions"] = len(sessions)
	return report, nil
}

func (s *sessionService) requireUser(ctx context.Context, userID string) error {
	if userID == "" {
		return domain.InvalidArgument("user id is required")
	}
	if _, err := s.users.GetByID(ctx, userID); err != nil {
		return notFoundOr(err, "user", userID)
	}
	return nil
}
