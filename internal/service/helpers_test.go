package service

import (
	"context"
	"database/sql"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"github.com/tasker-app/tasker/internal/domain"
	"github.com/tasker-app/tasker/internal/repository"
	"github.com/tasker-app/tasker/internal/testutil"
)

// fakeClock is a settable time source for deterministic durations.
type fakeClock struct {
	mu sync.Mutex
	t  time.Time
}

func newFakeClock(t time.Time) *fakeClock {
	return &fakeClock{t: t}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.t
}

func (c *fakeClock) Set(t time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = t
}

func (c *fakeClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.t = c.t.Add(d)
}

// recordingObserver keeps every event it receives.
type recordingObserver struct {
	mu     sync.Mutex
	events []UseCaseEvent
}

func (o *recordingObserver) ObserveUseCase(_ context.Context, e UseCaseEvent) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.events = append(o.events, e)
}

func (o *recordingObserver) last() UseCaseEvent {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.events[len(o.events)-1]
}

type testEnv struct {
	db       *sql.DB
	users    *repository.SQLiteUserRepo
	sessions *repository.SQLiteSessionRepo
	clock    *fakeClock
	svc      SessionService
	userSvc  UserService
}

func newTestEnv(t *testing.T, start time.Time, opts ...Option) *testEnv {
	t.Helper()
	database := testutil.NewTestDB(t)
	return newEnvOn(t, database, start, opts...)
}

func newEnvOn(t *testing.T, database *sql.DB, start time.Time, opts ...Option) *testEnv {
	t.Helper()
	clock := newFakeClock(start)
	users := repository.NewSQLiteUserRepo(database)
	sessions := repository.NewSQLiteSessionRepo(database)
	uow := testutil.NewTestUoW(database)

	all := append([]Option{WithClock(clock.Now), WithLocation(time.UTC)}, opts...)
	return &testEnv{
		db:       database,
		users:    users,
		sessions: sessions,
		clock:    clock,
		svc:      NewSessionService(users, sessions, uow, all...),
		userSvc:  NewUserService(users, uow, all...),
	}
}

func (e *testEnv) seedUser(t *testing.T, name string) *domain.User {
	t.Helper()
	u := testutil.NewTestUser(name)
	require.NoError(t, e.users.Create(context.Background(), u))
	return u
}
