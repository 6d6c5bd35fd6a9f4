package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasker-app/tasker/internal/domain"
	"github.com/tasker-app/tasker/internal/testutil"
)

func TestStartSession_OpensSession(t *testing.T) {
	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(t, start)
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	s, err := env.svc.StartSession(ctx, u.ID)
	require.NoError(t, err)
	assert.True(t, s.IsOpen())
	assert.True(t, start.Equal(s.StartedAt))

	fetched, err := env.users.GetByID(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.CurrentSessionID)
	assert.Equal(t, s.ID, *fetched.CurrentSessionID)
}

func TestStartSession_UnknownUser(t *testing.T) {
	env := newTestEnv(t, time.Now())

	_, err := env.svc.StartSession(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestStartSession_EmptyUserID(t *testing.T) {
	env := newTestEnv(t, time.Now())

	_, err := env.svc.StartSession(context.Background(), "")
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)
}

func TestStartSession_SecondStartConflicts(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	first, err := env.svc.StartSession(ctx, u.ID)
	require.NoError(t, err)

	_, err = env.svc.StartSession(ctx, u.ID)
	assert.ErrorIs(t, err, domain.ErrConflict)

	list, err := env.sessions.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 1, "a rejected start must not create a session")
	assert.Equal(t, first.ID, list[0].ID)
}

func TestStopSession_FullDay(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	s, err := env.svc.StartSession(ctx, u.ID)
	require.NoError(t, err)

	env.clock.Set(time.Date(2024, 1, 1, 17, 0, 0, 0, time.UTC))
	user, err := env.svc.StopSession(ctx, u.ID, s.ID)
	require.NoError(t, err)
	assert.Nil(t, user.CurrentSessionID)
	assert.False(t, user.IsWorking())

	stored, err := env.sessions.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, stored.DurationMinutes())
	assert.Equal(t, int64(480), *stored.DurationMinutes())

	totals, err := env.svc.DailyTotals(ctx, u.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.DailyTotals{"2024-01-01": 8.0}, totals)
}

func TestStopSession_ImmediateStopIsZero(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	s, err := env.svc.StartSession(ctx, u.ID)
	require.NoError(t, err)
	_, err = env.svc.StopSession(ctx, u.ID, s.ID)
	require.NoError(t, err)

	stored, err := env.sessions.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), *stored.DurationMinutes())
}

func TestStopSession_TwiceFails(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC))
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	s, err := env.svc.StartSession(ctx, u.ID)
	require.NoError(t, err)
	env.clock.Advance(time.Hour)
	_, err = env.svc.StopSession(ctx, u.ID, s.ID)
	require.NoError(t, err)

	env.clock.Advance(time.Hour)
	_, err = env.svc.StopSession(ctx, u.ID, s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	stored, err := env.sessions.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, int64(3600), *stored.DurationSec, "second stop must not move the end")
}

func TestStopSession_OtherUsersSession(t *testing.T) {
	env := newTestEnv(t, time.Now())
	ana := env.seedUser(t, "Ana")
	bea := env.seedUser(t, "Bea")
	ctx := context.Background()

	s, err := env.svc.StartSession(ctx, ana.ID)
	require.NoError(t, err)

	_, err = env.svc.StopSession(ctx, bea.ID, s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	current, err := env.svc.CurrentSession(ctx, ana.ID)
	require.NoError(t, err)
	require.NotNil(t, current)
	assert.Equal(t, s.ID, current.ID)
}

func TestStopSession_NotFound(t *testing.T) {
	env := newTestEnv(t, time.Now())
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	_, err := env.svc.StopSession(ctx, u.ID, "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	_, err = env.svc.StopSession(ctx, "ghost", "missing")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDeleteSession_ActiveIsRejected(t *testing.T) {
	env := newTestEnv(t, time.Now())
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	s, err := env.svc.StartSession(ctx, u.ID)
	require.NoError(t, err)

	err = env.svc.DeleteSession(ctx, s.ID)
	assert.ErrorIs(t, err, domain.ErrInvalidState)

	current, err := env.svc.CurrentSession(ctx, u.ID)
	require.NoError(t, err)
	require.NotNil(t, current, "session must still be active")
	assert.Equal(t, s.ID, current.ID)
}

func TestDeleteSession_Closed(t *testing.T) {
	env := newTestEnv(t, time.Now())
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	closed := testutil.NewTestSession(u.ID, testutil.WithDuration(time.Hour))
	require.NoError(t, env.sessions.Create(ctx, closed))

	require.NoError(t, env.svc.DeleteSession(ctx, closed.ID))
	assert.ErrorIs(t, env.svc.DeleteSession(ctx, closed.ID), domain.ErrNotFound)
}

func TestCurrentSession_Idle(t *testing.T) {
	env := newTestEnv(t, time.Now())
	u := env.seedUser(t, "Ana")

	current, err := env.svc.CurrentSession(context.Background(), u.ID)
	require.NoError(t, err)
	assert.Nil(t, current)

	_, err = env.svc.CurrentSession(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDailyTotals_TwoSessionsSameDay(t *testing.T) {
	day := time.Date(2024, 3, 5, 8, 0, 0, 0, time.UTC)
	env := newTestEnv(t, day.Add(24*time.Hour))
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	require.NoError(t, env.sessions.Create(ctx, testutil.NewTestSession(u.ID,
		testutil.WithStartedAt(day), testutil.WithDuration(120*time.Minute))))
	require.NoError(t, env.sessions.Create(ctx, testutil.NewTestSession(u.ID,
		testutil.WithStartedAt(day.Add(4*time.Hour)), testutil.WithDuration(60*time.Minute))))

	totals, err := env.svc.DailyTotals(ctx, u.ID)
	require.NoError(t, err)
	assert.InDelta(t, 3.0, totals["2024-03-05"], 1e-9)
}

func TestDailyTotals_UnknownUser(t *testing.T) {
	env := newTestEnv(t, time.Now())

	_, err := env.svc.DailyTotals(context.Background(), "ghost")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestNoSessions_EmptyTodayAndTotals(t *testing.T) {
	env := newTestEnv(t, time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC))
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	today, err := env.svc.TodaySessions(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, today.Sessions)
	assert.False(t, today.IsWorking())

	totals, err := env.svc.DailyTotals(ctx, u.ID)
	require.NoError(t, err)
	assert.Empty(t, totals)
}

func TestTodaySessions_FiltersAndOrders(t *testing.T) {
	now := time.Date(2024, 1, 2, 15, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now)
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	yesterday := testutil.NewTestSession(u.ID,
		testutil.WithStartedAt(now.Add(-20*time.Hour)), testutil.WithDuration(2*time.Hour))
	morning := testutil.NewTestSession(u.ID,
		testutil.WithStartedAt(time.Date(2024, 1, 2, 8, 0, 0, 0, time.UTC)), testutil.WithDuration(3*time.Hour))
	noon := testutil.NewTestSession(u.ID,
		testutil.WithStartedAt(time.Date(2024, 1, 2, 12, 0, 0, 0, time.UTC)), testutil.WithDuration(time.Hour))
	active := testutil.NewTestSession(u.ID,
		testutil.WithStartedAt(time.Date(2024, 1, 2, 14, 0, 0, 0, time.UTC)))
	for _, s := range []*domain.WorkSession{yesterday, morning, noon, active} {
		require.NoError(t, env.sessions.Create(ctx, s))
	}

	today, err := env.svc.TodaySessions(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, today.Sessions, 3)
	assert.Equal(t, active.ID, today.Sessions[0].ID)
	assert.Equal(t, noon.ID, today.Sessions[1].ID)
	assert.Equal(t, morning.ID, today.Sessions[2].ID)
	assert.Equal(t, active.ID, today.Active.ID)
	assert.Equal(t, noon.ID, today.LastFinished.ID)
	assert.Equal(t, int64(5*3600), today.TotalSec)
}

func TestTodaySessions_UsesLocation(t *testing.T) {
	loc := time.FixedZone("UTC-5", -5*3600)
	// 03:00 UTC on Jun 1 is 22:00 on May 31 local.
	now := time.Date(2024, 6, 1, 3, 0, 0, 0, time.UTC)
	env := newTestEnv(t, now, WithLocation(loc))
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	lateEvening := testutil.NewTestSession(u.ID,
		testutil.WithStartedAt(time.Date(2024, 5, 31, 20, 0, 0, 0, time.UTC)), testutil.WithDuration(time.Hour))
	require.NoError(t, env.sessions.Create(ctx, lateEvening))

	today, err := env.svc.TodaySessions(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, today.Sessions, 1, "15:00 local on May 31 is still today")
}

func TestRangeTotal(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(t, base.Add(72*time.Hour))
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	a := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base), testutil.WithDuration(2*time.Hour))
	b := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base.Add(24*time.Hour)), testutil.WithDuration(90*time.Minute))
	outside := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base.Add(48*time.Hour)), testutil.WithDuration(time.Hour))
	open := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base.Add(70*time.Hour)))
	for _, s := range []*domain.WorkSession{a, b, outside, open} {
		require.NoError(t, env.sessions.Create(ctx, s))
	}

	report, err := env.svc.RangeTotal(ctx, u.ID, base, base.Add(36*time.Hour))
	require.NoError(t, err)
	require.Len(t, report.Sessions, 2)
	assert.Equal(t, a.ID, report.Sessions[0].ID)
	assert.Equal(t, b.ID, report.Sessions[1].ID)
	assert.Equal(t, int64(2*3600+90*60), report.TotalSec)

	all, err := env.svc.RangeTotal(ctx, u.ID, base, base.Add(100*time.Hour))
	require.NoError(t, err)
	assert.Len(t, all.Sessions, 3, "open sessions are never part of a range")
}

func TestRangeTotal_InvalidRange(t *testing.T) {
	env := newTestEnv(t, time.Now())
	ctx := context.Background()
	now := time.Now()

	_, err := env.svc.RangeTotal(ctx, "ghost", now, now.Add(-time.Hour))
	assert.ErrorIs(t, err, domain.ErrInvalidArgument, "range is checked before the user lookup")

	_, err = env.svc.RangeTotal(ctx, "ghost", time.Time{}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidArgument)

	_, err = env.svc.RangeTotal(ctx, "ghost", now.Add(-time.Hour), now)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestListSessions_NewestFirst(t *testing.T) {
	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	env := newTestEnv(t, base.Add(48*time.Hour))
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	old := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base), testutil.WithDuration(time.Hour))
	recent := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base.Add(24*time.Hour)), testutil.WithDuration(time.Hour))
	require.NoError(t, env.sessions.Create(ctx, old))
	require.NoError(t, env.sessions.Create(ctx, recent))

	list, err := env.svc.ListSessions(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, recent.ID, list[0].ID)
}

func TestSessionService_ReportsUseCases(t *testing.T) {
	obs := &recordingObserver{}
	env := newTestEnv(t, time.Now(), WithObserver(obs))
	u := env.seedUser(t, "Ana")
	ctx := context.Background()

	s, err := env.svc.StartSession(ctx, u.ID)
	require.NoError(t, err)
	ev := obs.last()
	assert.Equal(t, "start-session", ev.Name)
	assert.True(t, ev.Success)
	assert.Equal(t, s.ID, ev.Fields["session_id"])

	_, err = env.svc.StartSession(ctx, u.ID)
	require.Error(t, err)
	ev = obs.last()
	assert.False(t, ev.Success)
	assert.Equal(t, "conflict", ev.Outcome())
}
