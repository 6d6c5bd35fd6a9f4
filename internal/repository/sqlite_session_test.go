package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tasker-app/tasker/internal/domain"
	"github.com/tasker-app/tasker/internal/testutil"
)

func seedUser(t *testing.T, repo *SQLiteUserRepo) *domain.User {
	t.Helper()
	u := testutil.NewTestUser("Ana")
	require.NoError(t, repo.Create(context.Background(), u))
	return u
}

func TestSessionRepo_CreateAndGetByID(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(db)
	u := seedUser(t, NewSQLiteUserRepo(db))
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s := testutil.NewTestSession(u.ID, testutil.WithStartedAt(start))
	require.NoError(t, repo.Create(ctx, s))

	fetched, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	assert.Equal(t, u.ID, fetched.UserID)
	assert.True(t, start.Equal(fetched.StartedAt))
	assert.True(t, fetched.IsOpen())
	assert.Nil(t, fetched.DurationSec)
}

func TestSessionRepo_GetByID_NotFound(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(db)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestSessionRepo_SecondOpenSessionRejected(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(db)
	u := seedUser(t, NewSQLiteUserRepo(db))
	ctx := context.Background()

	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(u.ID)))
	err := repo.Create(ctx, testutil.NewTestSession(u.ID))
	assert.ErrorIs(t, err, ErrOpenSessionExists)
}

func TestSessionRepo_CloseOnce(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(db)
	u := seedUser(t, NewSQLiteUserRepo(db))
	ctx := context.Background()

	start := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	s := testutil.NewTestSession(u.ID, testutil.WithStartedAt(start))
	require.NoError(t, repo.Create(ctx, s))

	_, err := repo.GetOpenByUser(ctx, u.ID)
	require.NoError(t, err)

	require.NoError(t, s.Close(start.Add(8*time.Hour)))
	require.NoError(t, repo.Close(ctx, s))

	fetched, err := repo.GetByID(ctx, s.ID)
	require.NoError(t, err)
	require.NotNil(t, fetched.DurationSec)
	assert.Equal(t, int64(8*3600), *fetched.DurationSec)
	assert.Equal(t, int64(480), *fetched.DurationMinutes())

	_, err = repo.GetOpenByUser(ctx, u.ID)
	assert.ErrorIs(t, err, ErrNotFound)

	// A stale copy cannot close the session again.
	assert.ErrorIs(t, repo.Close(ctx, s), ErrSessionNotOpen)
}

func TestSessionRepo_CloseRequiresEnd(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(db)

	err := repo.Close(context.Background(), &domain.WorkSession{ID: "s1"})
	assert.Error(t, err)
}

func TestSessionRepo_ListByUserNewestFirst(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(db)
	users := NewSQLiteUserRepo(db)
	u := seedUser(t, users)
	other := testutil.NewTestUser("Bea")
	require.NoError(t, users.Create(context.Background(), other))
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	first := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base), testutil.WithDuration(time.Hour))
	second := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base.Add(24*time.Hour)), testutil.WithDuration(time.Hour))
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(other.ID)))

	list, err := repo.ListByUser(ctx, u.ID)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, first.ID, list[1].ID)

	since, err := repo.ListByUserSince(ctx, u.ID, base.Add(12*time.Hour))
	require.NoError(t, err)
	require.Len(t, since, 1)
	assert.Equal(t, second.ID, since[0].ID)
}

func TestSessionRepo_ListClosedInRange(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(db)
	u := seedUser(t, NewSQLiteUserRepo(db))
	ctx := context.Background()

	base := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	inside := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base), testutil.WithDuration(2*time.Hour))
	endsLate := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base.Add(20*time.Hour)), testutil.WithDuration(6*time.Hour))
	startsEarly := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base.Add(-2*time.Hour)), testutil.WithDuration(time.Hour))
	open := testutil.NewTestSession(u.ID, testutil.WithStartedAt(base.Add(4*time.Hour)))
	for _, s := range []*domain.WorkSession{inside, endsLate, startsEarly, open} {
		require.NoError(t, repo.Create(ctx, s))
	}

	from := base.Add(-time.Hour)
	to := base.Add(24 * time.Hour)
	list, err := repo.ListClosedInRange(ctx, u.ID, from, to)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, inside.ID, list[0].ID)

	// Bounds are inclusive on both ends.
	exact, err := repo.ListClosedInRange(ctx, u.ID, base, base.Add(2*time.Hour))
	require.NoError(t, err)
	require.Len(t, exact, 1)

	// A start just before a sub-second lower bound is outside the range.
	later, err := repo.ListClosedInRange(ctx, u.ID, base.Add(500*time.Millisecond), to)
	require.NoError(t, err)
	assert.Empty(t, later)

	since, err := repo.ListByUserSince(ctx, u.ID, base.Add(4*time.Hour+time.Nanosecond))
	require.NoError(t, err)
	for _, s := range since {
		assert.NotEqual(t, open.ID, s.ID)
	}
}

func TestFormatLowerBound(t *testing.T) {
	whole := time.Date(2024, 1, 1, 9, 0, 0, 0, time.UTC)
	assert.Equal(t, "2024-01-01T09:00:00Z", formatLowerBound(whole))
	assert.Equal(t, "2024-01-01T09:00:01Z", formatLowerBound(whole.Add(time.Nanosecond)))
	assert.Equal(t, "2024-01-01T09:00:01Z", formatLowerBound(whole.Add(999*time.Millisecond)))
	assert.Equal(t, "2024-01-01T09:00:00Z", formatLowerBound(whole.In(time.FixedZone("UTC-2", -2*3600))))
}

func TestSessionRepo_Delete(t *testing.T) {
	db := testutil.NewTestDB(t)
	repo := NewSQLiteSessionRepo(db)
	u := seedUser(t, NewSQLiteUserRepo(db))
	ctx := context.Background()

	s := testutil.NewTestSession(u.ID)
	require.NoError(t, repo.Create(ctx, s))
	require.NoError(t, repo.Delete(ctx, s.ID))

	_, err := repo.GetByID(ctx, s.ID)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, repo.Delete(ctx, s.ID), ErrNotFound)

	// The open slot is free again.
	require.NoError(t, repo.Create(ctx, testutil.NewTestSession(u.ID)))
}
