package reconcile

import (
	"context"
	"fmt"
	"time"

	"github.com/tasker-app/tasker/internal/app"
	"github.com/tasker-app/tasker/internal/domain"
	"go.uber.org/zap"
)

// Source is the authoritative view of a user's sessions.
type Source interface {
	CurrentSession(ctx context.Context, userID string) (*domain.WorkSession, error)
	TodaySessions(ctx context.Context, userID string) (*app.TodayView, error)
}

// State is what a client displays about the user's work.
type State struct {
	Working   bool
	SessionID string
	StartedAt time.Time

	// TodaySec is the total of today's sessions as of ReconciledAt.
	TodaySec     int64
	TodayCount   int
	LastFinished *domain.WorkSession

	// Provisional is true when the state comes from the local cache and has
	// not been confirmed by the server yet.
	Provisional  bool
	ReconciledAt time.Time
}

// Elapsed is the live duration of the active session, for display only.
func (s State) Elapsed(now time.Time) time.Duration {
	if !s.Working {
		return 0
	}
	d := now.Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// TodayTotal is today's worked time including the live part of the active
// session since the last reconcile.
func (s State) TodayTotal(now time.Time) time.Duration {
	total := time.Duration(s.TodaySec) * time.Second
	if s.Working && !s.ReconciledAt.IsZero() && now.After(s.ReconciledAt) {
		total += now.Sub(s.ReconciledAt)
	}
	return total
}

// Reconciler rebuilds State from a Source and keeps the cache in step.
type Reconciler struct {
	source Source
	cache  *Cache
	userID string
	logger *zap.Logger
	now    func() time.Time
}

func NewReconciler(source Source, cache *Cache, userID string, logger *zap.Logger) *Reconciler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Reconciler{source: source, cache: cache, userID: userID, logger: logger, now: time.Now}
}

// Provisional returns the cached state, or an idle provisional state when
// there is no usable cache entry.
func (r *Reconciler) Provisional() State {
	entry, err := r.cache.Load()
	if err != nil {
		r.logger.Warn("session cache unreadable", zap.String("path", r.cache.Path()), zap.Error(err))
	}
	if entry == nil {
		return State{Provisional: true}
	}
	return State{
		Working:     true,
		SessionID:   entry.SessionID,
		StartedAt:   entry.StartedAt,
		Provisional: true,
	}
}

// Reconcile reads the server state. The result never depends on the cache;
// the cache is rewritten or cleared to match it.
func (r *Reconciler) Reconcile(ctx context.Context) (State, error) {
	current, err := r.source.CurrentSession(ctx, r.userID)
	if err != nil {
		return State{}, fmt.Errorf("reading current session: %w", err)
	}
	today, err := r.source.TodaySessions(ctx, r.userID)
	if err != nil {
		return State{}, fmt.Errorf("reading today's sessions: %w", err)
	}

	state := State{
		TodaySec:     today.TotalSec,
		TodayCount:   len(today.Sessions),
		LastFinished: today.LastFinished,
		ReconciledAt: r.now(),
	}
	if current != nil {
		state.Working = true
		state.SessionID = current.ID
		state.StartedAt = current.StartedAt
	}

	r.sync(current)
	return state, nil
}

// Started records a session the client just opened.
func (r *Reconciler) Started(s *domain.WorkSession) {
	r.sync(s)
}

// Stopped forgets the cached session.
func (r *Reconciler) Stopped() {
	r.sync(nil)
}

func (r *Reconciler) sync(open *domain.WorkSession) {
	if open == nil {
		if err := r.cache.Clear(); err != nil {
			r.logger.Warn("clearing session cache", zap.Error(err))
		}
		return
	}

	entry, _ := r.cache.Load()
	if entry != nil && entry.SessionID == open.ID && entry.StartedAt.Equal(open.StartedAt) {
		return
	}
	if err := r.cache.Save(open.ID, open.StartedAt); err != nil {
		r.logger.Warn("saving session cache", zap.Error(err))
	}
}

// Run reconciles every interval until ctx is done, reporting each result.
// The first reconcile happens immediately.
func (r *Reconciler) Run(ctx context.Context, interval time.Duration, report func(State, error)) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		report(r.Reconcile(ctx))
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
		}
	}
}
