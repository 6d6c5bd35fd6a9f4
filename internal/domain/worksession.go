package domain

import (
	"math"
	"time"
)

// WorkSession is a timed interval during which a user is recorded as working.
// A nil EndedAt means the session is still open.
type WorkSession struct {
	ID          string
	UserID      string
	StartedAt   time.Time
	EndedAt     *time.Time
	DurationSec *int64
}

// IsOpen reports whether the session has not been stopped yet.
func (s *WorkSession) IsOpen() bool {
	return s.EndedAt == nil
}

// Duration returns the persisted duration for a closed session, or the live
// duration up to now for an open one. The result is never negative.
func (s *WorkSession) Duration(now time.Time) time.Duration {
	if s.DurationSec != nil {
		if *s.DurationSec < 0 {
			return 0
		}
		return time.Duration(*s.DurationSec) * time.Second
	}
	end := now
	if s.EndedAt != nil {
		end = *s.EndedAt
	}
	d := end.Sub(s.StartedAt)
	if d < 0 {
		return 0
	}
	return d
}

// DurationMinutes returns the persisted duration rounded to whole minutes.
// Returns nil while the session is open.
func (s *WorkSession) DurationMinutes() *int64 {
	if s.DurationSec == nil {
		return nil
	}
	m := int64(math.Round(float64(*s.DurationSec) / 60))
	return &m
}

// Close stops the session at endedAt and records the elapsed whole seconds.
// Closing an already closed session is an invalid state.
func (s *WorkSession) Close(endedAt time.Time) error {
	if !s.IsOpen() {
		return InvalidState("work session is already closed")
	}
	endedAt = endedAt.UTC().Truncate(time.Second)
	sec := int64(endedAt.Sub(s.StartedAt) / time.Second)
	if sec < 0 {
		sec = 0
	}
	s.EndedAt = &endedAt
	s.DurationSec = &sec
	return nil
}
