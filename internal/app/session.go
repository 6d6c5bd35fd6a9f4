package app

import (
	"time"

	"github.com/tasker-app/tasker/internal/domain"
)

// TodayView is the user's sessions since local midnight, newest first.
type TodayView struct {
	Sessions     []*domain.WorkSession
	Active       *domain.WorkSession
	LastFinished *domain.WorkSession
	TotalSec     int64
}

// IsWorking reports whether one of today's sessions is still open.
func (v *TodayView) IsWorking() bool {
	return v.Active != nil
}

// RangeReport holds closed sessions inside [From, To], oldest first.
type RangeReport struct {
	From     time.Time
	To       time.Time
	Sessions []*domain.WorkSession
	TotalSec int64
}

// TotalHours returns the report total in hours.
func (r *RangeReport) TotalHours() float64 {
	return float64(r.TotalSec) / 3600
}

// NewTodayView derives the active and most recently finished sessions from a
// list already ordered newest first.
func NewTodayView(sessions []*domain.WorkSession, now time.Time) *TodayView {
	v := &TodayView{Sessions: sessions}
	for _, s := range sessions {
		if s.IsOpen() {
			if v.Active == nil {
				v.Active = s
			}
			continue
		}
		if v.LastFinished == nil {
			v.LastFinished = s
		}
	}
	v.TotalSec = domain.TotalSeconds(sessions, now)
	return v
}
