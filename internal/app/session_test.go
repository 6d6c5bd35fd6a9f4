package app

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/tasker-app/tasker/internal/domain"
)

func TestNewTodayView_ActiveAndLastFinished(t *testing.T) {
	base := time.Date(2024, 1, 1, 8, 0, 0, 0, time.UTC)
	older := &domain.WorkSession{ID: "older", StartedAt: base}
	_ = older.Close(base.Add(time.Hour))
	newer := &domain.WorkSession{ID: "newer", StartedAt: base.Add(2 * time.Hour)}
	_ = newer.Close(base.Add(3 * time.Hour))
	open := &domain.WorkSession{ID: "open", StartedAt: base.Add(4 * time.Hour)}

	v := NewTodayView([]*domain.WorkSession{open, newer, older}, base.Add(5*time.Hour))

	assert.True(t, v.IsWorking())
	assert.Equal(t, "open", v.Active.ID)
	assert.Equal(t, "newer", v.LastFinished.ID)
	assert.Equal(t, int64(3*3600), v.TotalSec)
}

func TestNewTodayView_Empty(t *testing.T) {
	v := NewTodayView([]*domain.WorkSession{}, time.Now())

	assert.False(t, v.IsWorking())
	assert.Nil(t, v.LastFinished)
	assert.Empty(t, v.Sessions)
	assert.Zero(t, v.TotalSec)
}

func TestRangeReport_TotalHours(t *testing.T) {
	r := &RangeReport{TotalSec: 5400}
	assert.InDelta(t, 1.5, r.TotalHours(), 1e-9)
}
