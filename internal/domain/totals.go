package domain

import (
	"sort"
	"time"
)

// DayLayout is the calendar-day key format used by daily totals.
const DayLayout = "2006-01-02"

// DailyTotals maps a calendar day (DayLayout) to worked hours.
// Days without sessions are absent.
type DailyTotals map[string]float64

// DayKey returns the calendar day of t in loc.
func DayKey(t time.Time, loc *time.Location) string {
	if loc == nil {
		loc = time.Local
	}
	return t.In(loc).Format(DayLayout)
}

// StartOfDay returns local midnight of the day containing t.
func StartOfDay(t time.Time, loc *time.Location) time.Time {
	if loc == nil {
		loc = time.Local
	}
	lt := t.In(loc)
	return time.Date(lt.Year(), lt.Month(), lt.Day(), 0, 0, 0, 0, loc)
}

// ComputeDailyTotals sums session durations per start day. A session that
// crosses midnight counts entirely toward the day it started. Open sessions
// contribute their live duration up to now.
func ComputeDailyTotals(sessions []*WorkSession, now time.Time, loc *time.Location) DailyTotals {
	secs := make(map[string]int64)
	for _, s := range sessions {
		key := DayKey(s.StartedAt, loc)
		secs[key] += int64(s.Duration(now) / time.Second)
	}

	totals := make(DailyTotals, len(secs))
	for day, sec := range secs {
		totals[day] = float64(sec) / 3600
	}
	return totals
}

// Days returns the keys of t in ascending order.
func (t DailyTotals) Days() []string {
	days := make([]string, 0, len(t))
	for d := range t {
		days = append(days, d)
	}
	sort.Strings(days)
	return days
}

// TotalSeconds sums the durations of sessions at now.
func TotalSeconds(sessions []*WorkSession, now time.Time) int64 {
	var total int64
	for _, s := range sessions {
		total += int64(s.Duration(now) / time.Second)
	}
	return total
}
