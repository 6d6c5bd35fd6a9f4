package app

import (
	"fmt"
	"strings"
	"time"

	"github.com/tasker-app/tasker/internal/domain"
)

// ParseRange parses both bounds of a range report. Each bound is an RFC3339
// instant or a yyyy-mm-dd day in loc. A day given as the upper bound covers
// the whole day, so it resolves to the following midnight. Reversed bounds
// are rejected as written, before that expansion.
func ParseRange(from, to string, loc *time.Location) (time.Time, time.Time, error) {
	fromT, _, err := parseBound("from", from, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	toT, toIsDay, err := parseBound("to", to, loc)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if toT.Before(fromT) {
		return time.Time{}, time.Time{}, domain.InvalidArgument(
			fmt.Sprintf("range end %s is before range start %s", strings.TrimSpace(to), strings.TrimSpace(from)))
	}
	if toIsDay {
		toT = toT.AddDate(0, 0, 1)
	}
	return fromT.UTC(), toT.UTC(), nil
}

// parseBound returns the instant named by s and whether s was a bare day.
// Day results stay in loc so the caller can add calendar days.
func parseBound(name, s string, loc *time.Location) (time.Time, bool, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, false, domain.InvalidArgument(fmt.Sprintf("%s is required", name))
	}
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t.UTC(), false, nil
	}
	if loc == nil {
		loc = time.Local
	}
	day, err := time.ParseInLocation(domain.DayLayout, s, loc)
	if err != nil {
		return time.Time{}, false, domain.InvalidArgument(
			fmt.Sprintf("%s: %q is neither RFC3339 nor yyyy-mm-dd", name, s))
	}
	return day, true, nil
}
