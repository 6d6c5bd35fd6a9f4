package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/tasker-app/tasker/internal/app"
	"github.com/tasker-app/tasker/internal/domain"
)

// FormatSessionTable lists sessions with local start and end times. Open
// sessions show their live duration up to now.
func FormatSessionTable(sessions []*domain.WorkSession, loc *time.Location, now time.Time) string {
	if len(sessions) == 0 {
		return Dim("No work sessions.") + "\n"
	}
	rows := make([][]string, 0, len(sessions))
	for _, s := range sessions {
		end := StyleGreen.Render("running")
		if s.EndedAt != nil {
			end = Clock(*s.EndedAt, loc)
		}
		rows = append(rows, []string{
			TruncID(s.ID),
			domain.DayKey(s.StartedAt, loc),
			Clock(s.StartedAt, loc),
			end,
			FormatDuration(s.Duration(now)),
		})
	}
	total := domain.TotalSeconds(sessions, now)
	return RenderTable(
		[]string{"ID", "DAY", "START", "END", "WORKED"},
		rows,
		AlignRight(4),
		WithFooter("", "", "", "total", FormatSeconds(total)),
	)
}

// FormatSession renders a single session as key/value lines.
func FormatSession(s *domain.WorkSession, loc *time.Location, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("Session"), s.ID)
	fmt.Fprintf(&b, "%s  %s %s\n", Dim("Started"), domain.DayKey(s.StartedAt, loc), Clock(s.StartedAt, loc))
	if s.IsOpen() {
		fmt.Fprintf(&b, "%s  %s\n", Dim("Running"), FormatDuration(s.Duration(now)))
		return b.String()
	}
	fmt.Fprintf(&b, "%s  %s %s\n", Dim("Ended  "), domain.DayKey(*s.EndedAt, loc), Clock(*s.EndedAt, loc))
	fmt.Fprintf(&b, "%s  %d min\n", Dim("Worked "), *s.DurationMinutes())
	return b.String()
}

// FormatToday renders today's sessions in a box, with progress against the
// user's contracted hours.
func FormatToday(view *app.TodayView, u *domain.User, loc *time.Location, now time.Time) string {
	var b strings.Builder

	b.WriteString(WorkingBadge(view.IsWorking()))
	if view.Active != nil {
		fmt.Fprintf(&b, "  %s %s", Dim("since"), Clock(view.Active.StartedAt, loc))
	}
	b.WriteString("\n")

	target := time.Duration(u.DailyHours * float64(time.Hour))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Today"), RenderProgress(time.Duration(view.TotalSec)*time.Second, target, 20))
	if view.LastFinished != nil {
		fmt.Fprintf(&b, "%s  %s, %s\n", Dim("Last "),
			FormatDuration(view.LastFinished.Duration(now)),
			HumanTimestamp(*view.LastFinished.EndedAt, now.In(loc)))
	}

	if len(view.Sessions) > 0 {
		b.WriteString("\n")
		b.WriteString(FormatSessionTable(view.Sessions, loc, now))
	}
	return RenderBox(u.FullName()+" / "+domain.DayKey(now, loc), strings.TrimRight(b.String(), "\n"))
}

// FormatDailyTotals renders one row per worked day, oldest first.
func FormatDailyTotals(totals domain.DailyTotals, dailyHours float64) string {
	days := totals.Days()
	if len(days) == 0 {
		return Dim("No work recorded.") + "\n"
	}
	target := time.Duration(dailyHours * float64(time.Hour))
	rows := make([][]string, 0, len(days))
	var sum float64
	for _, day := range days {
		h := totals[day]
		sum += h
		worked := time.Duration(h * float64(time.Hour))
		rows = append(rows, []string{day, FormatHours(h), RenderProgress(worked, target, 16)})
	}
	return RenderTable(
		[]string{"DAY", "HOURS", "TARGET"},
		rows,
		AlignRight(1),
		WithFooter("total", FormatHours(sum), ""),
	)
}

// FormatRange renders a range report with the closed sessions it counted.
func FormatRange(r *app.RangeReport, loc *time.Location) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", Header("Range report"))
	fmt.Fprintf(&b, "%s %s  %s %s\n",
		Dim("from"), r.From.In(loc).Format(time.RFC3339),
		Dim("to"), r.To.In(loc).Format(time.RFC3339))
	fmt.Fprintf(&b, "%s %s (%s, %d sessions)\n\n",
		Dim("total"), Bold(FormatHours(r.TotalHours())), FormatSeconds(r.TotalSec), len(r.Sessions))
	if len(r.Sessions) > 0 {
		b.WriteString(FormatSessionTable(r.Sessions, loc, r.To))
	}
	return b.String()
}
