package formatter

import (
	"fmt"
	"strings"
	"time"

	"github.com/tasker-app/tasker/internal/domain"
)

// FormatUserTable lists users with their working state.
func FormatUserTable(users []*domain.User) string {
	if len(users) == 0 {
		return Dim("No users.") + "\n"
	}
	rows := make([][]string, 0, len(users))
	for _, u := range users {
		rows = append(rows, []string{
			TruncID(u.ID),
			u.FullName(),
			u.Email,
			RoleBadge(string(u.Role)),
			FormatHours(u.DailyHours),
			WorkingBadge(u.IsWorking()),
		})
	}
	return RenderTable([]string{"ID", "NAME", "EMAIL", "ROLE", "DAY", "STATUS"}, rows, AlignRight(4))
}

// FormatUser renders a user profile in a box.
func FormatUser(u *domain.User, now time.Time) string {
	var b strings.Builder
	fmt.Fprintf(&b, "%s  %s\n", Dim("ID     "), u.ID)
	fmt.Fprintf(&b, "%s  %s\n", Dim("Email  "), u.Email)
	fmt.Fprintf(&b, "%s  %s\n", Dim("Role   "), RoleBadge(string(u.Role)))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Day    "), FormatHours(u.DailyHours))
	fmt.Fprintf(&b, "%s  %s\n", Dim("Joined "), HumanDate(u.CreatedAt, now))
	fmt.Fprintf(&b, "%s  %s", Dim("Status "), WorkingBadge(u.IsWorking()))
	if u.CurrentSessionID != nil {
		fmt.Fprintf(&b, " %s", TruncID(*u.CurrentSessionID))
	}
	return RenderBox(u.FullName(), b.String())
}
