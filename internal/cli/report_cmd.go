package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasker-app/tasker/internal/app"
	"github.com/tasker-app/tasker/internal/cli/formatter"
)

func newReportCmd(a *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Worked-hours reports",
	}

	cmd.AddCommand(
		newReportDailyCmd(a),
		newReportTodayCmd(a),
		newReportRangeCmd(a),
	)

	return cmd
}

func newReportDailyCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "daily",
		Short: "Hours worked per day",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := resolveUser(cmd.Context(), a, cmd.Flags())
			if err != nil {
				return err
			}
			totals, err := a.Sessions.DailyTotals(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatDailyTotals(totals, u.DailyHours))
			return nil
		},
	}
}

func newReportTodayCmd(a *App) *cobra.Command {
	return &cobra.Command{
		Use:   "today",
		Short: "Today's sessions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUserID(cmd.Context(), a, cmd.Flags())
			if err != nil {
				return err
			}
			today, err := a.Sessions.TodaySessions(cmd.Context(), userID)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()
			fmt.Fprint(out, formatter.FormatSessionTable(today.Sessions, a.location(), a.now()))
			fmt.Fprintf(out, "%s %s\n", formatter.Dim("Worked today:"), formatter.Bold(formatter.FormatSeconds(today.TotalSec)))
			return nil
		},
	}
}

func newReportRangeCmd(a *App) *cobra.Command {
	var from, to string

	cmd := &cobra.Command{
		Use:   "range --from <time> --to <time>",
		Short: "Total of closed sessions inside a time range",
		Long: "Total of closed sessions that started at or after --from and ended at or before --to.\n" +
			"Bounds are RFC3339 instants or yyyy-mm-dd days; a day passed to --to includes that whole day.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			loc := a.location()
			fromT, toT, err := app.ParseRange(from, to, loc)
			if err != nil {
				return err
			}
			userID, err := resolveUserID(cmd.Context(), a, cmd.Flags())
			if err != nil {
				return err
			}
			report, err := a.Sessions.RangeTotal(cmd.Context(), userID, fromT, toT)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatRange(report, loc))
			return nil
		},
	}

	cmd.Flags().StringVar(&from, "from", "", "range start (RFC3339 or yyyy-mm-dd)")
	cmd.Flags().StringVar(&to, "to", "", "range end (RFC3339 or yyyy-mm-dd, inclusive day)")
	_ = cmd.MarkFlagRequired("from")
	_ = cmd.MarkFlagRequired("to")

	return cmd
}
