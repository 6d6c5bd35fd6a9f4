package cli

import (
	"context"
	"fmt"
	"io"
	"os/signal"
	"syscall"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"github.com/tasker-app/tasker/internal/cli/formatter"
	"github.com/tasker-app/tasker/internal/domain"
	"github.com/tasker-app/tasker/internal/reconcile"
)

func newWatchCmd(app *App) *cobra.Command {
	var (
		plain    bool
		interval time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Follow the current session live",
		Long: "Follow the current session live. The server is polled every watch.poll_interval;\n" +
			"in the full-screen view s starts or stops work, r refreshes and q quits.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUserID(cmd.Context(), app, cmd.Flags())
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("interval") {
				interval = app.config().Watch.PollInterval
			}
			if interval < time.Second {
				return domain.InvalidArgument("interval must be at least 1s")
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			rec := app.reconciler(userID)
			if plain || !app.interactive() {
				return watchPlain(ctx, cmd.OutOrStdout(), app, rec, interval)
			}

			model := newWatchModel(ctx, app, rec, userID, interval)
			_, err = tea.NewProgram(model, tea.WithContext(ctx)).Run()
			if err != nil && ctx.Err() == nil {
				return fmt.Errorf("watch: %w", err)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&plain, "plain", false, "print one line per poll instead of the full-screen view")
	cmd.Flags().DurationVar(&interval, "interval", 0, "poll interval (overrides watch.poll_interval)")

	return cmd
}

// watchPlain prints a status line per reconcile until ctx is done.
func watchPlain(ctx context.Context, w io.Writer, app *App, rec *reconcile.Reconciler, interval time.Duration) error {
	if s := rec.Provisional(); s.Working {
		fmt.Fprintf(w, "%s %s\n", formatter.Dim("cached"), formatStateLine(app, s))
	}
	rec.Run(ctx, interval, func(s reconcile.State, err error) {
		if err != nil {
			if ctx.Err() == nil {
				fmt.Fprintf(w, "%s %s\n", formatter.StyleRed.Render("error"), domain.MessageOf(err))
			}
			return
		}
		fmt.Fprintln(w, formatStateLine(app, s))
	})
	return nil
}

func formatStateLine(app *App, s reconcile.State) string {
	now := app.now()
	line := formatter.WorkingBadge(s.Working)
	if s.Working {
		line += fmt.Sprintf(" %s since %s", formatter.FormatClock(s.Elapsed(now)), formatter.Clock(s.StartedAt, app.location()))
	}
	if !s.Provisional {
		line += fmt.Sprintf("  today %s", formatter.FormatDuration(s.TodayTotal(now)))
	}
	return line
}
