package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/tasker-app/tasker/internal/cli/formatter"
	"github.com/tasker-app/tasker/internal/domain"
	"github.com/tasker-app/tasker/internal/reconcile"
)

func newWorkCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "work",
		Short: "Start, stop and inspect work sessions",
	}

	cmd.AddCommand(
		newWorkStartCmd(app),
		newWorkStopCmd(app),
		newWorkStatusCmd(app),
		newWorkRemoveCmd(app),
		newWorkListCmd(app),
	)

	return cmd
}

// reconciler returns a Reconciler for userID backed by the configured cache.
func (a *App) reconciler(userID string) *reconcile.Reconciler {
	return reconcile.NewReconciler(a.Sessions, reconcile.NewCache(a.config().Watch.CachePath), userID, a.logger())
}

func newWorkStartCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Clock in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUserID(cmd.Context(), app, cmd.Flags())
			if err != nil {
				return err
			}
			s, err := app.Sessions.StartSession(cmd.Context(), userID)
			if err != nil {
				return err
			}
			app.reconciler(userID).Started(s)

			fmt.Fprintf(cmd.OutOrStdout(), "%s Started session %s at %s\n",
				formatter.StyleGreen.Render("●"), formatter.TruncID(s.ID), formatter.Clock(s.StartedAt, app.location()))
			return nil
		},
	}
}

func newWorkStopCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "stop [session-id]",
		Short: "Clock out of the current session, or of the given one",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			userID, err := resolveUserID(ctx, app, cmd.Flags())
			if err != nil {
				return err
			}

			var sessionID string
			if len(args) == 1 {
				sessionID = args[0]
			} else {
				current, err := app.Sessions.CurrentSession(ctx, userID)
				if err != nil {
					return err
				}
				if current == nil {
					return domain.InvalidState("not working: there is no open session to stop")
				}
				sessionID = current.ID
			}

			if _, err := app.Sessions.StopSession(ctx, userID, sessionID); err != nil {
				return err
			}
			app.reconciler(userID).Stopped()

			today, err := app.Sessions.TodaySessions(ctx, userID)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s Stopped session %s. Today: %s\n",
				formatter.StyleDim.Render("○"), formatter.TruncID(sessionID), formatter.FormatSeconds(today.TotalSec))
			return nil
		},
	}
}

func newWorkStatusCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show today's sessions and progress",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			u, err := resolveUser(cmd.Context(), app, cmd.Flags())
			if err != nil {
				return err
			}
			today, err := app.Sessions.TodaySessions(cmd.Context(), u.ID)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatToday(today, u, app.location(), app.now()))
			return nil
		},
	}
}

func newWorkRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <session-id>",
		Aliases: []string{"rm"},
		Short:   "Delete a finished session",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.DeleteSession(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted session %s\n", args[0])
			return nil
		},
	}
}

func newWorkListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List all sessions, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			userID, err := resolveUserID(cmd.Context(), app, cmd.Flags())
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.ListSessions(cmd.Context(), userID)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatSessionTable(sessions, app.location(), app.now()))
			return nil
		},
	}
}
