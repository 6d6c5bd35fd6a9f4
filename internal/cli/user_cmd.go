package cli

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/tasker-app/tasker/internal/cli/formatter"
	"github.com/tasker-app/tasker/internal/domain"
)

func newUserCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "user",
		Aliases: []string{"users"},
		Short:   "Manage the user directory",
	}

	cmd.AddCommand(
		newUserAddCmd(app),
		newUserListCmd(app),
		newUserShowCmd(app),
		newUserRemoveCmd(app),
		newUserHoursCmd(app),
		newUserRenameCmd(app),
	)

	return cmd
}

func newUserAddCmd(app *App) *cobra.Command {
	var in userInput

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a user",
		Long:  "Add a user. When email or first name is missing and stdin is a terminal, a form asks for the rest.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !in.complete() && app.interactive() {
				if err := newUserForm(&in).Run(); err != nil {
					return fmt.Errorf("user form: %w", err)
				}
			}

			hours, err := parseHours(in.Hours)
			if err != nil {
				return domain.InvalidArgument(err.Error())
			}
			u := &domain.User{
				Email:      in.Email,
				FirstName:  in.FirstName,
				LastName:   in.LastName,
				Role:       domain.Role(in.Role),
				DailyHours: hours,
			}
			created, err := app.Users.CreateUser(cmd.Context(), u)
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s Added %s %s\n",
				formatter.StyleGreen.Render("✔"), formatter.Bold(created.FullName()), formatter.Dim(created.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Email, "email", "", "email address (unique)")
	cmd.Flags().StringVar(&in.FirstName, "first", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last", "", "last name")
	cmd.Flags().StringVar(&in.Role, "role", "", "ADMIN or USER (default USER)")
	cmd.Flags().StringVar(&in.Hours, "hours", "", "contracted hours per day (default 8)")

	return cmd
}

func newUserListCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List users",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			users, err := app.Users.ListUsers(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), formatter.FormatUserTable(users))
			return nil
		},
	}
}

func newUserShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show [id]",
		Short: "Show a user, defaulting to --user",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				u   *domain.User
				err error
			)
			if len(args) == 1 {
				u, err = app.Users.GetUser(cmd.Context(), args[0])
			} else {
				u, err = resolveUser(cmd.Context(), app, cmd.Flags())
			}
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatUser(u, app.now().In(app.location())))
			return nil
		},
	}
}

func newUserRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "remove <id>",
		Aliases: []string{"rm"},
		Short:   "Remove a user and all of their sessions",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Users.RemoveUser(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed user %s\n", args[0])
			return nil
		},
	}
}

func newUserHoursCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "hours <id> <hours>",
		Short: "Set a user's contracted hours per day",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			hours, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return domain.InvalidArgument(fmt.Sprintf("hours %q is not a number", args[1]))
			}
			u, err := app.Users.SetDailyHours(cmd.Context(), args[0], hours)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s now works %s per day\n",
				formatter.Bold(u.FullName()), formatter.FormatHours(u.DailyHours))
			return nil
		},
	}
}

func newUserRenameCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "rename <id> <first> [last]",
		Short: "Rename a user",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			last := ""
			if len(args) == 3 {
				last = args[2]
			}
			u, err := app.Users.RenameUser(cmd.Context(), args[0], args[1], last)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Renamed to %s\n", formatter.Bold(u.FullName()))
			return nil
		},
	}
}
