package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/pflag"
	"github.com/tasker-app/tasker/internal/domain"
)

// resolveUserID returns the id selected by --user. An email is looked up in
// the user directory; anything else is taken as an id.
func resolveUserID(ctx context.Context, app *App, flags *pflag.FlagSet) (string, error) {
	ref, err := flags.GetString(flagUser)
	if err != nil {
		return "", err
	}
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return "", domain.InvalidArgument("no user selected: pass --user or set cli.user in the config")
	}
	if !strings.Contains(ref, "@") {
		return ref, nil
	}

	users, err := app.Users.ListUsers(ctx)
	if err != nil {
		return "", err
	}
	for _, u := range users {
		if strings.EqualFold(u.Email, ref) {
			return u.ID, nil
		}
	}
	return "", domain.NotFound(fmt.Sprintf("no user with email %s", ref))
}

// resolveUser is resolveUserID followed by a directory read.
func resolveUser(ctx context.Context, app *App, flags *pflag.FlagSet) (*domain.User, error) {
	id, err := resolveUserID(ctx, app, flags)
	if err != nil {
		return nil, err
	}
	return app.Users.GetUser(ctx, id)
}
