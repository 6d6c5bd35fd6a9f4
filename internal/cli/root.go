package cli

import (
	"io"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/tasker-app/tasker/internal/config"
	"github.com/tasker-app/tasker/internal/service"
	"go.uber.org/zap"
)

// App holds the services and settings shared by CLI commands.
type App struct {
	Sessions service.SessionService
	Users    service.UserService
	Config   *config.Config
	Logger   *zap.Logger

	// Registry backs /metrics when serving. Nil gives the server a private
	// registry with the HTTP collectors only.
	Registry *prometheus.Registry

	Location *time.Location
	Now      func() time.Time

	// IsInteractive reports whether stdin is a terminal. Forms and the
	// full-screen watch view only run when it returns true.
	IsInteractive func() bool
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

func (a *App) location() *time.Location {
	if a.Location != nil {
		return a.Location
	}
	return time.Local
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) config() *config.Config {
	if a.Config == nil {
		a.Config = config.Default()
	}
	return a.Config
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}

const (
	flagConfig = "config"
	flagUser   = "user"
)

// NewRootCmd creates the top-level "tasker" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:           "tasker",
		Short:         "Work-session tracking for a team",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	// --config is consumed before the App is built; it is declared here so
	// help and flag parsing accept it.
	root.PersistentFlags().String(flagConfig, "", "path to the YAML config file (default ./tasker.yaml)")
	root.PersistentFlags().StringP(flagUser, "u", app.config().CLI.User, "user id or email the command acts for")

	root.AddCommand(
		newServeCmd(app),
		newUserCmd(app),
		newWorkCmd(app),
		newReportCmd(app),
		newWatchCmd(app),
	)

	return root
}

// ConfigPathFromArgs extracts --config from raw arguments without
// interpreting any other flag, so configuration can be loaded before the
// command tree exists.
func ConfigPathFromArgs(args []string) (string, error) {
	fs := pflag.NewFlagSet("tasker", pflag.ContinueOnError)
	fs.ParseErrorsWhitelist.UnknownFlags = true
	fs.SetOutput(io.Discard)
	fs.Usage = func() {}
	path := fs.String(flagConfig, "", "")
	// Help is left for cobra to print.
	fs.BoolP("help", "h", false, "")
	if err := fs.Parse(args); err != nil {
		return "", err
	}
	return *path, nil
}
