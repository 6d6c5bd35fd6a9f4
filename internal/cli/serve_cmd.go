package cli

import (
	"context"
	"errors"
	"fmt"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	taskerhttp "github.com/tasker-app/tasker/internal/http"
	"go.uber.org/zap"
)

func newServeCmd(app *App) *cobra.Command {
	var (
		host string
		port int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := app.config()
			if cmd.Flags().Changed("host") {
				cfg.Server.Host = host
			}
			if cmd.Flags().Changed("port") {
				cfg.Server.Port = port
			}
			if err := cfg.Validate(); err != nil {
				return err
			}

			server, err := taskerhttp.NewServer(taskerhttp.Deps{
				Sessions: app.Sessions,
				Users:    app.Users,
				Registry: app.Registry,
			}, app.logger(), &taskerhttp.Config{
				Host:     cfg.Server.Host,
				Port:     cfg.Server.Port,
				Location: app.location(),
			})
			if err != nil {
				return fmt.Errorf("creating server: %w", err)
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			errCh := make(chan error, 1)
			go func() {
				errCh <- server.Start()
			}()

			select {
			case err := <-errCh:
				return err
			case <-ctx.Done():
			}

			app.logger().Info("shutdown signal received", zap.Duration("timeout", cfg.Server.ShutdownTimeout))
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil && !errors.Is(err, context.Canceled) {
				return fmt.Errorf("shutting down: %w", err)
			}
			return <-errCh
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "listen host (overrides server.host)")
	cmd.Flags().IntVar(&port, "port", 0, "listen port (overrides server.port)")

	return cmd
}
