package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"bloodbank/cmd/config"
	migration "bloodbank/cmd/database/migrate"
	"bloodbank/internal/utils"

	"github.com/spf13/cobra"
	"gorm.io/gorm"
)

const shutdownTimeout = 10 * time.Second

func newServeCmd(app *appContext) *cobra.Command {
	var migrate bool

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			return withDB(ctx, func(ctx context.Context, db *gorm.DB) error {
				if migrate {
					if err := migration.Migrate(db, app.log); err != nil {
						return err
					}
				}

				server, err := config.NewApp(ctx, db, app.log)
				if err != nil {
					return err
				}

				addr := ":" + utils.GetConfig("APP_PORT")
				errCh := make(chan error, 1)
				go func() {
					app.log.WithFields(map[string]any{"addr": addr}).Info("server listening")
					errCh <- server.Listen(addr)
				}()

				select {
				case err := <-errCh:
					return err
				case <-ctx.Done():
				}

				app.log.Info("shutting down")
				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()
				if err := server.ShutdownWithContext(shutdownCtx); err != nil && !errors.Is(err, context.DeadlineExceeded) {
					return err
				}
				return nil
			})
		},
	}

	cmd.Flags().BoolVar(&migrate, "migrate", false, "Run migrations before serving")
	return cmd
}
