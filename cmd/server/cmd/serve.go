package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"artha/internal/app/server"
	"artha/internal/infrastructure/migration"
)

var skipMigrations bool

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	Long: `Applies pending migrations (unless --skip-migrations), then serves the API
until SIGINT or SIGTERM. Queued history writes are flushed before exit.`,
	RunE: func(cmd *cobra.Command, _ []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()

		if !skipMigrations {
			if err := migration.NewMigration(cfg.DB, nil).Up(); err != nil {
				return err
			}
		}

		app, err := server.Open(ctx, cfg, log)
		if err != nil {
			return err
		}

		runErr := app.Run(ctx)

		closeCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()
		if err := app.Close(closeCtx); err != nil && runErr == nil {
			runErr = fmt.Errorf("close: %w", err)
		}

		return runErr
	},
}

func init() {
	serveCmd.Flags().BoolVar(&skipMigrations, "skip-migrations", false, "do not apply pending migrations on start")
}
