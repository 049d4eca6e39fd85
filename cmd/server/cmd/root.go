package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"golang.org/x/exp/slog"

	"artha/internal/app/server/config"
	"artha/internal/utils/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

var rootCmd = &cobra.Command{
	Use:   "artha",
	Short: "Artha translator backend",
	Long: `Artha proxies text through a machine translation provider and keeps
per-user translation history and user feedback in PostgreSQL.

Configuration comes from the environment and an optional .env file.`,
	PersistentPreRunE: setup,
	SilenceUsage:      true,
	SilenceErrors:     true,
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func setup(_ *cobra.Command, _ []string) error {
	cfg = config.MustLoad()
	log = logger.New(cfg.Env, cfg.Logger.LogLevel)
	return nil
}

func init() {
	rootCmd.AddCommand(serveCmd)

	rootCmd.AddCommand(migrateCmd)
	migrateCmd.AddCommand(migrateUpCmd)
	migrateCmd.AddCommand(migrateDownCmd)
	migrateCmd.AddCommand(migrateStatusCmd)

	rootCmd.AddCommand(adminCmd)
	adminCmd.AddCommand(promoteCmd)
	adminCmd.AddCommand(createCmd)
}
