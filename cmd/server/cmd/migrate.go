package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"artha/internal/infrastructure/migration"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Manage the database schema",
}

var migrateUpCmd = &cobra.Command{
	Use:   "up",
	Short: "Apply all pending migrations",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := migration.NewMigration(cfg.DB, nil).Up(); err != nil {
			return err
		}
		fmt.Println("Migrations applied")
		return nil
	},
}

var migrateDownCmd = &cobra.Command{
	Use:   "down",
	Short: "Roll back every migration",
	RunE: func(_ *cobra.Command, _ []string) error {
		if err := migration.NewMigration(cfg.DB, nil).Down(); err != nil {
			return err
		}
		fmt.Println("Migrations rolled back")
		return nil
	},
}

var migrateStatusCmd = &cobra.Command{
	Use:   "status",
	Short: "Print the applied schema version",
	RunE: func(_ *cobra.Command, _ []string) error {
		status, err := migration.NewMigration(cfg.DB, nil).Status()
		if err != nil {
			return err
		}
		fmt.Printf("version: %d\ndirty: %t\n", status.Version, status.Dirty)
		return nil
	},
}
