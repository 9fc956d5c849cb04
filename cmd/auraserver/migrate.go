package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/udisondev/auracore/internal/db"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply all pending aura template migrations to the configured PostgreSQL database.`,
		RunE:  runMigrate,
	}
}

func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	cmd.Println("Running migrations...")
	if err := db.RunMigrations(cmd.Context(), cfg.Database.DSN()); err != nil {
		return oops.With("operation", "run migrations").Wrap(err)
	}

	cmd.Println("Migrations completed successfully")
	return nil
}
