package main

import (
	"fmt"

	"github.com/aussiebroadwan/doorman/internal/accounts/app"
	"github.com/spf13/cobra"
)

var dbMigrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and/or upgrade the database schema",
	Long: `Create and/or upgrade the database schema, then create the system account
if it does not exist yet.

Example:
  DOORMAN_DATABASE_DRIVER=postgres DATABASE_URL=postgres://... doorman db migrate`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := app.LoadConfig()

		// Run migrations explicitly, with their own errors, before the app
		// wiring touches any table.
		db, err := app.OpenStore(cfg)
		if err != nil {
			return err
		}
		if err := db.ApplyMigrations(); err != nil {
			_ = db.Close()
			return fmt.Errorf("migration failed: %w", err)
		}
		_ = db.Close()

		cfg.AutoMigrate = true
		a, err := app.New(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = a.Close() }()

		fmt.Fprintf(cmd.ErrOrStderr(), "Database schema is up to date (%s)\n", cfg.DatabaseDriver)
		return nil
	},
}

func init() {
	dbCmd.AddCommand(dbMigrateCmd)
}
