package main

import (
	"github.com/samber/oops"
	"github.com/spf13/cobra"

	"github.com/project-nt/auth/internal/auth/app"
)

// NewMigrateCmd creates the migrate subcommand.
func NewMigrateCmd() *cobra.Command {
	cfg := app.LoadConfig()

	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Run database migrations",
		Long:  `Apply or roll back the schema of the configured database.`,
	}
	bindConfigFlags(cmd.PersistentFlags(), &cfg)

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, cfg, true)
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "down",
		Short: "Roll back all migrations",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runMigrate(cmd, cfg, false)
		},
	})

	return cmd
}

func runMigrate(cmd *cobra.Command, cfg app.Config, up bool) error {
	if err := cfg.Validate(); err != nil {
		return err
	}

	logger := app.NewLogger(cfg)

	cmd.Println("Connecting to database...")
	st, err := app.OpenStore(cmd.Context(), cfg, logger)
	if err != nil {
		return err
	}
	defer func() { _ = st.Close() }()

	if up {
		cmd.Println("Running migrations...")
		if err := st.ApplyMigrations(); err != nil {
			return oops.Code("MIGRATION_FAILED").With("operation", "apply migrations").Wrap(err)
		}
		cmd.Println("Migrations completed successfully")
		return nil
	}

	cmd.Println("Rolling back migrations...")
	if err := st.RollbackMigrations(); err != nil {
		return oops.Code("MIGRATION_FAILED").With("operation", "roll back migrations").Wrap(err)
	}
	cmd.Println("Rollback completed successfully")
	return nil
}
