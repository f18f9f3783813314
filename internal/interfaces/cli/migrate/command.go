// Package migrate runs schema migrations from the command line.
package migrate

import (
	"fmt"

	"github.com/spf13/cobra"

	"galerie/internal/infrastructure/database"
	"galerie/internal/infrastructure/migration"
	"galerie/internal/interfaces/cli/bootstrap"
	"galerie/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage database schema migrations",
	}

	cmd.PersistentFlags().String("dir", "internal/infrastructure/migration/scripts", "migration scripts directory")

	cmd.AddCommand(
		newUpCommand(),
		newStatusCommand(),
		newCreateCommand(),
		newEnsureCommand(),
	)
	return cmd
}

func strategy(cmd *cobra.Command, driver string) *migration.GooseStrategy {
	dir, _ := cmd.Flags().GetString("dir")
	return migration.NewGooseStrategy(dir, driver, logger.NewLogger())
}

func newUpCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "up",
		Short: "Apply pending migrations, then verify the tenant schema",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap.Run(cmd)
			if err != nil {
				return err
			}
			defer database.Close()

			if err := strategy(cmd, cfg.Database.Driver).Up(db); err != nil {
				return err
			}

			result := migration.EnsureTenantSchema(db, logger.NewLogger())
			if result.HasErrors() {
				return fmt.Errorf("tenant schema verification failed: %v", result.Errors)
			}
			return nil
		},
	}
}

func newStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Print migration status",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap.Run(cmd)
			if err != nil {
				return err
			}
			defer database.Close()

			return strategy(cmd, cfg.Database.Driver).Status(db)
		},
	}
}

func newCreateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "create NAME",
		Short: "Create a new migration script",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, db, err := bootstrap.Run(cmd)
			if err != nil {
				return err
			}
			defer database.Close()

			return strategy(cmd, cfg.Database.Driver).Create(db, args[0])
		},
	}
}

// ensure runs only the idempotent tenant-schema steps, for databases managed
// outside goose.
func newEnsureCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "ensure",
		Short: "Verify and repair the tenant schema without running migrations",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap.Run(cmd)
			if err != nil {
				return err
			}
			defer database.Close()

			log := logger.NewLogger()
			result := migration.EnsureTenantSchema(db, log)
			for _, warning := range result.Warnings {
				log.Warnw("schema warning", "detail", warning)
			}
			if result.HasErrors() {
				return fmt.Errorf("tenant schema verification failed: %v", result.Errors)
			}
			log.Infow("tenant schema verified", "steps_applied", result.StepsApplied)
			return nil
		},
	}
}
