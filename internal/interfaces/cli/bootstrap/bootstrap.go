// Package bootstrap shares process startup between subcommands.
package bootstrap

import (
	"fmt"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	appconfig "galerie/internal/infrastructure/config"
	"galerie/internal/infrastructure/database"
	"galerie/internal/shared/logger"
)

// Run loads configuration, initializes logging and opens the database.
// Every subcommand starts here.
func Run(cmd *cobra.Command) (*appconfig.Config, *gorm.DB, error) {
	env, _ := cmd.Flags().GetString("env")

	cfg, err := appconfig.Load(env)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to load config: %w", err)
	}

	if err := logger.Init(&cfg.Logger); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize logger: %w", err)
	}

	if err := database.Init(&cfg.Database); err != nil {
		return nil, nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	return cfg, database.Get(), nil
}
