package migration

import (
	"fmt"
	"strings"

	"github.com/pressly/goose/v3"
	"gorm.io/gorm"

	"galerie/internal/shared/logger"
)

// GooseStrategy runs the versioned SQL migration scripts (baseline schema)
// with goose. The idempotent tenant-schema ensure runs separately after it.
type GooseStrategy struct {
	scriptsPath string
	dialect     string
	logger      logger.Interface
}

// NewGooseStrategy creates a goose-backed migration strategy for the given
// scripts directory and database driver (mysql or sqlite).
func NewGooseStrategy(scriptsPath, driver string, log logger.Interface) *GooseStrategy {
	dialect := "mysql"
	if strings.ToLower(driver) == "sqlite" {
		dialect = "sqlite3"
	}
	return &GooseStrategy{
		scriptsPath: scriptsPath,
		dialect:     dialect,
		logger:      log.With("component", "migration.goose"),
	}
}

// Up applies all pending migrations.
func (s *GooseStrategy) Up(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}

	s.logger.Infow("running goose migrations", "scripts_path", s.scriptsPath)
	if err := goose.Up(sqlDB, s.scriptsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

// Status prints the migration status of every known script.
func (s *GooseStrategy) Status(db *gorm.DB) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := goose.SetDialect(s.dialect); err != nil {
		return fmt.Errorf("failed to set goose dialect: %w", err)
	}
	if err := goose.Status(sqlDB, s.scriptsPath); err != nil {
		return fmt.Errorf("failed to get migration status: %w", err)
	}
	return nil
}

// Create writes a new empty SQL migration file.
func (s *GooseStrategy) Create(db *gorm.DB, name string) error {
	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get underlying sql.DB: %w", err)
	}
	if err := goose.Create(sqlDB, s.scriptsPath, name, "sql"); err != nil {
		return fmt.Errorf("failed to create migration: %w", err)
	}
	return nil
}
