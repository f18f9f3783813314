// Package migration brings an existing database to the tenant-aware schema
// shape. EnsureTenantSchema is idempotent and resumable: every DDL step is
// guarded by an existence check and a failing step never aborts the rest.
package migration

import (
	"fmt"

	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/logger"
)

// EnsureResult aggregates the outcome of one EnsureTenantSchema run.
type EnsureResult struct {
	StepsApplied int
	Warnings     []string
	Errors       []string
}

func (r *EnsureResult) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *EnsureResult) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

// HasErrors reports whether any step failed.
func (r *EnsureResult) HasErrors() bool {
	return len(r.Errors) > 0
}

// EnsureTenantSchema retrofits tenant isolation onto the schema:
// the tenants directory table with its default row, a tenant_id column and
// index on every scoped table, the settings (key, tenant_id) uniqueness
// (after deduplication) and the favorites composite uniqueness. Safe to run
// any number of times.
func EnsureTenantSchema(db *gorm.DB, log logger.Interface) *EnsureResult {
	result := &EnsureResult{}
	migrator := db.Migrator()

	// Directory table and reserved default tenant.
	if !migrator.HasTable(&models.TenantModel{}) {
		if err := migrator.CreateTable(&models.TenantModel{}); err != nil {
			result.errorf("create tenants table: %v", err)
			log.Errorw("failed to create tenants table", "error", err)
		} else {
			result.StepsApplied++
			log.Infow("created tenants table")
		}
	}
	if migrator.HasTable(&models.TenantModel{}) {
		if err := ensureDefaultTenant(db); err != nil {
			result.errorf("ensure default tenant: %v", err)
			log.Errorw("failed to ensure default tenant", "error", err)
		}
	}

	// tenant_id column on every scoped table that already exists.
	for _, table := range models.ScopedTables {
		if !migrator.HasTable(table.Model) {
			log.Debugw("table does not exist yet, skipping", "table", table.Name)
			continue
		}
		if migrator.HasColumn(table.Model, "tenant_id") {
			continue
		}
		sql := fmt.Sprintf("ALTER TABLE %s ADD COLUMN tenant_id INTEGER NOT NULL DEFAULT 1", table.Name)
		if err := db.Exec(sql).Error; err != nil {
			result.errorf("add tenant_id to %s: %v", table.Name, err)
			log.Errorw("failed to add tenant_id column", "table", table.Name, "error", err)
			continue
		}
		result.StepsApplied++
		log.Infow("added tenant_id column", "table", table.Name)
	}

	// Settings uniqueness needs deduplication first; a dedup failure skips
	// the constraint rather than applying it against dirty data.
	ensureSettingsUniqueness(db, log, result)

	// Secondary index on tenant_id for each scoped table.
	for _, table := range models.ScopedTables {
		if !migrator.HasTable(table.Model) {
			continue
		}
		indexName := fmt.Sprintf("idx_%s_tenant_id", table.Name)
		if migrator.HasIndex(table.Model, indexName) {
			continue
		}
		sql := fmt.Sprintf("CREATE INDEX %s ON %s(tenant_id)", indexName, table.Name)
		if err := db.Exec(sql).Error; err != nil {
			result.errorf("create index %s: %v", indexName, err)
			log.Errorw("failed to create tenant index", "table", table.Name, "error", err)
			continue
		}
		result.StepsApplied++
		log.Infow("created tenant index", "table", table.Name, "index", indexName)
	}

	// Natural per-tenant uniqueness for favorites.
	if migrator.HasTable(&models.FavoriteModel{}) &&
		!migrator.HasIndex(&models.FavoriteModel{}, "idx_favorites_user_painting_tenant") {
		sql := "CREATE UNIQUE INDEX idx_favorites_user_painting_tenant ON favorites(user_id, painting_id, tenant_id)"
		if err := db.Exec(sql).Error; err != nil {
			result.errorf("create favorites unique index: %v", err)
			log.Errorw("failed to create favorites unique index", "error", err)
		} else {
			result.StepsApplied++
			log.Infow("created favorites unique index")
		}
	}

	log.Infow("tenant schema ensure finished",
		"steps_applied", result.StepsApplied,
		"warnings", len(result.Warnings),
		"errors", len(result.Errors))

	return result
}

func ensureDefaultTenant(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.TenantModel{}).Where("id = ?", 1).Count(&count).Error; err != nil {
		return fmt.Errorf("failed to check default tenant: %w", err)
	}
	if count > 0 {
		return nil
	}
	defaultTenant := models.TenantModel{ID: 1, Host: "localhost", Name: "Default tenant"}
	if err := db.Create(&defaultTenant).Error; err != nil {
		return fmt.Errorf("failed to create default tenant: %w", err)
	}
	return nil
}

func ensureSettingsUniqueness(db *gorm.DB, log logger.Interface, result *EnsureResult) {
	migrator := db.Migrator()
	if !migrator.HasTable(&models.SettingModel{}) {
		return
	}
	if migrator.HasIndex(&models.SettingModel{}, "idx_settings_key_tenant_id") {
		return
	}

	if err := dedupSettings(db); err != nil {
		result.warnf("settings deduplication failed, unique constraint skipped: %v", err)
		log.Warnw("settings deduplication failed, skipping unique constraint", "error", err)
		return
	}

	sql := "CREATE UNIQUE INDEX idx_settings_key_tenant_id ON settings(`key`, tenant_id)"
	if err := db.Exec(sql).Error; err != nil {
		result.errorf("create settings unique index: %v", err)
		log.Errorw("failed to create settings unique index", "error", err)
		return
	}
	result.StepsApplied++
	log.Infow("created settings unique index")
}

// dedupSettings keeps only the most recently created row per (key, tenant)
// pair. The derived table keeps MySQL happy about deleting from a table
// referenced in a subquery.
func dedupSettings(db *gorm.DB) error {
	sql := "DELETE FROM settings WHERE id NOT IN " +
		"(SELECT id FROM (SELECT MAX(id) AS id FROM settings GROUP BY `key`, tenant_id) AS keep)"
	if err := db.Exec(sql).Error; err != nil {
		return fmt.Errorf("failed to deduplicate settings: %w", err)
	}
	return nil
}
