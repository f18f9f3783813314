package migration

import (
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/logger"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", strings.ReplaceAll(t.Name(), "/", "_"))
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: gormlogger.Default.LogMode(gormlogger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	return db
}

// createLegacySchema builds the pre-tenant shape: application tables without
// tenant_id and no tenants directory.
func createLegacySchema(t *testing.T, db *gorm.DB) {
	t.Helper()
	statements := []string{
		`CREATE TABLE users (id INTEGER PRIMARY KEY AUTOINCREMENT, email TEXT NOT NULL, password_hash TEXT NOT NULL, name TEXT, is_admin BOOLEAN DEFAULT 0, created_at DATETIME, updated_at DATETIME)`,
		`CREATE TABLE paintings (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER, title TEXT NOT NULL, description TEXT, technique TEXT, width_cm INTEGER, height_cm INTEGER, price_cents INTEGER NOT NULL, image_url TEXT, available BOOLEAN DEFAULT 1, created_at DATETIME, updated_at DATETIME)`,
		`CREATE TABLE settings (id INTEGER PRIMARY KEY AUTOINCREMENT, "key" TEXT NOT NULL, value TEXT, created_at DATETIME, updated_at DATETIME)`,
		`CREATE TABLE favorites (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER NOT NULL, painting_id INTEGER NOT NULL, created_at DATETIME)`,
		`CREATE TABLE saas_sites (id INTEGER PRIMARY KEY AUTOINCREMENT, user_id INTEGER, status TEXT DEFAULT 'pending', sandbox_url TEXT, final_domain TEXT, created_at DATETIME, updated_at DATETIME)`,
	}
	for _, stmt := range statements {
		require.NoError(t, db.Exec(stmt).Error)
	}
}

func TestEnsureTenantSchema(t *testing.T) {
	db := newTestDB(t)
	createLegacySchema(t, db)
	log := logger.NewLogger()

	result := EnsureTenantSchema(db, log)
	require.False(t, result.HasErrors(), "errors: %v", result.Errors)
	assert.Greater(t, result.StepsApplied, 0)

	migrator := db.Migrator()

	t.Run("tenants table with default row", func(t *testing.T) {
		require.True(t, migrator.HasTable("tenants"))

		var defaultTenant models.TenantModel
		require.NoError(t, db.First(&defaultTenant, 1).Error)
		assert.Equal(t, "localhost", defaultTenant.Host)
	})

	t.Run("tenant_id added to existing tables only", func(t *testing.T) {
		for _, table := range []string{"users", "paintings", "settings", "favorites", "saas_sites"} {
			assert.True(t, migrator.HasColumn(table, "tenant_id"), table)
		}
		assert.False(t, migrator.HasTable("orders"))
	})

	t.Run("existing rows land on the default tenant", func(t *testing.T) {
		require.NoError(t, db.Exec(`INSERT INTO users (email, password_hash) VALUES ('a@b.c', 'x')`).Error)
		var tenantID uint
		require.NoError(t, db.Raw(`SELECT tenant_id FROM users LIMIT 1`).Scan(&tenantID).Error)
		assert.Equal(t, uint(1), tenantID)
	})

	t.Run("indexes exist", func(t *testing.T) {
		assert.True(t, migrator.HasIndex(&models.UserModel{}, "idx_users_tenant_id"))
		assert.True(t, migrator.HasIndex(&models.SettingModel{}, "idx_settings_key_tenant_id"))
		assert.True(t, migrator.HasIndex(&models.FavoriteModel{}, "idx_favorites_user_painting_tenant"))
	})

	t.Run("second run is a no-op", func(t *testing.T) {
		again := EnsureTenantSchema(db, log)
		require.False(t, again.HasErrors(), "errors: %v", again.Errors)
		assert.Zero(t, again.StepsApplied)
	})
}

func TestEnsureTenantSchemaDedupsSettings(t *testing.T) {
	db := newTestDB(t)
	createLegacySchema(t, db)

	// Legacy duplicates for the same key; the latest row must win.
	require.NoError(t, db.Exec(`INSERT INTO settings ("key", value) VALUES ('gallery_title', 'old')`).Error)
	require.NoError(t, db.Exec(`INSERT INTO settings ("key", value) VALUES ('gallery_title', 'new')`).Error)
	require.NoError(t, db.Exec(`INSERT INTO settings ("key", value) VALUES ('contact_email', 'info@example.com')`).Error)

	result := EnsureTenantSchema(db, logger.NewLogger())
	require.False(t, result.HasErrors(), "errors: %v", result.Errors)
	assert.Empty(t, result.Warnings)

	var count int64
	require.NoError(t, db.Table("settings").Count(&count).Error)
	assert.Equal(t, int64(2), count)

	var value string
	require.NoError(t, db.Raw(`SELECT value FROM settings WHERE "key" = 'gallery_title'`).Scan(&value).Error)
	assert.Equal(t, "new", value)
}

func TestEnsureTenantSchemaKeepsExistingDefaultTenant(t *testing.T) {
	db := newTestDB(t)
	createLegacySchema(t, db)
	log := logger.NewLogger()

	result := EnsureTenantSchema(db, log)
	require.False(t, result.HasErrors())

	// Rename the default tenant; a later run must not overwrite it.
	require.NoError(t, db.Exec(`UPDATE tenants SET name = 'Main gallery' WHERE id = 1`).Error)

	again := EnsureTenantSchema(db, log)
	require.False(t, again.HasErrors())

	var name string
	require.NoError(t, db.Raw(`SELECT name FROM tenants WHERE id = 1`).Scan(&name).Error)
	assert.Equal(t, "Main gallery", name)
}
