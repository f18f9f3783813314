package backfill

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"galerie/internal/domain/tenant"
	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/infrastructure/repository"
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

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

func newAuditor(t *testing.T, db *gorm.DB) *Auditor {
	t.Helper()
	return NewAuditor(db, repository.NewTenantDirectoryRepository(db), logger.NewLogger())
}

// seedLegacySite creates a tenant directory entry, a site matched via its
// final domain, and legacy rows still on the default tenant: one user, three
// paintings, one order with two items.
func seedLegacySite(t *testing.T, db *gorm.DB) {
	t.Helper()

	require.NoError(t, db.Create(&models.TenantModel{ID: 1, Host: "localhost", Name: "Default tenant"}).Error)
	require.NoError(t, db.Create(&models.TenantModel{ID: 5, Host: "artist5.example.com", Name: "Artist Five"}).Error)

	user := models.UserModel{Email: "artist@example.com", PasswordHash: "x", TenantID: 1}
	require.NoError(t, db.Create(&user).Error)
	require.Equal(t, uint(1), user.ID)

	require.NoError(t, db.Create(&models.SaasSiteModel{
		UserID:      user.ID,
		Status:      "active",
		SandboxURL:  "https://sandbox.example.net/preview",
		FinalDomain: "artist5.example.com",
		TenantID:    1,
	}).Error)

	for i := 0; i < 3; i++ {
		require.NoError(t, db.Create(&models.PaintingModel{
			UserID:     user.ID,
			Title:      fmt.Sprintf("Work %d", i+1),
			PriceCents: 100000,
			Available:  true,
			TenantID:   1,
		}).Error)
	}

	order := models.OrderModel{UserID: user.ID, Reference: "ref-1", Status: "paid", TotalCents: 200000, TenantID: 1}
	require.NoError(t, db.Create(&order).Error)
	require.NoError(t, db.Create(&models.OrderItemModel{OrderID: order.ID, PaintingID: 1, Quantity: 1, PriceCents: 100000, TenantID: 1}).Error)
	require.NoError(t, db.Create(&models.OrderItemModel{OrderID: order.ID, PaintingID: 2, Quantity: 1, PriceCents: 100000, TenantID: 1}).Error)
}

func countWithTenant(t *testing.T, db *gorm.DB, table string, tenantID uint) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Table(table).Where("tenant_id = ?", tenantID).Count(&count).Error)
	return count
}

func TestAuditorRun(t *testing.T) {
	db := newTestDB(t)
	seedLegacySite(t, db)

	report, err := newAuditor(t, db).Run(context.Background(), false)
	require.NoError(t, err)
	require.NotNil(t, report)

	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Anomalies)
	require.Len(t, report.SitesProcessed, 1)

	site := report.SitesProcessed[0]
	assert.Equal(t, uint(1), site.OldTenantID)
	assert.Equal(t, uint(5), site.NewTenantID)
	assert.Equal(t, "artist5.example.com", site.TenantHost)
	assert.Equal(t, tenant.MatchByFinalDomain, site.MatchType)

	// 1 site + 1 user + 3 paintings + 1 order + 2 order items
	assert.Equal(t, int64(1), site.TablesUpdated["saas_sites"])
	assert.Equal(t, int64(1), site.TablesUpdated["users"])
	assert.Equal(t, int64(3), site.TablesUpdated["paintings"])
	assert.Equal(t, int64(1), site.TablesUpdated["orders"])
	assert.Equal(t, int64(2), site.TablesUpdated["order_items"])
	assert.Equal(t, int64(8), report.TotalRowsUpdated)

	for _, table := range []string{"saas_sites", "users", "paintings", "orders", "order_items"} {
		assert.Zero(t, countWithTenant(t, db, table, 1), "stale default-tenant rows in %s", table)
	}
	assert.Equal(t, int64(3), countWithTenant(t, db, "paintings", 5))
}

func TestAuditorDryRun(t *testing.T) {
	db := newTestDB(t)
	seedLegacySite(t, db)

	report, err := newAuditor(t, db).Run(context.Background(), true)
	require.NoError(t, err)

	assert.True(t, report.DryRun)
	assert.Equal(t, int64(8), report.TotalRowsUpdated)

	// Nothing moved.
	assert.Equal(t, int64(3), countWithTenant(t, db, "paintings", 1))
	assert.Zero(t, countWithTenant(t, db, "paintings", 5))

	t.Run("dry-run counts match a real run", func(t *testing.T) {
		applied, err := newAuditor(t, db).Run(context.Background(), false)
		require.NoError(t, err)
		assert.Equal(t, report.TotalRowsUpdated, applied.TotalRowsUpdated)
	})
}

func TestAuditorAmbiguityAbortsRun(t *testing.T) {
	db := newTestDB(t)
	seedLegacySite(t, db)

	// The sandbox host now maps to a different tenant than the final domain.
	require.NoError(t, db.Create(&models.TenantModel{ID: 7, Host: "sandbox.example.net", Name: "Other"}).Error)

	report, err := newAuditor(t, db).Run(context.Background(), false)
	require.ErrorIs(t, err, ErrAmbiguousTenant)
	assert.NotEmpty(t, report.Anomalies)
	assert.NotEmpty(t, report.Errors)

	// The aborted run must not have moved the data rows.
	assert.Equal(t, int64(3), countWithTenant(t, db, "paintings", 1))
}

func TestAuditorUnmatchedSiteIsWarned(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.TenantModel{ID: 1, Host: "localhost", Name: "Default tenant"}).Error)
	require.NoError(t, db.Create(&models.TenantModel{ID: 5, Host: "artist5.example.com", Name: "Artist Five"}).Error)
	require.NoError(t, db.Create(&models.SaasSiteModel{
		UserID:      1,
		FinalDomain: "unmapped.example.org",
		TenantID:    1,
	}).Error)

	report, err := newAuditor(t, db).Run(context.Background(), false)
	require.NoError(t, err)

	assert.Empty(t, report.SitesProcessed)
	assert.Empty(t, report.Errors)
	assert.NotEmpty(t, report.Warnings)
}

func TestAuditorSiteWithoutUser(t *testing.T) {
	db := newTestDB(t)

	require.NoError(t, db.Create(&models.TenantModel{ID: 1, Host: "localhost", Name: "Default tenant"}).Error)
	require.NoError(t, db.Create(&models.TenantModel{ID: 5, Host: "artist5.example.com", Name: "Artist Five"}).Error)
	require.NoError(t, db.Create(&models.SaasSiteModel{
		FinalDomain: "artist5.example.com",
		TenantID:    1,
	}).Error)

	report, err := newAuditor(t, db).Run(context.Background(), false)
	require.NoError(t, err)

	require.Len(t, report.SitesProcessed, 1)
	assert.Equal(t, int64(1), report.TotalRowsUpdated)
	assert.NotEmpty(t, report.Warnings)
}

func TestReportWriteFile(t *testing.T) {
	report := NewReport(true)
	report.warnf("example warning")

	path := filepath.Join(t.TempDir(), "report.json")
	require.NoError(t, report.WriteFile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(data, &decoded))
	for _, field := range []string{"execution_date", "tenants_found", "sites_processed", "tables_updated", "total_rows_updated", "anomalies", "warnings", "errors"} {
		assert.Contains(t, decoded, field)
	}
}

func TestDefaultReportFilename(t *testing.T) {
	name := DefaultReportFilename()
	assert.True(t, strings.HasPrefix(name, "tenant_migration_report_"))
	assert.True(t, strings.HasSuffix(name, ".json"))
}
