package checkout

import (
	"context"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/infrastructure/repository"
	"galerie/internal/shared/errors"
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

func seedCart(t *testing.T, db *gorm.DB, tenantID, userID uint) []*models.PaintingModel {
	t.Helper()

	tdb := repository.NewTenantDB(db, tenantID)
	paintings := repository.NewPaintingRepository(tdb)
	carts := repository.NewCartRepository(tdb)
	ctx := context.Background()

	first := &models.PaintingModel{Title: "Dunes", PriceCents: 120000, Available: true}
	second := &models.PaintingModel{Title: "Harbor", PriceCents: 80000, Available: true}
	require.NoError(t, paintings.Create(ctx, first))
	require.NoError(t, paintings.Create(ctx, second))

	cart, err := carts.GetOrCreateOpen(ctx, userID)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, cart.ID, first.ID, 1)
	require.NoError(t, err)
	_, err = carts.AddItem(ctx, cart.ID, second.ID, 1)
	require.NoError(t, err)

	return []*models.PaintingModel{first, second}
}

func TestCreateOrder(t *testing.T) {
	db := newTestDB(t)
	seeded := seedCart(t, db, 1, 7)
	service := NewService(db, logger.NewLogger())
	ctx := context.Background()

	order, err := service.CreateOrder(ctx, 1, 7)
	require.NoError(t, err)
	assert.Equal(t, "pending", order.Status)
	assert.Equal(t, int64(200000), order.TotalCents)
	assert.NotEmpty(t, order.Reference)
	assert.Equal(t, uint(1), order.TenantID)

	tdb := repository.NewTenantDB(db, 1)

	t.Run("line items capture the purchase price", func(t *testing.T) {
		items, err := repository.NewOrderRepository(tdb).Items(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, items, 2)
	})

	t.Run("paintings become unavailable", func(t *testing.T) {
		for _, p := range seeded {
			got, err := repository.NewPaintingRepository(tdb).FindByID(ctx, p.ID)
			require.NoError(t, err)
			assert.False(t, got.Available, got.Title)
		}
	})

	t.Run("cart is closed and a fresh one opens", func(t *testing.T) {
		cart, err := repository.NewCartRepository(tdb).GetOrCreateOpen(ctx, 7)
		require.NoError(t, err)
		items, err := repository.NewCartRepository(tdb).Items(ctx, cart.ID)
		require.NoError(t, err)
		assert.Empty(t, items)
	})

	t.Run("buyer is notified", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&models.NotificationModel{}).Where("user_id = ?", 7).Count(&count).Error)
		assert.Equal(t, int64(1), count)
	})
}

func TestCreateOrderEmptyCart(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db, logger.NewLogger())

	_, err := service.CreateOrder(context.Background(), 1, 7)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeValidation, appErr.Type)
}

func TestCreateOrderSoldPaintingAbortsWholeOrder(t *testing.T) {
	db := newTestDB(t)
	seeded := seedCart(t, db, 1, 7)
	service := NewService(db, logger.NewLogger())
	ctx := context.Background()

	// Someone else buys the first painting before checkout.
	tdb := repository.NewTenantDB(db, 1)
	require.NoError(t, repository.NewPaintingRepository(tdb).SetAvailable(ctx, seeded[0].ID, false))

	_, err := service.CreateOrder(ctx, 1, 7)
	appErr, ok := errors.AsAppError(err)
	require.True(t, ok)
	assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)

	t.Run("nothing was committed", func(t *testing.T) {
		var orders int64
		require.NoError(t, db.Model(&models.OrderModel{}).Count(&orders).Error)
		assert.Zero(t, orders)

		got, err := repository.NewPaintingRepository(tdb).FindByID(ctx, seeded[1].ID)
		require.NoError(t, err)
		assert.True(t, got.Available)
	})
}
