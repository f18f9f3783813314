package repository

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
	"galerie/internal/shared/errors"
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

func TestTenantScoping(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	usersA := NewUserRepository(NewTenantDB(db, 1))
	usersB := NewUserRepository(NewTenantDB(db, 2))

	alice := &models.UserModel{Email: "alice@example.com", PasswordHash: "x", Name: "Alice"}
	require.NoError(t, usersA.Create(ctx, alice))
	assert.Equal(t, uint(1), alice.TenantID)

	t.Run("reads stay inside the bound tenant", func(t *testing.T) {
		found, err := usersA.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, alice.ID, found.ID)

		leaked, err := usersB.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		assert.Nil(t, leaked)
	})

	t.Run("same email can exist under two tenants", func(t *testing.T) {
		other := &models.UserModel{Email: "alice@example.com", PasswordHash: "y", Name: "Other Alice"}
		require.NoError(t, usersB.Create(ctx, other))
		assert.Equal(t, uint(2), other.TenantID)

		found, err := usersB.FindByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "Other Alice", found.Name)
	})

	t.Run("updates cannot cross tenants", func(t *testing.T) {
		err := usersB.Update(ctx, &models.UserModel{ID: alice.ID, Name: "hijacked"})
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeNotFound, appErr.Type)
	})
}

func TestPaintingRepositoryList(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()

	paintingsA := NewPaintingRepository(NewTenantDB(db, 1))
	paintingsB := NewPaintingRepository(NewTenantDB(db, 2))

	require.NoError(t, paintingsA.Create(ctx, &models.PaintingModel{Title: "Dunes", PriceCents: 120000, Available: true}))
	require.NoError(t, paintingsA.Create(ctx, &models.PaintingModel{Title: "Sold piece", PriceCents: 90000, Available: false}))
	require.NoError(t, paintingsB.Create(ctx, &models.PaintingModel{Title: "Harbor", PriceCents: 45000, Available: true}))

	available, total, err := paintingsA.List(ctx, true, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, available, 1)
	assert.Equal(t, "Dunes", available[0].Title)

	all, total, err := paintingsA.List(ctx, false, 0, 0)
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	assert.Len(t, all, 2)

	t.Run("unavailable stays unavailable after create", func(t *testing.T) {
		sold := &models.PaintingModel{Title: "Archived", PriceCents: 50000, Available: false}
		require.NoError(t, paintingsA.Create(ctx, sold))

		got, err := paintingsA.FindByID(ctx, sold.ID)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.False(t, got.Available)

		available, total, err := paintingsA.List(ctx, true, 0, 0)
		require.NoError(t, err)
		assert.Equal(t, int64(1), total)
		require.Len(t, available, 1)
		assert.Equal(t, "Dunes", available[0].Title)
	})
}

func TestCartRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	carts := NewCartRepository(NewTenantDB(db, 1))

	cart, err := carts.GetOrCreateOpen(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, "open", cart.Status)

	again, err := carts.GetOrCreateOpen(ctx, 7)
	require.NoError(t, err)
	assert.Equal(t, cart.ID, again.ID)

	item, err := carts.AddItem(ctx, cart.ID, 11, 1)
	require.NoError(t, err)
	assert.Equal(t, uint(1), item.TenantID)

	t.Run("duplicate painting is a conflict", func(t *testing.T) {
		_, err := carts.AddItem(ctx, cart.ID, 11, 1)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)
	})

	t.Run("other tenant cannot add to the cart", func(t *testing.T) {
		other := NewCartRepository(NewTenantDB(db, 2))
		_, err := other.AddItem(ctx, cart.ID, 12, 1)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeNotFound, appErr.Type)
	})

	t.Run("checkout closes the cart once", func(t *testing.T) {
		require.NoError(t, carts.MarkCheckedOut(ctx, cart.ID))
		err := carts.MarkCheckedOut(ctx, cart.ID)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)
	})
}

func TestOrderRepository(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	orders := NewOrderRepository(NewTenantDB(db, 3))

	order := &models.OrderModel{UserID: 9, Reference: "ref-123", Status: "pending", TotalCents: 150000}
	items := []*models.OrderItemModel{
		{PaintingID: 1, Quantity: 1, PriceCents: 100000},
		{PaintingID: 2, Quantity: 1, PriceCents: 50000},
	}
	require.NoError(t, orders.Create(ctx, order, items))

	t.Run("items inherit the order tenant", func(t *testing.T) {
		got, err := orders.Items(ctx, order.ID)
		require.NoError(t, err)
		require.Len(t, got, 2)
		for _, item := range got {
			assert.Equal(t, uint(3), item.TenantID)
		}
	})

	t.Run("items are invisible from another tenant", func(t *testing.T) {
		other := NewOrderRepository(NewTenantDB(db, 1))
		_, err := other.Items(ctx, order.ID)
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeNotFound, appErr.Type)
	})

	t.Run("status update by reference", func(t *testing.T) {
		require.NoError(t, orders.UpdateStatusByReference(ctx, "ref-123", "paid"))
		found, err := orders.FindByReference(ctx, "ref-123")
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, "paid", found.Status)
	})
}

func TestSettingRepositoryUpsert(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	settings := NewSettingRepository(NewTenantDB(db, 1))

	require.NoError(t, settings.Upsert(ctx, "gallery_title", "First"))
	require.NoError(t, settings.Upsert(ctx, "gallery_title", "Second"))

	var count int64
	require.NoError(t, db.Model(&models.SettingModel{}).Where("`key` = ?", "gallery_title").Count(&count).Error)
	assert.Equal(t, int64(1), count)

	setting, err := settings.Get(ctx, "gallery_title")
	require.NoError(t, err)
	require.NotNil(t, setting)
	assert.Equal(t, "Second", setting.Value)

	t.Run("same key is independent per tenant", func(t *testing.T) {
		other := NewSettingRepository(NewTenantDB(db, 2))
		require.NoError(t, other.Upsert(ctx, "gallery_title", "Other"))

		setting, err := settings.Get(ctx, "gallery_title")
		require.NoError(t, err)
		assert.Equal(t, "Second", setting.Value)
	})
}

func TestFavoriteRepositoryToggle(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	favorites := NewFavoriteRepository(NewTenantDB(db, 1))

	on, err := favorites.Toggle(ctx, 7, 11)
	require.NoError(t, err)
	assert.True(t, on)

	off, err := favorites.Toggle(ctx, 7, 11)
	require.NoError(t, err)
	assert.False(t, off)

	list, err := favorites.ListByUser(ctx, 7)
	require.NoError(t, err)
	assert.Empty(t, list)
}

func TestStripeEventRepositoryDedup(t *testing.T) {
	db := newTestDB(t)
	ctx := context.Background()
	events := NewStripeEventRepository(NewTenantDB(db, 1))

	created, err := events.RecordIfNew(ctx, &models.StripeEventModel{EventID: "evt_1", EventType: "checkout.session.completed"})
	require.NoError(t, err)
	assert.True(t, created)

	created, err = events.RecordIfNew(ctx, &models.StripeEventModel{EventID: "evt_1", EventType: "checkout.session.completed"})
	require.NoError(t, err)
	assert.False(t, created)

	t.Run("same event id under another tenant is new", func(t *testing.T) {
		other := NewStripeEventRepository(NewTenantDB(db, 2))
		created, err := other.RecordIfNew(ctx, &models.StripeEventModel{EventID: "evt_1", EventType: "checkout.session.completed"})
		require.NoError(t, err)
		assert.True(t, created)
	})
}
