package settings

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"testing"
	"time"

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

	require.NoError(t, db.AutoMigrate(models.AllModels()...))
	return db
}

type recordingInvalidator struct {
	mu    sync.Mutex
	calls []string
}

func (r *recordingInvalidator) PublishInvalidation(ctx context.Context, tenantID uint, key string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.calls = append(r.calls, fmt.Sprintf("%d:%s", tenantID, key))
	return nil
}

func TestServiceSetAndGet(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db, time.Minute, nil, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, service.Set(ctx, 1, "gallery_title", "First"))
	require.NoError(t, service.Set(ctx, 1, "gallery_title", "Second"))

	t.Run("second write updates the single row", func(t *testing.T) {
		var count int64
		require.NoError(t, db.Model(&models.SettingModel{}).Count(&count).Error)
		assert.Equal(t, int64(1), count)

		value, found, err := service.Get(ctx, 1, "gallery_title")
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, "Second", value)
	})

	t.Run("missing key", func(t *testing.T) {
		_, found, err := service.Get(ctx, 1, "nope")
		require.NoError(t, err)
		assert.False(t, found)
	})

	t.Run("values are per tenant", func(t *testing.T) {
		require.NoError(t, service.Set(ctx, 2, "gallery_title", "Other"))

		value, _, err := service.Get(ctx, 1, "gallery_title")
		require.NoError(t, err)
		assert.Equal(t, "Second", value)

		value, _, err = service.Get(ctx, 2, "gallery_title")
		require.NoError(t, err)
		assert.Equal(t, "Other", value)
	})
}

func TestServiceWriteInvalidatesCache(t *testing.T) {
	db := newTestDB(t)
	service := NewService(db, time.Hour, nil, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, service.Set(ctx, 1, "theme", "dark"))

	// Prime the cache.
	value, _, err := service.Get(ctx, 1, "theme")
	require.NoError(t, err)
	assert.Equal(t, "dark", value)

	// The next read must see the new value despite the long TTL.
	require.NoError(t, service.Set(ctx, 1, "theme", "light"))
	value, _, err = service.Get(ctx, 1, "theme")
	require.NoError(t, err)
	assert.Equal(t, "light", value)

	t.Run("delete also evicts", func(t *testing.T) {
		require.NoError(t, service.Delete(ctx, 1, "theme"))
		_, found, err := service.Get(ctx, 1, "theme")
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestServicePublishesInvalidations(t *testing.T) {
	db := newTestDB(t)
	invalidator := &recordingInvalidator{}
	service := NewService(db, time.Minute, invalidator, logger.NewLogger())
	ctx := context.Background()

	require.NoError(t, service.Set(ctx, 3, "theme", "dark"))
	require.NoError(t, service.Set(ctx, 3, "theme", "light"))
	require.NoError(t, service.Delete(ctx, 3, "theme"))

	assert.Equal(t, []string{"3:theme", "3:theme", "3:theme"}, invalidator.calls)
}

func TestCacheTTL(t *testing.T) {
	cache := NewCache(time.Minute)
	now := time.Now()
	cache.now = func() time.Time { return now }

	cache.Set(1, "theme", "dark")

	value, ok := cache.Get(1, "theme")
	require.True(t, ok)
	assert.Equal(t, "dark", value)

	t.Run("expired entry is evicted", func(t *testing.T) {
		now = now.Add(2 * time.Minute)
		_, ok := cache.Get(1, "theme")
		assert.False(t, ok)
	})

	t.Run("entries are keyed per tenant", func(t *testing.T) {
		cache.Set(1, "theme", "dark")
		_, ok := cache.Get(2, "theme")
		assert.False(t, ok)
	})

	t.Run("invalidate removes the entry", func(t *testing.T) {
		cache.Set(1, "theme", "dark")
		cache.Invalidate(1, "theme")
		_, ok := cache.Get(1, "theme")
		assert.False(t, ok)
	})
}
