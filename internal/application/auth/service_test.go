package auth

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

	infraauth "galerie/internal/infrastructure/auth"
	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/logger"
)

func newTestService(t *testing.T) (*Service, *gorm.DB) {
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

	jwt := infraauth.NewJWTService("test-secret", 60)
	// MinCost keeps the bcrypt work factor cheap for tests.
	hasher := infraauth.NewPasswordHasher(4)
	return NewService(db, jwt, hasher, logger.NewLogger()), db
}

func TestRegisterAndLogin(t *testing.T) {
	service, _ := newTestService(t)
	ctx := context.Background()

	user, token, err := service.Register(ctx, 1, "alice@example.com", "s3cret-pass", "Alice")
	require.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, uint(1), user.TenantID)
	assert.NotEqual(t, "s3cret-pass", user.PasswordHash)

	t.Run("login with correct password", func(t *testing.T) {
		logged, token, err := service.Login(ctx, 1, "alice@example.com", "s3cret-pass")
		require.NoError(t, err)
		assert.Equal(t, user.ID, logged.ID)
		assert.NotEmpty(t, token)
	})

	t.Run("wrong password is unauthorized", func(t *testing.T) {
		_, _, err := service.Login(ctx, 1, "alice@example.com", "wrong")
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
	})

	t.Run("duplicate email within the tenant conflicts", func(t *testing.T) {
		_, _, err := service.Register(ctx, 1, "alice@example.com", "another-pass", "Alice 2")
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeConflict, appErr.Type)
	})

	t.Run("same email registers fine on another tenant", func(t *testing.T) {
		other, _, err := service.Register(ctx, 2, "alice@example.com", "other-pass", "Other Alice")
		require.NoError(t, err)
		assert.Equal(t, uint(2), other.TenantID)
	})

	t.Run("credentials do not cross tenants", func(t *testing.T) {
		_, _, err := service.Login(ctx, 3, "alice@example.com", "s3cret-pass")
		appErr, ok := errors.AsAppError(err)
		require.True(t, ok)
		assert.Equal(t, errors.ErrorTypeUnauthorized, appErr.Type)
	})
}
