// Package settings exposes tenant-scoped configuration values with a
// short-lived in-process cache in front of the settings table.
package settings

import (
	"context"
	"time"

	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/infrastructure/repository"
	"galerie/internal/shared/logger"
)

// Invalidator broadcasts cache invalidations to other running instances.
// Optional; without one, remote staleness is bounded by the cache TTL.
type Invalidator interface {
	PublishInvalidation(ctx context.Context, tenantID uint, key string) error
}

// Service reads and writes settings for any tenant. Writes invalidate the
// local cache synchronously before returning.
type Service struct {
	db          *gorm.DB
	cache       *Cache
	invalidator Invalidator
	log         logger.Interface
}

func NewService(db *gorm.DB, ttl time.Duration, invalidator Invalidator, log logger.Interface) *Service {
	return &Service{
		db:          db,
		cache:       NewCache(ttl),
		invalidator: invalidator,
		log:         log.With("component", "settings.service"),
	}
}

// Cache exposes the underlying cache for the invalidation subscriber.
func (s *Service) Cache() *Cache {
	return s.cache
}

func (s *Service) repo(tenantID uint) *repository.SettingRepository {
	return repository.NewSettingRepository(repository.NewTenantDB(s.db, tenantID))
}

// Get returns the value for (key, tenant). The second return reports
// whether the key exists.
func (s *Service) Get(ctx context.Context, tenantID uint, key string) (string, bool, error) {
	if value, ok := s.cache.Get(tenantID, key); ok {
		return value, true, nil
	}

	setting, err := s.repo(tenantID).Get(ctx, key)
	if err != nil {
		return "", false, err
	}
	if setting == nil {
		return "", false, nil
	}

	s.cache.Set(tenantID, key, setting.Value)
	return setting.Value, true, nil
}

// Set upserts the value for (key, tenant): a second write for the same pair
// updates the single existing row in place.
func (s *Service) Set(ctx context.Context, tenantID uint, key, value string) error {
	if err := s.repo(tenantID).Upsert(ctx, key, value); err != nil {
		return err
	}

	s.cache.Invalidate(tenantID, key)
	s.publishInvalidation(ctx, tenantID, key)
	return nil
}

func (s *Service) Delete(ctx context.Context, tenantID uint, key string) error {
	if err := s.repo(tenantID).Delete(ctx, key); err != nil {
		return err
	}

	s.cache.Invalidate(tenantID, key)
	s.publishInvalidation(ctx, tenantID, key)
	return nil
}

// List returns all settings rows for the tenant, bypassing the cache.
func (s *Service) List(ctx context.Context, tenantID uint) ([]*models.SettingModel, error) {
	return s.repo(tenantID).List(ctx)
}

func (s *Service) publishInvalidation(ctx context.Context, tenantID uint, key string) {
	if s.invalidator == nil {
		return
	}
	if err := s.invalidator.PublishInvalidation(ctx, tenantID, key); err != nil {
		// Remote caches fall back to their TTL expiry.
		s.log.Warnw("failed to publish settings invalidation",
			"tenant_id", tenantID, "key", key, "error", err)
	}
}
