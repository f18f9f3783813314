package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/errors"
)

type SaasSiteRepository struct {
	tdb TenantDB
}

func NewSaasSiteRepository(tdb TenantDB) *SaasSiteRepository {
	return &SaasSiteRepository{tdb: tdb}
}

func (r *SaasSiteRepository) Create(ctx context.Context, site *models.SaasSiteModel) error {
	site.TenantID = r.tdb.TenantID()
	if err := r.tdb.Unscoped(ctx).Create(site).Error; err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}
	return nil
}

func (r *SaasSiteRepository) FindByID(ctx context.Context, id uint) (*models.SaasSiteModel, error) {
	var site models.SaasSiteModel
	err := r.tdb.Scoped(ctx).Where("id = ?", id).First(&site).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find site: %w", err)
	}
	return &site, nil
}

func (r *SaasSiteRepository) List(ctx context.Context) ([]*models.SaasSiteModel, error) {
	var sites []*models.SaasSiteModel
	err := r.tdb.Scoped(ctx).Order("id").Find(&sites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list sites: %w", err)
	}
	return sites, nil
}

func (r *SaasSiteRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.tdb.Scoped(ctx).Model(&models.SaasSiteModel{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update site status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("site not found")
	}
	return nil
}

func (r *SaasSiteRepository) UpdateDomains(ctx context.Context, id uint, sandboxURL, finalDomain string) error {
	result := r.tdb.Scoped(ctx).Model(&models.SaasSiteModel{}).
		Where("id = ?", id).
		Updates(map[string]interface{}{
			"sandbox_url":  sandboxURL,
			"final_domain": finalDomain,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update site domains: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("site not found")
	}
	return nil
}
