package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/errors"
)

type PaintingRepository struct {
	tdb TenantDB
}

func NewPaintingRepository(tdb TenantDB) *PaintingRepository {
	return &PaintingRepository{tdb: tdb}
}

func (r *PaintingRepository) Create(ctx context.Context, painting *models.PaintingModel) error {
	painting.TenantID = r.tdb.TenantID()
	if err := r.tdb.Unscoped(ctx).Create(painting).Error; err != nil {
		return fmt.Errorf("failed to create painting: %w", err)
	}
	return nil
}

func (r *PaintingRepository) FindByID(ctx context.Context, id uint) (*models.PaintingModel, error) {
	var model models.PaintingModel
	err := r.tdb.Scoped(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find painting by id: %w", err)
	}
	return &model, nil
}

// List returns paintings for the bound tenant. When availableOnly is set,
// sold works are filtered out (the public storefront view).
func (r *PaintingRepository) List(ctx context.Context, availableOnly bool, limit, offset int) ([]*models.PaintingModel, int64, error) {
	query := r.tdb.Scoped(ctx).Model(&models.PaintingModel{})
	if availableOnly {
		query = query.Where("available = ?", true)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count paintings: %w", err)
	}

	var modelList []*models.PaintingModel
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&modelList).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list paintings: %w", err)
	}

	return modelList, total, nil
}

func (r *PaintingRepository) Update(ctx context.Context, painting *models.PaintingModel) error {
	result := r.tdb.Scoped(ctx).Model(&models.PaintingModel{}).
		Where("id = ?", painting.ID).
		Updates(map[string]interface{}{
			"title":       painting.Title,
			"description": painting.Description,
			"technique":   painting.Technique,
			"width_cm":    painting.WidthCm,
			"height_cm":   painting.HeightCm,
			"price_cents": painting.PriceCents,
			"image_url":   painting.ImageURL,
			"available":   painting.Available,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update painting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("painting not found")
	}
	return nil
}

func (r *PaintingRepository) SetAvailable(ctx context.Context, id uint, available bool) error {
	result := r.tdb.Scoped(ctx).Model(&models.PaintingModel{}).
		Where("id = ?", id).
		Update("available", available)
	if result.Error != nil {
		return fmt.Errorf("failed to update painting availability: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("painting not found")
	}
	return nil
}

func (r *PaintingRepository) Delete(ctx context.Context, id uint) error {
	result := r.tdb.Scoped(ctx).Delete(&models.PaintingModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete painting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("painting not found")
	}
	return nil
}
