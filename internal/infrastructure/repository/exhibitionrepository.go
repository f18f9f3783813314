package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/errors"
)

type ExhibitionRepository struct {
	tdb TenantDB
}

func NewExhibitionRepository(tdb TenantDB) *ExhibitionRepository {
	return &ExhibitionRepository{tdb: tdb}
}

func (r *ExhibitionRepository) Create(ctx context.Context, exhibition *models.ExhibitionModel) error {
	exhibition.TenantID = r.tdb.TenantID()
	if err := r.tdb.Unscoped(ctx).Create(exhibition).Error; err != nil {
		return fmt.Errorf("failed to create exhibition: %w", err)
	}
	return nil
}

func (r *ExhibitionRepository) FindByID(ctx context.Context, id uint) (*models.ExhibitionModel, error) {
	var model models.ExhibitionModel
	err := r.tdb.Scoped(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find exhibition: %w", err)
	}
	return &model, nil
}

func (r *ExhibitionRepository) List(ctx context.Context) ([]*models.ExhibitionModel, error) {
	var exhibitions []*models.ExhibitionModel
	err := r.tdb.Scoped(ctx).Order("starts_at DESC").Find(&exhibitions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list exhibitions: %w", err)
	}
	return exhibitions, nil
}

func (r *ExhibitionRepository) Update(ctx context.Context, exhibition *models.ExhibitionModel) error {
	result := r.tdb.Scoped(ctx).Model(&models.ExhibitionModel{}).
		Where("id = ?", exhibition.ID).
		Updates(map[string]interface{}{
			"title":       exhibition.Title,
			"description": exhibition.Description,
			"location":    exhibition.Location,
			"starts_at":   exhibition.StartsAt,
			"ends_at":     exhibition.EndsAt,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update exhibition: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("exhibition not found")
	}
	return nil
}

func (r *ExhibitionRepository) Delete(ctx context.Context, id uint) error {
	result := r.tdb.Scoped(ctx).Delete(&models.ExhibitionModel{}, "id = ?", id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete exhibition: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("exhibition not found")
	}
	return nil
}
