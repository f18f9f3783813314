package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
)

type FavoriteRepository struct {
	tdb TenantDB
}

func NewFavoriteRepository(tdb TenantDB) *FavoriteRepository {
	return &FavoriteRepository{tdb: tdb}
}

// Toggle flips the favorite state of a painting for a user and reports the
// resulting state (true when the favorite now exists).
func (r *FavoriteRepository) Toggle(ctx context.Context, userID, paintingID uint) (bool, error) {
	var existing models.FavoriteModel
	err := r.tdb.Scoped(ctx).
		Where("user_id = ? AND painting_id = ?", userID, paintingID).
		First(&existing).Error
	if err == nil {
		if err := r.tdb.Scoped(ctx).Delete(&models.FavoriteModel{}, "id = ?", existing.ID).Error; err != nil {
			return false, fmt.Errorf("failed to remove favorite: %w", err)
		}
		return false, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return false, fmt.Errorf("failed to check favorite: %w", err)
	}

	fav := models.FavoriteModel{
		UserID:     userID,
		PaintingID: paintingID,
		TenantID:   r.tdb.TenantID(),
	}
	if err := r.tdb.Unscoped(ctx).Create(&fav).Error; err != nil {
		return false, fmt.Errorf("failed to create favorite: %w", err)
	}
	return true, nil
}

func (r *FavoriteRepository) ListByUser(ctx context.Context, userID uint) ([]*models.FavoriteModel, error) {
	var favorites []*models.FavoriteModel
	err := r.tdb.Scoped(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Find(&favorites).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list favorites: %w", err)
	}
	return favorites, nil
}
