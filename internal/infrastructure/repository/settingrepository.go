package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/errors"
)

type SettingRepository struct {
	tdb TenantDB
}

func NewSettingRepository(tdb TenantDB) *SettingRepository {
	return &SettingRepository{tdb: tdb}
}

func (r *SettingRepository) Get(ctx context.Context, key string) (*models.SettingModel, error) {
	var model models.SettingModel
	err := r.tdb.Scoped(ctx).Where("`key` = ?", key).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get setting: %w", err)
	}
	return &model, nil
}

// Upsert writes a setting value. A second write for the same (key, tenant)
// pair updates the existing row in place, relying on the unique index the
// migrator maintains.
func (r *SettingRepository) Upsert(ctx context.Context, key, value string) error {
	model := models.SettingModel{
		Key:      key,
		Value:    value,
		TenantID: r.tdb.TenantID(),
	}
	err := r.tdb.Unscoped(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "key"}, {Name: "tenant_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&model).Error
	if err != nil {
		return fmt.Errorf("failed to upsert setting: %w", err)
	}
	return nil
}

func (r *SettingRepository) Delete(ctx context.Context, key string) error {
	result := r.tdb.Scoped(ctx).Where("`key` = ?", key).Delete(&models.SettingModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete setting: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("setting not found")
	}
	return nil
}

func (r *SettingRepository) List(ctx context.Context) ([]*models.SettingModel, error) {
	var settings []*models.SettingModel
	err := r.tdb.Scoped(ctx).Order("`key`").Find(&settings).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list settings: %w", err)
	}
	return settings, nil
}
