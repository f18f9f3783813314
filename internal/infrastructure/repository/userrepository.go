package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/errors"
)

type UserRepository struct {
	tdb TenantDB
}

func NewUserRepository(tdb TenantDB) *UserRepository {
	return &UserRepository{tdb: tdb}
}

func (r *UserRepository) Create(ctx context.Context, user *models.UserModel) error {
	user.TenantID = r.tdb.TenantID()
	if err := r.tdb.Unscoped(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("failed to create user: %w", err)
	}
	return nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uint) (*models.UserModel, error) {
	var model models.UserModel
	err := r.tdb.Scoped(ctx).Where("id = ?", id).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by id: %w", err)
	}
	return &model, nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*models.UserModel, error) {
	var model models.UserModel
	err := r.tdb.Scoped(ctx).Where("email = ?", email).First(&model).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find user by email: %w", err)
	}
	return &model, nil
}

func (r *UserRepository) Update(ctx context.Context, user *models.UserModel) error {
	result := r.tdb.Scoped(ctx).Model(&models.UserModel{}).
		Where("id = ?", user.ID).
		Updates(map[string]interface{}{
			"name":     user.Name,
			"is_admin": user.IsAdmin,
		})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("user not found")
	}
	return nil
}
