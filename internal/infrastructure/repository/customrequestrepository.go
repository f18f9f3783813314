package repository

import (
	"context"
	"fmt"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/errors"
)

type CustomRequestRepository struct {
	tdb TenantDB
}

func NewCustomRequestRepository(tdb TenantDB) *CustomRequestRepository {
	return &CustomRequestRepository{tdb: tdb}
}

func (r *CustomRequestRepository) Create(ctx context.Context, request *models.CustomRequestModel) error {
	request.TenantID = r.tdb.TenantID()
	if err := r.tdb.Unscoped(ctx).Create(request).Error; err != nil {
		return fmt.Errorf("failed to create custom request: %w", err)
	}
	return nil
}

func (r *CustomRequestRepository) List(ctx context.Context, status string, limit, offset int) ([]*models.CustomRequestModel, int64, error) {
	query := r.tdb.Scoped(ctx).Model(&models.CustomRequestModel{})
	if status != "" {
		query = query.Where("status = ?", status)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count custom requests: %w", err)
	}

	var requests []*models.CustomRequestModel
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&requests).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list custom requests: %w", err)
	}
	return requests, total, nil
}

func (r *CustomRequestRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.tdb.Scoped(ctx).Model(&models.CustomRequestModel{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update custom request status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("custom request not found")
	}
	return nil
}
