package repository

import (
	"context"
	"fmt"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/errors"
)

type NotificationRepository struct {
	tdb TenantDB
}

func NewNotificationRepository(tdb TenantDB) *NotificationRepository {
	return &NotificationRepository{tdb: tdb}
}

func (r *NotificationRepository) Create(ctx context.Context, notif *models.NotificationModel) error {
	notif.TenantID = r.tdb.TenantID()
	if err := r.tdb.Unscoped(ctx).Create(notif).Error; err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	return nil
}

func (r *NotificationRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.NotificationModel, int64, error) {
	query := r.tdb.Scoped(ctx).Model(&models.NotificationModel{}).Where("user_id = ?", userID)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count notifications: %w", err)
	}

	var notifications []*models.NotificationModel
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&notifications).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list notifications: %w", err)
	}
	return notifications, total, nil
}

func (r *NotificationRepository) CountUnread(ctx context.Context, userID uint) (int64, error) {
	var count int64
	err := r.tdb.Scoped(ctx).
		Model(&models.NotificationModel{}).
		Where("user_id = ? AND read_status = ?", userID, "unread").
		Count(&count).Error
	if err != nil {
		return 0, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return count, nil
}

func (r *NotificationRepository) MarkAsRead(ctx context.Context, userID, id uint) error {
	result := r.tdb.Scoped(ctx).
		Model(&models.NotificationModel{}).
		Where("id = ? AND user_id = ?", id, userID).
		Update("read_status", "read")
	if result.Error != nil {
		return fmt.Errorf("failed to mark notification as read: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("notification not found")
	}
	return nil
}
