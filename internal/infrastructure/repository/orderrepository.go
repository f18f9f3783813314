package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/errors"
)

type OrderRepository struct {
	tdb TenantDB
}

func NewOrderRepository(tdb TenantDB) *OrderRepository {
	return &OrderRepository{tdb: tdb}
}

// Create persists an order with its items in one transaction. Items share
// the order's tenant id.
func (r *OrderRepository) Create(ctx context.Context, order *models.OrderModel, items []*models.OrderItemModel) error {
	order.TenantID = r.tdb.TenantID()

	return r.tdb.Unscoped(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(order).Error; err != nil {
			return fmt.Errorf("failed to create order: %w", err)
		}
		for _, item := range items {
			item.OrderID = order.ID
			item.TenantID = order.TenantID
			if err := tx.Create(item).Error; err != nil {
				return fmt.Errorf("failed to create order item: %w", err)
			}
		}
		return nil
	})
}

func (r *OrderRepository) FindByID(ctx context.Context, id uint) (*models.OrderModel, error) {
	var order models.OrderModel
	err := r.tdb.Scoped(ctx).Where("id = ?", id).First(&order).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order: %w", err)
	}
	return &order, nil
}

func (r *OrderRepository) FindByReference(ctx context.Context, reference string) (*models.OrderModel, error) {
	var order models.OrderModel
	err := r.tdb.Scoped(ctx).Where("reference = ?", reference).First(&order).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find order by reference: %w", err)
	}
	return &order, nil
}

// Items returns the order's line items, tenant-checked on both sides of the
// order relation.
func (r *OrderRepository) Items(ctx context.Context, orderID uint) ([]*models.OrderItemModel, error) {
	order, err := r.FindByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if order == nil {
		return nil, errors.NewNotFoundError("order not found")
	}

	var items []*models.OrderItemModel
	err = r.tdb.Scoped(ctx).Where("order_id = ?", orderID).Order("id").Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list order items: %w", err)
	}
	return items, nil
}

func (r *OrderRepository) ListByUser(ctx context.Context, userID uint, limit, offset int) ([]*models.OrderModel, int64, error) {
	return r.list(ctx, r.tdb.Scoped(ctx).Model(&models.OrderModel{}).Where("user_id = ?", userID), limit, offset)
}

func (r *OrderRepository) List(ctx context.Context, limit, offset int) ([]*models.OrderModel, int64, error) {
	return r.list(ctx, r.tdb.Scoped(ctx).Model(&models.OrderModel{}), limit, offset)
}

func (r *OrderRepository) list(ctx context.Context, query *gorm.DB, limit, offset int) ([]*models.OrderModel, int64, error) {
	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count orders: %w", err)
	}

	var orders []*models.OrderModel
	query = query.Order("created_at DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	if err := query.Find(&orders).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to list orders: %w", err)
	}
	return orders, total, nil
}

func (r *OrderRepository) UpdateStatus(ctx context.Context, id uint, status string) error {
	result := r.tdb.Scoped(ctx).Model(&models.OrderModel{}).
		Where("id = ?", id).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("order not found")
	}
	return nil
}

// UpdateStatusByReference transitions an order found via its payment
// reference, used by the Stripe webhook path.
func (r *OrderRepository) UpdateStatusByReference(ctx context.Context, reference, status string) error {
	result := r.tdb.Scoped(ctx).Model(&models.OrderModel{}).
		Where("reference = ?", reference).
		Update("status", status)
	if result.Error != nil {
		return fmt.Errorf("failed to update order status by reference: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("order not found")
	}
	return nil
}
