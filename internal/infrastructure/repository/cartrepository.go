package repository

import (
	"context"
	stderrors "errors"
	"fmt"

	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/errors"
)

type CartRepository struct {
	tdb TenantDB
}

func NewCartRepository(tdb TenantDB) *CartRepository {
	return &CartRepository{tdb: tdb}
}

// GetOrCreateOpen returns the user's open cart, creating one when absent.
func (r *CartRepository) GetOrCreateOpen(ctx context.Context, userID uint) (*models.CartModel, error) {
	var cart models.CartModel
	err := r.tdb.Scoped(ctx).
		Where("user_id = ? AND status = ?", userID, "open").
		First(&cart).Error
	if err == nil {
		return &cart, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to find open cart: %w", err)
	}

	cart = models.CartModel{UserID: userID, Status: "open", TenantID: r.tdb.TenantID()}
	if err := r.tdb.Unscoped(ctx).Create(&cart).Error; err != nil {
		return nil, fmt.Errorf("failed to create cart: %w", err)
	}
	return &cart, nil
}

func (r *CartRepository) FindByID(ctx context.Context, id uint) (*models.CartModel, error) {
	var cart models.CartModel
	err := r.tdb.Scoped(ctx).Where("id = ?", id).First(&cart).Error
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to find cart: %w", err)
	}
	return &cart, nil
}

// AddItem appends a painting to the cart. The cart is looked up under the
// bound tenant first so an item can never be attached to another tenant's
// cart.
func (r *CartRepository) AddItem(ctx context.Context, cartID, paintingID uint, quantity int) (*models.CartItemModel, error) {
	cart, err := r.FindByID(ctx, cartID)
	if err != nil {
		return nil, err
	}
	if cart == nil {
		return nil, errors.NewNotFoundError("cart not found")
	}

	var existing models.CartItemModel
	err = r.tdb.Scoped(ctx).
		Where("cart_id = ? AND painting_id = ?", cartID, paintingID).
		First(&existing).Error
	if err == nil {
		return nil, errors.NewConflictError("painting already in cart")
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("failed to check cart item: %w", err)
	}

	item := models.CartItemModel{
		CartID:     cartID,
		PaintingID: paintingID,
		Quantity:   quantity,
		TenantID:   r.tdb.TenantID(),
	}
	if err := r.tdb.Unscoped(ctx).Create(&item).Error; err != nil {
		return nil, fmt.Errorf("failed to add cart item: %w", err)
	}
	return &item, nil
}

func (r *CartRepository) Items(ctx context.Context, cartID uint) ([]*models.CartItemModel, error) {
	var items []*models.CartItemModel
	err := r.tdb.Scoped(ctx).
		Where("cart_id = ?", cartID).
		Order("id").
		Find(&items).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list cart items: %w", err)
	}
	return items, nil
}

func (r *CartRepository) UpdateItemQuantity(ctx context.Context, cartID, itemID uint, quantity int) error {
	result := r.tdb.Scoped(ctx).Model(&models.CartItemModel{}).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Update("quantity", quantity)
	if result.Error != nil {
		return fmt.Errorf("failed to update cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("cart item not found")
	}
	return nil
}

func (r *CartRepository) RemoveItem(ctx context.Context, cartID, itemID uint) error {
	result := r.tdb.Scoped(ctx).
		Where("id = ? AND cart_id = ?", itemID, cartID).
		Delete(&models.CartItemModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to remove cart item: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewNotFoundError("cart item not found")
	}
	return nil
}

func (r *CartRepository) MarkCheckedOut(ctx context.Context, cartID uint) error {
	result := r.tdb.Scoped(ctx).Model(&models.CartModel{}).
		Where("id = ? AND status = ?", cartID, "open").
		Update("status", "checked_out")
	if result.Error != nil {
		return fmt.Errorf("failed to mark cart checked out: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return errors.NewConflictError("cart is not open")
	}
	return nil
}
