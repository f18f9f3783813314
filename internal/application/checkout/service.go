// Package checkout turns a user's open cart into an order. The whole
// conversion runs in one transaction so a failure leaves the cart untouched.
package checkout

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/infrastructure/repository"
	shareddb "galerie/internal/shared/db"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/logger"
)

type Service struct {
	db  *gorm.DB
	tm  *shareddb.TransactionManager
	log logger.Interface
}

func NewService(db *gorm.DB, log logger.Interface) *Service {
	return &Service{
		db:  db,
		tm:  shareddb.NewTransactionManager(db),
		log: log.With("component", "checkout.service"),
	}
}

// CreateOrder converts the user's open cart into a pending order. Each
// painting is marked unavailable so it cannot be sold twice, the cart is
// closed and the buyer gets an in-app notification. The order reference is
// the external payment handle.
func (s *Service) CreateOrder(ctx context.Context, tenantID, userID uint) (*models.OrderModel, error) {
	tdb := repository.NewTenantDB(s.db, tenantID)
	carts := repository.NewCartRepository(tdb)
	paintings := repository.NewPaintingRepository(tdb)
	orders := repository.NewOrderRepository(tdb)
	notifications := repository.NewNotificationRepository(tdb)

	var order *models.OrderModel
	err := s.tm.RunInTransaction(ctx, func(ctx context.Context) error {
		cart, err := carts.GetOrCreateOpen(ctx, userID)
		if err != nil {
			return err
		}
		items, err := carts.Items(ctx, cart.ID)
		if err != nil {
			return err
		}
		if len(items) == 0 {
			return errors.NewValidationError("cart is empty")
		}

		var totalCents int64
		orderItems := make([]*models.OrderItemModel, 0, len(items))
		for _, item := range items {
			painting, err := paintings.FindByID(ctx, item.PaintingID)
			if err != nil {
				return err
			}
			if painting == nil {
				return errors.NewNotFoundError(fmt.Sprintf("painting %d no longer exists", item.PaintingID))
			}
			if !painting.Available {
				return errors.NewConflictError(fmt.Sprintf("painting %q is no longer available", painting.Title))
			}

			totalCents += painting.PriceCents * int64(item.Quantity)
			orderItems = append(orderItems, &models.OrderItemModel{
				PaintingID: painting.ID,
				Quantity:   item.Quantity,
				PriceCents: painting.PriceCents,
			})
		}

		order = &models.OrderModel{
			UserID:     userID,
			Reference:  uuid.NewString(),
			Status:     "pending",
			TotalCents: totalCents,
		}
		if err := orders.Create(ctx, order, orderItems); err != nil {
			return err
		}

		for _, item := range orderItems {
			if err := paintings.SetAvailable(ctx, item.PaintingID, false); err != nil {
				return err
			}
		}
		if err := carts.MarkCheckedOut(ctx, cart.ID); err != nil {
			return err
		}

		return notifications.Create(ctx, &models.NotificationModel{
			UserID: userID,
			Title:  "Order created",
			Body:   fmt.Sprintf("Order %s created, awaiting payment", order.Reference),
		})
	})
	if err != nil {
		return nil, err
	}

	s.log.Infow("order created",
		"order_id", order.ID,
		"reference", order.Reference,
		"tenant_id", tenantID,
		"user_id", userID,
		"total_cents", order.TotalCents)
	return order, nil
}
