package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"galerie/internal/application/checkout"
	"galerie/internal/infrastructure/repository"
	"galerie/internal/interfaces/http/middleware"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/utils"
)

type OrderHandler struct {
	db       *gorm.DB
	checkout *checkout.Service
}

func NewOrderHandler(db *gorm.DB, checkoutService *checkout.Service) *OrderHandler {
	return &OrderHandler{db: db, checkout: checkoutService}
}

func (h *OrderHandler) repo(c *gin.Context) *repository.OrderRepository {
	return repository.NewOrderRepository(tenantDB(c, h.db))
}

// Checkout converts the caller's open cart into a pending order.
func (h *OrderHandler) Checkout(c *gin.Context) {
	order, err := h.checkout.CreateOrder(c.Request.Context(), middleware.TenantID(c), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	page, pageSize, limit, offset := pagination(c)

	orders, total, err := h.repo(c).ListByUser(c.Request.Context(), middleware.UserID(c), limit, offset)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:    orders,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// ListAll is the admin view across all users of the tenant.
func (h *OrderHandler) ListAll(c *gin.Context) {
	page, pageSize, limit, offset := pagination(c)

	orders, total, err := h.repo(c).List(c.Request.Context(), limit, offset)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:    orders,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid order id"))
		return
	}

	orders := h.repo(c)
	order, err := orders.FindByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if order == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("order not found"))
		return
	}
	if order.UserID != middleware.UserID(c) && !c.GetBool(middleware.IsAdminKey) {
		utils.ErrorResponseWithError(c, errors.NewForbiddenError("not your order"))
		return
	}

	items, err := orders.Items(c.Request.Context(), order.ID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"order": order, "items": items})
}

type orderStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending paid shipped delivered cancelled"`
}

func (h *OrderHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid order id"))
		return
	}

	var req orderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := h.repo(c).UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "order status updated", nil)
}
