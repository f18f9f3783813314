package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"galerie/internal/infrastructure/repository"
	"galerie/internal/interfaces/http/middleware"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/utils"
)

type CartHandler struct {
	db *gorm.DB
}

func NewCartHandler(db *gorm.DB) *CartHandler {
	return &CartHandler{db: db}
}

type addItemRequest struct {
	PaintingID uint `json:"painting_id" binding:"required"`
	Quantity   int  `json:"quantity" binding:"omitempty,gte=1"`
}

func (h *CartHandler) repo(c *gin.Context) *repository.CartRepository {
	return repository.NewCartRepository(tenantDB(c, h.db))
}

// Get returns the caller's open cart with its items, creating an empty cart
// on first access.
func (h *CartHandler) Get(c *gin.Context) {
	carts := h.repo(c)
	cart, err := carts.GetOrCreateOpen(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	items, err := carts.Items(c.Request.Context(), cart.ID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"cart": cart, "items": items})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	carts := h.repo(c)
	ctx := c.Request.Context()

	painting, err := repository.NewPaintingRepository(tenantDB(c, h.db)).FindByID(ctx, req.PaintingID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if painting == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("painting not found"))
		return
	}
	if !painting.Available {
		utils.ErrorResponseWithError(c, errors.NewConflictError("painting is not available"))
		return
	}

	cart, err := carts.GetOrCreateOpen(ctx, middleware.UserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	item, err := carts.AddItem(ctx, cart.ID, req.PaintingID, req.Quantity)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, item)
}

type updateItemRequest struct {
	Quantity int `json:"quantity" binding:"required,gte=1"`
}

func (h *CartHandler) UpdateItem(c *gin.Context) {
	itemID, ok := idParam(c, "item_id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid item id"))
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	carts := h.repo(c)
	cart, err := carts.GetOrCreateOpen(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := carts.UpdateItemQuantity(c.Request.Context(), cart.ID, itemID, req.Quantity); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "item updated", nil)
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	itemID, ok := idParam(c, "item_id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid item id"))
		return
	}

	carts := h.repo(c)
	cart, err := carts.GetOrCreateOpen(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if err := carts.RemoveItem(c.Request.Context(), cart.ID, itemID); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "item removed", nil)
}
