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

type NotificationHandler struct {
	db *gorm.DB
}

func NewNotificationHandler(db *gorm.DB) *NotificationHandler {
	return &NotificationHandler{db: db}
}

func (h *NotificationHandler) repo(c *gin.Context) *repository.NotificationRepository {
	return repository.NewNotificationRepository(tenantDB(c, h.db))
}

func (h *NotificationHandler) List(c *gin.Context) {
	page, pageSize, limit, offset := pagination(c)
	ctx := c.Request.Context()
	userID := middleware.UserID(c)

	notifications, total, err := h.repo(c).ListByUser(ctx, userID, limit, offset)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	unread, err := h.repo(c).CountUnread(ctx, userID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", gin.H{
		"items":     notifications,
		"total":     total,
		"unread":    unread,
		"page":      page,
		"page_size": pageSize,
	})
}

func (h *NotificationHandler) MarkAsRead(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid notification id"))
		return
	}

	if err := h.repo(c).MarkAsRead(c.Request.Context(), middleware.UserID(c), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "notification marked as read", nil)
}
