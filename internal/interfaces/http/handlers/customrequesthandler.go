package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/infrastructure/repository"
	"galerie/internal/interfaces/http/middleware"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/utils"
)

type CustomRequestHandler struct {
	db *gorm.DB
}

func NewCustomRequestHandler(db *gorm.DB) *CustomRequestHandler {
	return &CustomRequestHandler{db: db}
}

type customRequestRequest struct {
	Email       string   `json:"email" binding:"required,email"`
	Subject     string   `json:"subject" binding:"required,max=255"`
	Message     string   `json:"message" binding:"required"`
	Attachments []string `json:"attachments" binding:"omitempty,dive,url"`
}

func (h *CustomRequestHandler) repo(c *gin.Context) *repository.CustomRequestRepository {
	return repository.NewCustomRequestRepository(tenantDB(c, h.db))
}

// Create records a commission request from a visitor. Authentication is
// optional; logged-in users get the request attached to their account.
func (h *CustomRequestHandler) Create(c *gin.Context) {
	var req customRequestRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	var attachments datatypes.JSON
	if len(req.Attachments) > 0 {
		raw, err := json.Marshal(req.Attachments)
		if err != nil {
			utils.ErrorResponseWithError(c, errors.NewValidationError("invalid attachments"))
			return
		}
		attachments = raw
	}

	request := &models.CustomRequestModel{
		UserID:      middleware.UserID(c),
		Email:       req.Email,
		Subject:     req.Subject,
		Message:     req.Message,
		Attachments: attachments,
		Status:      "new",
	}
	if err := h.repo(c).Create(c.Request.Context(), request); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, request)
}

func (h *CustomRequestHandler) List(c *gin.Context) {
	page, pageSize, limit, offset := pagination(c)

	requests, total, err := h.repo(c).List(c.Request.Context(), c.Query("status"), limit, offset)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:    requests,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

type customRequestStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=new in_progress closed"`
}

func (h *CustomRequestHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request id"))
		return
	}

	var req customRequestStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := h.repo(c).UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "request status updated", nil)
}
