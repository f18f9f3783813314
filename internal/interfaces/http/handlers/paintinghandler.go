package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/infrastructure/repository"
	"galerie/internal/interfaces/http/middleware"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/utils"
)

type PaintingHandler struct {
	db *gorm.DB
}

func NewPaintingHandler(db *gorm.DB) *PaintingHandler {
	return &PaintingHandler{db: db}
}

type paintingRequest struct {
	Title       string `json:"title" binding:"required,max=255"`
	Description string `json:"description"`
	Technique   string `json:"technique" binding:"max=100"`
	WidthCm     int    `json:"width_cm" binding:"gte=0"`
	HeightCm    int    `json:"height_cm" binding:"gte=0"`
	PriceCents  int64  `json:"price_cents" binding:"required,gt=0"`
	ImageURL    string `json:"image_url" binding:"omitempty,url"`
	Available   *bool  `json:"available"`
}

func (h *PaintingHandler) repo(c *gin.Context) *repository.PaintingRepository {
	return repository.NewPaintingRepository(tenantDB(c, h.db))
}

// List is the public catalog view: only available works unless the caller
// asks for everything.
func (h *PaintingHandler) List(c *gin.Context) {
	page, pageSize, limit, offset := pagination(c)
	availableOnly := c.DefaultQuery("all", "false") != "true"

	paintings, total, err := h.repo(c).List(c.Request.Context(), availableOnly, limit, offset)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", utils.ListResponse{
		Items:    paintings,
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

func (h *PaintingHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid painting id"))
		return
	}

	painting, err := h.repo(c).FindByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if painting == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("painting not found"))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", painting)
}

func (h *PaintingHandler) Create(c *gin.Context) {
	var req paintingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	painting := &models.PaintingModel{
		UserID:      middleware.UserID(c),
		Title:       req.Title,
		Description: req.Description,
		Technique:   req.Technique,
		WidthCm:     req.WidthCm,
		HeightCm:    req.HeightCm,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Available:   true,
	}
	if req.Available != nil {
		painting.Available = *req.Available
	}

	if err := h.repo(c).Create(c.Request.Context(), painting); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, painting)
}

func (h *PaintingHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid painting id"))
		return
	}

	var req paintingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	painting := &models.PaintingModel{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Technique:   req.Technique,
		WidthCm:     req.WidthCm,
		HeightCm:    req.HeightCm,
		PriceCents:  req.PriceCents,
		ImageURL:    req.ImageURL,
		Available:   req.Available == nil || *req.Available,
	}

	if err := h.repo(c).Update(c.Request.Context(), painting); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "painting updated", nil)
}

func (h *PaintingHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid painting id"))
		return
	}

	if err := h.repo(c).Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "painting deleted", nil)
}
