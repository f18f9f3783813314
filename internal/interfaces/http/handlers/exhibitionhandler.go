package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/infrastructure/repository"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/utils"
)

type ExhibitionHandler struct {
	db *gorm.DB
}

func NewExhibitionHandler(db *gorm.DB) *ExhibitionHandler {
	return &ExhibitionHandler{db: db}
}

type exhibitionRequest struct {
	Title       string     `json:"title" binding:"required,max=255"`
	Description string     `json:"description"`
	Location    string     `json:"location" binding:"max=255"`
	StartsAt    *time.Time `json:"starts_at"`
	EndsAt      *time.Time `json:"ends_at"`
}

func (h *ExhibitionHandler) repo(c *gin.Context) *repository.ExhibitionRepository {
	return repository.NewExhibitionRepository(tenantDB(c, h.db))
}

func (h *ExhibitionHandler) List(c *gin.Context) {
	exhibitions, err := h.repo(c).List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", exhibitions)
}

func (h *ExhibitionHandler) Create(c *gin.Context) {
	var req exhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	exhibition := &models.ExhibitionModel{
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := h.repo(c).Create(c.Request.Context(), exhibition); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, exhibition)
}

func (h *ExhibitionHandler) Update(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid exhibition id"))
		return
	}

	var req exhibitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	exhibition := &models.ExhibitionModel{
		ID:          id,
		Title:       req.Title,
		Description: req.Description,
		Location:    req.Location,
		StartsAt:    req.StartsAt,
		EndsAt:      req.EndsAt,
	}
	if err := h.repo(c).Update(c.Request.Context(), exhibition); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "exhibition updated", nil)
}

func (h *ExhibitionHandler) Delete(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid exhibition id"))
		return
	}

	if err := h.repo(c).Delete(c.Request.Context(), id); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "exhibition deleted", nil)
}
