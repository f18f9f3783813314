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

type FavoriteHandler struct {
	db *gorm.DB
}

func NewFavoriteHandler(db *gorm.DB) *FavoriteHandler {
	return &FavoriteHandler{db: db}
}

func (h *FavoriteHandler) repo(c *gin.Context) *repository.FavoriteRepository {
	return repository.NewFavoriteRepository(tenantDB(c, h.db))
}

// Toggle flips the favorite state for a painting and reports the new state.
func (h *FavoriteHandler) Toggle(c *gin.Context) {
	paintingID, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid painting id"))
		return
	}

	favorited, err := h.repo(c).Toggle(c.Request.Context(), middleware.UserID(c), paintingID)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"favorited": favorited})
}

func (h *FavoriteHandler) List(c *gin.Context) {
	favorites, err := h.repo(c).ListByUser(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", favorites)
}
