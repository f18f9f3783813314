package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"galerie/internal/application/auth"
	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/infrastructure/repository"
	"galerie/internal/interfaces/http/middleware"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/utils"
)

type AuthHandler struct {
	service *auth.Service
	db      *gorm.DB
}

func NewAuthHandler(service *auth.Service, db *gorm.DB) *AuthHandler {
	return &AuthHandler{service: service, db: db}
}

type registerRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8"`
	Name     string `json:"name" binding:"required,max=255"`
}

type loginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type authResponse struct {
	Token string       `json:"token"`
	User  userResponse `json:"user"`
}

type userResponse struct {
	ID      uint   `json:"id"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	IsAdmin bool   `json:"is_admin"`
}

func toUserResponse(u *models.UserModel) userResponse {
	return userResponse{ID: u.ID, Email: u.Email, Name: u.Name, IsAdmin: u.IsAdmin}
}

func (h *AuthHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	user, token, err := h.service.Register(c.Request.Context(), middleware.TenantID(c), req.Email, req.Password, req.Name)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.CreatedResponse(c, authResponse{Token: token, User: toUserResponse(user)})
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	user, token, err := h.service.Login(c.Request.Context(), middleware.TenantID(c), req.Email, req.Password)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	utils.SuccessResponse(c, http.StatusOK, "", authResponse{Token: token, User: toUserResponse(user)})
}

// Me returns the authenticated user's profile under the current tenant.
func (h *AuthHandler) Me(c *gin.Context) {
	users := repository.NewUserRepository(tenantDB(c, h.db))
	user, err := users.FindByID(c.Request.Context(), middleware.UserID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if user == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("user not found"))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", toUserResponse(user))
}
