package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"galerie/internal/domain/tenant"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/utils"
)

// TenantHandler administers the tenant directory. These routes are not
// tenant-scoped; the directory spans all storefronts.
type TenantHandler struct {
	directory tenant.Directory
}

func NewTenantHandler(directory tenant.Directory) *TenantHandler {
	return &TenantHandler{directory: directory}
}

type createTenantRequest struct {
	Host string `json:"host" binding:"required,tenant_host"`
	Name string `json:"name" binding:"required,max=255"`
}

func (h *TenantHandler) List(c *gin.Context) {
	tenants, err := h.directory.List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", tenants)
}

func (h *TenantHandler) Create(c *gin.Context) {
	var req createTenantRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	host := tenant.NormalizeHost(req.Host)
	existing, err := h.directory.FindByHost(c.Request.Context(), host)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if existing != nil {
		utils.ErrorResponseWithError(c, errors.NewConflictError("host already registered"))
		return
	}

	t := &tenant.Tenant{Host: host, Name: req.Name}
	if err := h.directory.Create(c.Request.Context(), t); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, t)
}
