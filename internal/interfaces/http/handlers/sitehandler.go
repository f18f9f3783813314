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

// SiteHandler manages the provisioning lifecycle of storefront sites.
type SiteHandler struct {
	db *gorm.DB
}

func NewSiteHandler(db *gorm.DB) *SiteHandler {
	return &SiteHandler{db: db}
}

type createSiteRequest struct {
	SandboxURL  string `json:"sandbox_url" binding:"omitempty,url"`
	FinalDomain string `json:"final_domain" binding:"omitempty,hostname"`
}

type siteStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending approved active"`
}

type siteDomainsRequest struct {
	SandboxURL  string `json:"sandbox_url" binding:"omitempty,url"`
	FinalDomain string `json:"final_domain" binding:"omitempty,hostname"`
}

func (h *SiteHandler) repo(c *gin.Context) *repository.SaasSiteRepository {
	return repository.NewSaasSiteRepository(tenantDB(c, h.db))
}

func (h *SiteHandler) Create(c *gin.Context) {
	var req createSiteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	site := &models.SaasSiteModel{
		UserID:      middleware.UserID(c),
		Status:      "pending",
		SandboxURL:  req.SandboxURL,
		FinalDomain: req.FinalDomain,
	}
	if err := h.repo(c).Create(c.Request.Context(), site); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.CreatedResponse(c, site)
}

func (h *SiteHandler) List(c *gin.Context) {
	sites, err := h.repo(c).List(c.Request.Context())
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", sites)
}

func (h *SiteHandler) Get(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid site id"))
		return
	}

	site, err := h.repo(c).FindByID(c.Request.Context(), id)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if site == nil {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("site not found"))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", site)
}

func (h *SiteHandler) UpdateStatus(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid site id"))
		return
	}

	var req siteStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := h.repo(c).UpdateStatus(c.Request.Context(), id, req.Status); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "site status updated", nil)
}

func (h *SiteHandler) UpdateDomains(c *gin.Context) {
	id, ok := idParam(c, "id")
	if !ok {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid site id"))
		return
	}

	var req siteDomainsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := h.repo(c).UpdateDomains(c.Request.Context(), id, req.SandboxURL, req.FinalDomain); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "site domains updated", nil)
}
