package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"galerie/internal/application/settings"
	"galerie/internal/interfaces/http/middleware"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/utils"
)

type SettingHandler struct {
	service *settings.Service
}

func NewSettingHandler(service *settings.Service) *SettingHandler {
	return &SettingHandler{service: service}
}

type settingResponse struct {
	Key       string `json:"key"`
	Value     string `json:"value"`
	UpdatedAt string `json:"updated_at"`
}

type setSettingRequest struct {
	Value string `json:"value" binding:"required"`
}

// sensitiveSetting reports whether a key's value must be masked in list
// output. Individual reads still return the real value for admins.
func sensitiveSetting(key string) bool {
	lower := strings.ToLower(key)
	for _, marker := range []string{"secret", "password", "token", "api_key"} {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}

func (h *SettingHandler) List(c *gin.Context) {
	items, err := h.service.List(c.Request.Context(), middleware.TenantID(c))
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}

	out := make([]settingResponse, 0, len(items))
	for _, item := range items {
		value := item.Value
		if sensitiveSetting(item.Key) {
			value = "********"
		}
		out = append(out, settingResponse{
			Key:       item.Key,
			Value:     value,
			UpdatedAt: item.UpdatedAt.Format("2006-01-02T15:04:05Z07:00"),
		})
	}
	utils.SuccessResponse(c, http.StatusOK, "", out)
}

func (h *SettingHandler) Get(c *gin.Context) {
	key := c.Param("key")
	value, found, err := h.service.Get(c.Request.Context(), middleware.TenantID(c), key)
	if err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	if !found {
		utils.ErrorResponseWithError(c, errors.NewNotFoundError("setting not found"))
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "", gin.H{"key": key, "value": value})
}

func (h *SettingHandler) Set(c *gin.Context) {
	key := c.Param("key")
	if key == "" {
		utils.ErrorResponseWithError(c, errors.NewValidationError("setting key is required"))
		return
	}

	var req setSettingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.ErrorResponseWithError(c, errors.NewValidationError("invalid request body", err.Error()))
		return
	}

	if err := h.service.Set(c.Request.Context(), middleware.TenantID(c), key, req.Value); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "setting saved", gin.H{"key": key})
}

func (h *SettingHandler) Delete(c *gin.Context) {
	key := c.Param("key")
	if err := h.service.Delete(c.Request.Context(), middleware.TenantID(c), key); err != nil {
		utils.ErrorResponseWithError(c, err)
		return
	}
	utils.SuccessResponse(c, http.StatusOK, "setting deleted", nil)
}
