package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"galerie/internal/shared/logger"
	"galerie/internal/shared/utils"
)

// Recovery converts panics into 500 responses instead of dropped
// connections.
func Recovery(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				log.Errorw("panic recovered",
					"error", r,
					"path", c.Request.URL.Path,
					"request_id", c.GetString(RequestIDKey))
				utils.ErrorResponse(c, http.StatusInternalServerError, "Internal server error")
				c.Abort()
			}
		}()
		c.Next()
	}
}
