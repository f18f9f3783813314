package middleware

import (
	"time"

	"github.com/gin-gonic/gin"

	"galerie/internal/shared/logger"
)

// Logging emits one structured line per request, tagged with the request id
// and resolved tenant.
func Logging(log logger.Interface) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		log.Infow("http request",
			"method", c.Request.Method,
			"path", c.Request.URL.Path,
			"status", c.Writer.Status(),
			"duration_ms", time.Since(start).Milliseconds(),
			"tenant_id", TenantID(c),
			"request_id", c.GetString(RequestIDKey),
			"client_ip", c.ClientIP())
	}
}
