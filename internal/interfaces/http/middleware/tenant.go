package middleware

import (
	"github.com/gin-gonic/gin"

	"galerie/internal/domain/tenant"
	"galerie/internal/shared/tenantctx"
)

// TenantIDKey is the gin context key carrying the resolved tenant id.
const TenantIDKey = "tenant_id"

// Tenant resolves the request's Host header to a tenant id and attaches it
// to both the gin context and the request context. Resolution never fails;
// unknown hosts fall back to the default tenant so the request proceeds.
func Tenant(resolver *tenant.Resolver) gin.HandlerFunc {
	return func(c *gin.Context) {
		tenantID := resolver.Resolve(c.Request.Context(), c.Request.Host)

		c.Set(TenantIDKey, tenantID)
		c.Request = c.Request.WithContext(tenantctx.WithTenantID(c.Request.Context(), tenantID))

		c.Next()
	}
}

// TenantID returns the tenant id the tenant middleware attached, falling
// back to the default when the middleware did not run.
func TenantID(c *gin.Context) uint {
	if v, ok := c.Get(TenantIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return tenantctx.DefaultTenantID
}
