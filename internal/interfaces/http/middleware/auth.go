package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"galerie/internal/infrastructure/auth"
	"galerie/internal/shared/errors"
	"galerie/internal/shared/utils"
)

const (
	UserIDKey  = "user_id"
	IsAdminKey = "is_admin"
)

// JWTAuth validates the bearer token and rejects tokens minted for a
// different tenant than the one serving the request.
func JWTAuth(jwtService *auth.JWTService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("missing authorization header"))
			c.Abort()
			return
		}

		tokenString, ok := strings.CutPrefix(header, "Bearer ")
		if !ok {
			utils.ErrorResponseWithError(c, errors.NewUnauthorizedError("invalid authorization header"))
			c.Abort()
			return
		}

		claims, err := jwtService.Parse(tokenString)
		if err != nil {
			utils.ErrorResponseWithError(c, err)
			c.Abort()
			return
		}

		if claims.TenantID != TenantID(c) {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("token was issued for another storefront"))
			c.Abort()
			return
		}

		c.Set(UserIDKey, claims.UserID)
		c.Set(IsAdminKey, claims.IsAdmin)
		c.Next()
	}
}

// AdminOnly must run after JWTAuth.
func AdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !c.GetBool(IsAdminKey) {
			utils.ErrorResponseWithError(c, errors.NewForbiddenError("admin access required"))
			c.Abort()
			return
		}
		c.Next()
	}
}

// UserID returns the authenticated user id set by JWTAuth.
func UserID(c *gin.Context) uint {
	if v, ok := c.Get(UserIDKey); ok {
		if id, ok := v.(uint); ok {
			return id
		}
	}
	return 0
}
