// Package handlers contains the gin HTTP handlers. Every handler obtains a
// tenant-bound repository handle from the request's resolved tenant, so no
// query can cross storefront boundaries.
package handlers

import (
	"strconv"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"galerie/internal/infrastructure/repository"
	"galerie/internal/interfaces/http/middleware"
)

func tenantDB(c *gin.Context, db *gorm.DB) repository.TenantDB {
	return repository.NewTenantDB(db, middleware.TenantID(c))
}

// pagination reads page/page_size query parameters with sane bounds.
func pagination(c *gin.Context) (page, pageSize, limit, offset int) {
	page, _ = strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize, pageSize, (page - 1) * pageSize
}

func idParam(c *gin.Context, name string) (uint, bool) {
	id, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil || id == 0 {
		return 0, false
	}
	return uint(id), true
}
