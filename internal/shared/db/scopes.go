package db

import (
	"gorm.io/gorm"
)

// ForTenant is a GORM scope that restricts a query to one tenant's rows.
// Repositories apply it through repository.TenantDB; handlers never build
// queries without it.
//
// Example usage:
//
//	db.Model(&Model{}).Scopes(db.ForTenant(tenantID)).Find(&results)
func ForTenant(tenantID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where("tenant_id = ?", tenantID)
	}
}

// ForTenantWithAlias restricts a query to one tenant's rows when the table
// has an alias in a join.
//
// Example usage:
//
//	db.Table("carts c").Scopes(db.ForTenantWithAlias("c", tenantID)).Find(&results)
func ForTenantWithAlias(alias string, tenantID uint) func(db *gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(alias+".tenant_id = ?", tenantID)
	}
}
