// Package repository implements tenant-scoped persistence. Repositories are
// constructed from a TenantDB, a handle bound to one tenant id, so every
// query they issue carries the tenant predicate by construction. Handlers
// never touch a raw *gorm.DB.
package repository

import (
	"context"

	"gorm.io/gorm"

	shareddb "galerie/internal/shared/db"
)

// TenantDB is a gorm handle bound to a single tenant.
type TenantDB struct {
	db       *gorm.DB
	tenantID uint
}

// NewTenantDB binds a database handle to the given tenant identifier.
func NewTenantDB(db *gorm.DB, tenantID uint) TenantDB {
	return TenantDB{db: db, tenantID: tenantID}
}

// TenantID returns the tenant this handle is bound to.
func (t TenantDB) TenantID() uint {
	return t.tenantID
}

// Scoped returns a query builder with the tenant predicate already applied.
func (t TenantDB) Scoped(ctx context.Context) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, t.db).Scopes(shareddb.ForTenant(t.tenantID))
}

// Unscoped returns the underlying handle without the tenant predicate.
// Reserved for inserts (which stamp TenantID on the row instead) and for
// queries against non-scoped tables.
func (t TenantDB) Unscoped(ctx context.Context) *gorm.DB {
	return shareddb.GetTxFromContext(ctx, t.db)
}
