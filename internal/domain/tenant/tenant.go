// Package tenant holds the tenant directory entity and the host-based
// resolver that every request passes through before touching scoped data.
package tenant

import (
	"context"
	"time"
)

// DefaultTenantID is the reserved tenant used before any real tenant exists
// and whenever resolution fails.
const DefaultTenantID uint = 1

// Tenant represents one isolated customer site in the directory.
type Tenant struct {
	ID        uint      `json:"id"`
	Host      string    `json:"host"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// Directory is the lookup interface over the tenants table.
type Directory interface {
	FindByHost(ctx context.Context, host string) (*Tenant, error)
	List(ctx context.Context) ([]*Tenant, error)
	Create(ctx context.Context, t *Tenant) error
}
