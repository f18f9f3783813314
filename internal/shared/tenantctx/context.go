// Package tenantctx carries the resolved tenant identifier through
// context.Context. Code running outside a request (startup, offline batch
// jobs) gets the default tenant back rather than an error.
package tenantctx

import "context"

// DefaultTenantID is the reserved tenant for unknown hosts and legacy data.
const DefaultTenantID uint = 1

type tenantKey struct{}

// WithTenantID returns a context carrying the given tenant identifier.
func WithTenantID(ctx context.Context, tenantID uint) context.Context {
	return context.WithValue(ctx, tenantKey{}, tenantID)
}

// FromContext returns the tenant identifier attached to ctx, or
// DefaultTenantID when none is attached. It never fails.
func FromContext(ctx context.Context) uint {
	if ctx == nil {
		return DefaultTenantID
	}
	if id, ok := ctx.Value(tenantKey{}).(uint); ok && id > 0 {
		return id
	}
	return DefaultTenantID
}
