package tenant

import (
	"context"
	"net"
	"strings"

	"galerie/internal/shared/logger"
)

// Resolver maps an inbound host header to a tenant identifier. Resolution
// fails open: unknown hosts, directory errors and empty input all resolve
// to DefaultTenantID so unmapped preview/staging hosts keep working against
// the default tenant.
type Resolver struct {
	directory Directory
	log       logger.Interface
}

func NewResolver(directory Directory, log logger.Interface) *Resolver {
	return &Resolver{
		directory: directory,
		log:       log.With("component", "tenant.resolver"),
	}
}

// Resolve returns the tenant identifier for the given host header.
// It never returns an error.
func (r *Resolver) Resolve(ctx context.Context, host string) uint {
	normalized := NormalizeHost(host)
	if normalized == "" {
		return DefaultTenantID
	}

	t, err := r.directory.FindByHost(ctx, normalized)
	if err != nil {
		r.log.Warnw("tenant lookup failed, falling back to default tenant",
			"host", normalized, "error", err)
		return DefaultTenantID
	}
	if t == nil {
		r.log.Debugw("no tenant mapped for host", "host", normalized)
		return DefaultTenantID
	}

	return t.ID
}

// NormalizeHost lowercases a host header and strips any port.
func NormalizeHost(host string) string {
	host = strings.ToLower(strings.TrimSpace(host))
	if host == "" {
		return ""
	}
	if h, _, err := net.SplitHostPort(host); err == nil {
		return h
	}
	return host
}
