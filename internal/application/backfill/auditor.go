package backfill

import (
	"context"
	"errors"
	"fmt"
	"net/url"

	"gorm.io/gorm"

	"galerie/internal/domain/tenant"
	"galerie/internal/infrastructure/persistence/models"
	"galerie/internal/shared/logger"
)

// ErrAmbiguousTenant aborts a run when one site matches several distinct
// tenants. Picking one silently would misattribute a whole site's data, so
// the whole run stops and asks for manual resolution.
var ErrAmbiguousTenant = errors.New("site matches multiple distinct tenants, manual resolution required")

// Auditor determines the correct tenant for each site-lifecycle record and
// re-labels every related row, producing a full audit trail. It runs as an
// offline batch, never concurrently with live traffic.
type Auditor struct {
	db        *gorm.DB
	directory tenant.Directory
	log       logger.Interface
}

func NewAuditor(db *gorm.DB, directory tenant.Directory, log logger.Interface) *Auditor {
	return &Auditor{
		db:        db,
		directory: directory,
		log:       log.With("component", "backfill.auditor"),
	}
}

// Run processes every site in stable id order. In dry-run mode all
// discovery, matching and counting happens but no UPDATE is executed.
// An ambiguous match aborts the entire run; every other failure is recorded
// in the report and processing continues.
func (a *Auditor) Run(ctx context.Context, dryRun bool) (*Report, error) {
	report := NewReport(dryRun)

	tenants, err := a.directory.List(ctx)
	if err != nil {
		report.errorf("failed to load tenants: %v", err)
		return report, fmt.Errorf("failed to load tenants: %w", err)
	}
	report.TenantsFound = tenants

	if len(tenants) == 0 {
		report.errorf("no tenants found in the tenants table")
		return report, nil
	}
	if !hasNonDefaultTenant(tenants) {
		report.warnf("only the default tenant (id=1) exists; create tenants for each site before backfilling")
	}

	var sites []*models.SaasSiteModel
	if err := a.db.WithContext(ctx).Order("id").Find(&sites).Error; err != nil {
		report.errorf("failed to load sites: %v", err)
		return report, fmt.Errorf("failed to load sites: %w", err)
	}
	if len(sites) == 0 {
		report.warnf("no sites found in saas_sites")
		return report, nil
	}

	for _, site := range sites {
		match := a.matchSite(ctx, site, report)

		switch match.Status {
		case tenant.MatchAmbiguous:
			report.anomalyf("site %d matches multiple distinct tenants: %+v", site.ID, match.Candidates)
			report.errorf("run aborted: site %d is ambiguous", site.ID)
			a.log.Errorw("ambiguous tenant match, aborting run",
				"site_id", site.ID, "candidates", len(match.Candidates))
			return report, ErrAmbiguousTenant
		case tenant.MatchNotFound:
			report.warnf("site %d (%s): no matching tenant in directory, keeping tenant_id=%d",
				site.ID, site.FinalDomain, site.TenantID)
			continue
		}

		candidate := match.Best()
		if candidate.TenantID == tenant.DefaultTenantID {
			report.warnf("site %d: matched tenant is the default (id=1), verify the directory entry", site.ID)
		}

		siteReport := a.applySite(ctx, site, candidate, dryRun, report)
		report.AddSite(siteReport)
	}

	return report, nil
}

// matchSite collects directory candidates from the site's production domain
// and sandbox URL and classifies them. Lookup errors downgrade to warnings;
// matching stays maximally available and the site is simply skipped.
func (a *Auditor) matchSite(ctx context.Context, site *models.SaasSiteModel, report *Report) tenant.MatchResult {
	var candidates []tenant.Candidate

	if site.FinalDomain != "" {
		host := tenant.NormalizeHost(site.FinalDomain)
		t, err := a.directory.FindByHost(ctx, host)
		if err != nil {
			report.warnf("site %d: lookup by final_domain %q failed: %v", site.ID, host, err)
		} else if t != nil {
			candidates = append(candidates, tenant.Candidate{
				TenantID:   t.ID,
				Host:       t.Host,
				MatchType:  tenant.MatchByFinalDomain,
				MatchValue: host,
			})
		}
	}

	if site.SandboxURL != "" {
		if host := sandboxHost(site.SandboxURL); host != "" {
			t, err := a.directory.FindByHost(ctx, host)
			if err != nil {
				report.warnf("site %d: lookup by sandbox_url %q failed: %v", site.ID, host, err)
			} else if t != nil {
				candidates = append(candidates, tenant.Candidate{
					TenantID:   t.ID,
					Host:       t.Host,
					MatchType:  tenant.MatchBySandboxURL,
					MatchValue: host,
				})
			}
		}
	}

	return tenant.ResolveCandidates(candidates)
}

// applySite rewrites tenant_id for everything the site owns, in a fixed
// order so a partial failure leaves a predictable intermediate state:
// site record, owning user, user-owned tables, join-table cascades, then
// the tables without a per-user scope. Only the tenant_id column ever
// changes. Each table failure is recorded and the next table proceeds.
func (a *Auditor) applySite(ctx context.Context, site *models.SaasSiteModel, candidate tenant.Candidate, dryRun bool, report *Report) *SiteReport {
	oldTenantID := site.TenantID
	newTenantID := candidate.TenantID

	siteReport := &SiteReport{
		SiteID:        site.ID,
		UserID:        site.UserID,
		FinalDomain:   site.FinalDomain,
		SandboxURL:    site.SandboxURL,
		OldTenantID:   oldTenantID,
		NewTenantID:   newTenantID,
		TenantHost:    candidate.Host,
		MatchType:     candidate.MatchType,
		TablesUpdated: map[string]int64{},
	}

	a.log.Infow("processing site",
		"site_id", site.ID,
		"user_id", site.UserID,
		"old_tenant", oldTenantID,
		"new_tenant", newTenantID,
		"matched_host", candidate.Host,
		"match_type", candidate.MatchType,
		"dry_run", dryRun)

	record := func(table string, rows int64, err error) {
		if err != nil {
			report.errorf("site %d, table %s: %v", site.ID, table, err)
			a.log.Errorw("table update failed", "site_id", site.ID, "table", table, "error", err)
			return
		}
		if rows > 0 {
			siteReport.TablesUpdated[table] = rows
			siteReport.TotalRows += rows
		}
	}

	// 1. The site record itself.
	rows, err := a.updateScoped(ctx, "saas_sites", "id = ?", []any{site.ID}, oldTenantID, newTenantID, dryRun)
	record("saas_sites", rows, err)

	if site.UserID == 0 {
		report.warnf("site %d has no user_id, dependent rows were not updated", site.ID)
		return siteReport
	}

	// 2. The owning user.
	rows, err = a.updateScoped(ctx, "users", "id = ?", []any{site.UserID}, oldTenantID, newTenantID, dryRun)
	record("users", rows, err)

	// 3. Tables owned directly through user_id.
	for _, table := range []string{"paintings", "carts", "orders", "favorites", "notifications", "custom_requests"} {
		rows, err = a.updateScoped(ctx, table, "user_id = ?", []any{site.UserID}, oldTenantID, newTenantID, dryRun)
		record(table, rows, err)
	}

	// 4. Join-table cascades, constrained through the owning cart/order so
	// unrelated rows under the same old tenant are never swept up. The
	// parent rows sit at the new tenant once step 3 ran, or still at the
	// old one in dry-run, so the subquery accepts both.
	rows, err = a.updateScoped(ctx, "cart_items",
		"cart_id IN (SELECT id FROM carts WHERE user_id = ? AND tenant_id IN (?, ?))",
		[]any{site.UserID, oldTenantID, newTenantID}, oldTenantID, newTenantID, dryRun)
	record("cart_items", rows, err)

	rows, err = a.updateScoped(ctx, "order_items",
		"order_id IN (SELECT id FROM orders WHERE user_id = ? AND tenant_id IN (?, ?))",
		[]any{site.UserID, oldTenantID, newTenantID}, oldTenantID, newTenantID, dryRun)
	record("order_items", rows, err)

	// 5. Tables without a natural per-user scope move wholesale for the
	// tenant being processed.
	for _, table := range []string{"exhibitions", "settings", "stripe_events"} {
		rows, err = a.updateScoped(ctx, table, "", nil, oldTenantID, newTenantID, dryRun)
		record(table, rows, err)
	}

	return siteReport
}

// updateScoped counts and (outside dry-run) rewrites tenant_id on one table.
// Every statement carries both the ownership predicate and the old tenant
// id, so rows already scoped to another tenant are never touched. The table
// name must belong to the closed scoped-table set.
func (a *Auditor) updateScoped(ctx context.Context, table, where string, args []any, oldTenantID, newTenantID uint, dryRun bool) (int64, error) {
	if !models.IsScopedTable(table) {
		return 0, fmt.Errorf("table %s is not in the scoped-table set", table)
	}
	if !a.db.Migrator().HasTable(table) {
		return 0, nil
	}

	query := a.db.WithContext(ctx).Table(table).Where("tenant_id = ?", oldTenantID)
	if where != "" {
		query = query.Where(where, args...)
	}

	var count int64
	if err := query.Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count rows: %w", err)
	}
	if count == 0 || dryRun {
		return count, nil
	}

	update := a.db.WithContext(ctx).Table(table).Where("tenant_id = ?", oldTenantID)
	if where != "" {
		update = update.Where(where, args...)
	}
	result := update.Update("tenant_id", newTenantID)
	if result.Error != nil {
		return 0, fmt.Errorf("failed to update tenant_id: %w", result.Error)
	}
	return result.RowsAffected, nil
}

func hasNonDefaultTenant(tenants []*tenant.Tenant) bool {
	for _, t := range tenants {
		if t.ID != tenant.DefaultTenantID {
			return true
		}
	}
	return false
}

// sandboxHost extracts the host part of a preview URL. Bare hosts without a
// scheme are accepted as-is.
func sandboxHost(raw string) string {
	parsed, err := url.Parse(raw)
	if err != nil {
		return tenant.NormalizeHost(raw)
	}
	if parsed.Host != "" {
		return tenant.NormalizeHost(parsed.Host)
	}
	return tenant.NormalizeHost(parsed.Path)
}
