// Package backfill reassigns legacy rows to their true tenant. It walks
// every site-lifecycle record, matches its domains against the tenant
// directory, rewrites tenant_id across all scoped tables owned by the site
// and produces a full audit report of what changed.
package backfill

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"galerie/internal/domain/tenant"
)

// SiteReport records the outcome of processing one site.
type SiteReport struct {
	SiteID        uint             `json:"site_id"`
	UserID        uint             `json:"user_id"`
	FinalDomain   string           `json:"final_domain"`
	SandboxURL    string           `json:"sandbox_url"`
	OldTenantID   uint             `json:"old_tenant_id"`
	NewTenantID   uint             `json:"new_tenant_id"`
	TenantHost    string           `json:"tenant_host"`
	MatchType     tenant.MatchType `json:"match_type"`
	TablesUpdated map[string]int64 `json:"tables_updated"`
	TotalRows     int64            `json:"total_rows"`
}

// Report is the audit trail of one backfill run. It is created fresh per
// run, serialized to a JSON file and never mutated afterwards.
type Report struct {
	ExecutionDate    string           `json:"execution_date"`
	DryRun           bool             `json:"dry_run"`
	TenantsFound     []*tenant.Tenant `json:"tenants_found"`
	SitesProcessed   []*SiteReport    `json:"sites_processed"`
	TablesUpdated    map[string]int64 `json:"tables_updated"`
	TotalRowsUpdated int64            `json:"total_rows_updated"`
	Anomalies        []string         `json:"anomalies"`
	Warnings         []string         `json:"warnings"`
	Errors           []string         `json:"errors"`
}

func NewReport(dryRun bool) *Report {
	return &Report{
		ExecutionDate:  time.Now().Format(time.RFC3339),
		DryRun:         dryRun,
		TenantsFound:   []*tenant.Tenant{},
		SitesProcessed: []*SiteReport{},
		TablesUpdated:  map[string]int64{},
		Anomalies:      []string{},
		Warnings:       []string{},
		Errors:         []string{},
	}
}

func (r *Report) warnf(format string, args ...any) {
	r.Warnings = append(r.Warnings, fmt.Sprintf(format, args...))
}

func (r *Report) errorf(format string, args ...any) {
	r.Errors = append(r.Errors, fmt.Sprintf(format, args...))
}

func (r *Report) anomalyf(format string, args ...any) {
	r.Anomalies = append(r.Anomalies, fmt.Sprintf(format, args...))
}

// AddSite folds one site's counts into the run totals.
func (r *Report) AddSite(site *SiteReport) {
	r.SitesProcessed = append(r.SitesProcessed, site)
	for table, count := range site.TablesUpdated {
		r.TablesUpdated[table] += count
	}
	r.TotalRowsUpdated += site.TotalRows
}

// HasErrors reports whether any error was recorded during the run.
func (r *Report) HasErrors() bool {
	return len(r.Errors) > 0
}

// WriteFile serializes the report as indented JSON.
func (r *Report) WriteFile(path string) error {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal report: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}
	return nil
}

// DefaultReportFilename returns the conventional report file name for a run
// started now.
func DefaultReportFilename() string {
	return fmt.Sprintf("tenant_migration_report_%s.json", time.Now().Format("20060102_150405"))
}
