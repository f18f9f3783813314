// Package tenantcmd administers the tenant directory and runs the
// tenant-assignment backfill.
package tenantcmd

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"galerie/internal/application/backfill"
	"galerie/internal/domain/tenant"
	"galerie/internal/infrastructure/database"
	"galerie/internal/infrastructure/repository"
	"galerie/internal/interfaces/cli/bootstrap"
	"galerie/internal/shared/logger"
)

func NewCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tenant",
		Short: "Manage tenants and tenant data assignment",
	}

	cmd.AddCommand(
		newListCommand(),
		newCreateCommand(),
		newBackfillCommand(),
		newAuditCommand(),
	)
	return cmd
}

// audit is the read-only form of backfill: same matching and counting, no
// updates, always writes a report.
func newAuditCommand() *cobra.Command {
	var reportPath string

	cmd := &cobra.Command{
		Use:   "audit",
		Short: "Report what a backfill would change, without changing anything",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap.Run(cmd)
			if err != nil {
				return err
			}
			defer database.Close()

			log := logger.NewLogger()
			auditor := backfill.NewAuditor(db, repository.NewTenantDirectoryRepository(db), log)

			report, runErr := auditor.Run(cmd.Context(), true)

			if reportPath == "" {
				reportPath = backfill.DefaultReportFilename()
			}
			if err := report.WriteFile(reportPath); err != nil {
				log.Errorw("failed to write report", "path", reportPath, "error", err)
			} else {
				log.Infow("report written", "path", reportPath)
			}

			if runErr != nil {
				return runErr
			}
			if report.HasErrors() {
				return fmt.Errorf("audit finished with %d errors, see %s", len(report.Errors), reportPath)
			}

			log.Infow("audit complete",
				"sites_processed", len(report.SitesProcessed),
				"rows_affected", report.TotalRowsUpdated,
				"warnings", len(report.Warnings))
			return nil
		},
	}

	cmd.Flags().StringVar(&reportPath, "report", "", "report file path (default tenant_migration_report_<timestamp>.json)")
	return cmd
}

func newListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered tenants",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap.Run(cmd)
			if err != nil {
				return err
			}
			defer database.Close()

			tenants, err := repository.NewTenantDirectoryRepository(db).List(cmd.Context())
			if err != nil {
				return err
			}
			for _, t := range tenants {
				fmt.Fprintf(cmd.OutOrStdout(), "%d\t%s\t%s\n", t.ID, t.Host, t.Name)
			}
			return nil
		},
	}
}

func newCreateCommand() *cobra.Command {
	var host, name string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Register a tenant for a storefront host",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap.Run(cmd)
			if err != nil {
				return err
			}
			defer database.Close()

			directory := repository.NewTenantDirectoryRepository(db)
			normalized := tenant.NormalizeHost(host)

			existing, err := directory.FindByHost(cmd.Context(), normalized)
			if err != nil {
				return err
			}
			if existing != nil {
				return fmt.Errorf("host %s already belongs to tenant %d", normalized, existing.ID)
			}

			t := &tenant.Tenant{Host: normalized, Name: name}
			if err := directory.Create(cmd.Context(), t); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created tenant %d for host %s\n", t.ID, t.Host)
			return nil
		},
	}

	cmd.Flags().StringVar(&host, "host", "", "storefront host (required)")
	cmd.Flags().StringVar(&name, "name", "", "display name (required)")
	_ = cmd.MarkFlagRequired("host")
	_ = cmd.MarkFlagRequired("name")
	return cmd
}

func newBackfillCommand() *cobra.Command {
	var dryRun bool
	var reportPath string

	cmd := &cobra.Command{
		Use:   "backfill",
		Short: "Reassign legacy rows to their true tenants",
		Long: "Matches every site against the tenant directory and rewrites " +
			"tenant_id across all scoped tables. Always writes a JSON audit " +
			"report. With --dry-run, counts affected rows without changing " +
			"anything.",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, db, err := bootstrap.Run(cmd)
			if err != nil {
				return err
			}
			defer database.Close()

			log := logger.NewLogger()
			auditor := backfill.NewAuditor(db, repository.NewTenantDirectoryRepository(db), log)

			report, runErr := auditor.Run(cmd.Context(), dryRun)

			if reportPath == "" {
				reportPath = backfill.DefaultReportFilename()
			}
			if err := report.WriteFile(reportPath); err != nil {
				log.Errorw("failed to write report", "path", reportPath, "error", err)
			} else {
				log.Infow("report written", "path", reportPath)
			}

			if runErr != nil {
				if errors.Is(runErr, backfill.ErrAmbiguousTenant) {
					return fmt.Errorf("backfill aborted: %w", runErr)
				}
				return runErr
			}
			if report.HasErrors() {
				return fmt.Errorf("backfill finished with %d errors, see %s", len(report.Errors), reportPath)
			}

			log.Infow("backfill complete",
				"dry_run", dryRun,
				"sites_processed", len(report.SitesProcessed),
				"total_rows_updated", report.TotalRowsUpdated,
				"warnings", len(report.Warnings))
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "count affected rows without updating")
	cmd.Flags().StringVar(&reportPath, "report", "", "report file path (default tenant_migration_report_<timestamp>.json)")
	return cmd
}
