// Package cli defines the cobra command tree.
package cli

import (
	"github.com/spf13/cobra"

	"galerie/internal/interfaces/cli/migrate"
	"galerie/internal/interfaces/cli/server"
	"galerie/internal/interfaces/cli/tenantcmd"
)

// NewRootCommand assembles the galerie command tree.
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:          "galerie",
		Short:        "Multi-tenant art gallery storefront backend",
		SilenceUsage: true,
	}

	root.PersistentFlags().String("env", "", "environment override (debug, release, test)")

	root.AddCommand(
		server.NewCommand(),
		migrate.NewCommand(),
		tenantcmd.NewCommand(),
	)
	return root
}
