package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roparl/corpus-cli/internal/adapters/driven/registry/csvfile"
	"github.com/roparl/corpus-cli/internal/adapters/driven/storage/sqlite"
)

var registryCmd = &cobra.Command{
	Use:   "registry",
	Short: "Manage the legislator registry",
}

var registryImportCmd = &cobra.Command{
	Use:   "import",
	Short: "Import the crawler CSV exports into the SQLite cache",
	RunE:  runRegistryImport,
}

func init() {
	registryCmd.AddCommand(registryImportCmd)
	rootCmd.AddCommand(registryCmd)
}

func runRegistryImport(cmd *cobra.Command, _ []string) error {
	if cfg.Registry.Database == "" {
		return fmt.Errorf("registry database not configured")
	}
	ctx := context.Background()

	source := csvfile.NewStore(cfg.Registry.DeputiesCSV, cfg.Registry.OrganizationsCSV)
	deputies, err := source.Deputies(ctx)
	if err != nil {
		return err
	}
	organizations, err := source.Organizations(ctx)
	if err != nil {
		return err
	}

	store, err := sqlite.Open(cfg.Registry.Database)
	if err != nil {
		return err
	}
	defer store.Close()

	if err := store.ImportDeputies(ctx, deputies); err != nil {
		return err
	}
	if err := store.ImportOrganizations(ctx, organizations); err != nil {
		return err
	}
	cmd.Printf("Imported %d deputies and %d organizations.\n", len(deputies), len(organizations))
	return nil
}
