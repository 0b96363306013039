package cli

import (
	"context"

	"github.com/spf13/cobra"

	"github.com/roparl/corpus-cli/internal/core/services"
)

var buildRootCmd = &cobra.Command{
	Use:   "build-root",
	Short: "Build the corpus root from the component files",
	Long: `Aggregates every component file into the corpus root document: the
organization list, the person list with affiliation timelines, the
rolled-up tag-usage statistics and one inclusion reference per
component. Flagged identifiers are remediated across the whole corpus
afterwards.`,
	RunE: runBuildRoot,
}

func init() {
	rootCmd.AddCommand(buildRootCmd)
}

func runBuildRoot(cmd *cobra.Command, _ []string) error {
	registry, err := newRegistry()
	if err != nil {
		return err
	}
	store, closeStore, err := newRegistryStore()
	if err != nil {
		return err
	}
	defer closeStore()

	template, err := loadTemplate(cfg.Templates.Root)
	if err != nil {
		return err
	}
	svc := services.NewRootService(registry, store, template, newIterator(), cfg.Corpus.UseXmllint)
	if err := svc.Run(context.Background()); err != nil {
		return err
	}
	cmd.Println("Corpus root built.")
	return nil
}
