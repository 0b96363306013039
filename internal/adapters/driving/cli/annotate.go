package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roparl/corpus-cli/internal/core/services"
)

var annotateResume bool

var annotateCmd = &cobra.Command{
	Use:   "annotate",
	Short: "Merge linguistic annotation into the corpus",
	Long: `Sends every segment of every component file to the configured UDPipe
service and writes an annotated variant plus a CoNLL-U token stream per
component, then derives the annotated corpus root.`,
	RunE: runAnnotate,
}

func init() {
	annotateCmd.Flags().BoolVar(&annotateResume, "resume", false,
		"skip components that already have an annotated variant")
	rootCmd.AddCommand(annotateCmd)
}

func runAnnotate(cmd *cobra.Command, _ []string) error {
	tagger, err := newTagger()
	if err != nil {
		return err
	}
	svc, err := services.NewAnnotateService(tagger, newIterator(), annotateResume, cfg.Corpus.UseXmllint)
	if err != nil {
		return err
	}
	report, err := svc.Run(context.Background())
	if err != nil {
		return err
	}
	cmd.Printf("Annotated %d component files, %d failed.\n", report.Processed, report.Failed)
	if report.Failed > 0 {
		return fmt.Errorf("%d component files failed", report.Failed)
	}
	return nil
}
