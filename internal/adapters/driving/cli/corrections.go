package cli

import (
	"github.com/spf13/cobra"

	"github.com/roparl/corpus-cli/internal/core/services"
)

var correctionsCmd = &cobra.Command{
	Use:   "corrections",
	Short: "Apply retroactive fixes to an already-built corpus",
}

var removeEmptySegmentsCmd = &cobra.Command{
	Use:   "remove-empty-segments",
	Short: "Delete empty segments and prune emptied utterances",
	RunE: func(cmd *cobra.Command, _ []string) error {
		report, err := newCorrections().RemoveEmptySegments()
		return reportCorrection(cmd, report, err)
	},
}

var addTagsCmd = &cobra.Command{
	Use:   "add-tags",
	Short: "Append the corpus flavor marker to every main title",
	RunE: func(cmd *cobra.Command, _ []string) error {
		report, err := newCorrections().AddTitleTags()
		return reportCorrection(cmd, report, err)
	},
}

var fixTLICmd = &cobra.Command{
	Use:   "fix-tli",
	Short: "Suffix the top-level id of annotated files with .ana",
	RunE: func(cmd *cobra.Command, _ []string) error {
		report, err := newCorrections().FixAnnotatedIDs()
		return reportCorrection(cmd, report, err)
	},
}

var replaceCorrespCmd = &cobra.Command{
	Use:   "replace-corresp [old] [new]",
	Short: "Rewrite a corresp reference across the corpus",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		report, err := newCorrections().ReplaceCorresp(args[0], args[1])
		return reportCorrection(cmd, report, err)
	},
}

func init() {
	correctionsCmd.AddCommand(removeEmptySegmentsCmd)
	correctionsCmd.AddCommand(addTagsCmd)
	correctionsCmd.AddCommand(fixTLICmd)
	correctionsCmd.AddCommand(replaceCorrespCmd)
	rootCmd.AddCommand(correctionsCmd)
}

func newCorrections() *services.CorrectionsService {
	return services.NewCorrectionsService(newIterator(), cfg.Corpus.UseXmllint)
}

func reportCorrection(cmd *cobra.Command, report *services.Report, err error) error {
	if err != nil {
		return err
	}
	cmd.Printf("Corrected %d files, %d failed.\n", report.Processed, report.Failed)
	return nil
}
