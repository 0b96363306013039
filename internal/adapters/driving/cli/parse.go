package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roparl/corpus-cli/internal/builder/session"
	"github.com/roparl/corpus-cli/internal/core/services"
)

var parseCmd = &cobra.Command{
	Use:   "parse",
	Short: "Convert session transcripts into component TEI files",
	Long: `Parses every HTML transcript under the sessions directory and writes
one TEI component file per sitting into the output directory. Files
that fail to parse are logged and skipped.`,
	RunE: runParse,
}

func init() {
	rootCmd.AddCommand(parseCmd)
}

func runParse(cmd *cobra.Command, _ []string) error {
	registry, err := newRegistry()
	if err != nil {
		return err
	}
	template, err := loadTemplate(cfg.Templates.Session)
	if err != nil {
		return err
	}
	builder := session.NewBuilder(registry, cfg.Corpus.Prefix)
	svc := services.NewParseService(builder, template,
		cfg.Corpus.OutputDir, cfg.Corpus.GroupByYear, cfg.Corpus.UseXmllint)

	files, err := svc.SessionFiles(cfg.Corpus.SessionsDir)
	if err != nil {
		return err
	}
	report := svc.Run(files)
	cmd.Printf("Parsed %d session transcripts, %d failed.\n", report.Processed, report.Failed)
	if report.Failed > 0 {
		return fmt.Errorf("%d session transcripts failed", report.Failed)
	}
	return nil
}
