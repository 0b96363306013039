// Package cli wires the pipeline services to the roparl command tree.
package cli

import (
	"fmt"
	"time"

	"github.com/beevik/etree"
	"github.com/spf13/cobra"

	"github.com/roparl/corpus-cli/internal/adapters/driven/config/file"
	"github.com/roparl/corpus-cli/internal/adapters/driven/registry/csvfile"
	"github.com/roparl/corpus-cli/internal/adapters/driven/storage/sqlite"
	"github.com/roparl/corpus-cli/internal/adapters/driven/tagger/udpipe"
	"github.com/roparl/corpus-cli/internal/core/ports/driven"
	"github.com/roparl/corpus-cli/internal/corpus"
	"github.com/roparl/corpus-cli/internal/identifiers"
	"github.com/roparl/corpus-cli/internal/logger"
	"github.com/roparl/corpus-cli/internal/teixml"
)

var version = "dev"

var (
	configPath string
	verbose    bool
	cfg        file.Config
)

var rootCmd = &cobra.Command{
	Use:   "roparl",
	Short: "Build the ParlaMint-RO corpus from parliamentary transcripts",
	Long: `roparl converts raw Chamber of Deputies session transcripts into a
TEI-XML corpus, builds the corpus root with the global speaker and
organization registries, and merges linguistic annotation from a
UDPipe service.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to the TOML configuration file")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig initializes logging and the pipeline configuration before
// any subcommand runs.
func loadConfig(_ *cobra.Command, _ []string) error {
	logger.SetVerbose(verbose)
	if configPath == "" {
		cfg = file.Default()
		return nil
	}
	loaded, err := file.Load(configPath)
	if err != nil {
		return err
	}
	cfg = loaded
	return nil
}

// newRegistry builds the id registry from the configured replacement
// table.
func newRegistry() (*identifiers.Registry, error) {
	replacements, err := identifiers.ParseReplacements(cfg.Identifiers.Replacements)
	if err != nil {
		return nil, fmt.Errorf("parse id replacements: %w", err)
	}
	return identifiers.NewRegistry(replacements), nil
}

// newIterator builds the corpus iterator over the output directory.
func newIterator() *corpus.Iterator {
	return corpus.NewIterator(cfg.Corpus.OutputDir, cfg.Corpus.RootFile)
}

// loadTemplate reads one of the TEI templates.
func loadTemplate(path string) (*etree.Document, error) {
	doc, err := teixml.ReadDocument(path)
	if err != nil {
		return nil, fmt.Errorf("load template: %w", err)
	}
	return doc, nil
}

// newRegistryStore selects the registry backend: the SQLite cache when
// configured, else the crawler CSV files.
func newRegistryStore() (driven.RegistryStore, func() error, error) {
	if cfg.Registry.Database != "" {
		store, err := sqlite.Open(cfg.Registry.Database)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	}
	store := csvfile.NewStore(cfg.Registry.DeputiesCSV, cfg.Registry.OrganizationsCSV)
	return store, func() error { return nil }, nil
}

// newTagger builds the UDPipe client from the configuration.
func newTagger() (driven.Tagger, error) {
	if cfg.Tagger.URL == "" {
		return nil, fmt.Errorf("tagger url not configured")
	}
	timeout := time.Duration(cfg.Tagger.TimeoutSeconds) * time.Second
	return udpipe.NewClient(cfg.Tagger.URL, cfg.Tagger.Model, cfg.Tagger.RequestsPerSecond, timeout), nil
}
