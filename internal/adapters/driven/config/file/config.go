// Package file loads the pipeline configuration from a TOML file.
package file

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/roparl/corpus-cli/internal/identifiers"
)

// Config is the full pipeline configuration.
type Config struct {
	Corpus      CorpusConfig      `toml:"corpus"`
	Templates   TemplatesConfig   `toml:"templates"`
	Identifiers IdentifiersConfig `toml:"identifiers"`
	Registry    RegistryConfig    `toml:"registry"`
	Tagger      TaggerConfig      `toml:"tagger"`
}

// CorpusConfig locates the input transcripts and the corpus output.
type CorpusConfig struct {
	// SessionsDir holds the raw HTML transcripts, nested by year.
	SessionsDir string `toml:"sessions_dir"`
	// OutputDir receives the component and root files.
	OutputDir string `toml:"output_dir"`
	// Prefix opens every session id, e.g. "ParlaMint-RO".
	Prefix string `toml:"prefix"`
	// RootFile is the corpus root file name inside OutputDir.
	RootFile string `toml:"root_file"`
	// GroupByYear nests component files under year subdirectories.
	GroupByYear bool `toml:"group_by_year"`
	// UseXmllint re-formats written files with the external tool.
	UseXmllint bool `toml:"use_xmllint"`
}

// TemplatesConfig locates the TEI templates.
type TemplatesConfig struct {
	Session string `toml:"session"`
	Root    string `toml:"root"`
}

// IdentifiersConfig configures id derivation.
type IdentifiersConfig struct {
	// Replacements is the character replacement spec, e.g. "ȘS;șs".
	Replacements string `toml:"replacements"`
}

// RegistryConfig locates the pre-crawled legislator registry. When
// Database is set the SQLite cache is used, otherwise the CSV files.
type RegistryConfig struct {
	DeputiesCSV      string `toml:"deputies_csv"`
	OrganizationsCSV string `toml:"organizations_csv"`
	Database         string `toml:"database"`
}

// TaggerConfig configures the UDPipe client. A zero timeout means no
// timeout.
type TaggerConfig struct {
	URL               string  `toml:"url"`
	Model             string  `toml:"model"`
	RequestsPerSecond float64 `toml:"requests_per_second"`
	TimeoutSeconds    int     `toml:"timeout_seconds"`
}

// Default returns the builtin configuration.
func Default() Config {
	return Config{
		Corpus: CorpusConfig{
			SessionsDir: "sessions",
			OutputDir:   "corpus",
			Prefix:      "ParlaMint-RO",
			RootFile:    "ParlaMint-RO.xml",
		},
		Templates: TemplatesConfig{
			Session: "templates/session.xml",
			Root:    "templates/root.xml",
		},
		Identifiers: IdentifiersConfig{
			Replacements: identifiers.DefaultReplacementSpec,
		},
		Tagger: TaggerConfig{
			Model: "romanian-rrt-ud-2.5-191206",
		},
	}
}

// Load reads the configuration from a TOML file, applying the builtin
// defaults for omitted fields.
func Load(path string) (Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := toml.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}
