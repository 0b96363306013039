package services

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/beevik/etree"

	"github.com/roparl/corpus-cli/internal/builder/session"
	"github.com/roparl/corpus-cli/internal/corpus"
	"github.com/roparl/corpus-cli/internal/logger"
	"github.com/roparl/corpus-cli/internal/teixml"
	"github.com/roparl/corpus-cli/internal/transcript"
)

// ParseService converts raw session transcripts into component TEI
// files.
type ParseService struct {
	builder     *session.Builder
	template    *etree.Document
	outputDir   string
	groupByYear bool
	useXmllint  bool
}

// NewParseService creates the transcript parsing service.
func NewParseService(builder *session.Builder, template *etree.Document, outputDir string, groupByYear, useXmllint bool) *ParseService {
	return &ParseService{
		builder:     builder,
		template:    template,
		outputDir:   outputDir,
		groupByYear: groupByYear,
		useXmllint:  useXmllint,
	}
}

// Run processes the transcript files in order and reports the tally.
// A failing file is logged and counted; the batch continues.
func (s *ParseService) Run(sessionFiles []string) *Report {
	report := newReport()
	logger.Info("Run %s: parsing %d session transcripts.", report.RunID, len(sessionFiles))

	for _, path := range sessionFiles {
		if err := s.processFile(path); err != nil {
			logger.Error("Could not process session file [%s]: %v.", path, err)
			report.failure(path)
			continue
		}
		report.success()
	}
	report.log()
	return report
}

// processFile parses, builds and writes one session document.
func (s *ParseService) processFile(path string) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open transcript: %w", err)
	}
	defer f.Close()

	parser, err := transcript.NewParser(f, path)
	if err != nil {
		return err
	}
	doc, sessionID, err := s.builder.Build(s.template, parser)
	if err != nil {
		return err
	}
	date, err := parser.SessionDate()
	if err != nil {
		return err
	}

	dir := s.outputDir
	if s.groupByYear {
		dir = filepath.Join(dir, strconv.Itoa(date.Year()))
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}
	target := filepath.Join(dir, session.ComponentFileName(sessionID))
	logger.Info("Writing session document [%s].", target)
	return teixml.WriteDocument(doc, target, s.useXmllint)
}

// SessionFiles lists the transcripts under the sessions directory in
// sorted order.
func (s *ParseService) SessionFiles(sessionsDir string) ([]string, error) {
	return corpus.SessionFiles(sessionsDir)
}
