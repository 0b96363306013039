package services

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/beevik/etree"

	"github.com/roparl/corpus-cli/internal/annotation"
	"github.com/roparl/corpus-cli/internal/builder/root"
	"github.com/roparl/corpus-cli/internal/core/domain"
	"github.com/roparl/corpus-cli/internal/core/ports/driven"
	"github.com/roparl/corpus-cli/internal/corpus"
	"github.com/roparl/corpus-cli/internal/logger"
	"github.com/roparl/corpus-cli/internal/teixml"
)

// AnnotateService runs the linguistic annotation pass over the corpus:
// one annotated document and one token-stream file per component, then
// an annotated root with the merged statistics.
type AnnotateService struct {
	merger     *annotation.Merger
	iterator   *corpus.Iterator
	resume     bool
	useXmllint bool
}

// NewAnnotateService creates the annotation service. With resume set,
// components that already have an annotated variant are skipped.
func NewAnnotateService(tagger driven.Tagger, iterator *corpus.Iterator, resume, useXmllint bool) (*AnnotateService, error) {
	if tagger == nil {
		return nil, domain.ErrTaggerUnavailable
	}
	return &AnnotateService{
		merger:     annotation.NewMerger(tagger),
		iterator:   iterator,
		resume:     resume,
		useXmllint: useXmllint,
	}, nil
}

// Run annotates every component file and reports the tally. The
// annotated root is rebuilt from whatever annotated files exist when
// the pass finishes.
func (s *AnnotateService) Run(ctx context.Context) (*Report, error) {
	components, err := s.iterator.ComponentFiles()
	if err != nil {
		return nil, err
	}
	report := newReport()
	logger.Info("Run %s: annotating %d component files.", report.RunID, len(components))

	for _, path := range components {
		annotated := corpus.AnnotatedFileFor(path)
		if s.resume && teixml.FileExists(annotated) {
			logger.Debug("Skipping already annotated file [%s].", path)
			continue
		}
		if err := s.annotateFile(ctx, path, annotated); err != nil {
			logger.Error("Could not annotate component file [%s]: %v.", path, err)
			report.failure(path)
			continue
		}
		report.success()
	}

	if err := s.updateAnnotatedRoot(); err != nil {
		logger.Error("Could not update annotated root: %v.", err)
	}
	report.log()
	return report, nil
}

// annotateFile annotates one component and writes the annotated
// document plus its token stream.
func (s *AnnotateService) annotateFile(ctx context.Context, path, annotated string) error {
	doc, err := teixml.ReadDocument(path)
	if err != nil {
		return err
	}
	stream, err := s.merger.Annotate(ctx, doc)
	if err != nil {
		return err
	}
	logger.Info("Writing annotated document [%s].", annotated)
	if err := teixml.WriteDocument(doc, annotated, s.useXmllint); err != nil {
		return err
	}
	conlluFile := corpus.ConlluFileFor(path)
	if err := os.WriteFile(conlluFile, []byte(stream), 0o644); err != nil {
		return fmt.Errorf("write token stream %s: %w", conlluFile, err)
	}
	return nil
}

// updateAnnotatedRoot derives the annotated root from the plain root
// and folds in the annotation statistics of every annotated file.
func (s *AnnotateService) updateAnnotatedRoot() error {
	doc, err := teixml.ReadDocument(s.iterator.RootFile())
	if err != nil {
		return err
	}
	annotated, err := s.iterator.AnnotatedFiles()
	if err != nil {
		return err
	}
	if err := root.MergeAnnotationStatistics(doc, annotated); err != nil {
		return err
	}
	rewriteIncludes(doc)
	return teixml.WriteDocument(doc, s.iterator.AnnotatedRootFile(), s.useXmllint)
}

// rewriteIncludes points every inclusion reference at the annotated
// variant of its component.
func rewriteIncludes(doc *etree.Document) {
	rootElem := doc.Root()
	if rootElem == nil {
		return
	}
	for _, include := range rootElem.FindElements("//" + teixml.ElemInclude) {
		href := include.SelectAttrValue(teixml.AttrHref, "")
		if href == "" || strings.HasSuffix(href, corpus.AnnotatedSuffix) {
			continue
		}
		include.CreateAttr(teixml.AttrHref, corpus.AnnotatedFileFor(href))
	}
}
