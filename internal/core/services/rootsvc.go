package services

import (
	"context"
	"fmt"

	"github.com/beevik/etree"

	"github.com/roparl/corpus-cli/internal/builder/root"
	"github.com/roparl/corpus-cli/internal/core/ports/driven"
	"github.com/roparl/corpus-cli/internal/corpus"
	"github.com/roparl/corpus-cli/internal/identifiers"
	"github.com/roparl/corpus-cli/internal/logger"
	"github.com/roparl/corpus-cli/internal/teixml"
)

// RootService builds the corpus root from the component files and runs
// the deferred id remediation pass afterwards.
type RootService struct {
	registry   *identifiers.Registry
	store      driven.RegistryStore
	template   *etree.Document
	iterator   *corpus.Iterator
	useXmllint bool
}

// NewRootService creates the root aggregation service.
func NewRootService(registry *identifiers.Registry, store driven.RegistryStore, template *etree.Document, iterator *corpus.Iterator, useXmllint bool) *RootService {
	return &RootService{
		registry:   registry,
		store:      store,
		template:   template,
		iterator:   iterator,
		useXmllint: useXmllint,
	}
}

// Run aggregates every component file into a fresh root document,
// writes it and remediates flagged ids across the whole corpus.
func (s *RootService) Run(ctx context.Context) error {
	deputies, err := s.store.Deputies(ctx)
	if err != nil {
		return fmt.Errorf("load deputies: %w", err)
	}
	orgNames, err := s.store.Organizations(ctx)
	if err != nil {
		return fmt.Errorf("load organizations: %w", err)
	}
	components, err := s.iterator.ComponentFiles()
	if err != nil {
		return err
	}
	logger.Info("Aggregating %d component files into the corpus root.", len(components))

	aggregator := root.NewAggregator(s.registry, deputies, orgNames)
	doc, err := aggregator.Aggregate(s.template, components)
	if err != nil {
		return err
	}
	rootFile := s.iterator.RootFile()
	if err := teixml.WriteDocument(doc, rootFile, s.useXmllint); err != nil {
		return err
	}

	// Second phase: rewrite every flagged id across the corpus.
	files := append(components, rootFile)
	return identifiers.Remediate(files, s.registry.Flagged(), s.useXmllint)
}
