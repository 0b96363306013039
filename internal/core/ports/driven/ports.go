// Package driven defines the interfaces the pipeline requires from its
// external collaborators: the linguistic tagger and the legislator
// registry.
package driven

import (
	"context"

	"github.com/roparl/corpus-cli/internal/core/domain"
)

// Tagger tokenizes, lemmatizes and dependency-parses a text fragment.
// A failed call is a hard failure for the segment being annotated.
type Tagger interface {
	Process(ctx context.Context, text string) ([]domain.Sentence, error)
}

// RegistryStore loads the pre-crawled legislator registry.
type RegistryStore interface {
	// Deputies returns the known legislators keyed by display name.
	Deputies(ctx context.Context) (map[string]domain.Deputy, error)
	// Organizations returns the distinct organization display names.
	Organizations(ctx context.Context) ([]string, error)
}
