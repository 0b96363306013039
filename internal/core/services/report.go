// Package services orchestrates the batch runs of the pipeline: per
// file parsing, root aggregation, linguistic annotation and corpus
// corrections. One file's failure never aborts a batch.
package services

import (
	"github.com/google/uuid"

	"github.com/roparl/corpus-cli/internal/logger"
)

// Report tallies one batch run.
type Report struct {
	RunID       string
	Processed   int
	Failed      int
	FailedFiles []string
}

// newReport creates a report stamped with a fresh run id.
func newReport() *Report {
	return &Report{RunID: uuid.NewString()}
}

// success records one processed file.
func (r *Report) success() {
	r.Processed++
}

// failure records one failed file.
func (r *Report) failure(path string) {
	r.Failed++
	r.FailedFiles = append(r.FailedFiles, path)
}

// log prints the closing tally of the run.
func (r *Report) log() {
	logger.Info("Run %s finished: %d processed, %d failed.", r.RunID, r.Processed, r.Failed)
	for _, path := range r.FailedFiles {
		logger.Info("Failed: %s", path)
	}
}
