package domain

import "errors"

// Domain errors represent failures in the transformation pipeline.
// Structural misses degrade gracefully at the call site; the batch
// orchestration layer decides whether a failure aborts a file.
var (
	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrAnchorNotFound indicates the first speaker-turn paragraph
	// could not be located in a transcript.
	ErrAnchorNotFound = errors.New("debate anchor point not found")

	// ErrEndMarkerNotFound indicates the end-of-session paragraph
	// could not be located in a transcript.
	ErrEndMarkerNotFound = errors.New("end of session marker not found")

	// ErrStartMarkerNotFound indicates the start-of-session paragraph
	// could not be located in a transcript.
	ErrStartMarkerNotFound = errors.New("start of session marker not found")

	// ErrChairmanNotFound indicates the chairman announcement paragraph
	// could not be located in a transcript.
	ErrChairmanNotFound = errors.New("chairman announcement not found")

	// ErrSummaryNotFound indicates the summary table is missing.
	ErrSummaryNotFound = errors.New("summary table not found")

	// ErrHeadingNotFound indicates the session heading paragraph is missing.
	ErrHeadingNotFound = errors.New("session heading not found")

	// ErrDateNotFound indicates the session date could not be derived
	// from the transcript file path.
	ErrDateNotFound = errors.New("session date not found in file path")

	// ErrTemplateElement indicates an expected template insertion point
	// is missing from a TEI template.
	ErrTemplateElement = errors.New("template element not found")

	// ErrUnknownTagType indicates a component declares a tag type that is
	// absent from the root tag-usage registry.
	ErrUnknownTagType = errors.New("tag type not declared in root")

	// ErrUnknownOrganization indicates an organization could not be
	// resolved to a role classification.
	ErrUnknownOrganization = errors.New("organization not found")

	// ErrNoTermForDate indicates no legislative term covers a session date.
	ErrNoTermForDate = errors.New("no legislative term for date")

	// ErrTaggerUnavailable indicates the annotation service is not configured.
	ErrTaggerUnavailable = errors.New("tagger service unavailable")
)
