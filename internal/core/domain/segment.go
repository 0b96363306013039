package domain

// SegmentKind classifies a unit of transcript text extracted from one
// HTML block of a session transcription.
type SegmentKind int

const (
	// SpeakerTurn marks a paragraph that opens a new speaking turn.
	SpeakerTurn SegmentKind = iota
	// Continuation marks a paragraph belonging to the current turn.
	Continuation
	// EditorialNote marks a paragraph whose content is an editorial
	// annotation rather than spoken text.
	EditorialNote
	// RollCall marks a row expanded from an attendance table.
	RollCall
)

// String returns the name of the segment kind.
func (k SegmentKind) String() string {
	switch k {
	case SpeakerTurn:
		return "speaker-turn"
	case Continuation:
		return "continuation"
	case EditorialNote:
		return "editorial-note"
	case RollCall:
		return "tabular-roll-call"
	default:
		return "unknown"
	}
}

// Segment is the smallest text unit recognized during HTML segmentation.
// A segment is immutable once classified.
type Segment struct {
	// Raw is the text of the block as found in the document.
	Raw string
	// Text is the normalized single-line body text with parenthesized
	// asides stripped throughout.
	Text string
	// Kind is the classification assigned during segmentation.
	Kind SegmentKind
	// HasNote reports whether the block contains a distinctly styled
	// inline child with non-empty text.
	HasNote bool
	// Note is the text of the embedded note, if any.
	Note string
	// Speaker is the extracted speaker name; set only for speaker turns.
	Speaker string
}

// IsSpeaker reports whether the segment opens a new speaking turn.
func (s Segment) IsSpeaker() bool {
	return s.Kind == SpeakerTurn
}
