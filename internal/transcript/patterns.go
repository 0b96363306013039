package transcript

import "regexp"

// Patterns bundles the heuristics used to classify transcript blocks.
// They are tuned to one transcript format family; swapping the pattern
// table changes the heuristics without touching the structural
// assembly logic.
type Patterns struct {
	// Speaker matches a speaker-turn opening: a form-of-address token
	// followed by a name sequence and a colon.
	Speaker *regexp.Regexp
	// RollCallGuard rejects attendance-call lines that superficially
	// match the speaker pattern.
	RollCallGuard *regexp.Regexp
	// Address strips the form-of-address token from a speaker match.
	Address *regexp.Regexp
	// StartTime is the lowercase phrase announcing the session start.
	StartTime string
	// EndOfSession is the lowercase phrase closing the session.
	EndOfSession string
	// Chairman is the lowercase phrase announcing the presiding chair.
	Chairman string
	// HeadingAnchor is the marker locating the summary section.
	HeadingAnchor string
	// HeadingMark is the lowercase word identifying the heading line.
	HeadingMark string
}

// DefaultPatterns returns the heuristics for Chamber of Deputies
// transcripts.
func DefaultPatterns() Patterns {
	return Patterns{
		Speaker:       regexp.MustCompile(`(?i)^(domnul|doamna)\s+([^:]+):`),
		RollCallGuard: regexp.MustCompile(`(?i)(prezent|absent)`),
		Address:       regexp.MustCompile(`(?i)^(domnul|doamna)\s+`),
		StartTime:     "ședința a început la ora",
		EndOfSession:  "ședința s-a încheiat la ora",
		Chairman:      "ședința a fost condusă",
		HeadingAnchor: "[1]",
		HeadingMark:   "stenograma",
	}
}

// endMarkerScanWindow is how many trailing paragraphs are scanned
// backward for the end-of-session phrase.
const endMarkerScanWindow = 5
