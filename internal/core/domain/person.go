package domain

import (
	"strings"
	"time"
	"unicode"
)

// Gender values used in person records.
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// Deputy is a record from the pre-loaded legislator registry, produced
// by the biography crawler.
type Deputy struct {
	FirstName string
	LastName  string
	Gender    string
	ImageURL  string
}

// DisplayName returns the name in the form used by transcripts.
func (d Deputy) DisplayName() string {
	return strings.TrimSpace(d.FirstName + " " + d.LastName)
}

// Person is a unique speaker known to the corpus.
type Person struct {
	ID           string
	FirstName    string
	LastName     string
	Gender       string
	ImageURL     string
	Affiliations []Affiliation
}

// Affiliation is a time-bounded relation between a person and a
// legislative term. End is nil for ongoing affiliations.
type Affiliation struct {
	TermID string
	Start  time.Time
	End    *time.Time
}

// LegislativeTerm is a dated period during which a parliament
// convocation is active.
type LegislativeTerm struct {
	ID    string
	Start time.Time
	End   *time.Time
}

// Covers reports whether the term is active on the given date.
// Terms with a nil end date are considered ongoing.
func (t LegislativeTerm) Covers(d time.Time) bool {
	if d.Before(t.Start) {
		return false
	}
	return t.End == nil || !d.After(*t.End)
}

// Names that contradict the trailing-vowel heuristic and are checked first.
var (
	maleSpecificNames   = []string{"HORIA", "MIRCEA", "ATTILA"}
	femaleSpecificNames = []string{"CARMEN"}
)

// GuessGender infers the gender of a person from the given name parts.
// Curated name lists take precedence over the trailing-vowel heuristic;
// the default is male.
func GuessGender(nameParts []string) string {
	for _, part := range splitNameParts(nameParts) {
		for _, name := range femaleSpecificNames {
			if part == name {
				return GenderFemale
			}
		}
		for _, name := range maleSpecificNames {
			if part == name {
				return GenderMale
			}
		}
		if strings.HasSuffix(part, "A") {
			return GenderFemale
		}
	}
	return GenderMale
}

// splitNameParts breaks compound name parts on hyphens and whitespace
// and uppercases them for comparison.
func splitNameParts(nameParts []string) []string {
	var parts []string
	for _, part := range nameParts {
		part = strings.ReplaceAll(part, "-", " ")
		for _, sub := range strings.Fields(part) {
			parts = append(parts, strings.ToUpper(strings.TrimSpace(sub)))
		}
	}
	return parts
}

// SplitSpeakerID infers name parts from a speaker id built by joining
// name tokens with hyphens. The last token is the surname, the rest are
// given names.
func SplitSpeakerID(id string) (firstName, lastName string) {
	id = strings.TrimPrefix(id, "#")
	tokens := strings.Split(id, "-")
	if len(tokens) == 1 {
		return "", tokens[0]
	}
	return strings.Join(tokens[:len(tokens)-1], " "), tokens[len(tokens)-1]
}

// IsUpperInitial reports whether the first rune of the token is an
// uppercase letter.
func IsUpperInitial(token string) bool {
	for _, r := range token {
		return unicode.IsUpper(r)
	}
	return false
}
