// Package text canonicalizes legacy-encoded transcript text: cedilla
// diacritics are remapped to their comma-below forms, HTML entities are
// decoded, and whitespace is collapsed. Every parsing stage goes
// through this package before matching heuristics against text.
package text

import (
	"html"
	"regexp"
	"strings"
)

// Legacy cedilla letters mapped to the comma-below forms used by
// modern Romanian orthography.
var diacriticReplacer = strings.NewReplacer(
	"ş", "ș", // ş -> ș
	"Ş", "Ș", // Ş -> Ș
	"ţ", "ț", // ţ -> ț
	"Ţ", "Ț", // Ţ -> Ț
	" ", " ", // no-break space
)

// Pre-compiled regular expressions for normalization performance.
var (
	multiSpaces  = regexp.MustCompile(`[ \t]+`)
	anyWhitespace = regexp.MustCompile(`\s+`)
	parenAsides  = regexp.MustCompile(`\([^)]*\)`)
)

// Normalize canonicalizes a line of transcript text: entities are
// decoded, legacy diacritics remapped, runs of spaces collapsed and the
// result trimmed. Line breaks are preserved.
func Normalize(s string) string {
	s = html.UnescapeString(s)
	s = diacriticReplacer.Replace(s)
	s = multiSpaces.ReplaceAllString(s, " ")

	lines := strings.Split(s, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimSpace(line)
	}
	return strings.TrimSpace(strings.Join(lines, "\n"))
}

// ToSingleLine normalizes the text and joins all lines into one,
// collapsing any remaining whitespace runs to single spaces.
func ToSingleLine(s string) string {
	s = Normalize(s)
	return strings.TrimSpace(anyWhitespace.ReplaceAllString(s, " "))
}

// StripAsides removes parenthesized asides throughout the text, since
// transcripts embed crowd-reaction annotations like "(Aplauze.)"
// inline. The result is whitespace-collapsed.
func StripAsides(s string) string {
	s = parenAsides.ReplaceAllString(s, " ")
	return ToSingleLine(s)
}
