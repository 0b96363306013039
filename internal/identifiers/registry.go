// Package identifiers derives the stable ids used across the corpus:
// speaker ids, organization ids and their XML-safe canonical forms.
// Ids containing locale-specific letters that are invalid in the XML
// id grammar are canonicalized on generation and recorded for a
// deferred remediation pass over already-written files.
package identifiers

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"
)

// OrgIDPrefix namespaces all organization ids.
const OrgIDPrefix = "RoParl.Org."

// DefaultReplacementSpec is the builtin replacement table: Romanian
// comma-below letters mapped to ASCII-safe substitutes.
const DefaultReplacementSpec = "ȘS;șs;ȚT;țt"

var whitespaceOrHyphens = regexp.MustCompile(`[\s-]+`)

// Registry generates stable identifiers and tracks the raw ids that
// required character remediation.
type Registry struct {
	replacements map[rune]string
	flagged      map[string]string // raw id -> canonical id
}

// NewRegistry creates a registry with the given replacement table.
func NewRegistry(replacements map[rune]string) *Registry {
	if replacements == nil {
		replacements, _ = ParseReplacements(DefaultReplacementSpec)
	}
	return &Registry{
		replacements: replacements,
		flagged:      make(map[string]string),
	}
}

// ParseReplacements parses a replacement spec of the form "ȘS;șs": in
// each ;-separated part the first rune is the character to replace and
// the remainder is its substitute.
func ParseReplacements(spec string) (map[rune]string, error) {
	replacements := make(map[rune]string)
	for _, part := range strings.Split(spec, ";") {
		if part == "" {
			continue
		}
		runes := []rune(part)
		if len(runes) < 2 {
			return nil, fmt.Errorf("malformed replacement %q", part)
		}
		replacements[runes[0]] = string(runes[1:])
	}
	return replacements, nil
}

// SpeakerID derives the id of a speaker from the display name:
// whitespace and hyphen runs are collapsed to single hyphens. The id
// is canonicalized; case is preserved.
func (r *Registry) SpeakerID(displayName string) string {
	id := whitespaceOrHyphens.ReplaceAllString(strings.TrimSpace(displayName), "-")
	return r.Canonicalize(id)
}

// SpeakerRef returns the reference form of a speaker id, as used by
// utterance who attributes.
func (r *Registry) SpeakerRef(displayName string) string {
	return "#" + r.SpeakerID(displayName)
}

// OrganizationID derives the id of an organization: from the acronym
// when present, else from the initials of a multi-word name (words
// that already look like acronyms are kept verbatim), else from the
// capitalized single word.
func (r *Registry) OrganizationID(name, acronym string) string {
	stem := acronym
	if stem == "" {
		words := strings.Fields(name)
		switch {
		case len(words) > 1:
			var sb strings.Builder
			for _, word := range words {
				if word == strings.ToUpper(word) && len(word) > 1 {
					sb.WriteString(word)
					continue
				}
				runes := []rune(word)
				if unicode.IsLetter(runes[0]) {
					sb.WriteRune(unicode.ToUpper(runes[0]))
				}
			}
			stem = sb.String()
		case len(words) == 1:
			runes := []rune(words[0])
			stem = string(unicode.ToUpper(runes[0])) + string(runes[1:])
		}
	}
	return r.Canonicalize(OrgIDPrefix + stem)
}

// Canonicalize replaces every character found in the replacement
// table. Any id that required replacement is recorded for the deferred
// remediation pass. Canonicalization is idempotent.
func (r *Registry) Canonicalize(id string) string {
	var sb strings.Builder
	changed := false
	for _, c := range id {
		if repl, ok := r.replacements[c]; ok {
			sb.WriteString(repl)
			changed = true
			continue
		}
		sb.WriteRune(c)
	}
	if !changed {
		return id
	}
	canonical := sb.String()
	r.flagged[id] = canonical
	return canonical
}

// Flagged returns the raw-to-canonical mapping of every id that
// required character remediation so far.
func (r *Registry) Flagged() map[string]string {
	out := make(map[string]string, len(r.flagged))
	for raw, canonical := range r.flagged {
		out[raw] = canonical
	}
	return out
}
