// Package conllu parses and serializes the CoNLL-U exchange format
// used by the external tagger: sentences separated by blank lines,
// "# key = value" metadata comments, and ten tab-separated fields per
// token.
package conllu

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/roparl/corpus-cli/internal/core/domain"
)

// SentenceDelimiter separates serialized sentences.
const SentenceDelimiter = "\n\n"

const fieldCount = 10

// Empty is the placeholder for absent field values.
const Empty = "_"

// Parse decodes a CoNLL-U document into sentences. Multiword-token
// rows (ids containing "-" or ".") are skipped, as are comment lines
// that are not "key = value" metadata.
func Parse(data string) ([]domain.Sentence, error) {
	var sentences []domain.Sentence
	for _, block := range strings.Split(data, SentenceDelimiter) {
		if strings.TrimSpace(block) == "" {
			continue
		}
		sentence, err := parseSentence(block)
		if err != nil {
			return nil, err
		}
		sentences = append(sentences, sentence)
	}
	return sentences, nil
}

func parseSentence(block string) (domain.Sentence, error) {
	var sentence domain.Sentence
	for _, line := range strings.Split(block, "\n") {
		if strings.TrimSpace(line) == "" {
			continue
		}
		if strings.HasPrefix(line, "#") {
			if key, value, ok := parseMetadata(line); ok {
				sentence.Metadata = append(sentence.Metadata, domain.MetaField{Key: key, Value: value})
			}
			continue
		}
		fields := strings.Split(line, "\t")
		if len(fields) < fieldCount {
			return domain.Sentence{}, fmt.Errorf("%w: expected %d fields, got %d in %q",
				domain.ErrInvalidInput, fieldCount, len(fields), line)
		}
		// Multiword tokens and empty nodes carry range ids; skip them.
		if strings.ContainsAny(fields[0], "-.") {
			continue
		}
		token, err := parseToken(fields)
		if err != nil {
			return domain.Sentence{}, err
		}
		sentence.Tokens = append(sentence.Tokens, token)
	}
	return sentence, nil
}

func parseMetadata(line string) (key, value string, ok bool) {
	content := strings.TrimSpace(strings.TrimPrefix(line, "#"))
	key, value, found := strings.Cut(content, "=")
	if !found {
		return "", "", false
	}
	return strings.TrimSpace(key), strings.TrimSpace(value), true
}

func parseToken(fields []string) (domain.Token, error) {
	id, err := strconv.Atoi(fields[0])
	if err != nil {
		return domain.Token{}, fmt.Errorf("parse token id %q: %w", fields[0], err)
	}
	head := 0
	if fields[6] != Empty {
		head, err = strconv.Atoi(fields[6])
		if err != nil {
			return domain.Token{}, fmt.Errorf("parse token head %q: %w", fields[6], err)
		}
	}
	return domain.Token{
		ID:     id,
		Form:   fields[1],
		Lemma:  orEmpty(fields[2]),
		UPos:   orEmpty(fields[3]),
		XPos:   orEmpty(fields[4]),
		Feats:  orEmpty(fields[5]),
		Head:   head,
		Deprel: orEmpty(fields[7]),
		Deps:   orEmpty(fields[8]),
		Misc:   orEmpty(fields[9]),
	}, nil
}

func orEmpty(field string) string {
	if field == Empty {
		return ""
	}
	return field
}

// Serialize encodes one sentence back to CoNLL-U, metadata first, one
// token per line, terminated by a blank line.
func Serialize(s domain.Sentence) string {
	var sb strings.Builder
	for _, meta := range s.Metadata {
		if meta.Value == "" {
			fmt.Fprintf(&sb, "# %s\n", meta.Key)
			continue
		}
		fmt.Fprintf(&sb, "# %s = %s\n", meta.Key, meta.Value)
	}
	for _, t := range s.Tokens {
		fields := []string{
			strconv.Itoa(t.ID),
			t.Form,
			emptyOr(t.Lemma),
			emptyOr(t.UPos),
			emptyOr(t.XPos),
			emptyOr(t.Feats),
			strconv.Itoa(t.Head),
			emptyOr(t.Deprel),
			emptyOr(t.Deps),
			emptyOr(t.Misc),
		}
		sb.WriteString(strings.Join(fields, "\t"))
		sb.WriteString("\n")
	}
	sb.WriteString("\n")
	return sb.String()
}

func emptyOr(field string) string {
	if field == "" {
		return Empty
	}
	return field
}
