package domain

// UPos tag assigned by the tagger to punctuation tokens.
const UPosPunct = "PUNCT"

// MetaField is one metadata comment of a tagged sentence. Order is
// significant for serialization.
type MetaField struct {
	Key   string
	Value string
}

// Sentence is one tokenized-and-tagged unit returned by the external
// tagger for a segment's text.
type Sentence struct {
	Metadata []MetaField
	Tokens   []Token
}

// Token is a single tagged token within a sentence. Head is the
// positional id of the dependency head within the same sentence; zero
// marks the sentence root.
type Token struct {
	ID     int
	Form   string
	Lemma  string
	UPos   string
	XPos   string
	Feats  string
	Head   int
	Deprel string
	Deps   string
	Misc   string
}

// IsPunctuation reports whether the token is a punctuation mark.
func (t Token) IsPunctuation() bool {
	return t.UPos == UPosPunct
}

// IsRoot reports whether the token is the dependency root of its sentence.
func (t Token) IsRoot() bool {
	return t.Head == 0
}

// Meta returns the value of the named metadata field.
func (s *Sentence) Meta(key string) (string, bool) {
	for _, f := range s.Metadata {
		if f.Key == key {
			return f.Value, true
		}
	}
	return "", false
}

// SetMeta replaces the value of the named metadata field, appending it
// when absent.
func (s *Sentence) SetMeta(key, value string) {
	for i, f := range s.Metadata {
		if f.Key == key {
			s.Metadata[i].Value = value
			return
		}
	}
	s.Metadata = append(s.Metadata, MetaField{Key: key, Value: value})
}

// PrependMeta inserts a metadata field before all existing fields.
func (s *Sentence) PrependMeta(key, value string) {
	s.Metadata = append([]MetaField{{Key: key, Value: value}}, s.Metadata...)
}

// DeleteMeta removes the named metadata field if present.
func (s *Sentence) DeleteMeta(key string) {
	for i, f := range s.Metadata {
		if f.Key == key {
			s.Metadata = append(s.Metadata[:i], s.Metadata[i+1:]...)
			return
		}
	}
}
