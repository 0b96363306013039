// Package annotation replaces segment text with the sentence and token
// structure returned by the external tagger and serializes a parallel
// token-stream representation of the whole document.
package annotation

import (
	"context"
	"fmt"
	"strings"

	"github.com/beevik/etree"

	"github.com/roparl/corpus-cli/internal/conllu"
	"github.com/roparl/corpus-cli/internal/core/domain"
	"github.com/roparl/corpus-cli/internal/core/ports/driven"
	"github.com/roparl/corpus-cli/internal/logger"
	"github.com/roparl/corpus-cli/internal/teixml"
)

// Metadata keys identifying the tagger in its raw output. Only the
// first sentence of a file keeps them.
var generatorMetaKeys = []string{"generator", "udpipe_model", "udpipe_model_licence"}

// Tag types introduced by the annotation layer.
var annotationTags = []string{
	teixml.ElemSentence,
	teixml.ElemWord,
	teixml.ElemPunct,
	teixml.ElemLinkGrp,
	teixml.ElemLink,
}

// Merger annotates one session document at a time.
type Merger struct {
	tagger driven.Tagger
}

// NewMerger creates a merger backed by the given tagger.
func NewMerger(tagger driven.Tagger) *Merger {
	return &Merger{tagger: tagger}
}

// Annotate rewrites every non-empty segment of the document into
// tagged sentence elements and returns the parallel token stream. The
// document is mutated in place. A tagger failure aborts the document.
func (m *Merger) Annotate(ctx context.Context, doc *etree.Document) (string, error) {
	root, err := teixml.Root(doc)
	if err != nil {
		return "", err
	}

	var stream strings.Builder
	prevUtterance := ""
	prevSegment := ""
	firstSentence := true

	for _, u := range root.FindElements("//" + teixml.ElemUtterance) {
		utteranceID := u.SelectAttrValue(teixml.AttrXMLID, "")
		for _, seg := range u.FindElements(teixml.ElemSeg) {
			segID := seg.SelectAttrValue(teixml.AttrXMLID, "")
			body := strings.TrimSpace(teixml.ElementText(seg))
			if body == "" {
				// Nothing to tag; the skip consumes no ids.
				logger.Debug("Skipping empty segment [%s].", segID)
				continue
			}
			sentences, err := m.tagger.Process(ctx, body)
			if err != nil {
				return "", fmt.Errorf("annotate segment %s: %w", segID, err)
			}

			teixml.RemoveChildren(seg)
			for i := range sentences {
				sentence := &sentences[i]
				sentenceID := fmt.Sprintf("%s.%s", segID, taggerSentenceID(sentence, i+1))
				buildSentence(seg, sentenceID, sentence)

				if !firstSentence {
					for _, key := range generatorMetaKeys {
						sentence.DeleteMeta(key)
					}
				}
				firstSentence = false

				sentence.SetMeta("sent_id", sentenceID)
				if segID != prevSegment {
					sentence.PrependMeta("newpar id", segID)
					prevSegment = segID
				}
				if utteranceID != prevUtterance {
					sentence.PrependMeta("newdoc id", utteranceID)
					prevUtterance = utteranceID
				}
				stream.WriteString(conllu.Serialize(*sentence))
			}
		}
	}

	updateTagUsage(root)
	return stream.String(), nil
}

// taggerSentenceID returns the tagger-internal sentence id, falling
// back to the ordinal position within the segment.
func taggerSentenceID(sentence *domain.Sentence, ordinal int) string {
	if id, ok := sentence.Meta("sent_id"); ok && id != "" {
		return id
	}
	return fmt.Sprintf("%d", ordinal)
}

// buildSentence appends one sentence element with its token children
// and the dependency link group.
func buildSentence(seg *etree.Element, sentenceID string, sentence *domain.Sentence) {
	elem := seg.CreateElement(teixml.ElemSentence)
	elem.CreateAttr(teixml.AttrXMLID, sentenceID)

	tokenIDs := make(map[int]string, len(sentence.Tokens))
	for _, token := range sentence.Tokens {
		tokenIDs[token.ID] = fmt.Sprintf("%s.%d", sentenceID, token.ID)
	}
	for _, token := range sentence.Tokens {
		buildToken(elem, tokenIDs[token.ID], token)
	}
	buildLinkGroup(elem, tokenIDs, sentence)
}

// buildToken appends one word or punctuation element.
func buildToken(parent *etree.Element, id string, token domain.Token) {
	tag := teixml.ElemWord
	if token.IsPunctuation() {
		tag = teixml.ElemPunct
	}
	elem := parent.CreateElement(tag)
	elem.CreateAttr(teixml.AttrXMLID, id)
	if tag == teixml.ElemWord && token.Lemma != "" {
		elem.CreateAttr(teixml.AttrLemma, token.Lemma)
	}
	elem.CreateAttr(teixml.AttrPOS, token.UPos)
	elem.CreateAttr(teixml.AttrMSD, packMorphology(token))
	elem.SetText(token.Form)
}

// packMorphology folds the part of speech and the morphological
// features into a single attribute value.
func packMorphology(token domain.Token) string {
	msd := "UPosTag=" + token.UPos
	if token.Feats != "" {
		msd += "|" + token.Feats
	}
	return msd
}

// buildLinkGroup appends the dependency links of a sentence: one link
// per non-root token, plus a single-sided root link when the sentence
// has more than one token.
func buildLinkGroup(sentence *etree.Element, tokenIDs map[int]string, parsed *domain.Sentence) {
	if len(parsed.Tokens) == 0 {
		return
	}
	grp := sentence.CreateElement(teixml.ElemLinkGrp)
	grp.CreateAttr(teixml.AttrType, teixml.TypeUDSyn)
	for _, token := range parsed.Tokens {
		if token.IsRoot() {
			if len(parsed.Tokens) > 1 {
				link := grp.CreateElement(teixml.ElemLink)
				link.CreateAttr(teixml.AttrAna, "ud-syn:"+token.Deprel)
				link.CreateAttr(teixml.AttrTarget, "#"+tokenIDs[token.ID])
			}
			continue
		}
		head, ok := tokenIDs[token.Head]
		if !ok {
			logger.Error("Dependency head [%d] not found for token [%s].", token.Head, tokenIDs[token.ID])
			continue
		}
		link := grp.CreateElement(teixml.ElemLink)
		link.CreateAttr(teixml.AttrAna, "ud-syn:"+token.Deprel)
		link.CreateAttr(teixml.AttrTarget, fmt.Sprintf("#%s #%s", tokenIDs[token.ID], head))
	}
	if len(grp.ChildElements()) == 0 {
		sentence.RemoveChild(grp)
	}
}

// updateTagUsage refreshes the counters for the tag types introduced
// by the annotation layer, declaring missing ones with a zero count
// first.
func updateTagUsage(root *etree.Element) {
	declared := map[string]*etree.Element{}
	var namespace *etree.Element
	for _, usage := range root.FindElements("//" + teixml.ElemTagUsage) {
		if gi := usage.SelectAttrValue(teixml.AttrGI, ""); gi != "" {
			declared[gi] = usage
			namespace = usage.Parent()
		}
	}
	if namespace == nil {
		logger.Error("Could not find tagUsage declarations in annotated document.")
		return
	}
	for _, gi := range annotationTags {
		usage, ok := declared[gi]
		if !ok {
			usage = namespace.CreateElement(teixml.ElemTagUsage)
			usage.CreateAttr(teixml.AttrGI, gi)
			usage.CreateAttr(teixml.AttrOccurs, "0")
		}
		usage.CreateAttr(teixml.AttrOccurs, fmt.Sprintf("%d", teixml.CountTag(root, gi)))
	}
}
