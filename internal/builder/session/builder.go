// Package session builds one TEI component document per parliamentary
// sitting from the classified segment stream of a transcript.
package session

import (
	"fmt"
	"strings"
	"time"
	"unicode"

	"github.com/beevik/etree"

	"github.com/roparl/corpus-cli/internal/core/domain"
	"github.com/roparl/corpus-cli/internal/identifiers"
	"github.com/roparl/corpus-cli/internal/logger"
	"github.com/roparl/corpus-cli/internal/normalisers/text"
	"github.com/roparl/corpus-cli/internal/teixml"
)

// Source is the segmented transcript the builder consumes. A parsed
// transcript satisfies it; tests may substitute a fixture.
type Source interface {
	FileName() string
	SessionDate() (time.Time, error)
	SessionSummary() []string
	SessionHeading() (string, error)
	SessionStartTime() (string, error)
	SessionEndTime() (string, error)
	SessionChairmen() (string, error)
	Segments() []domain.Segment
}

// Builder populates a session template from a segmented transcript.
type Builder struct {
	registry *identifiers.Registry
	prefix   string
}

// NewBuilder creates a session document builder. The prefix names the
// corpus and opens every session id.
func NewBuilder(registry *identifiers.Registry, prefix string) *Builder {
	return &Builder{registry: registry, prefix: prefix}
}

// SessionID derives the id of a session document from its date.
func (b *Builder) SessionID(date time.Time) string {
	return fmt.Sprintf("%s-%s-CD", b.prefix, teixml.FormatDateISO(date))
}

// ComponentFileName returns the output file name of a session document.
func ComponentFileName(sessionID string) string {
	return sessionID + ".xml"
}

// Build populates a copy of the template with the transcript content
// and returns the finished document together with its session id. The
// template itself is never mutated, so repeated builds from the same
// inputs produce identical documents.
func (b *Builder) Build(template *etree.Document, src Source) (*etree.Document, string, error) {
	date, err := src.SessionDate()
	if err != nil {
		return nil, "", fmt.Errorf("build session from %s: %w", src.FileName(), err)
	}
	sessionID := b.SessionID(date)
	logger.Debug("Building session document [%s].", sessionID)

	doc := template.Copy()
	root, err := teixml.Root(doc)
	if err != nil {
		return nil, "", err
	}
	root.CreateAttr(teixml.AttrXMLID, sessionID)

	if err := b.fillTitles(root, date); err != nil {
		return nil, "", err
	}
	b.fillMeeting(root, date)
	b.fillIdno(root, date)
	b.fillDates(root, date)

	section, err := teixml.FindDebateSection(root)
	if err != nil {
		return nil, "", err
	}
	b.buildHeading(section, src, date)
	b.buildBody(section, sessionID, src.Segments())
	b.buildFooter(section, src)
	b.renumberUtterances(root, sessionID)

	if err := b.fillExtent(root, section); err != nil {
		return nil, "", err
	}
	b.fillTagUsage(root)
	return doc, sessionID, nil
}

// fillTitles sets the four title elements keyed by type and language.
func (b *Builder) fillTitles(root *etree.Element, date time.Time) error {
	titles := map[[2]string]string{
		{teixml.TypeMain, teixml.LangRo}: fmt.Sprintf(domain.SessionTitleRo, teixml.FormatDateRo(date)),
		{teixml.TypeMain, teixml.LangEn}: fmt.Sprintf(domain.SessionTitleEn, teixml.FormatDateEn(date)),
		{teixml.TypeSub, teixml.LangRo}:  fmt.Sprintf(domain.SessionSubtitleRo, teixml.FormatDateRo(date)),
		{teixml.TypeSub, teixml.LangEn}:  fmt.Sprintf(domain.SessionSubtitleEn, teixml.FormatDateEn(date)),
	}
	for key, value := range titles {
		title := findByAttrs(root, teixml.ElemTitle, map[string]string{
			teixml.AttrType:    key[0],
			teixml.AttrXMLLang: key[1],
		})
		if title == nil {
			return fmt.Errorf("title type=%s lang=%s: %w", key[0], key[1], domain.ErrTemplateElement)
		}
		title.SetText(value)
	}
	return nil
}

// fillMeeting stamps the meeting element with the compact numeric date.
func (b *Builder) fillMeeting(root *etree.Element, date time.Time) {
	meeting := root.FindElement("//" + teixml.ElemMeeting)
	if meeting == nil {
		logger.Error("Could not find meeting element in session template.")
		return
	}
	meeting.CreateAttr(teixml.AttrN, teixml.FormatDateCompact(date))
	meeting.CreateAttr(teixml.AttrCorresp, "#parla.lower")
}

// fillIdno sets the canonical transcript address.
func (b *Builder) fillIdno(root *etree.Element, date time.Time) {
	for _, idno := range root.FindElements("//" + teixml.ElemIdno) {
		if idno.SelectAttrValue(teixml.AttrType, "") != teixml.TypeURI {
			continue
		}
		idno.SetText(fmt.Sprintf(domain.SessionURITemplate, teixml.FormatDateCompact(date)))
		return
	}
	logger.Error("Could not find URI idno element in session template.")
}

// fillDates sets the session date under the bibliographic and setting
// contexts: ISO attribute plus localized display text.
func (b *Builder) fillDates(root *etree.Element, date time.Time) {
	paths := []string{
		"//" + teixml.ElemBibl + "/" + teixml.ElemDate,
		"//" + teixml.ElemSetting + "/" + teixml.ElemDate,
	}
	for _, path := range paths {
		elem := root.FindElement(path)
		if elem == nil {
			logger.Error("Could not find date element at %s in session template.", path)
			continue
		}
		elem.CreateAttr(teixml.AttrWhen, teixml.FormatDateISO(date))
		elem.SetText(teixml.FormatDateDisplay(date))
	}
}

// buildHeading assembles the heading block of the debate section. Each
// part missing from the transcript is skipped, not fatal.
func (b *Builder) buildHeading(section *etree.Element, src Source, date time.Time) {
	head := section.CreateElement(teixml.ElemHead)
	head.SetText(domain.Heading)

	sessionHead := section.CreateElement(teixml.ElemHead)
	sessionHead.CreateAttr(teixml.AttrType, teixml.TypeSession)
	sessionHead.SetText(fmt.Sprintf(domain.SessionHeading, teixml.FormatDateRo(date)))

	if summary := src.SessionSummary(); len(summary) > 0 {
		toc := section.CreateElement(teixml.ElemNote)
		toc.CreateAttr(teixml.AttrType, teixml.TypeEditorial)
		toc.SetText(domain.TableOfContents)
		for _, line := range summary {
			note := section.CreateElement(teixml.ElemNote)
			note.CreateAttr(teixml.AttrType, teixml.TypeSummary)
			note.SetText(text.ToSingleLine(line))
		}
	}
	if heading, err := src.SessionHeading(); err == nil {
		note := section.CreateElement(teixml.ElemNote)
		note.CreateAttr(teixml.AttrType, teixml.TypeEditorial)
		note.SetText(text.ToSingleLine(heading))
	}
	if start, err := src.SessionStartTime(); err == nil {
		note := section.CreateElement(teixml.ElemNote)
		note.CreateAttr(teixml.AttrType, teixml.TypeTime)
		note.SetText(start)
	}
	if chairmen, err := src.SessionChairmen(); err == nil {
		note := section.CreateElement(teixml.ElemNote)
		note.CreateAttr(teixml.AttrType, teixml.TypeChairman)
		note.SetText(chairmen)
	}
}

// buildBody folds the segment stream into notes, utterances and
// sub-segments. The speaker of the first turn is the chair for the
// whole session; segment numbering is document-global.
func (b *Builder) buildBody(section *etree.Element, sessionID string, segments []domain.Segment) {
	var current *etree.Element
	chairName := ""
	segNumber := 0

	for _, seg := range segments {
		switch seg.Kind {
		case domain.SpeakerTurn:
			note := section.CreateElement(teixml.ElemNote)
			note.CreateAttr(teixml.AttrType, teixml.TypeSpeaker)
			note.SetText(text.ToSingleLine(seg.Text))

			if chairName == "" {
				chairName = seg.Speaker
			}
			current = section.CreateElement(teixml.ElemUtterance)
			current.CreateAttr(teixml.AttrWho, b.registry.SpeakerRef(seg.Speaker))
			if seg.Speaker == chairName {
				current.CreateAttr(teixml.AttrAna, teixml.AnaChair)
			} else {
				current.CreateAttr(teixml.AttrAna, teixml.AnaRegular)
			}
		case domain.EditorialNote:
			parent := section
			if current != nil {
				parent = current
			}
			note := parent.CreateElement(teixml.ElemNote)
			note.CreateAttr(teixml.AttrType, teixml.TypeEditorial)
			note.SetText(seg.Note)
		case domain.Continuation, domain.RollCall:
			if current == nil {
				logger.Debug("Skipping segment before the first speaker turn: %q.", seg.Text)
				continue
			}
			body := text.ToSingleLine(seg.Text)
			if body == "" {
				continue
			}
			segNumber++
			elem := current.CreateElement(teixml.ElemSeg)
			elem.CreateAttr(teixml.AttrXMLID, fmt.Sprintf("%s.seg%d", sessionID, segNumber))
			elem.SetText(body)
			if seg.Kind == domain.Continuation && seg.Note != "" {
				note := current.CreateElement(teixml.ElemNote)
				note.CreateAttr(teixml.AttrType, teixml.TypeEditorial)
				note.SetText(seg.Note)
			}
		}
	}
}

// buildFooter appends the end-of-session time note.
func (b *Builder) buildFooter(section *etree.Element, src Source) {
	end, err := src.SessionEndTime()
	if err != nil {
		return
	}
	note := section.CreateElement(teixml.ElemNote)
	note.CreateAttr(teixml.AttrType, teixml.TypeTime)
	note.SetText(end)
}

// renumberUtterances prunes utterances with no segment children and
// assigns final sequential ids over the survivors in document order.
func (b *Builder) renumberUtterances(root *etree.Element, sessionID string) {
	number := 0
	for _, u := range root.FindElements("//" + teixml.ElemUtterance) {
		if u.FindElement(teixml.ElemSeg) == nil {
			u.Parent().RemoveChild(u)
			continue
		}
		number++
		u.CreateAttr(teixml.AttrXMLID, fmt.Sprintf("%s.u%d", sessionID, number))
	}
}

// fillExtent sets the bilingual speech and word counts.
func (b *Builder) fillExtent(root *etree.Element, section *etree.Element) error {
	speeches := teixml.CountTag(root, teixml.ElemUtterance)
	words := countWords(teixml.ElementText(section))

	measures := map[[2]string]struct {
		quantity int
		format   string
	}{
		{teixml.UnitSpeeches, teixml.LangRo}: {speeches, domain.NumSpeechesRo},
		{teixml.UnitSpeeches, teixml.LangEn}: {speeches, domain.NumSpeechesEn},
		{teixml.UnitWords, teixml.LangRo}:    {words, domain.NumWordsRo},
		{teixml.UnitWords, teixml.LangEn}:    {words, domain.NumWordsEn},
	}
	for key, m := range measures {
		measure := findByAttrs(root, teixml.ElemMeasure, map[string]string{
			teixml.AttrUnit:    key[0],
			teixml.AttrXMLLang: key[1],
		})
		if measure == nil {
			return fmt.Errorf("measure unit=%s lang=%s: %w", key[0], key[1], domain.ErrTemplateElement)
		}
		measure.CreateAttr(teixml.AttrQuantity, fmt.Sprintf("%d", m.quantity))
		measure.SetText(fmt.Sprintf(m.format, m.quantity))
	}
	return nil
}

// fillTagUsage counts every declared tag type over the finished
// document.
func (b *Builder) fillTagUsage(root *etree.Element) {
	for _, usage := range root.FindElements("//" + teixml.ElemTagUsage) {
		gi := usage.SelectAttrValue(teixml.AttrGI, "")
		if gi == "" {
			continue
		}
		usage.CreateAttr(teixml.AttrOccurs, fmt.Sprintf("%d", teixml.CountTag(root, gi)))
	}
}

// countWords tokenizes on whitespace and punctuation and counts the
// remaining tokens.
func countWords(s string) int {
	return len(strings.FieldsFunc(s, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	}))
}

// findByAttrs locates the first descendant with the given tag whose
// attributes all match.
func findByAttrs(root *etree.Element, tag string, attrs map[string]string) *etree.Element {
	for _, elem := range root.FindElements("//" + tag) {
		match := true
		for name, value := range attrs {
			if elem.SelectAttrValue(name, "") != value {
				match = false
				break
			}
		}
		if match {
			return elem
		}
	}
	return nil
}
