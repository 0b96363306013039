package transcript

import (
	"strings"

	"golang.org/x/net/html"

	"github.com/roparl/corpus-cli/internal/core/domain"
	"github.com/roparl/corpus-cli/internal/logger"
	"github.com/roparl/corpus-cli/internal/normalisers/text"
)

// Segments walks the document from the first recognized speaker-turn
// paragraph to the end-of-session marker and returns the classified
// segments of the debate section. When no anchor or end marker is
// found the result is empty or partial; callers must tolerate a
// session with zero utterances.
func (p *Parser) Segments() []domain.Segment {
	anchor := p.anchorNode()
	if anchor == nil {
		logger.Error("Could not find anchor point for debate section in file [%s].", p.fileName)
		return nil
	}
	end := p.endMarkerNode()
	if end == nil {
		logger.Error("Could not find end of session marker in file [%s].", p.fileName)
	}

	var segments []domain.Segment
	for node := anchor; node != nil && node != end; node = nextElementSibling(node) {
		if containsTable(node) {
			segments = append(segments, p.tableSegments(tableOf(node))...)
			continue
		}
		segments = append(segments, p.classify(node))
	}
	return segments
}

// anchorNode locates the first paragraph matching the speaker-turn
// pattern, rejecting roll-call lines.
func (p *Parser) anchorNode() *html.Node {
	for _, para := range collectDescendants(p.root, "p", nil) {
		if p.isSpeakerLine(text.ToSingleLine(nodeText(para))) {
			return para
		}
	}
	return nil
}

// classify builds a Segment from one non-table block.
func (p *Parser) classify(node *html.Node) domain.Segment {
	raw := nodeText(node)
	line := text.ToSingleLine(raw)
	note := italicText(node)

	seg := domain.Segment{
		Raw:     raw,
		Text:    text.StripAsides(raw),
		HasNote: note != "",
	}

	switch {
	case p.isSpeakerLine(line):
		seg.Kind = domain.SpeakerTurn
		seg.Speaker = p.speakerName(line)
		// The trailing colon is a speaker-label artifact here, not
		// punctuation.
		seg.Note = strings.TrimSuffix(text.ToSingleLine(note), ":")
	case seg.HasNote && p.noteOnly(node, note):
		seg.Kind = domain.EditorialNote
		seg.Note = text.ToSingleLine(note)
	default:
		seg.Kind = domain.Continuation
		seg.Note = text.ToSingleLine(note)
	}
	// A mis-extracted empty name demotes the block to a continuation.
	if seg.Kind == domain.SpeakerTurn && seg.Speaker == "" {
		seg.Kind = domain.Continuation
	}
	return seg
}

// tableSegments expands every row of a roll-call table into one
// segment each. Table rows never open a speaker turn and never carry
// a note.
func (p *Parser) tableSegments(table *html.Node) []domain.Segment {
	var segments []domain.Segment
	for _, row := range collectDescendants(table, "tr", nil) {
		raw := rowText(row)
		segments = append(segments, domain.Segment{
			Raw:  raw,
			Text: text.StripAsides(raw),
			Kind: domain.RollCall,
		})
	}
	return segments
}

// isSpeakerLine reports whether a normalized line opens a speaker
// turn. Attendance-call lines can superficially match the speaker
// pattern, so lines carrying roll-call markers are rejected.
func (p *Parser) isSpeakerLine(line string) bool {
	if !p.patterns.Speaker.MatchString(line) {
		return false
	}
	if p.patterns.RollCallGuard.MatchString(line) {
		return false
	}
	return p.speakerName(line) != ""
}

// speakerName extracts the speaker name from a speaker-turn line:
// the form-of-address token and any parenthesized aside are stripped,
// and the name is accepted only if every remaining token starts with
// an uppercase letter. This guards against narrative sentences that
// happen to start with a form of address.
func (p *Parser) speakerName(line string) string {
	match := p.patterns.Speaker.FindStringSubmatch(line)
	if match == nil {
		return ""
	}
	name := text.StripAsides(match[2])
	if name == "" {
		return ""
	}
	for _, token := range strings.Fields(name) {
		if !domain.IsUpperInitial(token) {
			return ""
		}
	}
	return name
}

// noteOnly reports whether the block's only content is its italic
// note, i.e. nothing remains outside the styled child.
func (p *Parser) noteOnly(node *html.Node, note string) bool {
	full := text.ToSingleLine(nodeText(node))
	rest := strings.TrimSpace(strings.Replace(full, text.ToSingleLine(note), "", 1))
	return rest == ""
}
