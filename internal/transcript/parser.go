// Package transcript recovers structure from legacy session
// transcripts: speaker turns, editorial notes, timestamps and summary
// tables are located with heuristics over a leniently parsed HTML tree.
package transcript

import (
	"fmt"
	"io"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/roparl/corpus-cli/internal/core/domain"
	"github.com/roparl/corpus-cli/internal/logger"
	"github.com/roparl/corpus-cli/internal/normalisers/text"
)

// sessionPathPattern extracts the session date and type from a
// transcript file path, e.g. "corpus/2004/s-13_12.html".
var sessionPathPattern = regexp.MustCompile(
	`/(?P<year>\d{4})/(\d{2}/)?(?P<type>[a-z]{1,3})-?(?P<day>\d{2})(-|_)(?P<month>\d{2})`)

// Parser parses one session transcript file.
type Parser struct {
	fileName string
	patterns Patterns
	root     *html.Node
}

// NewParser parses the HTML of a session transcript. Malformed HTML
// still yields a best-effort tree.
func NewParser(r io.Reader, fileName string) (*Parser, error) {
	return NewParserWithPatterns(r, fileName, DefaultPatterns())
}

// NewParserWithPatterns parses the transcript with a custom heuristic
// pattern table.
func NewParserWithPatterns(r io.Reader, fileName string, patterns Patterns) (*Parser, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse html: %w", err)
	}
	if len(doc.Nodes) == 0 {
		return nil, fmt.Errorf("parse html: %w", domain.ErrInvalidInput)
	}
	return &Parser{
		fileName: fileName,
		patterns: patterns,
		root:     doc.Nodes[0],
	}, nil
}

// FileName returns the path of the transcript file.
func (p *Parser) FileName() string {
	return p.fileName
}

// SessionDate parses the session date from the transcript file path.
func (p *Parser) SessionDate() (time.Time, error) {
	date, _, err := p.parseDateAndType()
	return date, err
}

// SessionType parses the session type code from the transcript file path.
func (p *Parser) SessionType() (string, error) {
	_, sessionType, err := p.parseDateAndType()
	return sessionType, err
}

// SessionSummary parses the session summary table into one line per
// row. A missing table is logged and yields an empty result.
func (p *Parser) SessionSummary() []string {
	table := findDescendant(p.root, "table")
	if table == nil {
		logger.Error("Could not find summary table for file [%s].", p.fileName)
		return nil
	}
	var lines []string
	for _, row := range collectDescendants(table, "tr", nil) {
		cols := childElements(row)
		if len(cols) < 2 {
			continue
		}
		lines = append(lines, nodeText(cols[1]))
	}
	return lines
}

// SessionHeading parses the heading line of the session: the paragraph
// containing the heading mark, found by scanning backward from the
// summary anchor.
func (p *Parser) SessionHeading() (string, error) {
	var anchor *html.Node
	for _, para := range collectDescendants(p.root, "p", nil) {
		if strings.Contains(nodeText(para), p.patterns.HeadingAnchor) {
			anchor = para
			break
		}
	}
	if anchor == nil {
		logger.Error("Could not find anchor point for session heading in file [%s].", p.fileName)
		return "", domain.ErrHeadingNotFound
	}
	for node := prevElementSibling(anchor); node != nil && !isTag(node, "table"); node = prevElementSibling(node) {
		t := nodeText(node)
		if strings.Contains(strings.ToLower(t), p.patterns.HeadingMark) {
			return t, nil
		}
	}
	logger.Error("Could not parse session heading in file [%s].", p.fileName)
	return "", domain.ErrHeadingNotFound
}

// SessionStartTime parses the paragraph containing the session start time.
func (p *Parser) SessionStartTime() (string, error) {
	for _, para := range collectDescendants(p.root, "p", nil) {
		t := text.Normalize(nodeText(para))
		if strings.Contains(strings.ToLower(t), p.patterns.StartTime) {
			return t, nil
		}
	}
	logger.Error("Could not parse session start time for file [%s].", p.fileName)
	return "", domain.ErrStartMarkerNotFound
}

// SessionEndTime parses the paragraph containing the session end time.
func (p *Parser) SessionEndTime() (string, error) {
	node := p.endMarkerNode()
	if node == nil {
		logger.Error("Could not parse session end time for file [%s].", p.fileName)
		return "", domain.ErrEndMarkerNotFound
	}
	return text.Normalize(nodeText(node)), nil
}

// SessionChairmen parses the paragraph announcing the presiding chair.
func (p *Parser) SessionChairmen() (string, error) {
	for _, para := range collectDescendants(p.root, "p", nil) {
		t := text.Normalize(nodeText(para))
		if strings.Contains(strings.ToLower(t), p.patterns.Chairman) {
			return t, nil
		}
	}
	logger.Error("Could not parse session chairmen for file [%s].", p.fileName)
	return "", domain.ErrChairmanNotFound
}

// endMarkerNode scans backward over the trailing paragraphs for the
// end-of-session phrase.
func (p *Parser) endMarkerNode() *html.Node {
	paragraphs := collectDescendants(p.root, "p", nil)
	start := len(paragraphs) - endMarkerScanWindow
	if start < 0 {
		start = 0
	}
	for i := len(paragraphs) - 1; i >= start; i-- {
		t := strings.ToLower(text.Normalize(nodeText(paragraphs[i])))
		if strings.Contains(t, p.patterns.EndOfSession) {
			return paragraphs[i]
		}
	}
	return nil
}

func (p *Parser) parseDateAndType() (time.Time, string, error) {
	logger.Debug("Parsing session date and type from file name [%s].", p.fileName)
	match := sessionPathPattern.FindStringSubmatch(p.fileName)
	if match == nil {
		logger.Error("Could not parse session date and type from file [%s].", p.fileName)
		return time.Time{}, "", domain.ErrDateNotFound
	}
	groups := map[string]string{}
	for i, name := range sessionPathPattern.SubexpNames() {
		if name != "" {
			groups[name] = match[i]
		}
	}
	date, err := time.Parse("2006-01-02", fmt.Sprintf("%s-%s-%s", groups["year"], groups["month"], groups["day"]))
	if err != nil {
		return time.Time{}, "", fmt.Errorf("parse session date: %w", err)
	}
	return date, groups["type"], nil
}

// childElements returns the element children of a node.
func childElements(n *html.Node) []*html.Node {
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.ElementNode {
			out = append(out, c)
		}
	}
	return out
}
