package teixml

import (
	"fmt"
	"os"
	"os/exec"
	"strings"

	"github.com/beevik/etree"

	"github.com/roparl/corpus-cli/internal/core/domain"
	"github.com/roparl/corpus-cli/internal/logger"
)

// ReadDocument loads an XML document from a file.
func ReadDocument(path string) (*etree.Document, error) {
	doc := etree.NewDocument()
	if err := doc.ReadFromFile(path); err != nil {
		return nil, fmt.Errorf("read xml %s: %w", path, err)
	}
	return doc, nil
}

// WriteDocument serializes a document to a file: pretty-printed,
// UTF-8, with an explicit XML declaration. When useXmllint is set, the
// external formatter is invoked as a post-process step; its failure is
// non-fatal to the write.
func WriteDocument(doc *etree.Document, path string, useXmllint bool) error {
	ensureDeclaration(doc)
	doc.Indent(2)
	if err := doc.WriteToFile(path); err != nil {
		return fmt.Errorf("write xml %s: %w", path, err)
	}
	if useXmllint {
		if err := runXmllint(path); err != nil {
			logger.Warn("xmllint failed for %s: %v", path, err)
		}
	}
	return nil
}

// ensureDeclaration prepends an XML declaration when missing.
func ensureDeclaration(doc *etree.Document) {
	for _, child := range doc.Child {
		if _, ok := child.(*etree.ProcInst); ok {
			return
		}
	}
	decl := etree.NewDocument()
	decl.CreateProcInst("xml", `version="1.0" encoding="UTF-8"`)
	doc.Child = append(decl.Child, doc.Child...)
}

// runXmllint re-formats the file in place with xmllint.
func runXmllint(path string) error {
	out, err := exec.Command("xmllint", "--format", "--encode", "UTF-8", "--output", path, path).CombinedOutput()
	if err != nil {
		return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
	}
	return nil
}

// Root returns the root element of a document, or an error when the
// document is empty.
func Root(doc *etree.Document) (*etree.Element, error) {
	root := doc.Root()
	if root == nil {
		return nil, fmt.Errorf("document has no root: %w", domain.ErrTemplateElement)
	}
	return root, nil
}

// FindDebateSection locates the debate-section div of a session
// document.
func FindDebateSection(root *etree.Element) (*etree.Element, error) {
	for _, div := range root.FindElements("//" + ElemDiv) {
		if div.SelectAttrValue(AttrType, "") == TypeDebateSection {
			return div, nil
		}
	}
	return nil, fmt.Errorf("debate section div: %w", domain.ErrTemplateElement)
}

// ElementText concatenates the text content of an element and all of
// its descendants, in document order.
func ElementText(e *etree.Element) string {
	var sb strings.Builder
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, child := range e.Child {
			switch c := child.(type) {
			case *etree.CharData:
				sb.WriteString(c.Data)
			case *etree.Element:
				walk(c)
			}
		}
	}
	walk(e)
	return sb.String()
}

// CountTag returns the number of occurrences of the named element in
// the subtree rooted at e, not counting e itself.
func CountTag(e *etree.Element, tag string) int {
	count := 0
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		for _, child := range e.ChildElements() {
			if child.Tag == tag {
				count++
			}
			walk(child)
		}
	}
	walk(e)
	return count
}

// RemoveChildren detaches all children of an element, leaving it empty.
func RemoveChildren(e *etree.Element) {
	for _, child := range append([]etree.Token(nil), e.Child...) {
		e.RemoveChild(child)
	}
}

// FileExists reports whether the path exists on disk.
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
