package identifiers

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/roparl/corpus-cli/internal/logger"
	"github.com/roparl/corpus-cli/internal/teixml"
)

// Remediate rewrites every reference to a previously-flagged raw id to
// its canonical form, in every given file. Both definition sites
// (person element ids) and usage sites (utterance who attributes) are
// covered. The pass is idempotent: canonical ids are left untouched.
func Remediate(files []string, flagged map[string]string, useXmllint bool) error {
	if len(flagged) == 0 {
		logger.Info("No ids require remediation.")
		return nil
	}
	for _, path := range files {
		doc, err := teixml.ReadDocument(path)
		if err != nil {
			return err
		}
		if !RemediateDocument(doc, flagged) {
			continue
		}
		logger.Info("Rewriting remediated ids in %s.", path)
		if err := teixml.WriteDocument(doc, path, useXmllint); err != nil {
			return err
		}
	}
	return nil
}

// RemediateDocument rewrites flagged ids in a single document tree and
// reports whether anything changed.
func RemediateDocument(doc *etree.Document, flagged map[string]string) bool {
	root := doc.Root()
	if root == nil {
		return false
	}
	changed := false
	var walk func(*etree.Element)
	walk = func(e *etree.Element) {
		if rewriteAttr(e, teixml.AttrXMLID, flagged, false) {
			changed = true
		}
		if rewriteAttr(e, teixml.AttrWho, flagged, true) {
			changed = true
		}
		for _, child := range e.ChildElements() {
			walk(child)
		}
	}
	walk(root)
	return changed
}

// rewriteAttr replaces a flagged raw id in the named attribute. Ref
// attributes carry a leading '#'.
func rewriteAttr(e *etree.Element, attr string, flagged map[string]string, ref bool) bool {
	value := e.SelectAttrValue(attr, "")
	if value == "" {
		return false
	}
	lookup := value
	if ref {
		lookup = strings.TrimPrefix(value, "#")
	}
	canonical, ok := flagged[lookup]
	if !ok {
		return false
	}
	if ref {
		canonical = "#" + canonical
	}
	e.CreateAttr(attr, canonical)
	return true
}
