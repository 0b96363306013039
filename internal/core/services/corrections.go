package services

import (
	"strings"

	"github.com/beevik/etree"

	"github.com/roparl/corpus-cli/internal/corpus"
	"github.com/roparl/corpus-cli/internal/logger"
	"github.com/roparl/corpus-cli/internal/teixml"
)

// Title tags marking the corpus flavor of a file.
const (
	plainTitleTag     = " [ParlaMint]"
	annotatedTitleTag = " [ParlaMint.ana]"
)

// CorrectionsService applies retroactive fixes over an already-built
// corpus. Every fix is idempotent: re-running it leaves corrected
// files untouched.
type CorrectionsService struct {
	iterator   *corpus.Iterator
	useXmllint bool
}

// NewCorrectionsService creates the corrections service.
func NewCorrectionsService(iterator *corpus.Iterator, useXmllint bool) *CorrectionsService {
	return &CorrectionsService{iterator: iterator, useXmllint: useXmllint}
}

// RemoveEmptySegments deletes segments whose text is empty and prunes
// utterances left without segments, in every component and annotated
// file.
func (s *CorrectionsService) RemoveEmptySegments() (*Report, error) {
	files, err := s.allComponentFiles()
	if err != nil {
		return nil, err
	}
	return s.apply(files, func(root *etree.Element, _ string) bool {
		changed := false
		for _, seg := range root.FindElements("//" + teixml.ElemSeg) {
			if strings.TrimSpace(teixml.ElementText(seg)) != "" {
				continue
			}
			seg.Parent().RemoveChild(seg)
			changed = true
		}
		for _, u := range root.FindElements("//" + teixml.ElemUtterance) {
			if u.FindElement(teixml.ElemSeg) == nil {
				u.Parent().RemoveChild(u)
				changed = true
			}
		}
		return changed
	})
}

// AddTitleTags appends the corpus flavor marker to every main title:
// plain components get the base tag, annotated ones the .ana tag.
func (s *CorrectionsService) AddTitleTags() (*Report, error) {
	files, err := s.allFiles()
	if err != nil {
		return nil, err
	}
	return s.apply(files, func(root *etree.Element, path string) bool {
		tag := plainTitleTag
		if strings.HasSuffix(path, corpus.AnnotatedSuffix) {
			tag = annotatedTitleTag
		}
		changed := false
		for _, title := range root.FindElements("//" + teixml.ElemTitle) {
			if title.SelectAttrValue(teixml.AttrType, "") != teixml.TypeMain {
				continue
			}
			text := title.Text()
			if text == "" || strings.HasSuffix(text, tag) {
				continue
			}
			title.SetText(text + tag)
			changed = true
		}
		return changed
	})
}

// FixAnnotatedIDs appends the ".ana" suffix to the top-level id of
// every annotated file, so plain and annotated documents never share
// an id.
func (s *CorrectionsService) FixAnnotatedIDs() (*Report, error) {
	files, err := s.annotatedFiles()
	if err != nil {
		return nil, err
	}
	return s.apply(files, func(root *etree.Element, _ string) bool {
		id := root.SelectAttrValue(teixml.AttrXMLID, "")
		if id == "" || strings.HasSuffix(id, ".ana") {
			return false
		}
		root.CreateAttr(teixml.AttrXMLID, id+".ana")
		return true
	})
}

// ReplaceCorresp rewrites every corresp attribute equal to old into
// new, across the whole corpus.
func (s *CorrectionsService) ReplaceCorresp(old, new string) (*Report, error) {
	files, err := s.allFiles()
	if err != nil {
		return nil, err
	}
	return s.apply(files, func(root *etree.Element, _ string) bool {
		changed := false
		for _, elem := range root.FindElements("//*") {
			if elem.SelectAttrValue(teixml.AttrCorresp, "") == old {
				elem.CreateAttr(teixml.AttrCorresp, new)
				changed = true
			}
		}
		return changed
	})
}

// apply runs one fix over the files, rewriting only the ones that
// changed.
func (s *CorrectionsService) apply(files []string, fix func(root *etree.Element, path string) bool) (*Report, error) {
	report := newReport()
	logger.Info("Run %s: applying correction to %d files.", report.RunID, len(files))

	for _, path := range files {
		doc, err := teixml.ReadDocument(path)
		if err != nil {
			logger.Error("Could not read corpus file [%s]: %v.", path, err)
			report.failure(path)
			continue
		}
		root, err := teixml.Root(doc)
		if err != nil {
			report.failure(path)
			continue
		}
		if !fix(root, path) {
			continue
		}
		logger.Info("Rewriting corrected file [%s].", path)
		if err := teixml.WriteDocument(doc, path, s.useXmllint); err != nil {
			logger.Error("Could not write corpus file [%s]: %v.", path, err)
			report.failure(path)
			continue
		}
		report.success()
	}
	report.log()
	return report, nil
}

// allComponentFiles lists the plain and annotated component files.
func (s *CorrectionsService) allComponentFiles() ([]string, error) {
	components, err := s.iterator.ComponentFiles()
	if err != nil {
		return nil, err
	}
	annotated, err := s.iterator.AnnotatedFiles()
	if err != nil {
		return nil, err
	}
	return append(components, annotated...), nil
}

// annotatedFiles lists the annotated component files plus the
// annotated root when present.
func (s *CorrectionsService) annotatedFiles() ([]string, error) {
	annotated, err := s.iterator.AnnotatedFiles()
	if err != nil {
		return nil, err
	}
	if teixml.FileExists(s.iterator.AnnotatedRootFile()) {
		annotated = append(annotated, s.iterator.AnnotatedRootFile())
	}
	return annotated, nil
}

// allFiles lists every corpus file: components, annotated variants and
// the root files.
func (s *CorrectionsService) allFiles() ([]string, error) {
	files, err := s.allComponentFiles()
	if err != nil {
		return nil, err
	}
	if teixml.FileExists(s.iterator.RootFile()) {
		files = append(files, s.iterator.RootFile())
	}
	if teixml.FileExists(s.iterator.AnnotatedRootFile()) {
		files = append(files, s.iterator.AnnotatedRootFile())
	}
	return files, nil
}
