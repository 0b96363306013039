package services

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roparl/corpus-cli/internal/corpus"
	"github.com/roparl/corpus-cli/internal/teixml"
)

const correctableComponent = `<TEI xmlns="http://www.tei-c.org/ns/1.0" xml:id="ParlaMint-RO-2004-12-13-CD">
  <teiHeader>
    <titleStmt>
      <title type="main" xml:lang="ro">Corpus parlamentar român</title>
      <title type="sub" xml:lang="ro">Stenograma ședinței</title>
    </titleStmt>
    <meeting corresp="#parla.lower" n="20041213"/>
  </teiHeader>
  <text>
    <body>
      <div type="debateSection">
        <u xml:id="ParlaMint-RO-2004-12-13-CD.u1" who="#Adrian-Nastase">
          <seg xml:id="ParlaMint-RO-2004-12-13-CD.seg1">Declar deschisă ședința.</seg>
          <seg xml:id="ParlaMint-RO-2004-12-13-CD.seg2">   </seg>
        </u>
        <u xml:id="ParlaMint-RO-2004-12-13-CD.u2" who="#Ion-Popescu">
          <seg xml:id="ParlaMint-RO-2004-12-13-CD.seg3"> </seg>
        </u>
      </div>
    </body>
  </text>
</TEI>`

func writeCorpusFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestCorrections(t *testing.T) (*CorrectionsService, string) {
	t.Helper()
	dir := t.TempDir()
	return NewCorrectionsService(corpus.NewIterator(dir, "ParlaMint-RO.xml"), false), dir
}

func TestRemoveEmptySegments(t *testing.T) {
	svc, dir := newTestCorrections(t)
	path := writeCorpusFile(t, dir, "ParlaMint-RO-2004-12-13-CD.xml", correctableComponent)

	report, err := svc.RemoveEmptySegments()
	require.NoError(t, err)
	assert.Equal(t, 1, report.Processed)
	assert.Equal(t, 0, report.Failed)

	doc, err := teixml.ReadDocument(path)
	require.NoError(t, err)
	segs := doc.Root().FindElements("//seg")
	require.Len(t, segs, 1)
	assert.Equal(t, "ParlaMint-RO-2004-12-13-CD.seg1", segs[0].SelectAttrValue("xml:id", ""))
	// The utterance that lost its only segment is pruned too.
	assert.Len(t, doc.Root().FindElements("//u"), 1)

	// A second run has nothing left to fix.
	report, err = svc.RemoveEmptySegments()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
}

func TestAddTitleTags(t *testing.T) {
	svc, dir := newTestCorrections(t)
	plain := writeCorpusFile(t, dir, "ParlaMint-RO-2004-12-13-CD.xml", correctableComponent)
	annotated := writeCorpusFile(t, dir, "ParlaMint-RO-2004-12-13-CD.ana.xml", correctableComponent)

	_, err := svc.AddTitleTags()
	require.NoError(t, err)

	doc, err := teixml.ReadDocument(plain)
	require.NoError(t, err)
	assert.Equal(t, "Corpus parlamentar român [ParlaMint]",
		doc.Root().FindElement("//title").Text())
	// Subtitles are left alone.
	assert.Equal(t, "Stenograma ședinței",
		doc.Root().FindElements("//title")[1].Text())

	anaDoc, err := teixml.ReadDocument(annotated)
	require.NoError(t, err)
	assert.Equal(t, "Corpus parlamentar român [ParlaMint.ana]",
		anaDoc.Root().FindElement("//title").Text())

	// Idempotent: re-running changes nothing.
	report, err := svc.AddTitleTags()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
}

func TestFixAnnotatedIDs(t *testing.T) {
	svc, dir := newTestCorrections(t)
	writeCorpusFile(t, dir, "ParlaMint-RO-2004-12-13-CD.xml", correctableComponent)
	annotated := writeCorpusFile(t, dir, "ParlaMint-RO-2004-12-13-CD.ana.xml", correctableComponent)

	_, err := svc.FixAnnotatedIDs()
	require.NoError(t, err)

	doc, err := teixml.ReadDocument(annotated)
	require.NoError(t, err)
	assert.Equal(t, "ParlaMint-RO-2004-12-13-CD.ana", doc.Root().SelectAttrValue("xml:id", ""))

	report, err := svc.FixAnnotatedIDs()
	require.NoError(t, err)
	assert.Equal(t, 0, report.Processed)
}

func TestReplaceCorresp(t *testing.T) {
	svc, dir := newTestCorrections(t)
	path := writeCorpusFile(t, dir, "ParlaMint-RO-2004-12-13-CD.xml", correctableComponent)

	_, err := svc.ReplaceCorresp("#parla.lower", "#parla.lower.term5")
	require.NoError(t, err)

	doc, err := teixml.ReadDocument(path)
	require.NoError(t, err)
	meeting := doc.Root().FindElement("//meeting")
	assert.Equal(t, "#parla.lower.term5", meeting.SelectAttrValue("corresp", ""))
}
