package root

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roparl/corpus-cli/internal/core/domain"
	"github.com/roparl/corpus-cli/internal/identifiers"
)

const rootTemplate = `<teiCorpus xmlns="http://www.tei-c.org/ns/1.0" xmlns:xi="http://www.w3.org/2001/XInclude">
  <teiHeader>
    <encodingDesc>
      <tagsDecl>
        <namespace name="http://www.tei-c.org/ns/1.0">
          <tagUsage gi="u" occurs="0"/>
          <tagUsage gi="seg" occurs="0"/>
          <tagUsage gi="note" occurs="0"/>
        </namespace>
      </tagsDecl>
    </encodingDesc>
    <profileDesc>
      <particDesc>
        <listOrg/>
        <listPerson/>
      </particDesc>
      <settingDesc>
        <listEvent>
          <event xml:id="RoParl.2000" from="2000-12-15" to="2004-12-12"/>
          <event xml:id="RoParl.2004" from="2004-12-13" to="2008-12-14"/>
          <event xml:id="RoParl.2004.bis" from="2004-12-13"/>
        </listEvent>
      </settingDesc>
    </profileDesc>
  </teiHeader>
</teiCorpus>`

const componentPattern = `<TEI xmlns="http://www.tei-c.org/ns/1.0" xml:id="%s">
  <teiHeader>
    <encodingDesc>
      <tagsDecl>
        <namespace name="http://www.tei-c.org/ns/1.0">
          <tagUsage gi="u" occurs="%d"/>
          <tagUsage gi="seg" occurs="%d"/>
          <tagUsage gi="note" occurs="1"/>
        </namespace>
      </tagsDecl>
    </encodingDesc>
    <profileDesc>
      <settingDesc>
        <setting>
          <date when="%s">13.12.2004</date>
        </setting>
      </settingDesc>
    </profileDesc>
  </teiHeader>
  <text>
    <body>
      <div type="debateSection">
        <u xml:id="%s.u1" who="#%s" ana="#chair">
          <seg xml:id="%s.seg1">Declar deschisă ședința.</seg>
        </u>
      </div>
    </body>
  </text>
</TEI>`

func writeComponent(t *testing.T, dir, sessionID, date, who string, utterances, segments int) string {
	t.Helper()
	content := fmt.Sprintf(componentPattern,
		sessionID, utterances, segments, date, sessionID, who, sessionID)
	path := filepath.Join(dir, sessionID+".xml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func newTestAggregator(deputies map[string]domain.Deputy, orgNames []string) *Aggregator {
	return NewAggregator(identifiers.NewRegistry(nil), deputies, orgNames)
}

func parseRootTemplate(t *testing.T) *etree.Document {
	t.Helper()
	template := etree.NewDocument()
	require.NoError(t, template.ReadFromString(rootTemplate))
	return template
}

func TestAggregate_BuildsOrganizationList(t *testing.T) {
	agg := newTestAggregator(nil, []string{
		"PSD - Partidul Social Democrat",
		"Grupul parlamentar al minorităților naționale",
		"Deputat independent",
	})

	doc, err := agg.Aggregate(parseRootTemplate(t), nil)
	require.NoError(t, err)

	orgs := doc.Root().FindElements("//listOrg/org")
	require.Len(t, orgs, 3)

	byID := map[string]*etree.Element{}
	for _, org := range orgs {
		byID[org.SelectAttrValue("xml:id", "")] = org
	}
	psd := byID["RoParl.Org.PSD"]
	require.NotNil(t, psd)
	assert.Equal(t, "politicalParty", psd.SelectAttrValue("role", ""))
	assert.Equal(t, "Partidul Social Democrat", psd.FindElement("orgName").Text())
	assert.Equal(t, "PSD", psd.FindElements("orgName")[1].Text())

	minorities := byID["RoParl.Org.GPAMN"]
	require.NotNil(t, minorities)
	assert.Equal(t, "ethnicCommunity", minorities.SelectAttrValue("role", ""))

	independents := byID["RoParl.Org.DI"]
	require.NotNil(t, independents)
	assert.Equal(t, "independent", independents.SelectAttrValue("role", ""))
}

func TestAggregate_ResolvesSpeakers(t *testing.T) {
	dir := t.TempDir()
	component := writeComponent(t, dir, "ParlaMint-RO-2004-12-13-CD",
		"2004-12-13", "Adrian-Nastase", 1, 1)
	deputies := map[string]domain.Deputy{
		"Adrian Nastase": {
			FirstName: "Adrian",
			LastName:  "Nastase",
			Gender:    domain.GenderMale,
			ImageURL:  "http://www.cdep.ro/img/nastase.jpg",
		},
	}

	agg := newTestAggregator(deputies, nil)
	doc, err := agg.Aggregate(parseRootTemplate(t), []string{component})
	require.NoError(t, err)

	person := doc.Root().FindElement("//listPerson/person")
	require.NotNil(t, person)
	assert.Equal(t, "Adrian-Nastase", person.SelectAttrValue("xml:id", ""))
	assert.Equal(t, "Adrian", person.FindElement("persName/forename").Text())
	assert.Equal(t, "Nastase", person.FindElement("persName/surname").Text())
	assert.Equal(t, "M", person.FindElement("sex").SelectAttrValue("value", ""))
	assert.NotNil(t, person.FindElement("figure/graphic"))
}

func TestAggregate_InfersUnknownSpeakers(t *testing.T) {
	dir := t.TempDir()
	component := writeComponent(t, dir, "ParlaMint-RO-2004-12-13-CD",
		"2004-12-13", "Maria-Elena-Ionescu", 1, 1)

	agg := newTestAggregator(nil, nil)
	doc, err := agg.Aggregate(parseRootTemplate(t), []string{component})
	require.NoError(t, err)

	person := doc.Root().FindElement("//listPerson/person")
	require.NotNil(t, person)
	assert.Equal(t, "Maria Elena", person.FindElement("persName/forename").Text())
	assert.Equal(t, "Ionescu", person.FindElement("persName/surname").Text())
	assert.Equal(t, "F", person.FindElement("sex").SelectAttrValue("value", ""))
}

func TestAggregate_AffiliationDeduplicated(t *testing.T) {
	dir := t.TempDir()
	first := writeComponent(t, dir, "ParlaMint-RO-2004-12-13-CD",
		"2004-12-13", "Ion-Popescu", 1, 1)
	second := writeComponent(t, dir, "ParlaMint-RO-2004-12-20-CD",
		"2004-12-20", "Ion-Popescu", 1, 1)

	agg := newTestAggregator(nil, nil)
	doc, err := agg.Aggregate(parseRootTemplate(t), []string{first, second})
	require.NoError(t, err)

	persons := doc.Root().FindElements("//listPerson/person")
	require.Len(t, persons, 1)
	affiliations := persons[0].FindElements("affiliation")
	require.Len(t, affiliations, 1)
	assert.Equal(t, "member", affiliations[0].SelectAttrValue("role", ""))
	assert.Equal(t, "2004-12-13", affiliations[0].SelectAttrValue("from", ""))
}

func TestAggregate_OverlappingTermsLastMatchWins(t *testing.T) {
	dir := t.TempDir()
	component := writeComponent(t, dir, "ParlaMint-RO-2004-12-13-CD",
		"2004-12-13", "Ion-Popescu", 1, 1)

	agg := newTestAggregator(nil, nil)
	doc, err := agg.Aggregate(parseRootTemplate(t), []string{component})
	require.NoError(t, err)

	affiliation := doc.Root().FindElement("//person/affiliation")
	require.NotNil(t, affiliation)
	// Both 2004 terms cover the date; the later one in list order wins.
	assert.Equal(t, "#RoParl.2004.bis", affiliation.SelectAttrValue("ana", ""))
}

func TestAggregate_TagUsageAccumulates(t *testing.T) {
	dir := t.TempDir()
	first := writeComponent(t, dir, "ParlaMint-RO-2004-12-13-CD",
		"2004-12-13", "Ion-Popescu", 3, 7)
	second := writeComponent(t, dir, "ParlaMint-RO-2004-12-20-CD",
		"2004-12-20", "Ion-Popescu", 2, 5)

	agg := newTestAggregator(nil, nil)
	doc, err := agg.Aggregate(parseRootTemplate(t), []string{first, second})
	require.NoError(t, err)

	usage := map[string]string{}
	for _, elem := range doc.Root().FindElements("//tagUsage") {
		usage[elem.SelectAttrValue("gi", "")] = elem.SelectAttrValue("occurs", "")
	}
	assert.Equal(t, "5", usage["u"])
	assert.Equal(t, "12", usage["seg"])
	assert.Equal(t, "2", usage["note"])
}

func TestAggregate_RerunDoublesCounters(t *testing.T) {
	dir := t.TempDir()
	component := writeComponent(t, dir, "ParlaMint-RO-2004-12-13-CD",
		"2004-12-13", "Ion-Popescu", 3, 7)

	// Merging is append-only: feeding the same file twice doubles the
	// counters and the inclusion references. Affiliations stay deduplicated.
	agg := newTestAggregator(nil, nil)
	doc, err := agg.Aggregate(parseRootTemplate(t), []string{component, component})
	require.NoError(t, err)

	root := doc.Root()
	for _, elem := range root.FindElements("//tagUsage") {
		if elem.SelectAttrValue("gi", "") == "u" {
			assert.Equal(t, "6", elem.SelectAttrValue("occurs", ""))
		}
	}
	assert.Len(t, root.FindElements("xi:include"), 2)
	assert.Len(t, root.FindElements("//person/affiliation"), 1)
}

func TestAggregate_AppendsIncludes(t *testing.T) {
	dir := t.TempDir()
	first := writeComponent(t, dir, "ParlaMint-RO-2004-12-13-CD",
		"2004-12-13", "Ion-Popescu", 1, 1)
	second := writeComponent(t, dir, "ParlaMint-RO-2004-12-20-CD",
		"2004-12-20", "Ion-Popescu", 1, 1)

	agg := newTestAggregator(nil, nil)
	doc, err := agg.Aggregate(parseRootTemplate(t), []string{first, second})
	require.NoError(t, err)

	includes := doc.Root().FindElements("xi:include")
	require.Len(t, includes, 2)
	assert.Equal(t, "ParlaMint-RO-2004-12-13-CD.xml", includes[0].SelectAttrValue("href", ""))
	assert.Equal(t, "ParlaMint-RO-2004-12-20-CD.xml", includes[1].SelectAttrValue("href", ""))
}

func TestMergeTagUsage_UnknownTagType(t *testing.T) {
	agg := newTestAggregator(nil, nil)
	_, err := agg.Aggregate(parseRootTemplate(t), nil)
	require.NoError(t, err)

	component := etree.NewDocument()
	require.NoError(t, component.ReadFromString(
		`<TEI><tagUsage gi="kinesic" occurs="4"/><tagUsage gi="u" occurs="2"/></TEI>`))

	err = agg.mergeTagUsage(component.Root())
	assert.ErrorIs(t, err, domain.ErrUnknownTagType)

	// Known counters are still merged; only the unknown type is reported.
	for _, elem := range agg.doc.Root().FindElements("//tagUsage") {
		if elem.SelectAttrValue("gi", "") == "u" {
			assert.Equal(t, "2", elem.SelectAttrValue("occurs", ""))
		}
	}
}

func TestMergeAnnotationStatistics_ZeroInitsNewTypes(t *testing.T) {
	dir := t.TempDir()
	annotated := filepath.Join(dir, "ParlaMint-RO-2004-12-13-CD.ana.xml")
	require.NoError(t, os.WriteFile(annotated, []byte(
		`<TEI><tagUsage gi="u" occurs="2"/><tagUsage gi="w" occurs="40"/><tagUsage gi="pc" occurs="6"/></TEI>`), 0o644))

	doc := parseRootTemplate(t)
	require.NoError(t, MergeAnnotationStatistics(doc, []string{annotated}))

	usage := map[string]string{}
	for _, elem := range doc.Root().FindElements("//tagUsage") {
		usage[elem.SelectAttrValue("gi", "")] = elem.SelectAttrValue("occurs", "")
	}
	assert.Equal(t, "2", usage["u"])
	assert.Equal(t, "40", usage["w"])
	assert.Equal(t, "6", usage["pc"])
}
