package identifiers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/beevik/etree"
)

func TestSpeakerID(t *testing.T) {
	reg := NewRegistry(nil)

	assert.Equal(t, "Ion-Popescu", reg.SpeakerID("Ion Popescu"))
	assert.Equal(t, "Ion-Popescu", reg.SpeakerID("  Ion \t Popescu "))
	// Hyphen runs collapse together with whitespace.
	assert.Equal(t, "Maria-Elena-Ionescu", reg.SpeakerID("Maria-Elena - Ionescu"))
}

func TestSpeakerID_Canonicalized(t *testing.T) {
	reg := NewRegistry(nil)

	assert.Equal(t, "Serban-Tuca", reg.SpeakerID("Șerban Țuca"))
	assert.Equal(t, map[string]string{"Șerban-Țuca": "Serban-Tuca"}, reg.Flagged())
}

func TestSpeakerRef(t *testing.T) {
	reg := NewRegistry(nil)
	assert.Equal(t, "#Ion-Popescu", reg.SpeakerRef("Ion Popescu"))
}

func TestOrganizationID_FromAcronym(t *testing.T) {
	reg := NewRegistry(nil)
	assert.Equal(t, "RoParl.Org.PSD", reg.OrganizationID("Partidul Social Democrat", "PSD"))
}

func TestOrganizationID_FromInitials(t *testing.T) {
	reg := NewRegistry(nil)
	assert.Equal(t, "RoParl.Org.PSD", reg.OrganizationID("Partidul Social Democrat", ""))
	// Acronym-like words are preserved verbatim.
	assert.Equal(t, "RoParl.Org.GPUSR", reg.OrganizationID("Grupul parlamentar USR", ""))
}

func TestOrganizationID_SingleWord(t *testing.T) {
	reg := NewRegistry(nil)
	assert.Equal(t, "RoParl.Org.Independent", reg.OrganizationID("independent", ""))
}

func TestCanonicalize_Idempotent(t *testing.T) {
	reg := NewRegistry(nil)

	for _, id := range []string{"Șerban-Țuca", "Ion-Popescu", "", "RoParl.Org.PSD", "țșȚȘ"} {
		once := reg.Canonicalize(id)
		assert.Equal(t, once, reg.Canonicalize(once), "canonicalize must be idempotent for %q", id)
	}
}

func TestCanonicalize_FlagsOnlyChangedIDs(t *testing.T) {
	reg := NewRegistry(nil)

	reg.Canonicalize("Ion-Popescu")
	assert.Empty(t, reg.Flagged())

	reg.Canonicalize("Știrbu")
	assert.Equal(t, map[string]string{"Știrbu": "Stirbu"}, reg.Flagged())
}

func TestParseReplacements(t *testing.T) {
	m, err := ParseReplacements("ȘS;șs;ȚT;țt")
	require.NoError(t, err)
	assert.Equal(t, "S", m['Ș'])
	assert.Equal(t, "s", m['ș'])
	assert.Equal(t, "T", m['Ț'])
	assert.Equal(t, "t", m['ț'])

	_, err = ParseReplacements("Ș")
	assert.Error(t, err)
}

func TestRemediateDocument(t *testing.T) {
	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromString(`<TEI>
  <listPerson>
    <person xml:id="Știrbu-Vasile"/>
    <person xml:id="Ion-Popescu"/>
  </listPerson>
  <u who="#Știrbu-Vasile" xml:id="u1"/>
  <u who="#Ion-Popescu" xml:id="u2"/>
</TEI>`))
	flagged := map[string]string{"Știrbu-Vasile": "Stirbu-Vasile"}

	changed := RemediateDocument(doc, flagged)
	assert.True(t, changed)

	root := doc.Root()
	person := root.FindElement("//person")
	assert.Equal(t, "Stirbu-Vasile", person.SelectAttrValue("xml:id", ""))
	utterance := root.FindElement("//u")
	assert.Equal(t, "#Stirbu-Vasile", utterance.SelectAttrValue("who", ""))

	// Untouched ids stay as they were and a second run is a no-op.
	assert.Equal(t, "Ion-Popescu", root.FindElements("//person")[1].SelectAttrValue("xml:id", ""))
	assert.False(t, RemediateDocument(doc, flagged))
}
