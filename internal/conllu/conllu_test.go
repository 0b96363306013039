package conllu

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roparl/corpus-cli/internal/core/domain"
)

const sampleDocument = `# generator = UDPipe 2
# sent_id = 1
# text = Bună ziua.
1	Bună	bun	ADJ	Afpfsrn	Case=Acc|Gender=Fem	2	amod	_	_
2	ziua	zi	NOUN	Ncfsry	Case=Acc|Gender=Fem	0	root	_	SpaceAfter=No
3	.	.	PUNCT	PERIOD	_	2	punct	_	_

# sent_id = 2
# text = Mulțumesc.
1	Mulțumesc	mulțumi	VERB	Vmip1s	Number=Sing	0	root	_	SpaceAfter=No
2	.	.	PUNCT	PERIOD	_	1	punct	_	_
`

func TestParse(t *testing.T) {
	sentences, err := Parse(sampleDocument)
	require.NoError(t, err)
	require.Len(t, sentences, 2)

	first := sentences[0]
	id, ok := first.Meta("sent_id")
	require.True(t, ok)
	assert.Equal(t, "1", id)

	require.Len(t, first.Tokens, 3)
	assert.Equal(t, "Bună", first.Tokens[0].Form)
	assert.Equal(t, "bun", first.Tokens[0].Lemma)
	assert.Equal(t, "ADJ", first.Tokens[0].UPos)
	assert.Equal(t, "Case=Acc|Gender=Fem", first.Tokens[0].Feats)
	assert.Equal(t, 2, first.Tokens[0].Head)
	assert.Equal(t, "amod", first.Tokens[0].Deprel)

	root := first.Tokens[1]
	assert.True(t, root.IsRoot())

	punct := first.Tokens[2]
	assert.True(t, punct.IsPunctuation())
	assert.Equal(t, "", punct.Feats)
}

func TestParse_SkipsMultiwordTokens(t *testing.T) {
	doc := "# sent_id = 1\n" +
		"1-2\tdintr-o\t_\t_\t_\t_\t_\t_\t_\t_\n" +
		"1\tdintru\tdintru\tADP\tSpsa\t_\t3\tcase\t_\t_\n" +
		"2\to\tun\tDET\tTifsr\t_\t3\tdet\t_\t_\n" +
		"3\tparte\tparte\tNOUN\tNcfsrn\t_\t0\troot\t_\t_\n"

	sentences, err := Parse(doc)
	require.NoError(t, err)
	require.Len(t, sentences, 1)
	assert.Len(t, sentences[0].Tokens, 3)
}

func TestParse_MalformedLine(t *testing.T) {
	_, err := Parse("1\tform\tonly\tfour\tfields\n")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSerialize_RoundTrip(t *testing.T) {
	sentences, err := Parse(sampleDocument)
	require.NoError(t, err)

	var sb strings.Builder
	for _, s := range sentences {
		sb.WriteString(Serialize(s))
	}

	reparsed, err := Parse(sb.String())
	require.NoError(t, err)
	assert.Equal(t, sentences, reparsed)
}

func TestSerialize_MetadataOrderPreserved(t *testing.T) {
	s := domain.Sentence{
		Metadata: []domain.MetaField{
			{Key: "newdoc id", Value: "d1"},
			{Key: "newpar id", Value: "p1"},
			{Key: "sent_id", Value: "1"},
		},
		Tokens: []domain.Token{{ID: 1, Form: "Da", Lemma: "da", UPos: "ADV", Deprel: "root"}},
	}

	out := Serialize(s)
	lines := strings.Split(out, "\n")
	assert.Equal(t, "# newdoc id = d1", lines[0])
	assert.Equal(t, "# newpar id = p1", lines[1])
	assert.Equal(t, "# sent_id = 1", lines[2])
	assert.Equal(t, "1\tDa\tda\tADV\t_\t_\t0\troot\t_\t_", lines[3])
}
