package transcript

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roparl/corpus-cli/internal/core/domain"
)

const sampleSession = `<html><body>
<table>
<tr><td>1.</td><td>Informare privind proiectele de lege</td></tr>
<tr><td>2.</td><td>Dezbaterea Proiectului de Lege privind bugetul</td></tr>
</table>
<p>Stenograma &#351;edin&#355;ei Camerei Deputa&#355;ilor din 13 decembrie 2004</p>
<p>SUMAR</p>
<p>[1] Informare privind proiectele de lege</p>
<p>&#350;edin&#355;a a &icirc;nceput la ora 9.05.</p>
<p>&#350;edin&#355;a a fost condus&#259; de domnul Adrian N&#259;stase.</p>
<p>Domnul Adrian N&#259;stase:</p>
<p>Bun&#259; diminea&#355;a, stima&#355;i colegi. (Aplauze.)</p>
<p><i>Dup&#259; pauz&#259;</i></p>
<p>Doamna Ioana Popescu:</p>
<p>Mul&#355;umesc, domnule pre&#351;edinte.</p>
<p>&#350;edin&#355;a s-a &icirc;ncheiat la ora 12.30.</p>
</body></html>`

func newTestParser(t *testing.T, html, fileName string) *Parser {
	t.Helper()
	p, err := NewParser(strings.NewReader(html), fileName)
	require.NoError(t, err)
	return p
}

func TestSessionDateAndType(t *testing.T) {
	p := newTestParser(t, sampleSession, "corpus/2004/s-13_12.html")

	date, err := p.SessionDate()
	require.NoError(t, err)
	assert.Equal(t, "2004-12-13", date.Format("2006-01-02"))

	sessionType, err := p.SessionType()
	require.NoError(t, err)
	assert.Equal(t, domain.SessionOrdinary, sessionType)
}

func TestSessionDate_MonthSubdirectory(t *testing.T) {
	p := newTestParser(t, sampleSession, "corpus/2019/12/sc-04-12.html")

	date, err := p.SessionDate()
	require.NoError(t, err)
	assert.Equal(t, "2019-12-04", date.Format("2006-01-02"))

	sessionType, err := p.SessionType()
	require.NoError(t, err)
	assert.Equal(t, domain.SessionJoint, sessionType)
}

func TestSessionDate_NotInPath(t *testing.T) {
	p := newTestParser(t, sampleSession, "transcript.html")

	_, err := p.SessionDate()
	assert.ErrorIs(t, err, domain.ErrDateNotFound)
}

func TestSessionSummary(t *testing.T) {
	p := newTestParser(t, sampleSession, "corpus/2004/s-13_12.html")

	summary := p.SessionSummary()
	require.Len(t, summary, 2)
	assert.Equal(t, "Informare privind proiectele de lege", summary[0])
	assert.Equal(t, "Dezbaterea Proiectului de Lege privind bugetul", summary[1])
}

func TestSessionSummary_MissingTable(t *testing.T) {
	p := newTestParser(t, "<html><body><p>text</p></body></html>", "corpus/2004/s-13_12.html")
	assert.Empty(t, p.SessionSummary())
}

func TestSessionHeading(t *testing.T) {
	p := newTestParser(t, sampleSession, "corpus/2004/s-13_12.html")

	heading, err := p.SessionHeading()
	require.NoError(t, err)
	assert.Contains(t, heading, "Stenograma")
}

func TestSessionHeading_NoAnchor(t *testing.T) {
	p := newTestParser(t, "<html><body><p>text</p></body></html>", "corpus/2004/s-13_12.html")

	_, err := p.SessionHeading()
	assert.ErrorIs(t, err, domain.ErrHeadingNotFound)
}

func TestSessionStartTime(t *testing.T) {
	p := newTestParser(t, sampleSession, "corpus/2004/s-13_12.html")

	start, err := p.SessionStartTime()
	require.NoError(t, err)
	assert.Equal(t, "Ședința a început la ora 9.05.", start)
}

func TestSessionEndTime(t *testing.T) {
	p := newTestParser(t, sampleSession, "corpus/2004/s-13_12.html")

	end, err := p.SessionEndTime()
	require.NoError(t, err)
	assert.Equal(t, "Ședința s-a încheiat la ora 12.30.", end)
}

func TestSessionEndTime_OutsideScanWindow(t *testing.T) {
	// The end marker is only searched in the trailing paragraphs.
	var sb strings.Builder
	sb.WriteString("<html><body><p>Ședința s-a încheiat la ora 12.30.</p>")
	for i := 0; i < endMarkerScanWindow; i++ {
		sb.WriteString("<p>filler paragraph</p>")
	}
	sb.WriteString("</body></html>")
	p := newTestParser(t, sb.String(), "corpus/2004/s-13_12.html")

	_, err := p.SessionEndTime()
	assert.ErrorIs(t, err, domain.ErrEndMarkerNotFound)
}

func TestSessionChairmen(t *testing.T) {
	p := newTestParser(t, sampleSession, "corpus/2004/s-13_12.html")

	chairmen, err := p.SessionChairmen()
	require.NoError(t, err)
	assert.Equal(t, "Ședința a fost condusă de domnul Adrian Năstase.", chairmen)
}
