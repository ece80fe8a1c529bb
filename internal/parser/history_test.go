package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/mamedat/internal/progress"
)

const historyFixture = `<?xml version="1.0"?>
<history version="2.64">
	<entry>
		<systems>
			<system name="puckman"/>
			<system name="pacman"/>
		</systems>
		<text>Pac-Man is a maze chase game.
- TECHNICAL -
Main CPU: Z80 at 3.072 MHz.
- TRIVIA -
Released in 1980.
- WEIRD STUFF -
Header outside the known set.
- CONTRIBUTE -
Edit this entry.</text>
	</entry>
	<entry>
		<systems>
			<system name="joust"/>
		</systems>
		<text>- STAFF -
Designed by John Newcomer.</text>
	</entry>
</history>
`

func TestParseHistory(t *testing.T) {
	path := writeFixture(t, "history.xml", historyFixture)
	rec := &eventRecorder{}

	machines, err := ParseHistory(path, rec.callback())
	require.NoError(t, err)
	assertProgressContract(t, rec)

	// Both systems of the first entry get the same sections, as
	// independent copies.
	require.Contains(t, machines, "puckman")
	require.Contains(t, machines, "pacman")
	assert.Equal(t, machines["puckman"].HistorySections, machines["pacman"].HistorySections)
	machines["puckman"].HistorySections[0].Text = "edited"
	assert.NotEqual(t, "edited", machines["pacman"].HistorySections[0].Text)
	machines["puckman"].HistorySections[0].Text = "Pac-Man is a maze chase game."

	sections := machines["puckman"].HistorySections
	require.Len(t, sections, 5)

	assert.Equal(t, "description", sections[0].Name)
	assert.Equal(t, 1, sections[0].Order)
	assert.Equal(t, "Pac-Man is a maze chase game.", sections[0].Text)

	assert.Equal(t, "technical", sections[1].Name)
	assert.Equal(t, 2, sections[1].Order)

	assert.Equal(t, "trivia", sections[2].Name)
	assert.Equal(t, 3, sections[2].Order)

	// Unrecognized headers still open a section, at order zero.
	assert.Equal(t, "weird stuff", sections[3].Name)
	assert.Equal(t, 0, sections[3].Order)

	assert.Equal(t, "contribute", sections[4].Name)
	assert.Equal(t, 10, sections[4].Order)

	joust := machines["joust"].HistorySections
	require.Len(t, joust, 1)
	assert.Equal(t, "staff", joust[0].Name)
	assert.Equal(t, 8, joust[0].Order)

	finishes := rec.byType(progress.Finish)
	require.Len(t, finishes, 1)
	assert.Equal(t, uint64(2), finishes[0].Total)
}

func TestParseHistoryTextOnlyPreamble(t *testing.T) {
	sections := parseHistoryText("Just a plain description.\nSecond line.")
	require.Len(t, sections, 1)
	assert.Equal(t, "description", sections[0].Name)
	assert.Equal(t, 1, sections[0].Order)
	assert.Equal(t, "Just a plain description.\nSecond line.", sections[0].Text)
}

func TestParseHistoryEmptyText(t *testing.T) {
	assert.Empty(t, parseHistoryText(""))
}
