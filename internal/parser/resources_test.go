package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/mamedat/internal/progress"
)

const resourcesFixture = `<?xml version="1.0"?>
<datafile>
	<machine name="snap">
		<rom name="snap\puckman.png" size="12345" crc="deadbeef" sha1="cafe"/>
		<rom name="snap\joust.png" size="222"/>
		<rom name="titles\puckman.png" size="999"/>
		<rom name="noslash.png"/>
	</machine>
	<machine name="titles">
		<rom name="titles\puckman.png" size="999" crc="0badf00d"/>
		<rom name="titles\dkong.old.png" size="333"/>
	</machine>
</datafile>
`

func TestParseResources(t *testing.T) {
	path := writeFixture(t, "resources.dat", resourcesFixture)
	rec := &eventRecorder{}

	machines, err := ParseResources(path, rec.callback())
	require.NoError(t, err)
	assertProgressContract(t, rec)

	require.Contains(t, machines, "puckman")
	require.Contains(t, machines, "joust")

	// puckman keeps one resource per matching section; the stray titles
	// rom inside the snap section is dropped.
	res := machines["puckman"].Resources
	require.Len(t, res, 2)
	assert.Equal(t, "snap", res[0].Type)
	assert.Equal(t, `snap\puckman.png`, res[0].Name)
	assert.Equal(t, uint64(12345), res[0].Size)
	assert.Equal(t, "deadbeef", res[0].CRC)
	assert.Equal(t, "titles", res[1].Type)
	assert.Equal(t, "0badf00d", res[1].CRC)

	joust := machines["joust"].Resources
	require.Len(t, joust, 1)
	assert.Equal(t, "snap", joust[0].Type)

	// A multi-dot file name keys the text before the first dot.
	require.Contains(t, machines, "dkong")
	dkong := machines["dkong"].Resources
	require.Len(t, dkong, 1)
	assert.Equal(t, `titles\dkong.old.png`, dkong[0].Name)

	// Every rom element is counted, including the ones discarded by the
	// section prefix rule.
	finishes := rec.byType(progress.Finish)
	require.Len(t, finishes, 1)
	assert.Equal(t, uint64(6), finishes[0].Total)
	assert.Equal(t, uint64(6), finishes[0].Processed)
}
