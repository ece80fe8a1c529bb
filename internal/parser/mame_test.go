package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/mamedat/internal/progress"
)

const mameFixture = `<?xml version="1.0"?>
<mame build="0.265">
	<machine name="puckman" sourcefile="pacman.cpp">
		<description>PuckMan (Japan set 1)</description>
		<year>1980</year>
		<manufacturer>Namco</manufacturer>
		<biosset name="default" description="Default bios"/>
		<rom name="pm1_prg1.6e" size="2048" crc="f36e88ab" sha1="813cecf44bf5464b1aed64b36f5047e4c79ba176"/>
		<rom name="pm1_prg2.6k" size="2048" status="baddump"/>
		<device_ref name="z80"/>
		<softwarelist name="pacman_cart"/>
		<sample name="chomp"/>
		<disk name="pm.chd" sha1="abc123"/>
		<driver status="good"/>
	</machine>
	<machine name="pacmanbl" cloneof="puckman" romof="puckman">
		<description>Pac-Man (bootleg)</description>
		<year>19??</year>
		<manufacturer>bootleg</manufacturer>
	</machine>
	<machine name="z80" isdevice="yes" runnable="no">
		<description>Zilog Z80</description>
	</machine>
	<machine name="puckman">
		<description>duplicate, must not overwrite</description>
	</machine>
</mame>
`

func TestParseMame(t *testing.T) {
	path := writeFixture(t, "mame.dat", mameFixture)
	rec := &eventRecorder{}

	machines, err := ParseMame(path, rec.callback())
	require.NoError(t, err)
	assertProgressContract(t, rec)

	require.Contains(t, machines, "puckman")
	m := machines["puckman"]
	assert.Equal(t, "pacman.cpp", *m.SourceFile)
	assert.Equal(t, "PuckMan (Japan set 1)", *m.Description)
	assert.Equal(t, "1980", *m.Year)
	assert.Equal(t, "Namco", *m.Manufacturer)
	assert.Equal(t, "good", *m.DriverStatus)

	require.Len(t, m.Roms, 2)
	assert.Equal(t, "pm1_prg1.6e", m.Roms[0].Name)
	assert.Equal(t, uint64(2048), m.Roms[0].Size)
	assert.Equal(t, "f36e88ab", *m.Roms[0].CRC)
	assert.Nil(t, m.Roms[0].Status)
	assert.Equal(t, "baddump", *m.Roms[1].Status)

	require.Len(t, m.BiosSets, 1)
	require.Len(t, m.DeviceRefs, 1)
	require.Len(t, m.SoftwareList, 1)
	require.Len(t, m.Samples, 1)
	require.Len(t, m.Disks, 1)

	require.NotNil(t, m.ExtendedData)
	assert.Equal(t, "PuckMan", *m.ExtendedData.Name)
	assert.Equal(t, "Namco", *m.ExtendedData.Manufacturer)
	assert.Equal(t, "1980", *m.ExtendedData.Year)
	require.NotNil(t, m.ExtendedData.IsParent)
	assert.True(t, *m.ExtendedData.IsParent)

	// First occurrence of a name wins.
	assert.Equal(t, "PuckMan (Japan set 1)", *m.Description)
}

func TestParseMameCloneAndDevice(t *testing.T) {
	path := writeFixture(t, "mame.dat", mameFixture)
	machines, err := ParseMame(path, progress.Discard)
	require.NoError(t, err)

	clone := machines["pacmanbl"]
	require.NotNil(t, clone)
	assert.Equal(t, "puckman", *clone.CloneOf)
	assert.Equal(t, "puckman", *clone.RomOf)
	require.NotNil(t, clone.ExtendedData.IsParent)
	assert.False(t, *clone.ExtendedData.IsParent)

	// Years containing placeholders normalize to Unknown.
	assert.Equal(t, "Unknown", *clone.ExtendedData.Year)

	device := machines["z80"]
	require.NotNil(t, device)
	require.NotNil(t, device.IsDevice)
	assert.True(t, *device.IsDevice)
	require.NotNil(t, device.Runnable)
	assert.False(t, *device.Runnable)
}

func TestParseMameProgressTotals(t *testing.T) {
	path := writeFixture(t, "mame.dat", mameFixture)
	rec := &eventRecorder{}

	_, err := ParseMame(path, rec.callback())
	require.NoError(t, err)

	finishes := rec.byType(progress.Finish)
	require.Len(t, finishes, 1)
	// Four machine elements counted, duplicates included.
	assert.Equal(t, uint64(4), finishes[0].Total)
	assert.Equal(t, uint64(4), finishes[0].Processed)
}

func TestParseMameMalformed(t *testing.T) {
	path := writeFixture(t, "mame.dat", `<mame><machine name="x">`)
	_, err := ParseMame(path, progress.Discard)
	assert.Error(t, err)
}
