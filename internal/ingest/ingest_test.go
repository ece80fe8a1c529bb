package ingest

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/tphakala/mamedat/internal/errors"
	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

const mameData = `<?xml version="1.0"?>
<mame build="0.265">
	<machine name="puckman" sourcefile="pacman.cpp">
		<description>PuckMan (Japan set 1)</description>
		<year>1980</year>
		<manufacturer>Namco</manufacturer>
	</machine>
	<machine name="joust">
		<description>Joust</description>
		<year>1982</year>
		<manufacturer>Williams</manufacturer>
	</machine>
</mame>
`

const catverData = `[Category]
puckman=Maze / Shooter Small
joust=Platform / Flying
`

const nplayersData = `[NPlayers]
puckman=1P
joust=2P sim
`

// sourceDir writes content as the source's data file into a fresh directory.
func sourceDir(t *testing.T, name, content string) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
	return dir
}

func TestFindDataFile(t *testing.T) {
	dir := sourceDir(t, "catver.ini", catverData)

	path, err := FindDataFile(mamedata.Catver, dir)
	require.NoError(t, err)
	assert.Equal(t, "catver.ini", filepath.Base(path))

	_, err = FindDataFile(mamedata.NPlayers, dir)
	require.Error(t, err)
	assert.True(t, errors.HasCategory(err, errors.CategoryNotFound))

	_, err = FindDataFile(mamedata.Catver, filepath.Join(dir, "absent"))
	assert.Error(t, err)
}

func TestReadSource(t *testing.T) {
	dir := sourceDir(t, "MAME 0.265.dat", mameData)

	machines, err := ReadSource(mamedata.Mame, dir, progress.Discard)
	require.NoError(t, err)
	require.Len(t, machines, 2)
	assert.Equal(t, "Namco", *machines["puckman"].Manufacturer)
}

func TestReadAllMergesSources(t *testing.T) {
	dirs := map[mamedata.DataType]string{
		mamedata.Mame:     sourceDir(t, "MAME 0.265.dat", mameData),
		mamedata.Catver:   sourceDir(t, "catver.ini", catverData),
		mamedata.NPlayers: sourceDir(t, "nplayers.ini", nplayersData),
	}
	types := []mamedata.DataType{mamedata.Mame, mamedata.Catver, mamedata.NPlayers}

	var events []mamedata.DataType
	merged, sourceErrs := ReadAll(types, dirs, func(dt mamedata.DataType, _ progress.Event) {
		events = append(events, dt)
	})

	assert.Empty(t, sourceErrs)
	require.Len(t, merged, 2)

	puckman := merged["puckman"]
	require.NotNil(t, puckman)
	assert.Equal(t, "Namco", *puckman.Manufacturer)
	assert.Equal(t, "Maze", *puckman.Category)
	assert.Equal(t, "1P", *puckman.Players)
	require.NotNil(t, puckman.ExtendedData)
	assert.Equal(t, "Single-player game", *puckman.ExtendedData.Players)

	// The multiplexer forwarded events from every source.
	seen := map[mamedata.DataType]bool{}
	for _, dt := range events {
		seen[dt] = true
	}
	for _, dt := range types {
		assert.True(t, seen[dt], dt.String())
	}
}

func TestReadAllPartialFailure(t *testing.T) {
	dirs := map[mamedata.DataType]string{
		// Malformed master catalog: the counting pass fails.
		mamedata.Mame:     sourceDir(t, "MAME 0.265.dat", "<mame><machine"),
		mamedata.Catver:   sourceDir(t, "catver.ini", catverData),
		mamedata.NPlayers: sourceDir(t, "nplayers.ini", nplayersData),
	}
	types := []mamedata.DataType{mamedata.Mame, mamedata.Catver, mamedata.NPlayers}

	merged, sourceErrs := ReadAll(types, dirs, progress.DiscardTagged)

	require.Len(t, sourceErrs, 1)
	assert.Equal(t, mamedata.Mame, sourceErrs[0].Source)
	require.Error(t, sourceErrs[0].Err)

	// The surviving sources still merge.
	require.Len(t, merged, 2)
	assert.Equal(t, "Maze", *merged["puckman"].Category)
	assert.Equal(t, "2P sim", *merged["joust"].Players)
}

func TestReadAllMissingDirectory(t *testing.T) {
	merged, sourceErrs := ReadAll(
		[]mamedata.DataType{mamedata.Series},
		map[mamedata.DataType]string{mamedata.Series: filepath.Join(t.TempDir(), "missing")},
		nil,
	)
	assert.Empty(t, merged)
	require.Len(t, sourceErrs, 1)
	assert.True(t, errors.HasCategory(sourceErrs[0].Err, errors.CategoryNotFound))
}
