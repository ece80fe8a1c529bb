package conf

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	viper.Reset()
	t.Chdir(t.TempDir())

	settings, err := Load()
	require.NoError(t, err)

	assert.False(t, settings.Debug)
	assert.Equal(t, "workspace", settings.Workspace)
	assert.True(t, settings.Output.CSV.Enabled)
	assert.Equal(t, "export/csv", settings.Output.CSV.Path)
	assert.False(t, settings.Output.SQLite.Enabled)
	assert.True(t, settings.Log.Enabled)
}

func TestLoadFromFile(t *testing.T) {
	viper.Reset()
	dir := t.TempDir()
	t.Chdir(dir)

	cfg := `
debug: true
workspace: /data/mame
output:
  sqlite:
    enabled: true
    path: /data/mame/mame.db
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "mamedat.yaml"), []byte(cfg), 0o644))

	settings, err := Load()
	require.NoError(t, err)

	assert.True(t, settings.Debug)
	assert.Equal(t, "/data/mame", settings.Workspace)
	assert.True(t, settings.Output.SQLite.Enabled)
	assert.Equal(t, "/data/mame/mame.db", settings.Output.SQLite.Path)
}

func TestSaveRoundTrip(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "mamedat.yaml")

	settings := &Settings{Debug: true, Workspace: "/tmp/ws"}
	require.NoError(t, Save(settings, path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "workspace: /tmp/ws")
}

func TestWorkspacePaths(t *testing.T) {
	s := &Settings{Workspace: "/ws"}
	assert.Equal(t, filepath.Join("/ws", "downloads"), s.DownloadDir())
	assert.Equal(t, filepath.Join("/ws", "extracted", "catver"), s.ExtractDir("catver"))
}
