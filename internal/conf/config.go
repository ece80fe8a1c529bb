// Package conf defines the application settings and loads them from the
// config file, environment and defaults via viper.
package conf

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"
)

// OutputTarget holds settings for one export format.
type OutputTarget struct {
	Enabled bool   // true to include this format in export runs
	Path    string // file or directory the exporter writes to
}

// OutputSettings groups the export targets.
type OutputSettings struct {
	CSV    OutputTarget
	JSON   OutputTarget
	SQLite OutputTarget
}

// LogSettings controls the service file loggers.
type LogSettings struct {
	Enabled bool   // true to write per-service log files
	Path    string // directory for log files
}

// Settings contains all runtime configuration.
type Settings struct {
	Debug     bool           // enable debug logging
	Workspace string         // base directory for downloads and extracted data
	Sources   []string       // data sources to process; empty means all
	Output    OutputSettings // export targets
	Log       LogSettings    // log file settings
}

var (
	settingsInstance *Settings
	once             sync.Once
)

// Load reads the configuration from file, environment and defaults.
func Load() (*Settings, error) {
	setDefaultConfig()

	viper.SetConfigName("mamedat")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	if home, err := os.UserConfigDir(); err == nil {
		viper.AddConfigPath(filepath.Join(home, "mamedat"))
	}
	viper.SetEnvPrefix("MAMEDAT")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config: %w", err)
		}
	}

	settings := &Settings{}
	if err := viper.Unmarshal(settings); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}
	return settings, nil
}

// Setting returns the shared settings instance, loading it on first use.
func Setting() *Settings {
	once.Do(func() {
		var err error
		settingsInstance, err = Load()
		if err != nil {
			panic(fmt.Sprintf("error loading settings: %v", err))
		}
	})
	return settingsInstance
}

// Save writes the settings as YAML to the given path, creating parent
// directories as needed.
func Save(settings *Settings, path string) error {
	data, err := yaml.Marshal(settings)
	if err != nil {
		return fmt.Errorf("failed to marshal settings: %w", err)
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create config directory: %w", err)
		}
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}

// DownloadDir returns the directory downloads are written to.
func (s *Settings) DownloadDir() string {
	return filepath.Join(s.Workspace, "downloads")
}

// ExtractDir returns the extraction directory for a named source.
func (s *Settings) ExtractDir(source string) string {
	return filepath.Join(s.Workspace, "extracted", source)
}
