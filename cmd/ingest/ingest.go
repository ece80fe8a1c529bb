// Package ingest implements the ingest subcommand: parse the extracted data
// files of every selected source and report the reconciled catalog.
package ingest

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tphakala/mamedat/internal/conf"
	"github.com/tphakala/mamedat/internal/ingest"
	"github.com/tphakala/mamedat/internal/logging"
	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// Command creates the ingest command.
func Command(settings *conf.Settings) *cobra.Command {
	return &cobra.Command{
		Use:   "ingest",
		Short: "Parse the extracted data files and merge them into one catalog",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := Run(settings)
			return err
		},
	}
}

// Run parses and merges every selected source. It is shared with the export
// command, which feeds the merged catalog into the exporters.
func Run(settings *conf.Settings) (map[string]*mamedata.Machine, error) {
	types, err := mamedata.ParseDataTypes(settings.Sources)
	if err != nil {
		return nil, err
	}

	logger, closeLogger, err := serviceLogger(settings)
	if err != nil {
		return nil, err
	}
	defer closeLogger() //nolint:errcheck // log writer

	dirs := make(map[mamedata.DataType]string, len(types))
	for _, dt := range types {
		dirs[dt] = settings.ExtractDir(dt.String())
	}

	machines, sourceErrs := ingest.ReadAll(types, dirs, progress.Console(os.Stdout))

	fmt.Printf("merged %d machines from %d sources\n", len(machines), len(types)-len(sourceErrs))
	logger.Info("ingest complete",
		"machines", len(machines),
		"sources", len(types),
		"failed", len(sourceErrs))
	for _, se := range sourceErrs {
		fmt.Fprintf(os.Stderr, "%v\n", se)
		logger.Error("source failed", "source", se.Source.String(), "error", se.Err)
	}
	if len(sourceErrs) == len(types) {
		return nil, fmt.Errorf("all %d sources failed", len(types))
	}
	return machines, nil
}

// serviceLogger builds the ingest file logger when file logging is enabled,
// falling back to the process default otherwise.
func serviceLogger(settings *conf.Settings) (*slog.Logger, func() error, error) {
	if !settings.Log.Enabled {
		return slog.Default(), func() error { return nil }, nil
	}
	level := slog.LevelInfo
	if settings.Debug {
		level = slog.LevelDebug
	}
	return logging.NewFileLogger(filepath.Join(settings.Log.Path, "ingest.log"), "ingest", level)
}
