// Package export implements the export subcommand: run the full pipeline
// from extracted data files to the enabled output formats.
package export

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/tphakala/mamedat/cmd/ingest"
	"github.com/tphakala/mamedat/internal/conf"
	"github.com/tphakala/mamedat/internal/export"
	"github.com/tphakala/mamedat/internal/filter"
	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// skipFilters maps the --skip flag values to filter classes.
var skipFilters = map[string]filter.Filter{
	"devices":    filter.Device,
	"bios":       filter.Bios,
	"mechanical": filter.Mechanical,
	"modified":   filter.Modified,
	"clones":     filter.Clone,
}

// Command creates the export command.
func Command(settings *conf.Settings) *cobra.Command {
	var skip []string
	var skipCategories []string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Ingest the selected sources and write the enabled output formats",
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(settings, skip, skipCategories)
		},
	}
	cmd.Flags().StringSliceVar(&skip, "skip", nil, "Machine classes to drop before export (devices, bios, mechanical, modified, clones)")
	cmd.Flags().StringSliceVar(&skipCategories, "skip-categories", nil, "Categories to drop before export")
	return cmd
}

func run(settings *conf.Settings, skip, skipCategories []string) error {
	machines, err := ingest.Run(settings)
	if err != nil {
		return err
	}

	machines, err = applyFilters(machines, skip, skipCategories)
	if err != nil {
		return err
	}

	exporters := enabledExporters(settings)
	if len(exporters) == 0 {
		return fmt.Errorf("no output format enabled")
	}

	for _, e := range exporters {
		if err := e.write(machines, printEvent); err != nil {
			return err
		}
		fmt.Printf("wrote %s output to %s\n", e.name, e.dir)
	}
	return nil
}

func printEvent(event progress.Event) {
	switch event.Type {
	case progress.Update:
		if event.Total > 0 {
			fmt.Printf("%d/%d (%d%%)\n", event.Processed, event.Total, event.Processed*100/event.Total)
		}
	default:
		fmt.Println(event.Message)
	}
}

func applyFilters(machines map[string]*mamedata.Machine, skip, skipCategories []string) (map[string]*mamedata.Machine, error) {
	if len(skip) > 0 {
		filters := make([]filter.Filter, 0, len(skip))
		for _, name := range skip {
			f, ok := skipFilters[name]
			if !ok {
				return nil, fmt.Errorf("unknown skip class: %s", name)
			}
			filters = append(filters, f)
		}
		machines = filter.RemoveByFilters(machines, filters...)
	}
	if len(skipCategories) > 0 {
		machines = filter.RemoveByCategories(machines, skipCategories...)
	}
	return machines, nil
}

type exporter struct {
	name  string
	dir   string
	write func(map[string]*mamedata.Machine, progress.Callback) error
}

func enabledExporters(settings *conf.Settings) []exporter {
	var out []exporter
	if settings.Output.CSV.Enabled {
		dir := resolveDir(settings, settings.Output.CSV.Path)
		out = append(out, exporter{name: "csv", dir: dir, write: func(m map[string]*mamedata.Machine, cb progress.Callback) error {
			return export.ToCSV(m, dir, cb)
		}})
	}
	if settings.Output.JSON.Enabled {
		dir := resolveDir(settings, settings.Output.JSON.Path)
		out = append(out, exporter{name: "json", dir: dir, write: func(m map[string]*mamedata.Machine, cb progress.Callback) error {
			return export.ToJSON(m, dir, cb)
		}})
	}
	if settings.Output.SQLite.Enabled {
		dir := resolveDir(settings, settings.Output.SQLite.Path)
		out = append(out, exporter{name: "sqlite", dir: dir, write: func(m map[string]*mamedata.Machine, cb progress.Callback) error {
			return export.ToSQLite(m, dir, cb)
		}})
	}
	return out
}

// resolveDir anchors relative output paths under the workspace.
func resolveDir(settings *conf.Settings, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(settings.Workspace, path)
}
