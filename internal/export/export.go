// Package export writes the reconciled machine map to its output formats:
// CSV file sets, a JSON document and a relational SQLite database.
package export

import (
	"fmt"
	"os"
	"sort"

	"github.com/tphakala/mamedat/internal/errors"
	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// sortedNames returns the machine names in ascending order so every export
// format emits rows deterministically.
func sortedNames(machines map[string]*mamedata.Machine) []string {
	names := make([]string, 0, len(machines))
	for name := range machines {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// sortedCounts flattens an aggregate count map into name-sorted pairs.
type countRow struct {
	Name  string `json:"name"`
	Count int    `json:"machines"`
}

func sortedCounts(counts map[string]int) []countRow {
	rows := make([]countRow, 0, len(counts))
	for name, count := range counts {
		rows = append(rows, countRow{Name: name, Count: count})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i].Name < rows[j].Name })
	return rows
}

// aggregates pairs every aggregate list with its file or table name.
func aggregates(machines map[string]*mamedata.Machine) map[string]map[string]int {
	return map[string]map[string]int{
		"manufacturers": mamedata.ManufacturerCounts(machines),
		"series":        mamedata.SeriesCounts(machines),
		"languages":     mamedata.LanguageCounts(machines),
		"players":       mamedata.PlayerCounts(machines),
		"categories":    mamedata.CategoryCounts(machines),
		"subcategories": mamedata.SubcategoryCounts(machines),
	}
}

func str(p *string) string {
	if p == nil {
		return ""
	}
	return *p
}

func boolStr(p *bool) string {
	if p == nil {
		return ""
	}
	return fmt.Sprintf("%t", *p)
}

// exportTracker batches Update events the same way the parsers do: one
// update per tenth of the total, then a Finish with matching counters.
type exportTracker struct {
	processed uint64
	total     uint64
	batch     uint64
	report    progress.Callback
}

func newExportTracker(total uint64, report progress.Callback) *exportTracker {
	if report == nil {
		report = progress.Discard
	}
	batch := total / 10
	if batch == 0 {
		batch = 1
	}
	return &exportTracker{total: total, batch: batch, report: report}
}

func (t *exportTracker) step() {
	t.processed++
	if t.processed%t.batch == 0 {
		t.report(progress.Event{Processed: t.processed, Total: t.total, Type: progress.Update})
	}
}

func (t *exportTracker) finish(target string) {
	t.report(progress.Event{
		Processed: t.processed,
		Total:     t.total,
		Message:   fmt.Sprintf("%s exported successfully", target),
		Type:      progress.Finish,
	})
}

// errNoMachines rejects export runs over an empty catalog. An empty map here
// means ingest produced nothing, and writing empty output files would mask
// that upstream failure.
func errNoMachines() error {
	return errors.Newf("no machines to export").
		Component("export").
		Category(errors.CategoryValidation).
		Build()
}

func ensureDir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return errors.New(err).
			Component("export").
			Category(errors.CategoryFileIO).
			FileContext(dir).
			Build()
	}
	return nil
}

func writeError(err error, path string) error {
	return errors.New(err).
		Component("export").
		Category(errors.CategoryFileIO).
		FileContext(path).
		Build()
}
