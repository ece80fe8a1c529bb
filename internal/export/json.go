package export

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// ToJSON writes the full machine map as a machines.json document (an array
// sorted by machine name, nested collections included) plus one JSON file
// per aggregate count list.
func ToJSON(machines map[string]*mamedata.Machine, destDir string, report progress.Callback) error {
	if report == nil {
		report = progress.Discard
	}
	if len(machines) == 0 {
		return errNoMachines()
	}
	if err := ensureDir(destDir); err != nil {
		return err
	}

	names := sortedNames(machines)
	report(progress.InfoEvent("Writing machines.json"))
	t := newExportTracker(uint64(len(names)), report)

	list := make([]*mamedata.Machine, 0, len(names))
	for _, name := range names {
		list = append(list, machines[name])
		t.step()
	}

	if err := writeJSONFile(filepath.Join(destDir, "machines.json"), list); err != nil {
		return err
	}

	for listName, counts := range aggregates(machines) {
		path := filepath.Join(destDir, listName+".json")
		if err := writeJSONFile(path, sortedCounts(counts)); err != nil {
			return err
		}
	}

	t.finish("machines.json")
	return nil
}

func writeJSONFile(path string, v any) error {
	f, err := os.Create(path)
	if err != nil {
		return writeError(err, path)
	}

	enc := json.NewEncoder(f)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		f.Close() //nolint:errcheck,gosec // error path
		return writeError(err, path)
	}
	if err := f.Close(); err != nil {
		return writeError(err, path)
	}
	return nil
}
