package parser

import (
	"os"
	"strings"

	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// ParseLanguages reads a languages.ini file. Section headers name a
// language and every entry line beneath one appends that language to the
// named machine. Sections whose name contains '/' are combined regional
// variants rather than canonical languages and are skipped entirely.
func ParseLanguages(path string, report progress.Callback) (map[string]*mamedata.Machine, error) {
	machines := make(map[string]*mamedata.Machine)
	fileName := dataFileName(path)

	canonical := func(section string) bool {
		return !strings.Contains(section, "/")
	}

	reportStart(report, fileName)
	total, err := countSectionEntries(path, canonical)
	if err != nil {
		reportCountError(report, fileName)
		return nil, err
	}
	reportReading(report, fileName)

	f, err := os.Open(path)
	if err != nil {
		return nil, openError(err, path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	t := newTracker(total, report)
	scanErr := forEachSectionEntry(f, canonical, func(section, entry string) {
		defer t.step()

		machine, ok := machines[entry]
		if !ok {
			machine = mamedata.NewMachine(entry)
			machines[entry] = machine
		}
		machine.Languages = append(machine.Languages, section)
	})
	if scanErr != nil {
		return nil, openError(scanErr, path)
	}

	t.finish(fileName)
	return machines, nil
}
