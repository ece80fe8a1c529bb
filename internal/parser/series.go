package parser

import (
	"os"

	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// ParseSeries reads a series.ini file. Section headers name a game series
// and every entry line beneath one assigns that series to the named machine;
// the last assignment within the file wins.
func ParseSeries(path string, report progress.Callback) (map[string]*mamedata.Machine, error) {
	machines := make(map[string]*mamedata.Machine)
	fileName := dataFileName(path)

	reportStart(report, fileName)
	total, err := countSectionEntries(path, nil)
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
	scanErr := forEachSectionEntry(f, nil, func(section, entry string) {
		defer t.step()

		machine, ok := machines[entry]
		if !ok {
			machine = mamedata.NewMachine(entry)
			machines[entry] = machine
		}
		series := section
		machine.Series = &series
	})
	if scanErr != nil {
		return nil, openError(scanErr, path)
	}

	t.finish(fileName)
	return machines, nil
}
