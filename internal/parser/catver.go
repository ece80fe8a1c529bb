package parser

import (
	"os"
	"strings"

	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

const matureSuffix = " * Mature *"

// ParseCatver reads a catver.ini file. Each eligible line has the form
// `machine = Category / Subcategory` with an optional ` * Mature *` marker
// on the subcategory; lines whose value has fewer than two parts are
// ignored.
func ParseCatver(path string, report progress.Callback) (map[string]*mamedata.Machine, error) {
	machines := make(map[string]*mamedata.Machine)
	fileName := dataFileName(path)

	reportStart(report, fileName)
	total, err := countKeyValueLines(path)
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
	scanErr := forEachKeyValue(f, func(name, value string) {
		defer t.step()

		parts := strings.Split(value, " / ")
		if len(parts) < 2 {
			return
		}
		category := parts[0]
		subcategory := parts[1]
		isMature := strings.HasSuffix(subcategory, matureSuffix)
		if isMature {
			subcategory = strings.TrimSpace(strings.TrimSuffix(subcategory, matureSuffix))
		}

		machine, ok := machines[name]
		if !ok {
			machine = mamedata.NewMachine(name)
			machines[name] = machine
		}
		machine.Category = &category
		machine.Subcategory = &subcategory
		machine.IsMature = &isMature
	})
	if scanErr != nil {
		return nil, openError(scanErr, path)
	}

	t.finish(fileName)
	return machines, nil
}
