package parser

import (
	"os"

	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/normalize"
	"github.com/tphakala/mamedat/internal/progress"
)

// ParseNPlayers reads an nplayers.ini file. Each eligible line maps a
// machine to a raw player count token, stored verbatim in Players and in
// normalized form in the extended data.
func ParseNPlayers(path string, report progress.Callback) (map[string]*mamedata.Machine, error) {
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

		machine, ok := machines[name]
		if !ok {
			machine = mamedata.NewMachine(name)
			machines[name] = machine
		}
		players := value
		machine.Players = &players
		normalized := normalize.Players(machine.Players)
		machine.ExtendedData.Players = &normalized
	})
	if scanErr != nil {
		return nil, openError(scanErr, path)
	}

	t.finish(fileName)
	return machines, nil
}
