package parser

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// ParseResources reads a media resource dat. Each <machine> element names a
// resource type (artwork, snaps, titles and so on) and its <rom> children
// reference files as `type\machine.ext`. Only roms whose path prefix matches
// the enclosing section are kept, keyed by the machine name in the file stem.
func ParseResources(path string, report progress.Callback) (map[string]*mamedata.Machine, error) {
	machines := make(map[string]*mamedata.Machine)
	fileName := dataFileName(path)

	reportStart(report, fileName)
	total, err := countXMLElements(path, "rom")
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

	decoder := xml.NewDecoder(f)
	t := newTracker(total, report)

	section := ""
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xmlError(err, path, decoder.InputOffset())
		}

		el, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		switch el.Name.Local {
		case "machine":
			section = attrValue(&el, "name")
		case "rom":
			addResource(machines, section, &el)
			t.step()
		}
	}

	t.finish(fileName)
	return machines, nil
}

// addResource records one rom reference under the machine named by its file
// stem, provided its path prefix agrees with the current section. The stem is
// the file name up to its first dot, so multi-dot names still key the plain
// machine name. The resource keeps the full `type\machine.ext` path.
func addResource(machines map[string]*mamedata.Machine, section string, el *xml.StartElement) {
	name := attrValue(el, "name")
	resType, file, found := strings.Cut(name, `\`)
	if !found || resType != section {
		return
	}

	machineName, _, _ := strings.Cut(file, ".")
	if machineName == "" {
		return
	}

	machine, ok := machines[machineName]
	if !ok {
		machine = mamedata.NewMachine(machineName)
		machines[machineName] = machine
	}
	machine.Resources = append(machine.Resources, mamedata.Resource{
		Type: section,
		Name: name,
		Size: attrUint(el, "size"),
		CRC:  attrValue(el, "crc"),
		SHA1: attrValue(el, "sha1"),
	})
}
