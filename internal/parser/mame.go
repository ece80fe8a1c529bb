package parser

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/normalize"
	"github.com/tphakala/mamedat/internal/progress"
)

// machineElementHandlers dispatches the child elements of a <machine> node.
// Each handler owns the attribute extraction for its element.
var machineElementHandlers = map[string]func(decoder *xml.Decoder, el *xml.StartElement, m *mamedata.Machine) error{
	"description":  handleDescription,
	"year":         handleYear,
	"manufacturer": handleManufacturer,
	"biosset":      handleBiosSet,
	"rom":          handleRom,
	"device_ref":   handleDeviceRef,
	"softwarelist": handleSoftwareList,
	"sample":       handleSample,
	"disk":         handleDisk,
	"driver":       handleDriver,
}

// ParseMame reads the master catalog: one <machine> element per machine
// carrying the scalar attributes plus nested ROM, BIOS, device, software,
// sample, disk and driver elements. Extended data is populated inline as
// the description, year and manufacturer text nodes are read.
func ParseMame(path string, report progress.Callback) (map[string]*mamedata.Machine, error) {
	machines := make(map[string]*mamedata.Machine)
	fileName := dataFileName(path)

	reportStart(report, fileName)
	total, err := countXMLElements(path, "machine")
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

	var current *mamedata.Machine
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xmlError(err, path, decoder.InputOffset())
		}

		switch el := tok.(type) {
		case xml.StartElement:
			if el.Name.Local == "machine" {
				current = startMachine(&el)
				continue
			}
			if current == nil {
				continue
			}
			handler, ok := machineElementHandlers[el.Name.Local]
			if !ok {
				continue
			}
			if err := handler(decoder, &el, current); err != nil {
				return nil, xmlError(err, path, decoder.InputOffset())
			}
		case xml.EndElement:
			if el.Name.Local != "machine" || current == nil {
				continue
			}
			// Nameless elements cannot be keyed and are dropped.
			if _, exists := machines[current.Name]; !exists && current.Name != "" {
				machines[current.Name] = current
			}
			current = nil
			t.step()
		}
	}

	t.finish(fileName)
	return machines, nil
}

// startMachine builds a machine from the attributes of its opening element
// and derives the parent flag from the clone/rom references.
func startMachine(el *xml.StartElement) *mamedata.Machine {
	m := mamedata.NewMachine(attrValue(el, "name"))
	m.SourceFile = attrPtr(el, "sourcefile")
	m.RomOf = attrPtr(el, "romof")
	m.CloneOf = attrPtr(el, "cloneof")
	m.IsBios = attrBoolPtr(el, "isbios")
	m.IsDevice = attrBoolPtr(el, "isdevice")
	m.Runnable = attrBoolPtr(el, "runnable")
	m.IsMechanical = attrBoolPtr(el, "ismechanical")
	m.SampleOf = attrPtr(el, "sampleof")
	m.MarkParentage()
	return m
}

func handleDescription(decoder *xml.Decoder, el *xml.StartElement, m *mamedata.Machine) error {
	text, err := readText(decoder, el)
	if err != nil {
		return err
	}
	m.Description = &text
	name := normalize.Name(m.Description)
	m.ExtendedData.Name = &name
	return nil
}

func handleYear(decoder *xml.Decoder, el *xml.StartElement, m *mamedata.Machine) error {
	text, err := readText(decoder, el)
	if err != nil {
		return err
	}
	m.Year = &text
	normalized := text
	if text == "" || strings.Contains(text, "?") {
		normalized = "Unknown"
	}
	m.ExtendedData.Year = &normalized
	return nil
}

func handleManufacturer(decoder *xml.Decoder, el *xml.StartElement, m *mamedata.Machine) error {
	text, err := readText(decoder, el)
	if err != nil {
		return err
	}
	m.Manufacturer = &text
	normalized := normalize.Manufacturer(m.Manufacturer)
	m.ExtendedData.Manufacturer = &normalized
	return nil
}

func handleBiosSet(_ *xml.Decoder, el *xml.StartElement, m *mamedata.Machine) error {
	m.BiosSets = append(m.BiosSets, mamedata.BiosSet{
		Name:        attrValue(el, "name"),
		Description: attrValue(el, "description"),
	})
	return nil
}

func handleRom(_ *xml.Decoder, el *xml.StartElement, m *mamedata.Machine) error {
	m.Roms = append(m.Roms, mamedata.Rom{
		Name:   attrValue(el, "name"),
		Size:   attrUint(el, "size"),
		Merge:  attrPtr(el, "merge"),
		Status: attrPtr(el, "status"),
		CRC:    attrPtr(el, "crc"),
		SHA1:   attrPtr(el, "sha1"),
	})
	return nil
}

func handleDeviceRef(_ *xml.Decoder, el *xml.StartElement, m *mamedata.Machine) error {
	m.DeviceRefs = append(m.DeviceRefs, mamedata.DeviceRef{Name: attrValue(el, "name")})
	return nil
}

func handleSoftwareList(_ *xml.Decoder, el *xml.StartElement, m *mamedata.Machine) error {
	m.SoftwareList = append(m.SoftwareList, mamedata.Software{Name: attrValue(el, "name")})
	return nil
}

func handleSample(_ *xml.Decoder, el *xml.StartElement, m *mamedata.Machine) error {
	m.Samples = append(m.Samples, mamedata.Sample{Name: attrValue(el, "name")})
	return nil
}

func handleDisk(_ *xml.Decoder, el *xml.StartElement, m *mamedata.Machine) error {
	m.Disks = append(m.Disks, mamedata.Disk{
		Name:   attrValue(el, "name"),
		SHA1:   attrPtr(el, "sha1"),
		Merge:  attrPtr(el, "merge"),
		Status: attrPtr(el, "status"),
		Region: attrPtr(el, "region"),
	})
	return nil
}

func handleDriver(_ *xml.Decoder, el *xml.StartElement, m *mamedata.Machine) error {
	status := attrValue(el, "status")
	m.DriverStatus = &status
	return nil
}
