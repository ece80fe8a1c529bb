package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

var machineCSVHeader = []string{
	"name", "source_file", "rom_of", "clone_of", "is_bios", "is_device",
	"runnable", "is_mechanical", "sample_of", "description", "year",
	"manufacturer", "driver_status", "languages", "players", "series",
	"category", "subcategory", "is_mature", "normalized_name",
	"normalized_manufacturer", "normalized_players", "normalized_year",
	"is_parent",
}

// ToCSV writes the machine list, the ROM list and the aggregate count lists
// as CSV files under destDir, one file per list, rows sorted by name.
func ToCSV(machines map[string]*mamedata.Machine, destDir string, report progress.Callback) error {
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
	report(progress.InfoEvent("Writing CSV files"))
	t := newExportTracker(uint64(len(names)), report)

	if err := writeCSVFile(filepath.Join(destDir, "machines.csv"), machineCSVHeader, func(w *csv.Writer) error {
		for _, name := range names {
			if err := w.Write(machineCSVRow(machines[name])); err != nil {
				return err
			}
			t.step()
		}
		return nil
	}); err != nil {
		return err
	}

	for _, c := range collectionCSVs {
		if err := writeCSVFile(filepath.Join(destDir, c.file), c.header, func(w *csv.Writer) error {
			for _, name := range names {
				for _, row := range c.rows(machines[name]) {
					if err := w.Write(append([]string{name}, row...)); err != nil {
						return err
					}
				}
			}
			return nil
		}); err != nil {
			return err
		}
	}

	for listName, counts := range aggregates(machines) {
		path := filepath.Join(destDir, listName+".csv")
		if err := writeCSVFile(path, []string{"name", "machines"}, func(w *csv.Writer) error {
			for _, row := range sortedCounts(counts) {
				if err := w.Write([]string{row.Name, strconv.Itoa(row.Count)}); err != nil {
					return err
				}
			}
			return nil
		}); err != nil {
			return err
		}
	}

	t.finish("CSV files")
	return nil
}

// collectionCSV describes one per-collection CSV file: its rows are the
// collection entries of every machine, prefixed with the machine name.
type collectionCSV struct {
	file   string
	header []string
	rows   func(*mamedata.Machine) [][]string
}

var collectionCSVs = []collectionCSV{
	{
		file:   "roms.csv",
		header: []string{"machine", "name", "size", "merge", "status", "crc", "sha1"},
		rows: func(m *mamedata.Machine) [][]string {
			out := make([][]string, 0, len(m.Roms))
			for _, rom := range m.Roms {
				out = append(out, []string{
					rom.Name, strconv.FormatUint(rom.Size, 10),
					str(rom.Merge), str(rom.Status), str(rom.CRC), str(rom.SHA1),
				})
			}
			return out
		},
	},
	{
		file:   "bios_sets.csv",
		header: []string{"machine", "name", "description"},
		rows: func(m *mamedata.Machine) [][]string {
			out := make([][]string, 0, len(m.BiosSets))
			for _, bios := range m.BiosSets {
				out = append(out, []string{bios.Name, bios.Description})
			}
			return out
		},
	},
	{
		file:   "device_refs.csv",
		header: []string{"machine", "name"},
		rows: func(m *mamedata.Machine) [][]string {
			out := make([][]string, 0, len(m.DeviceRefs))
			for _, ref := range m.DeviceRefs {
				out = append(out, []string{ref.Name})
			}
			return out
		},
	},
	{
		file:   "software_lists.csv",
		header: []string{"machine", "name"},
		rows: func(m *mamedata.Machine) [][]string {
			out := make([][]string, 0, len(m.SoftwareList))
			for _, sw := range m.SoftwareList {
				out = append(out, []string{sw.Name})
			}
			return out
		},
	},
	{
		file:   "samples.csv",
		header: []string{"machine", "name"},
		rows: func(m *mamedata.Machine) [][]string {
			out := make([][]string, 0, len(m.Samples))
			for _, sample := range m.Samples {
				out = append(out, []string{sample.Name})
			}
			return out
		},
	},
	{
		file:   "disks.csv",
		header: []string{"machine", "name", "sha1", "merge", "status", "region"},
		rows: func(m *mamedata.Machine) [][]string {
			out := make([][]string, 0, len(m.Disks))
			for _, disk := range m.Disks {
				out = append(out, []string{
					disk.Name, str(disk.SHA1), str(disk.Merge), str(disk.Status), str(disk.Region),
				})
			}
			return out
		},
	},
	{
		file:   "machine_languages.csv",
		header: []string{"machine", "language"},
		rows: func(m *mamedata.Machine) [][]string {
			out := make([][]string, 0, len(m.Languages))
			for _, lang := range m.Languages {
				out = append(out, []string{lang})
			}
			return out
		},
	},
	{
		file:   "history_sections.csv",
		header: []string{"machine", "name", "order", "text"},
		rows: func(m *mamedata.Machine) [][]string {
			out := make([][]string, 0, len(m.HistorySections))
			for _, section := range m.HistorySections {
				out = append(out, []string{section.Name, strconv.Itoa(section.Order), section.Text})
			}
			return out
		},
	},
	{
		file:   "resources.csv",
		header: []string{"machine", "type", "name", "size", "crc", "sha1"},
		rows: func(m *mamedata.Machine) [][]string {
			out := make([][]string, 0, len(m.Resources))
			for _, res := range m.Resources {
				out = append(out, []string{
					res.Type, res.Name, strconv.FormatUint(res.Size, 10), res.CRC, res.SHA1,
				})
			}
			return out
		},
	},
}

func writeCSVFile(path string, header []string, body func(*csv.Writer) error) error {
	f, err := os.Create(path)
	if err != nil {
		return writeError(err, path)
	}

	w := csv.NewWriter(f)
	err = w.Write(header)
	if err == nil {
		err = body(w)
	}
	if err == nil {
		w.Flush()
		err = w.Error()
	}
	if err != nil {
		f.Close() //nolint:errcheck,gosec // error path
		return writeError(err, path)
	}
	if err := f.Close(); err != nil {
		return writeError(err, path)
	}
	return nil
}

func machineCSVRow(m *mamedata.Machine) []string {
	ext := m.ExtendedData
	if ext == nil {
		ext = &mamedata.ExtendedData{}
	}
	return []string{
		m.Name,
		str(m.SourceFile),
		str(m.RomOf),
		str(m.CloneOf),
		boolStr(m.IsBios),
		boolStr(m.IsDevice),
		boolStr(m.Runnable),
		boolStr(m.IsMechanical),
		str(m.SampleOf),
		str(m.Description),
		str(m.Year),
		str(m.Manufacturer),
		str(m.DriverStatus),
		strings.Join(m.Languages, "; "),
		str(m.Players),
		str(m.Series),
		str(m.Category),
		str(m.Subcategory),
		boolStr(m.IsMature),
		str(ext.Name),
		str(ext.Manufacturer),
		str(ext.Players),
		str(ext.Year),
		boolStr(ext.IsParent),
	}
}
