package export

import (
	"path/filepath"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/tphakala/mamedat/internal/errors"
	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// machineRecord is the machines table. Child collections hang off it through
// the MachineName foreign key of their own tables.
type machineRecord struct {
	Name                   string `gorm:"primaryKey"`
	SourceFile             *string
	RomOf                  *string
	CloneOf                *string
	IsBios                 *bool
	IsDevice               *bool
	Runnable               *bool
	IsMechanical           *bool
	SampleOf               *string
	Description            *string
	Year                   *string
	Manufacturer           *string
	DriverStatus           *string
	Players                *string
	Series                 *string
	Category               *string
	Subcategory            *string
	IsMature               *bool
	NormalizedName         *string
	NormalizedManufacturer *string
	NormalizedPlayers      *string
	NormalizedYear         *string
	IsParent               *bool
}

func (machineRecord) TableName() string { return "machines" }

type romRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	MachineName string `gorm:"index"`
	Name        string
	Size        uint64
	Merge       *string
	Status      *string
	CRC         *string
	SHA1        *string
}

func (romRecord) TableName() string { return "roms" }

type biosSetRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	MachineName string `gorm:"index"`
	Name        string
	Description string
}

func (biosSetRecord) TableName() string { return "bios_sets" }

type deviceRefRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	MachineName string `gorm:"index"`
	Name        string
}

func (deviceRefRecord) TableName() string { return "device_refs" }

type softwareRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	MachineName string `gorm:"index"`
	Name        string
}

func (softwareRecord) TableName() string { return "software_lists" }

type sampleRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	MachineName string `gorm:"index"`
	Name        string
}

func (sampleRecord) TableName() string { return "samples" }

type diskRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	MachineName string `gorm:"index"`
	Name        string
	SHA1        *string
	Merge       *string
	Status      *string
	Region      *string
}

func (diskRecord) TableName() string { return "disks" }

type languageRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	MachineName string `gorm:"index"`
	Language    string
}

func (languageRecord) TableName() string { return "machine_languages" }

type historySectionRecord struct {
	ID           uint   `gorm:"primaryKey;autoIncrement"`
	MachineName  string `gorm:"index"`
	Name         string
	Text         string
	SectionOrder int
}

func (historySectionRecord) TableName() string { return "history_sections" }

type resourceRecord struct {
	ID          uint   `gorm:"primaryKey;autoIncrement"`
	MachineName string `gorm:"index"`
	Type        string
	Name        string
	Size        uint64
	CRC         string
	SHA1        string
}

func (resourceRecord) TableName() string { return "resources" }

type aggregateRecord struct {
	ID       uint   `gorm:"primaryKey;autoIncrement"`
	List     string `gorm:"index"`
	Name     string
	Machines int
}

func (aggregateRecord) TableName() string { return "aggregates" }

const insertBatchSize = 500

// ToSQLite writes the machine map into a machines.db SQLite database under
// destDir. The full load runs inside one transaction so a failed export
// leaves no partial database content behind.
func ToSQLite(machines map[string]*mamedata.Machine, destDir string, report progress.Callback) error {
	if report == nil {
		report = progress.Discard
	}
	if len(machines) == 0 {
		return errNoMachines()
	}
	if err := ensureDir(destDir); err != nil {
		return err
	}

	path := filepath.Join(destDir, "machines.db")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return dbError(err, path)
	}
	defer func() {
		if sqlDB, err := db.DB(); err == nil {
			sqlDB.Close() //nolint:errcheck // close on the way out
		}
	}()

	if err := db.AutoMigrate(
		&machineRecord{}, &romRecord{}, &biosSetRecord{}, &deviceRefRecord{},
		&softwareRecord{}, &sampleRecord{}, &diskRecord{}, &languageRecord{},
		&historySectionRecord{}, &resourceRecord{}, &aggregateRecord{},
	); err != nil {
		return dbError(err, path)
	}

	names := sortedNames(machines)
	report(progress.InfoEvent("Writing machines.db"))
	t := newExportTracker(uint64(len(names)), report)

	records := &recordSet{}
	for _, name := range names {
		records.add(machines[name])
		t.step()
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := records.insert(tx); err != nil {
			return err
		}
		return insertAggregates(tx, machines)
	})
	if err != nil {
		return dbError(err, path)
	}

	t.finish("machines.db")
	return nil
}

// recordSet accumulates the rows of every table so the transaction can load
// each one with batched inserts instead of a statement per row.
type recordSet struct {
	machines  []machineRecord
	roms      []romRecord
	biosSets  []biosSetRecord
	refs      []deviceRefRecord
	software  []softwareRecord
	samples   []sampleRecord
	disks     []diskRecord
	languages []languageRecord
	sections  []historySectionRecord
	resources []resourceRecord
}

func (rs *recordSet) add(m *mamedata.Machine) {
	ext := m.ExtendedData
	if ext == nil {
		ext = &mamedata.ExtendedData{}
	}
	rs.machines = append(rs.machines, machineRecord{
		Name:                   m.Name,
		SourceFile:             m.SourceFile,
		RomOf:                  m.RomOf,
		CloneOf:                m.CloneOf,
		IsBios:                 m.IsBios,
		IsDevice:               m.IsDevice,
		Runnable:               m.Runnable,
		IsMechanical:           m.IsMechanical,
		SampleOf:               m.SampleOf,
		Description:            m.Description,
		Year:                   m.Year,
		Manufacturer:           m.Manufacturer,
		DriverStatus:           m.DriverStatus,
		Players:                m.Players,
		Series:                 m.Series,
		Category:               m.Category,
		Subcategory:            m.Subcategory,
		IsMature:               m.IsMature,
		NormalizedName:         ext.Name,
		NormalizedManufacturer: ext.Manufacturer,
		NormalizedPlayers:      ext.Players,
		NormalizedYear:         ext.Year,
		IsParent:               ext.IsParent,
	})

	for _, rom := range m.Roms {
		rs.roms = append(rs.roms, romRecord{
			MachineName: m.Name, Name: rom.Name, Size: rom.Size,
			Merge: rom.Merge, Status: rom.Status, CRC: rom.CRC, SHA1: rom.SHA1,
		})
	}
	for _, bios := range m.BiosSets {
		rs.biosSets = append(rs.biosSets, biosSetRecord{MachineName: m.Name, Name: bios.Name, Description: bios.Description})
	}
	for _, ref := range m.DeviceRefs {
		rs.refs = append(rs.refs, deviceRefRecord{MachineName: m.Name, Name: ref.Name})
	}
	for _, sw := range m.SoftwareList {
		rs.software = append(rs.software, softwareRecord{MachineName: m.Name, Name: sw.Name})
	}
	for _, sample := range m.Samples {
		rs.samples = append(rs.samples, sampleRecord{MachineName: m.Name, Name: sample.Name})
	}
	for _, disk := range m.Disks {
		rs.disks = append(rs.disks, diskRecord{
			MachineName: m.Name, Name: disk.Name, SHA1: disk.SHA1,
			Merge: disk.Merge, Status: disk.Status, Region: disk.Region,
		})
	}
	for _, lang := range m.Languages {
		rs.languages = append(rs.languages, languageRecord{MachineName: m.Name, Language: lang})
	}
	for _, section := range m.HistorySections {
		rs.sections = append(rs.sections, historySectionRecord{
			MachineName: m.Name, Name: section.Name, Text: section.Text, SectionOrder: section.Order,
		})
	}
	for _, res := range m.Resources {
		rs.resources = append(rs.resources, resourceRecord{
			MachineName: m.Name, Type: res.Type, Name: res.Name,
			Size: res.Size, CRC: res.CRC, SHA1: res.SHA1,
		})
	}
}

func (rs *recordSet) insert(tx *gorm.DB) error {
	if err := createBatched(tx, rs.machines); err != nil {
		return err
	}
	if err := createBatched(tx, rs.roms); err != nil {
		return err
	}
	if err := createBatched(tx, rs.biosSets); err != nil {
		return err
	}
	if err := createBatched(tx, rs.refs); err != nil {
		return err
	}
	if err := createBatched(tx, rs.software); err != nil {
		return err
	}
	if err := createBatched(tx, rs.samples); err != nil {
		return err
	}
	if err := createBatched(tx, rs.disks); err != nil {
		return err
	}
	if err := createBatched(tx, rs.languages); err != nil {
		return err
	}
	if err := createBatched(tx, rs.sections); err != nil {
		return err
	}
	return createBatched(tx, rs.resources)
}

func createBatched[T any](tx *gorm.DB, records []T) error {
	if len(records) == 0 {
		return nil
	}
	return tx.CreateInBatches(records, insertBatchSize).Error
}

func insertAggregates(tx *gorm.DB, machines map[string]*mamedata.Machine) error {
	for listName, counts := range aggregates(machines) {
		records := make([]aggregateRecord, 0, len(counts))
		for _, row := range sortedCounts(counts) {
			records = append(records, aggregateRecord{List: listName, Name: row.Name, Machines: row.Count})
		}
		if len(records) == 0 {
			continue
		}
		if err := tx.CreateInBatches(records, insertBatchSize).Error; err != nil {
			return err
		}
	}
	return nil
}

func dbError(err error, path string) error {
	return errors.New(err).
		Component("export").
		Category(errors.CategoryDatabase).
		FileContext(path).
		Build()
}
