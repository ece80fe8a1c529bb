// Package mamedata defines the canonical machine data model shared by the
// parsers, the reconciliation merge and the exporters.
package mamedata

// Machine is the canonical record for a single arcade machine, keyed by its
// unique name. Scalar fields are pointers because each data source only
// contributes a subset of them; nil means "not provided by any source yet".
type Machine struct {
	Name            string           `json:"name"`
	SourceFile      *string          `json:"source_file,omitempty"`
	RomOf           *string          `json:"rom_of,omitempty"`
	CloneOf         *string          `json:"clone_of,omitempty"`
	IsBios          *bool            `json:"is_bios,omitempty"`
	IsDevice        *bool            `json:"is_device,omitempty"`
	Runnable        *bool            `json:"runnable,omitempty"`
	IsMechanical    *bool            `json:"is_mechanical,omitempty"`
	SampleOf        *string          `json:"sample_of,omitempty"`
	Description     *string          `json:"description,omitempty"`
	Year            *string          `json:"year,omitempty"`
	Manufacturer    *string          `json:"manufacturer,omitempty"`
	BiosSets        []BiosSet        `json:"bios_sets,omitempty"`
	Roms            []Rom            `json:"roms,omitempty"`
	DeviceRefs      []DeviceRef      `json:"device_refs,omitempty"`
	SoftwareList    []Software       `json:"software_list,omitempty"`
	Samples         []Sample         `json:"samples,omitempty"`
	DriverStatus    *string          `json:"driver_status,omitempty"`
	Languages       []string         `json:"languages,omitempty"`
	Players         *string          `json:"players,omitempty"`
	Series          *string          `json:"series,omitempty"`
	Category        *string          `json:"category,omitempty"`
	Subcategory     *string          `json:"subcategory,omitempty"`
	IsMature        *bool            `json:"is_mature,omitempty"`
	HistorySections []HistorySection `json:"history_sections,omitempty"`
	Disks           []Disk           `json:"disks,omitempty"`
	ExtendedData    *ExtendedData    `json:"extended_data,omitempty"`
	Resources       []Resource       `json:"resources,omitempty"`
}

// BiosSet is a BIOS option carried by the master catalog.
type BiosSet struct {
	Name        string `json:"name"`
	Description string `json:"description"`
}

// Rom describes a single ROM image belonging to a machine.
type Rom struct {
	Name   string  `json:"name"`
	Size   uint64  `json:"size"`
	Merge  *string `json:"merge,omitempty"`
	Status *string `json:"status,omitempty"`
	CRC    *string `json:"crc,omitempty"`
	SHA1   *string `json:"sha1,omitempty"`
}

// DeviceRef names a device the machine depends on.
type DeviceRef struct {
	Name string `json:"name"`
}

// Software names a software list the machine can run.
type Software struct {
	Name string `json:"name"`
}

// Sample names an audio sample set used by the machine.
type Sample struct {
	Name string `json:"name"`
}

// Disk describes a hard disk or laserdisc image.
type Disk struct {
	Name   string  `json:"name"`
	SHA1   *string `json:"sha1,omitempty"`
	Merge  *string `json:"merge,omitempty"`
	Status *string `json:"status,omitempty"`
	Region *string `json:"region,omitempty"`
}

// HistorySection is one named section of a machine's history text. Order is
// the fixed rank of the section header within the history document, 1-10 for
// recognized headers and 0 for unrecognized text.
type HistorySection struct {
	Name  string `json:"name"`
	Text  string `json:"text"`
	Order int    `json:"order"`
}

// Resource is an auxiliary artwork or media file (flyer, snapshot, ...).
type Resource struct {
	Type string `json:"type"`
	Name string `json:"name"`
	Size uint64 `json:"size"`
	CRC  string `json:"crc"`
	SHA1 string `json:"sha1"`
}

// ExtendedData holds normalized and derived fields that are not present
// verbatim in any source file. It is always non-nil on a Machine created via
// NewMachine.
type ExtendedData struct {
	Name         *string `json:"name,omitempty"`
	Manufacturer *string `json:"manufacturer,omitempty"`
	Players      *string `json:"players,omitempty"`
	IsParent     *bool   `json:"is_parent,omitempty"`
	Year         *string `json:"year,omitempty"`
}

// NewMachine returns an empty Machine with ExtendedData initialized.
func NewMachine(name string) *Machine {
	return &Machine{
		Name:         name,
		ExtendedData: &ExtendedData{},
	}
}

// MarkParentage derives the IsParent flag from CloneOf/RomOf. A machine is a
// parent unless it is a clone of, or borrows ROMs from, another set.
func (m *Machine) MarkParentage() {
	if m.ExtendedData == nil {
		m.ExtendedData = &ExtendedData{}
	}
	isParent := m.CloneOf == nil && m.RomOf == nil
	m.ExtendedData.IsParent = &isParent
}
