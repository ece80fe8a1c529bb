package mamedata

// Combine merges the fields of other into m. Scalar fields follow a
// first-writer-wins rule: m keeps its value when already set and adopts
// other's otherwise. List fields are concatenated in order with no
// deduplication. In practice each data source owns a disjoint set of scalar
// fields, so merge order does not change the observed result; a genuine
// scalar conflict is resolved silently in favor of m.
func (m *Machine) Combine(other *Machine) {
	m.SourceFile = firstString(m.SourceFile, other.SourceFile)
	m.RomOf = firstString(m.RomOf, other.RomOf)
	m.CloneOf = firstString(m.CloneOf, other.CloneOf)
	m.IsBios = firstBool(m.IsBios, other.IsBios)
	m.IsDevice = firstBool(m.IsDevice, other.IsDevice)
	m.Runnable = firstBool(m.Runnable, other.Runnable)
	m.IsMechanical = firstBool(m.IsMechanical, other.IsMechanical)
	m.SampleOf = firstString(m.SampleOf, other.SampleOf)
	m.Description = firstString(m.Description, other.Description)
	m.Year = firstString(m.Year, other.Year)
	m.Manufacturer = firstString(m.Manufacturer, other.Manufacturer)
	m.DriverStatus = firstString(m.DriverStatus, other.DriverStatus)
	m.Players = firstString(m.Players, other.Players)
	m.Series = firstString(m.Series, other.Series)
	m.Category = firstString(m.Category, other.Category)
	m.Subcategory = firstString(m.Subcategory, other.Subcategory)
	m.IsMature = firstBool(m.IsMature, other.IsMature)

	m.BiosSets = append(m.BiosSets, other.BiosSets...)
	m.Roms = append(m.Roms, other.Roms...)
	m.DeviceRefs = append(m.DeviceRefs, other.DeviceRefs...)
	m.SoftwareList = append(m.SoftwareList, other.SoftwareList...)
	m.Samples = append(m.Samples, other.Samples...)
	m.Disks = append(m.Disks, other.Disks...)
	m.HistorySections = append(m.HistorySections, other.HistorySections...)
	m.Resources = append(m.Resources, other.Resources...)
	m.Languages = append(m.Languages, other.Languages...)

	m.combineExtendedData(other.ExtendedData)
}

func (m *Machine) combineExtendedData(other *ExtendedData) {
	if other == nil {
		return
	}
	if m.ExtendedData == nil {
		copied := *other
		m.ExtendedData = &copied
		return
	}
	ed := m.ExtendedData
	ed.Name = firstString(ed.Name, other.Name)
	ed.Manufacturer = firstString(ed.Manufacturer, other.Manufacturer)
	ed.Players = firstString(ed.Players, other.Players)
	ed.IsParent = firstBool(ed.IsParent, other.IsParent)
	ed.Year = firstString(ed.Year, other.Year)
}

func firstString(existing, incoming *string) *string {
	if existing != nil {
		return existing
	}
	return incoming
}

func firstBool(existing, incoming *bool) *bool {
	if existing != nil {
		return existing
	}
	return incoming
}
