package mamedata

import "strings"

// The count helpers below build the aggregate lists consumed by the
// exporters: unique values with the number of machines carrying each.

// ManufacturerCounts counts normalized manufacturer names.
func ManufacturerCounts(machines map[string]*Machine) map[string]int {
	counts := make(map[string]int)
	for _, m := range machines {
		if m.ExtendedData != nil && m.ExtendedData.Manufacturer != nil {
			counts[*m.ExtendedData.Manufacturer]++
		}
	}
	return counts
}

// SeriesCounts counts series names.
func SeriesCounts(machines map[string]*Machine) map[string]int {
	counts := make(map[string]int)
	for _, m := range machines {
		if m.Series != nil {
			counts[*m.Series]++
		}
	}
	return counts
}

// LanguageCounts counts language memberships, repeats included.
func LanguageCounts(machines map[string]*Machine) map[string]int {
	counts := make(map[string]int)
	for _, m := range machines {
		for _, lang := range m.Languages {
			counts[lang]++
		}
	}
	return counts
}

// PlayerCounts counts normalized player descriptions. A machine with a
// combined description such as "Alternate four-player mode, Simultaneous
// two-player mode" contributes to both entries.
func PlayerCounts(machines map[string]*Machine) map[string]int {
	counts := make(map[string]int)
	for _, m := range machines {
		if m.ExtendedData == nil || m.ExtendedData.Players == nil {
			continue
		}
		for _, part := range strings.Split(*m.ExtendedData.Players, ",") {
			counts[strings.TrimSpace(part)]++
		}
	}
	return counts
}

// CategoryCounts counts category names.
func CategoryCounts(machines map[string]*Machine) map[string]int {
	counts := make(map[string]int)
	for _, m := range machines {
		if m.Category != nil {
			counts[*m.Category]++
		}
	}
	return counts
}

// SubcategoryCounts counts "category - subcategory" pairs.
func SubcategoryCounts(machines map[string]*Machine) map[string]int {
	counts := make(map[string]int)
	for _, m := range machines {
		if m.Category != nil && m.Subcategory != nil {
			counts[*m.Category+" - "+*m.Subcategory]++
		}
	}
	return counts
}
