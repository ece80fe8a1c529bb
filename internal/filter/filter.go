// Package filter prunes the reconciled machine map: callers drop whole
// classes of machines (devices, BIOS sets, clones, ...) or whole categories
// before exporting.
package filter

import (
	"strings"

	"github.com/tphakala/mamedat/internal/mamedata"
)

// Filter identifies one removable class of machines.
type Filter int

const (
	// Device removes machines flagged as non-playable devices.
	Device Filter = iota
	// Bios removes BIOS set entries.
	Bios
	// Mechanical removes mechanical machines.
	Mechanical
	// Modified removes modified sets: bootlegs, hacks, prototypes and
	// other sets whose description marks them as altered.
	Modified
	// Clone removes non-parent sets, those cloning or borrowing ROMs from
	// another set.
	Clone
)

// modifiedMarkers are the description substrings identifying altered sets.
var modifiedMarkers = []string{
	"bootleg", "prototype", "hack", "homebrew",
}

// RemoveByFilters returns a new map without the machines matching any of the
// given filters. The input map is not modified.
func RemoveByFilters(machines map[string]*mamedata.Machine, filters ...Filter) map[string]*mamedata.Machine {
	out := make(map[string]*mamedata.Machine, len(machines))
	for name, m := range machines {
		if matchesAny(m, filters) {
			continue
		}
		out[name] = m
	}
	return out
}

// RemoveByCategories returns a new map without the machines whose category
// matches any of the given names, compared case-insensitively.
func RemoveByCategories(machines map[string]*mamedata.Machine, categories ...string) map[string]*mamedata.Machine {
	drop := make(map[string]struct{}, len(categories))
	for _, c := range categories {
		drop[strings.ToLower(c)] = struct{}{}
	}

	out := make(map[string]*mamedata.Machine, len(machines))
	for name, m := range machines {
		if m.Category != nil {
			if _, dropped := drop[strings.ToLower(*m.Category)]; dropped {
				continue
			}
		}
		out[name] = m
	}
	return out
}

func matchesAny(m *mamedata.Machine, filters []Filter) bool {
	for _, f := range filters {
		if matches(m, f) {
			return true
		}
	}
	return false
}

func matches(m *mamedata.Machine, f Filter) bool {
	switch f {
	case Device:
		return m.IsDevice != nil && *m.IsDevice
	case Bios:
		return m.IsBios != nil && *m.IsBios
	case Mechanical:
		return m.IsMechanical != nil && *m.IsMechanical
	case Clone:
		return m.CloneOf != nil || m.RomOf != nil
	case Modified:
		return isModified(m)
	default:
		return false
	}
}

func isModified(m *mamedata.Machine) bool {
	if m.Description == nil {
		return false
	}
	desc := strings.ToLower(*m.Description)
	for _, marker := range modifiedMarkers {
		if strings.Contains(desc, marker) {
			return true
		}
	}
	return false
}
