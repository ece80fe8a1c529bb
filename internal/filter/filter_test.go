package filter

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/mamedat/internal/mamedata"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func catalog() map[string]*mamedata.Machine {
	parent := mamedata.NewMachine("puckman")
	parent.Description = strPtr("PuckMan (Japan set 1)")
	parent.Category = strPtr("Maze")

	clone := mamedata.NewMachine("pacmanbl")
	clone.CloneOf = strPtr("puckman")
	clone.Description = strPtr("Pac-Man (bootleg)")

	device := mamedata.NewMachine("z80")
	device.IsDevice = boolPtr(true)

	bios := mamedata.NewMachine("neogeo")
	bios.IsBios = boolPtr(true)

	mech := mamedata.NewMachine("pinball1")
	mech.IsMechanical = boolPtr(true)
	mech.Category = strPtr("Electromechanical")

	return map[string]*mamedata.Machine{
		"puckman": parent, "pacmanbl": clone, "z80": device,
		"neogeo": bios, "pinball1": mech,
	}
}

func TestRemoveByFilters(t *testing.T) {
	tests := []struct {
		name    string
		filters []Filter
		removed []string
	}{
		{"devices", []Filter{Device}, []string{"z80"}},
		{"bios", []Filter{Bios}, []string{"neogeo"}},
		{"mechanical", []Filter{Mechanical}, []string{"pinball1"}},
		{"clones", []Filter{Clone}, []string{"pacmanbl"}},
		{"modified", []Filter{Modified}, []string{"pacmanbl"}},
		{"combined", []Filter{Device, Bios, Clone}, []string{"z80", "neogeo", "pacmanbl"}},
		{"none", nil, nil},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			in := catalog()
			out := RemoveByFilters(in, tc.filters...)

			assert.Len(t, out, len(in)-len(tc.removed))
			for _, name := range tc.removed {
				assert.NotContains(t, out, name)
			}
			// The input map is untouched.
			assert.Len(t, in, 5)
		})
	}
}

func TestRemoveByCategories(t *testing.T) {
	out := RemoveByCategories(catalog(), "maze", "ELECTROMECHANICAL")
	assert.NotContains(t, out, "puckman")
	assert.NotContains(t, out, "pinball1")
	require.Contains(t, out, "z80")
	assert.Len(t, out, 3)
}

func TestRemoveByCategoriesNilCategory(t *testing.T) {
	out := RemoveByCategories(catalog(), "maze")
	// Machines without a category survive any category filter.
	assert.Contains(t, out, "pacmanbl")
}
