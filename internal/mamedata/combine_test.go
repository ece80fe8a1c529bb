package mamedata

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }
func boolPtr(b bool) *bool    { return &b }

func TestNewMachineInitializesExtendedData(t *testing.T) {
	m := NewMachine("pacman")
	require.NotNil(t, m.ExtendedData)
	assert.Equal(t, "pacman", m.Name)
}

func TestCombineScalarFirstWriterWins(t *testing.T) {
	existing := NewMachine("pacman")
	existing.Manufacturer = strPtr("Namco")

	incoming := NewMachine("pacman")
	incoming.Manufacturer = strPtr("Midway")
	incoming.Year = strPtr("1980")

	existing.Combine(incoming)

	assert.Equal(t, "Namco", *existing.Manufacturer)
	require.NotNil(t, existing.Year)
	assert.Equal(t, "1980", *existing.Year)
}

func TestCombineDisjointScalarsIsOrderIndependent(t *testing.T) {
	build := func() (*Machine, *Machine) {
		a := NewMachine("pacman")
		a.Description = strPtr("Pac-Man")
		a.Manufacturer = strPtr("Namco")
		a.Year = strPtr("1980")

		b := NewMachine("pacman")
		b.Category = strPtr("Maze")
		b.Subcategory = strPtr("Maze")
		b.IsMature = boolPtr(false)
		return a, b
	}

	ab, b1 := build()
	ab.Combine(b1)

	a2, ba := build()
	ba.Combine(a2)

	assert.Equal(t, ab.Description, ba.Description)
	assert.Equal(t, ab.Manufacturer, ba.Manufacturer)
	assert.Equal(t, ab.Year, ba.Year)
	assert.Equal(t, ab.Category, ba.Category)
	assert.Equal(t, ab.Subcategory, ba.Subcategory)
	assert.Equal(t, ab.IsMature, ba.IsMature)
}

func TestCombineAppendsListsWithoutDedup(t *testing.T) {
	existing := NewMachine("galaga")
	existing.Roms = []Rom{{Name: "r1"}}
	existing.Languages = []string{"English"}

	incoming := NewMachine("galaga")
	incoming.Roms = []Rom{{Name: "r2"}, {Name: "r1"}}
	incoming.Languages = []string{"English", "Japanese"}

	existing.Combine(incoming)

	require.Len(t, existing.Roms, 3)
	assert.Equal(t, "r1", existing.Roms[0].Name)
	assert.Equal(t, "r2", existing.Roms[1].Name)
	assert.Equal(t, "r1", existing.Roms[2].Name)
	assert.Equal(t, []string{"English", "English", "Japanese"}, existing.Languages)
}

func TestCombineExtendedDataRecursively(t *testing.T) {
	existing := NewMachine("frogger")
	existing.ExtendedData.Name = strPtr("Frogger")

	incoming := NewMachine("frogger")
	incoming.ExtendedData.Name = strPtr("Frogger Alt")
	incoming.ExtendedData.Players = strPtr("Single-player game")

	existing.Combine(incoming)

	assert.Equal(t, "Frogger", *existing.ExtendedData.Name)
	require.NotNil(t, existing.ExtendedData.Players)
	assert.Equal(t, "Single-player game", *existing.ExtendedData.Players)
}

func TestCombineAdoptsExtendedDataWhenMissing(t *testing.T) {
	existing := &Machine{Name: "qbert"}
	incoming := NewMachine("qbert")
	incoming.ExtendedData.Year = strPtr("1982")

	existing.Combine(incoming)

	require.NotNil(t, existing.ExtendedData)
	assert.Equal(t, "1982", *existing.ExtendedData.Year)
	// Adopted copy must be independent of the incoming machine.
	incoming.ExtendedData.Year = strPtr("1999")
	assert.Equal(t, "1982", *existing.ExtendedData.Year)
}

func TestMarkParentage(t *testing.T) {
	tests := []struct {
		name       string
		cloneOf    *string
		romOf      *string
		wantParent bool
	}{
		{"no parent references", nil, nil, true},
		{"clone of another set", strPtr("pacman"), nil, false},
		{"rom of another set", nil, strPtr("pacman"), false},
		{"both set", strPtr("pacman"), strPtr("pacman"), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMachine("mspacman")
			m.CloneOf = tt.cloneOf
			m.RomOf = tt.romOf
			m.MarkParentage()
			require.NotNil(t, m.ExtendedData.IsParent)
			assert.Equal(t, tt.wantParent, *m.ExtendedData.IsParent)
		})
	}
}
