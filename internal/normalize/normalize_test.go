package normalize

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func strPtr(s string) *string { return &s }

func TestName(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  string
	}{
		{"nil input", nil, ""},
		{"question marks and region cut", strPtr("foo? Bar (USA)"), "Foo Bar"},
		{"escaped ampersand", strPtr("cops &amp; robbers"), "Cops & Robbers"},
		{"already clean", strPtr("Pac-Man"), "Pac-Man"},
		{"capitalizes after whitespace only", strPtr("the king of fighters"), "The King Of Fighters"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Name(tt.input))
		})
	}
}

func TestNameIdempotent(t *testing.T) {
	samples := []string{"foo? Bar (USA)", "cops &amp; robbers", "Pac-Man", ""}
	for _, s := range samples {
		once := Name(&s)
		assert.Equal(t, once, Name(&once), "sample %q", s)
	}
}

func TestManufacturer(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  string
	}{
		{"nil input", nil, ""},
		{"plain name", strPtr("Namco"), "Namco"},
		{"license suffix cut", strPtr("Namco (Midway license)"), "Namco"},
		{"corporate tokens stripped", strPtr("Capcom Co., Ltd."), "Capcom"},
		{"country token stripped", strPtr("Sega of America Inc."), "Sega"},
		{"leading delimiter falls back", strPtr("(Taito / Romstar)"), "Taito"},
		{"unknown literal", strPtr("<unknown>"), "Unknown"},
		{"stray punctuation", strPtr("Konami?"), "Konami"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Manufacturer(tt.input))
		})
	}
}

func TestManufacturerIdempotent(t *testing.T) {
	samples := []string{
		"Namco (Midway license)",
		"Capcom Co., Ltd.",
		"Sega of America Inc.",
		"Atari Games Corp.",
		"Taito Corporation Japan",
		"<unknown>",
		"bootleg",
		"",
	}
	for _, s := range samples {
		once := Manufacturer(&s)
		assert.Equal(t, once, Manufacturer(&once), "sample %q", s)
	}
}

func TestPlayers(t *testing.T) {
	tests := []struct {
		name  string
		input *string
		want  string
	}{
		{"nil normalizes to Unknown", nil, "Unknown"},
		{"single token", strPtr("1P"), "Single-player game"},
		{"combined tokens", strPtr("4P alt / 2P sim"), "Alternate four-player mode, Simultaneous two-player mode"},
		{"bios passthrough", strPtr("BIOS"), "BIOS"},
		{"unknown token passes through", strPtr("10P mystery"), "10P mystery"},
		{"triple question marks", strPtr("???"), "Unknown or unspecified number of players"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Players(tt.input))
		})
	}
}
