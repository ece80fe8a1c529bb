// Package normalize provides the pure string normalizers used to derive the
// extended data fields: machine name, manufacturer and player count. All
// functions are idempotent and safe for nil input.
package normalize

import (
	"regexp"
	"strings"
	"unicode"
)

// Cleanup tables, compiled once at startup and never mutated.
var (
	reCommonTokens = regexp.MustCompile(`(?i)\b(Games|Corp|Inc|Ltd|Co|Corporation|Industries|Elc|S\.R\.L|S\.A|inc|of America|Japan|UK|USA|Europe|do Brasil|du Canada|Canada|America|Austria|of)\b\.?`)
	reTrailingPunc = regexp.MustCompile(`[.,?]+$|-$`)
	reNeedsClean   = regexp.MustCompile(`[(/,?]|(Games|Corp|Inc|Ltd|Co|Corporation|Industries|Elc|S\.R\.L|S\.A|inc|of America|Japan|UK|USA|Europe|do Brasil|du Canada|Canada|America|Austria|of)`)
)

// playerSubstitutions maps raw nplayers.ini tokens to readable descriptions.
// Tokens absent from the table pass through unchanged.
var playerSubstitutions = map[string]string{
	"1P":         "Single-player game",
	"2P alt":     "Alternate two-player mode",
	"2P sim":     "Simultaneous two-player mode",
	"3P alt":     "Alternate three-player mode",
	"3P sim":     "Simultaneous three-player mode",
	"4P alt":     "Alternate four-player mode",
	"4P sim":     "Simultaneous four-player mode",
	"5P alt":     "Alternate five-player mode",
	"6P alt":     "Alternate six-player mode",
	"6P sim":     "Simultaneous six-player mode",
	"8P alt":     "Alternate eight-player mode",
	"8P sim":     "Simultaneous eight-player mode",
	"9P alt":     "Alternate nine-player mode",
	"???":        "Unknown or unspecified number of players",
	"BIOS":       "BIOS",
	"Device":     "Non-playable device",
	"Non-arcade": "Non-arcade game",
}

// Name derives a display name from a machine description: question marks are
// dropped, escaped ampersands restored, anything from the first parenthesis
// on is cut away, the first letter of each word is capitalized and the
// surrounding whitespace is trimmed.
func Name(description *string) string {
	if description == nil {
		return ""
	}

	s := strings.ReplaceAll(*description, "?", "")
	s = strings.ReplaceAll(s, "&amp;", "&")
	if idx := strings.IndexByte(s, '('); idx >= 0 {
		s = s[:idx]
	}

	var b strings.Builder
	b.Grow(len(s))
	capitalizeNext := true
	for _, r := range s {
		switch {
		case unicode.IsSpace(r):
			capitalizeNext = true
			b.WriteRune(r)
		case capitalizeNext:
			b.WriteRune(unicode.ToUpper(r))
			capitalizeNext = false
		default:
			b.WriteRune(r)
		}
	}
	return strings.TrimSpace(b.String())
}

// Manufacturer cleans a raw manufacturer string: it keeps the part before the
// first '(' or '/', strips corporate and country tokens along with trailing
// punctuation, removes stray '?' and ',' characters and rewrites the literal
// "<unknown>" to "Unknown".
func Manufacturer(manufacturer *string) string {
	if manufacturer == nil {
		return ""
	}

	parts := splitAny(strings.TrimSpace(*manufacturer), "(/")
	result := parts[0]
	// The raw value may start with a delimiter, leaving the first part empty.
	if result == "" && len(parts) > 1 {
		result = parts[1]
	}

	if reNeedsClean.MatchString(result) {
		result = reCommonTokens.ReplaceAllString(result, "")
		result = reTrailingPunc.ReplaceAllString(result, "")
	}

	result = strings.ReplaceAll(result, "?", "")
	result = strings.ReplaceAll(result, ",", "")
	result = strings.ReplaceAll(result, "<unknown>", "Unknown")
	return strings.TrimSpace(result)
}

// splitAny splits s at every rune contained in delims, keeping empty
// segments so callers can detect a leading delimiter.
func splitAny(s, delims string) []string {
	parts := []string{}
	start := 0
	for i, r := range s {
		if strings.ContainsRune(delims, r) {
			parts = append(parts, s[start:i])
			start = i + len(string(r))
		}
	}
	return append(parts, s[start:])
}

// Players normalizes a raw player count value such as "4P alt / 2P sim" into
// "Alternate four-player mode, Simultaneous two-player mode". A nil value
// normalizes to "Unknown".
func Players(players *string) string {
	if players == nil {
		return "Unknown"
	}

	parts := strings.Split(*players, "/")
	mapped := make([]string, 0, len(parts))
	for _, part := range parts {
		token := strings.TrimSpace(part)
		if replacement, ok := playerSubstitutions[token]; ok {
			token = replacement
		}
		mapped = append(mapped, token)
	}
	return strings.Join(mapped, ", ")
}
