package parser

import (
	"bufio"
	"io"
	"os"
	"strings"
)

// Placeholder sections and comment markers shared by the INI-style list
// files. These lines are excluded from both the counting and parsing passes.
var ignoredLines = map[string]struct{}{
	"[FOLDER_SETTINGS]": {},
	"[ROOT_FOLDER]":     {},
}

// ignorableLine reports whether a raw line carries no data: blanks, comments
// starting with ';' and the folder placeholder sections.
func ignorableLine(line string) bool {
	trimmed := strings.TrimSpace(line)
	if trimmed == "" || strings.HasPrefix(trimmed, ";") {
		return true
	}
	_, ok := ignoredLines[trimmed]
	return ok
}

// forEachKeyValue invokes fn for every eligible `key = value` line: lines
// that survive the ignore filter, do not open a section and contain '='.
// Both the counting and parsing passes run through this same filter so their
// totals agree.
func forEachKeyValue(r io.Reader, fn func(key, value string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := scanner.Text()
		if ignorableLine(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			continue
		}
		key, value, found := strings.Cut(trimmed, "=")
		if !found || strings.TrimSpace(key) == "" {
			continue
		}
		fn(strings.TrimSpace(key), strings.TrimSpace(value))
	}
	return scanner.Err()
}

// forEachSectionEntry invokes fn for every entry line under a section
// header. keepSection filters which sections contribute entries; entries
// under rejected sections are skipped entirely, in counting and parsing
// alike.
func forEachSectionEntry(r io.Reader, keepSection func(string) bool, fn func(section, entry string)) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	var current string
	inSection := false
	for scanner.Scan() {
		line := scanner.Text()
		if ignorableLine(line) {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "[") {
			current = strings.TrimFunc(trimmed, func(r rune) bool {
				return r == '[' || r == ']'
			})
			inSection = keepSection == nil || keepSection(current)
			continue
		}
		if inSection && current != "" {
			fn(current, trimmed)
		}
	}
	return scanner.Err()
}

// countKeyValueLines runs the counting pass for `key = value` files.
func countKeyValueLines(path string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, openError(err, path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var count uint64
	if err := forEachKeyValue(f, func(_, _ string) { count++ }); err != nil {
		return 0, openError(err, path)
	}
	return count, nil
}

// countSectionEntries runs the counting pass for sectioned list files.
func countSectionEntries(path string, keepSection func(string) bool) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, openError(err, path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	var count uint64
	if err := forEachSectionEntry(f, keepSection, func(_, _ string) { count++ }); err != nil {
		return 0, openError(err, path)
	}
	return count, nil
}
