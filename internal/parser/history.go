package parser

import (
	"encoding/xml"
	"io"
	"os"
	"strings"

	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// historyHeaderRanks maps the fixed section headers of the history text
// body to their document rank. Text preceding the first header belongs to an
// implicit "description" section at rank 1; an unknown header yields rank 0.
var historyHeaderRanks = map[string]int{
	"- DESCRIPTION -":     1,
	"- TECHNICAL -":       2,
	"- TRIVIA -":          3,
	"- UPDATES -":         4,
	"- SCORING -":         5,
	"- TIPS AND TRICKS -": 6,
	"- SERIES -":          7,
	"- STAFF -":           8,
	"- PORTS -":           9,
	"- CONTRIBUTE -":      10,
}

// historyEntry accumulates one <entry> element: the system names it applies
// to and the parsed text sections.
type historyEntry struct {
	names    []string
	sections []mamedata.HistorySection
}

// ParseHistory reads a history.xml file. Each <entry> lists the systems it
// describes and carries a free-text body that is split into ranked sections
// by the fixed headers.
func ParseHistory(path string, report progress.Callback) (map[string]*mamedata.Machine, error) {
	machines := make(map[string]*mamedata.Machine)
	fileName := dataFileName(path)

	reportStart(report, fileName)
	total, err := countXMLElements(path, "entry")
	if err != nil {
		reportCountError(report, fileName)
		return nil, err
	}
	reportReading(report, fileName)

	f, err := os.Open(path)
	if err != nil {
		return nil, openError(err, path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	decoder := xml.NewDecoder(f)
	t := newTracker(total, report)

	var current *historyEntry
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, xmlError(err, path, decoder.InputOffset())
		}

		switch el := tok.(type) {
		case xml.StartElement:
			switch el.Name.Local {
			case "entry":
				current = &historyEntry{}
			case "system":
				if current != nil {
					current.names = append(current.names, attrValue(&el, "name"))
				}
			case "text":
				if current == nil {
					continue
				}
				text, err := readText(decoder, &el)
				if err != nil {
					return nil, xmlError(err, path, decoder.InputOffset())
				}
				current.sections = parseHistoryText(text)
			}
		case xml.EndElement:
			if el.Name.Local != "entry" || current == nil {
				continue
			}
			for _, name := range current.names {
				if name == "" {
					continue
				}
				machine, ok := machines[name]
				if !ok {
					machine = mamedata.NewMachine(name)
					machines[name] = machine
				}
				// Each machine gets its own copy so later appends on one
				// cannot reach through to its siblings.
				machine.HistorySections = append([]mamedata.HistorySection(nil), current.sections...)
			}
			current = nil
			t.step()
		}
	}

	t.finish(fileName)
	return machines, nil
}

// parseHistoryText splits a history body into named sections. A header line
// closes the running section and opens the next; text before the first
// header is collected under "description" at rank 1.
func parseHistoryText(text string) []mamedata.HistorySection {
	var sections []mamedata.HistorySection
	var body strings.Builder
	sectionName := ""
	rank := 1

	flush := func() {
		text := strings.TrimSpace(body.String())
		body.Reset()
		if text == "" {
			return
		}
		name := sectionName
		if name == "" {
			name = "description"
		}
		sections = append(sections, mamedata.HistorySection{
			Name:  name,
			Text:  text,
			Order: rank,
		})
	}

	for _, line := range strings.Split(text, "\n") {
		if isHistoryHeader(line) {
			flush()
			sectionName = strings.ToLower(strings.TrimSpace(strings.ReplaceAll(line, "-", "")))
			rank = historyHeaderRanks[line]
			continue
		}
		body.WriteString(line)
		body.WriteString("\n")
	}
	flush()

	return sections
}

// isHistoryHeader reports whether a line is a section header. Headers not in
// the known set still delimit a section, at rank zero.
func isHistoryHeader(line string) bool {
	if _, known := historyHeaderRanks[line]; known {
		return true
	}
	return strings.HasPrefix(line, "- ") && strings.HasSuffix(line, " -")
}
