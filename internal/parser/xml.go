package parser

import (
	"encoding/xml"
	"io"
	"os"
	"strconv"

	"github.com/tphakala/mamedat/internal/errors"
)

// countXMLElements scans a document and counts top-level occurrences of the
// named element. This is the counting pass for the XML parsers; it reports
// malformed XML before the real parse begins.
func countXMLElements(path, name string) (uint64, error) {
	f, err := os.Open(path)
	if err != nil {
		return 0, openError(err, path)
	}
	defer f.Close() //nolint:errcheck // read-only file

	decoder := xml.NewDecoder(f)
	var count uint64
	for {
		tok, err := decoder.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			return 0, xmlError(err, path, decoder.InputOffset())
		}
		if start, ok := tok.(xml.StartElement); ok && start.Name.Local == name {
			count++
		}
	}
	return count, nil
}

func xmlError(err error, path string, offset int64) error {
	return errors.New(err).
		Component("parser").
		Category(errors.CategoryFileParsing).
		FileContext(path).
		Context("offset", offset).
		Build()
}

// attrValue returns the value of the named attribute, or "" when absent.
func attrValue(el *xml.StartElement, name string) string {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			return attr.Value
		}
	}
	return ""
}

// attrPtr returns a pointer to the attribute value, or nil when absent.
func attrPtr(el *xml.StartElement, name string) *string {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			value := attr.Value
			return &value
		}
	}
	return nil
}

// attrBoolPtr interprets a "yes"/"no" attribute, nil when absent.
func attrBoolPtr(el *xml.StartElement, name string) *bool {
	for _, attr := range el.Attr {
		if attr.Name.Local == name {
			value := attr.Value == "yes"
			return &value
		}
	}
	return nil
}

// attrUint parses a numeric attribute, zero when absent or malformed.
func attrUint(el *xml.StartElement, name string) uint64 {
	raw := attrValue(el, name)
	if raw == "" {
		return 0
	}
	value, err := strconv.ParseUint(raw, 10, 64)
	if err != nil {
		return 0
	}
	return value
}

// readText decodes the character data of the element just started.
func readText(decoder *xml.Decoder, start *xml.StartElement) (string, error) {
	var text string
	if err := decoder.DecodeElement(&text, start); err != nil {
		return "", err
	}
	return text, nil
}
