package mamedata

import (
	"fmt"
	"regexp"
	"strings"
)

// DataType identifies one of the published MAME data releases the pipeline
// knows how to fetch, unpack and parse.
type DataType int

const (
	// Mame is the master catalog: the machine list with ROM sets, BIOS sets,
	// device references, software lists, samples, disks and driver status.
	Mame DataType = iota
	// Languages is the languages.ini release mapping machines to languages.
	Languages
	// NPlayers is the nplayers.ini release with player count descriptions.
	NPlayers
	// Catver is the catver.ini release with category/subcategory data.
	Catver
	// Series is the series.ini release grouping machines into game series.
	Series
	// History is the history.xml release with trivia and history texts.
	History
	// Resources is the artwork resources DAT (flyers, snapshots, ...).
	Resources
)

// AllDataTypes lists every supported data type in a stable order.
func AllDataTypes() []DataType {
	return []DataType{Mame, Languages, NPlayers, Catver, Series, History, Resources}
}

func (dt DataType) String() string {
	switch dt {
	case Mame:
		return "mame"
	case Languages:
		return "languages"
	case NPlayers:
		return "nplayers"
	case Catver:
		return "catver"
	case Series:
		return "series"
	case History:
		return "history"
	case Resources:
		return "resources"
	default:
		return "unknown"
	}
}

// ParseDataType resolves a source name as spelled in configuration or on the
// command line.
func ParseDataType(name string) (DataType, error) {
	for _, dt := range AllDataTypes() {
		if strings.EqualFold(name, dt.String()) {
			return dt, nil
		}
	}
	return 0, fmt.Errorf("unknown data source: %s", name)
}

// ParseDataTypes resolves a list of source names. An empty list selects every
// supported source.
func ParseDataTypes(names []string) ([]DataType, error) {
	if len(names) == 0 {
		return AllDataTypes(), nil
	}
	types := make([]DataType, 0, len(names))
	for _, name := range names {
		dt, err := ParseDataType(name)
		if err != nil {
			return nil, err
		}
		types = append(types, dt)
	}
	return types, nil
}

// SourceDetails carries everything needed to locate one data release: the
// publisher page to scrape, the substring identifying the download link on
// that page, and the file name patterns of the archive and of the data file
// inside it.
type SourceDetails struct {
	Name            string
	SourceURL       string
	SourceMatch     string
	ArchivePattern  *regexp.Regexp
	DataFilePattern *regexp.Regexp
}

var sourceDetails = map[DataType]SourceDetails{
	Mame: {
		Name:            "Mame",
		SourceURL:       "https://www.progettosnaps.net/dats/MAME",
		SourceMatch:     "download/?tipo=dat_mame&file=/dats/MAME/packs/MAME_Dats",
		ArchivePattern:  regexp.MustCompile(`^MAME_Dats_\d+\.7z$`),
		DataFilePattern: regexp.MustCompile(`MAME\s+[0-9]*\.[0-9]+\.dat`),
	},
	Languages: {
		Name:            "Languages",
		SourceURL:       "https://www.progettosnaps.net/languages",
		SourceMatch:     "download",
		ArchivePattern:  regexp.MustCompile(`^pS_Languages_\d+\.zip$`),
		DataFilePattern: regexp.MustCompile(`languages\.ini`),
	},
	NPlayers: {
		Name:            "NPlayers",
		SourceURL:       "http://nplayers.arcadebelgium.be",
		SourceMatch:     "files",
		ArchivePattern:  regexp.MustCompile(`^nplayers0\d+\.zip$`),
		DataFilePattern: regexp.MustCompile(`nplayers\.ini`),
	},
	Catver: {
		Name:            "Catver",
		SourceURL:       "https://www.progettosnaps.net/catver",
		SourceMatch:     "download",
		ArchivePattern:  regexp.MustCompile(`^pS_CatVer_\d+\.zip$`),
		DataFilePattern: regexp.MustCompile(`catver\.ini`),
	},
	Series: {
		Name:            "Series",
		SourceURL:       "https://www.progettosnaps.net/series",
		SourceMatch:     "download",
		ArchivePattern:  regexp.MustCompile(`^pS_Series_\d+\.zip$`),
		DataFilePattern: regexp.MustCompile(`series\.ini`),
	},
	History: {
		Name:            "History",
		SourceURL:       "https://www.arcade-history.com/index.php?page=download",
		SourceMatch:     "dats",
		ArchivePattern:  regexp.MustCompile(`^history\d+\.zip$`),
		DataFilePattern: regexp.MustCompile(`history\.xml`),
	},
	Resources: {
		Name:            "Resources",
		SourceURL:       "https://www.progettosnaps.net/dats",
		SourceMatch:     "download/?tipo=dat_resource&file=/dats/cmdats/pS_AllProject_",
		ArchivePattern:  regexp.MustCompile(`^pS_AllProject_\d{8}_\d+_\([a-zA-Z]+\)\.zip$`),
		DataFilePattern: regexp.MustCompile(`^pS_AllProject_\d{8}_\d+_\([a-zA-Z]+\)\.dat$`),
	},
}

// Details returns the source metadata for the data type.
func (dt DataType) Details() SourceDetails {
	return sourceDetails[dt]
}
