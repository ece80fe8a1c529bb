// Package ingest orchestrates the multi-source read: it locates the extracted
// data file of every requested source, runs the parsers concurrently and
// merges the partial machine maps into one reconciled catalog.
package ingest

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/tphakala/mamedat/internal/errors"
	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/parser"
	"github.com/tphakala/mamedat/internal/progress"
)

// SourceError pairs a failed source with the error that stopped it. Failures
// are per source; the remaining sources still contribute to the merged map.
type SourceError struct {
	Source mamedata.DataType
	Err    error
}

func (se SourceError) Error() string {
	return fmt.Sprintf("%s: %v", se.Source, se.Err)
}

func (se SourceError) Unwrap() error {
	return se.Err
}

// FindDataFile walks dir for the first file whose base name matches the
// source's data file pattern.
func FindDataFile(dataType mamedata.DataType, dir string) (string, error) {
	details := dataType.Details()
	var found string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if details.DataFilePattern.MatchString(d.Name()) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return "", errors.New(err).
			Component("ingest").
			Category(errors.CategoryFileIO).
			Context("directory", dir).
			Build()
	}
	if found == "" {
		return "", errors.Newf("no data file matching %q under %s", details.DataFilePattern, dir).
			Component("ingest").
			Category(errors.CategoryNotFound).
			Context("source", dataType.String()).
			Build()
	}
	return found, nil
}

// ReadSource parses the data file of one source found under dir.
func ReadSource(dataType mamedata.DataType, dir string, report progress.Callback) (map[string]*mamedata.Machine, error) {
	parse, err := parser.For(dataType)
	if err != nil {
		return nil, err
	}
	path, err := FindDataFile(dataType, dir)
	if err != nil {
		return nil, err
	}
	return parse(path, report)
}

type result struct {
	source   mamedata.DataType
	machines map[string]*mamedata.Machine
	err      error
}

// ReadAll runs every requested source concurrently, one goroutine per source,
// reporting tagged progress through callback. Sources that fail are collected
// as SourceErrors while the survivors are merged into a single map. A panic
// inside a parser is converted into that source's error instead of taking the
// whole run down.
func ReadAll(dataTypes []mamedata.DataType, dirs map[mamedata.DataType]string, callback progress.TaggedCallback) (map[string]*mamedata.Machine, []SourceError) {
	mux := progress.NewMultiplexer(callback)

	results := make(chan result, len(dataTypes))
	var wg sync.WaitGroup
	for _, dt := range dataTypes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					results <- result{source: dt, err: errors.Newf("parser panic: %v", r).
						Component("ingest").
						Category(errors.CategoryAggregation).
						Context("source", dt.String()).
						Build()}
				}
			}()
			machines, err := ReadSource(dt, dirs[dt], mux.Source(dt))
			results <- result{source: dt, machines: machines, err: err}
		}()
	}
	wg.Wait()
	close(results)
	mux.Close()

	// Collect in a deterministic order so merge output does not depend on
	// goroutine scheduling.
	bySource := make(map[mamedata.DataType]result, len(dataTypes))
	for r := range results {
		bySource[r.source] = r
	}

	merged := make(map[string]*mamedata.Machine)
	var sourceErrs []SourceError
	for _, dt := range dataTypes {
		r, ok := bySource[dt]
		if !ok {
			continue
		}
		if r.err != nil {
			slog.Warn("source failed", "source", dt.String(), "error", r.err)
			sourceErrs = append(sourceErrs, SourceError{Source: dt, Err: r.err})
			continue
		}
		mergeInto(merged, r.machines)
	}
	return merged, sourceErrs
}

// mergeInto folds one source's partial map into the accumulated catalog.
// Machines seen for the first time are adopted as-is; machines already
// present absorb the newcomer's fields through Combine.
func mergeInto(dst, src map[string]*mamedata.Machine) {
	names := make([]string, 0, len(src))
	for name := range src {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if existing, ok := dst[name]; ok {
			existing.Combine(src[name])
			continue
		}
		dst[name] = src[name]
	}
}
