// Package parser implements the per-format parsers that turn one raw data
// file into a partial machine map. Every parser makes two passes over its
// input: a counting pass that determines the progress total, then the actual
// parse. All parsers share the same contract: they return a map keyed by
// machine name and report batched progress through the supplied callback.
package parser

import (
	"fmt"
	"path/filepath"

	"github.com/tphakala/mamedat/internal/errors"
	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// Func is the common parser contract: one data file in, a partial machine
// map out.
type Func func(path string, report progress.Callback) (map[string]*mamedata.Machine, error)

// For returns the parser bound to the given data type.
func For(dataType mamedata.DataType) (Func, error) {
	switch dataType {
	case mamedata.Mame:
		return ParseMame, nil
	case mamedata.Languages:
		return ParseLanguages, nil
	case mamedata.NPlayers:
		return ParseNPlayers, nil
	case mamedata.Catver:
		return ParseCatver, nil
	case mamedata.Series:
		return ParseSeries, nil
	case mamedata.History:
		return ParseHistory, nil
	case mamedata.Resources:
		return ParseResources, nil
	default:
		return nil, errors.Newf("no parser for data type %d", dataType).
			Component("parser").
			Category(errors.CategoryValidation).
			Build()
	}
}

// tracker emits batched progress events: one Update roughly every tenth of
// the total, then a terminal Finish whose processed count equals the total.
type tracker struct {
	processed uint64
	total     uint64
	batch     uint64
	report    progress.Callback
}

func newTracker(total uint64, report progress.Callback) *tracker {
	if report == nil {
		report = progress.Discard
	}
	batch := total / 10
	if batch == 0 {
		batch = 1
	}
	return &tracker{total: total, batch: batch, report: report}
}

func (t *tracker) step() {
	t.processed++
	if t.processed%t.batch == 0 {
		t.report(progress.Event{
			Processed: t.processed,
			Total:     t.total,
			Type:      progress.Update,
		})
	}
}

func (t *tracker) finish(fileName string) {
	t.report(progress.Event{
		Processed: t.processed,
		Total:     t.total,
		Message:   fmt.Sprintf("%s loaded successfully", fileName),
		Type:      progress.Finish,
	})
}

// reportStart emits the two informational events every parser begins with.
func reportStart(report progress.Callback, fileName string) {
	if report == nil {
		return
	}
	report(progress.InfoEvent(fmt.Sprintf("Getting total entries for %s", fileName)))
}

func reportReading(report progress.Callback, fileName string) {
	if report == nil {
		return
	}
	report(progress.InfoEvent(fmt.Sprintf("Reading %s", fileName)))
}

func reportCountError(report progress.Callback, fileName string) {
	if report == nil {
		return
	}
	report(progress.Event{
		Message: fmt.Sprintf("Couldn't get total entries for %s", fileName),
		Type:    progress.Error,
	})
}

func dataFileName(path string) string {
	return filepath.Base(path)
}

func openError(err error, path string) error {
	return errors.New(err).
		Component("parser").
		Category(errors.CategoryFileIO).
		FileContext(path).
		Build()
}
