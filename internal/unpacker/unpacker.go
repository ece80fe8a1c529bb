// Package unpacker extracts downloaded archives into per-source directories
// and locates the data file inside the extracted tree.
package unpacker

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bodgit/sevenzip"

	"github.com/tphakala/mamedat/internal/errors"
	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// FindArchive walks downloadDir for the first file matching the source's
// archive pattern.
func FindArchive(dataType mamedata.DataType, downloadDir string) (string, error) {
	details := dataType.Details()
	var found string
	err := filepath.WalkDir(downloadDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if details.ArchivePattern.MatchString(d.Name()) {
			found = path
			return fs.SkipAll
		}
		return nil
	})
	if err != nil && !os.IsNotExist(err) {
		return "", archiveError(err, downloadDir)
	}
	if found == "" {
		return "", errors.Newf("no archive matching %q under %s", details.ArchivePattern, downloadDir).
			Component("unpacker").
			Category(errors.CategoryNotFound).
			Context("source", dataType.String()).
			Build()
	}
	return found, nil
}

// Unpack extracts the downloaded archive of one source into extractDir and
// returns the path of the data file found inside. Zip and 7z archives are
// supported, chosen by file extension.
func Unpack(dataType mamedata.DataType, downloadDir, extractDir string, report progress.Callback) (string, error) {
	if report == nil {
		report = progress.Discard
	}
	details := dataType.Details()

	archive, err := FindArchive(dataType, downloadDir)
	if err != nil {
		report(progress.Event{Message: fmt.Sprintf("Couldn't find archive for %s", details.Name), Type: progress.Error})
		return "", err
	}

	report(progress.InfoEvent(fmt.Sprintf("Extracting %s", filepath.Base(archive))))

	switch {
	case strings.HasSuffix(archive, ".zip"):
		err = extractZip(archive, extractDir, report)
	case strings.HasSuffix(archive, ".7z"):
		err = extractSevenZip(archive, extractDir, report)
	default:
		err = errors.Newf("unsupported archive format: %s", filepath.Base(archive)).
			Component("unpacker").
			Category(errors.CategoryValidation).
			Build()
	}
	if err != nil {
		return "", err
	}

	dataFile, err := findDataFile(details, extractDir)
	if err != nil {
		return "", err
	}

	report(progress.Event{Message: fmt.Sprintf("%s extracted successfully", filepath.Base(archive)), Type: progress.Finish})
	return dataFile, nil
}

// UnpackAll extracts every requested source concurrently. extractDirFor maps
// each source to its own extraction directory.
func UnpackAll(dataTypes []mamedata.DataType, downloadDir string, extractDirFor func(mamedata.DataType) string, callback progress.TaggedCallback) (map[mamedata.DataType]string, map[mamedata.DataType]error) {
	mux := progress.NewMultiplexer(callback)

	type outcome struct {
		source mamedata.DataType
		path   string
		err    error
	}
	results := make(chan outcome, len(dataTypes))
	var wg sync.WaitGroup
	for _, dt := range dataTypes {
		wg.Add(1)
		go func() {
			defer wg.Done()
			p, err := Unpack(dt, downloadDir, extractDirFor(dt), mux.Source(dt))
			results <- outcome{source: dt, path: p, err: err}
		}()
	}
	wg.Wait()
	close(results)
	mux.Close()

	paths := make(map[mamedata.DataType]string)
	errs := make(map[mamedata.DataType]error)
	for r := range results {
		if r.err != nil {
			errs[r.source] = r.err
			continue
		}
		paths[r.source] = r.path
	}
	return paths, errs
}

func extractZip(archive, extractDir string, report progress.Callback) error {
	r, err := zip.OpenReader(archive)
	if err != nil {
		return archiveError(err, archive)
	}
	defer r.Close() //nolint:errcheck // read-only archive

	total := uint64(len(r.File))
	processed := uint64(0)
	for _, f := range r.File {
		if err := writeZipEntry(f, extractDir); err != nil {
			return err
		}
		processed++
		report(progress.Event{Processed: processed, Total: total, Type: progress.Update})
	}
	return nil
}

func writeZipEntry(f *zip.File, extractDir string) error {
	dest, err := securePath(extractDir, f.Name)
	if err != nil {
		return err
	}
	if f.FileInfo().IsDir() {
		return mkdirAll(dest)
	}
	if err := mkdirAll(filepath.Dir(dest)); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return archiveError(err, f.Name)
	}
	defer rc.Close() //nolint:errcheck // read side

	return writeFile(dest, rc)
}

func extractSevenZip(archive, extractDir string, report progress.Callback) error {
	r, err := sevenzip.OpenReader(archive)
	if err != nil {
		return archiveError(err, archive)
	}
	defer r.Close() //nolint:errcheck // read-only archive

	total := uint64(len(r.File))
	processed := uint64(0)
	for _, f := range r.File {
		if err := writeSevenZipEntry(f, extractDir); err != nil {
			return err
		}
		processed++
		report(progress.Event{Processed: processed, Total: total, Type: progress.Update})
	}
	return nil
}

func writeSevenZipEntry(f *sevenzip.File, extractDir string) error {
	dest, err := securePath(extractDir, f.Name)
	if err != nil {
		return err
	}
	if f.FileInfo().IsDir() {
		return mkdirAll(dest)
	}
	if err := mkdirAll(filepath.Dir(dest)); err != nil {
		return err
	}

	rc, err := f.Open()
	if err != nil {
		return archiveError(err, f.Name)
	}
	defer rc.Close() //nolint:errcheck // read side

	return writeFile(dest, rc)
}

// securePath joins an archive entry name under the extraction root and
// rejects entries that would escape it.
func securePath(extractDir, name string) (string, error) {
	dest := filepath.Join(extractDir, filepath.FromSlash(name))
	if !strings.HasPrefix(dest, filepath.Clean(extractDir)+string(os.PathSeparator)) {
		return "", errors.Newf("archive entry escapes extraction directory: %s", name).
			Component("unpacker").
			Category(errors.CategoryValidation).
			Build()
	}
	return dest, nil
}

func findDataFile(details mamedata.SourceDetails, extractDir string) (string, error) {
	var found string
	err := filepath.WalkDir(extractDir, func(path string, d fs.DirEntry, err error) error {
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
	if err != nil {
		return "", archiveError(err, extractDir)
	}
	if found == "" {
		return "", errors.Newf("no data file matching %q in extracted archive", details.DataFilePattern).
			Component("unpacker").
			Category(errors.CategoryNotFound).
			Context("directory", extractDir).
			Build()
	}
	return found, nil
}

func mkdirAll(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return archiveError(err, dir)
	}
	return nil
}

func writeFile(dest string, r io.Reader) error {
	out, err := os.Create(dest)
	if err != nil {
		return archiveError(err, dest)
	}
	if _, err := io.Copy(out, r); err != nil {
		out.Close() //nolint:errcheck,gosec // error path
		return archiveError(err, dest)
	}
	if err := out.Close(); err != nil {
		return archiveError(err, dest)
	}
	return nil
}

func archiveError(err error, path string) error {
	return errors.New(err).
		Component("unpacker").
		Category(errors.CategoryArchive).
		FileContext(path).
		Build()
}
