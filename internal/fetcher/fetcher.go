// Package fetcher downloads the published data releases: it scrapes each
// publisher page for the current archive link, then streams the archive to
// the workspace download directory with progress reporting.
package fetcher

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"golang.org/x/net/html"

	"github.com/tphakala/mamedat/internal/errors"
	"github.com/tphakala/mamedat/internal/mamedata"
	"github.com/tphakala/mamedat/internal/progress"
)

// archiveExtensions are the suffixes a download link may carry.
var archiveExtensions = []string{".zip", ".7z"}

// Fetcher resolves and downloads source archives. Resolved URLs are cached
// briefly so a fetch-all run scrapes each publisher page once.
type Fetcher struct {
	client   *http.Client
	urlCache *cache.Cache
}

// New builds a fetcher around the given HTTP client. A nil client falls back
// to a default with a generous timeout for the large archive downloads.
func New(client *http.Client) *Fetcher {
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Minute}
	}
	return &Fetcher{
		client:   client,
		urlCache: cache.New(15*time.Minute, 30*time.Minute),
	}
}

// ResolveURL scrapes the publisher page of the data type and returns the
// download URL of the current archive: the last anchor whose href contains
// the source match string and ends in a known archive extension. Relative
// links are resolved against the page URL.
func (f *Fetcher) ResolveURL(dataType mamedata.DataType) (string, error) {
	details := dataType.Details()
	if cached, ok := f.urlCache.Get(details.SourceURL); ok {
		return cached.(string), nil
	}

	resp, err := f.client.Get(details.SourceURL)
	if err != nil {
		return "", fetchError(err, details.SourceURL)
	}
	defer resp.Body.Close() //nolint:errcheck // response body

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf("unexpected status %s fetching %s", resp.Status, details.SourceURL).
			Component("fetcher").
			Category(errors.CategoryNetwork).
			Build()
	}

	link, err := findArchiveLink(resp.Body, details.SourceMatch)
	if err != nil {
		return "", fetchError(err, details.SourceURL)
	}
	if link == "" {
		return "", errors.Newf("no archive link matching %q on %s", details.SourceMatch, details.SourceURL).
			Component("fetcher").
			Category(errors.CategoryNotFound).
			Build()
	}

	resolved, err := resolveLink(details.SourceURL, link)
	if err != nil {
		return "", fetchError(err, details.SourceURL)
	}
	f.urlCache.Set(details.SourceURL, resolved, cache.DefaultExpiration)
	return resolved, nil
}

// findArchiveLink walks the page anchors and keeps the last matching href.
func findArchiveLink(body io.Reader, match string) (string, error) {
	tokenizer := html.NewTokenizer(body)
	link := ""
	for {
		switch tokenizer.Next() {
		case html.ErrorToken:
			if err := tokenizer.Err(); err != io.EOF {
				return "", err
			}
			return link, nil
		case html.StartTagToken, html.SelfClosingTagToken:
			token := tokenizer.Token()
			if token.Data != "a" {
				continue
			}
			for _, attr := range token.Attr {
				if attr.Key != "href" {
					continue
				}
				if strings.Contains(attr.Val, match) && hasArchiveExtension(attr.Val) {
					link = attr.Val
				}
			}
		}
	}
}

func hasArchiveExtension(href string) bool {
	for _, ext := range archiveExtensions {
		if strings.HasSuffix(href, ext) {
			return true
		}
	}
	return false
}

func resolveLink(pageURL, link string) (string, error) {
	base, err := url.Parse(pageURL)
	if err != nil {
		return "", err
	}
	ref, err := url.Parse(link)
	if err != nil {
		return "", err
	}
	return base.ResolveReference(ref).String(), nil
}

// Download resolves the archive URL of one source and streams it into
// downloadDir, reporting byte progress. It returns the path of the written
// archive.
func (f *Fetcher) Download(dataType mamedata.DataType, downloadDir string, report progress.Callback) (string, error) {
	if report == nil {
		report = progress.Discard
	}
	details := dataType.Details()

	report(progress.InfoEvent(fmt.Sprintf("Resolving download link for %s", details.Name)))
	archiveURL, err := f.ResolveURL(dataType)
	if err != nil {
		report(progress.Event{Message: fmt.Sprintf("Couldn't resolve download link for %s", details.Name), Type: progress.Error})
		return "", err
	}

	fileName := path.Base(archiveURL)
	if idx := strings.IndexAny(fileName, "?#"); idx >= 0 {
		fileName = fileName[:idx]
	}

	// A previous run may have left the archive in place already.
	dest := filepath.Join(downloadDir, fileName)
	report(progress.InfoEvent(fmt.Sprintf("Checking if file %s already exists", fileName)))
	if _, err := os.Stat(dest); err == nil {
		report(progress.Event{
			Message: fmt.Sprintf("%s already exists", fileName),
			Type:    progress.Finish,
		})
		return dest, nil
	}

	report(progress.InfoEvent(fmt.Sprintf("Downloading %s", fileName)))

	resp, err := f.client.Get(archiveURL)
	if err != nil {
		return "", fetchError(err, archiveURL)
	}
	defer resp.Body.Close() //nolint:errcheck // response body

	if resp.StatusCode != http.StatusOK {
		return "", errors.Newf("unexpected status %s downloading %s", resp.Status, archiveURL).
			Component("fetcher").
			Category(errors.CategoryNetwork).
			Build()
	}

	if err := os.MkdirAll(downloadDir, 0o755); err != nil {
		return "", errors.New(err).
			Component("fetcher").
			Category(errors.CategoryFileIO).
			FileContext(downloadDir).
			Build()
	}

	out, err := os.Create(dest)
	if err != nil {
		return "", errors.New(err).
			Component("fetcher").
			Category(errors.CategoryFileIO).
			FileContext(dest).
			Build()
	}

	total := uint64(0)
	if resp.ContentLength > 0 {
		total = uint64(resp.ContentLength)
	}
	writer := &progressWriter{out: out, total: total, report: report}
	if _, err := io.Copy(writer, resp.Body); err != nil {
		out.Close() //nolint:errcheck,gosec // error path
		os.Remove(dest)
		return "", fetchError(err, archiveURL)
	}
	if err := out.Close(); err != nil {
		return "", errors.New(err).
			Component("fetcher").
			Category(errors.CategoryFileIO).
			FileContext(dest).
			Build()
	}

	// Servers that omit Content-Length leave the total unknown until now.
	finalTotal := writer.total
	if finalTotal == 0 {
		finalTotal = writer.written
	}
	report(progress.Event{
		Processed: writer.written,
		Total:     finalTotal,
		Message:   fmt.Sprintf("%s downloaded successfully", fileName),
		Type:      progress.Finish,
	})
	return dest, nil
}

// DownloadAll fetches every requested source concurrently, reporting tagged
// progress. Failures are collected per source; successful downloads are
// returned keyed by data type.
func (f *Fetcher) DownloadAll(dataTypes []mamedata.DataType, downloadDir string, callback progress.TaggedCallback) (map[mamedata.DataType]string, map[mamedata.DataType]error) {
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
			p, err := f.Download(dt, downloadDir, mux.Source(dt))
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

// progressWriter counts bytes through to the destination file, emitting an
// update roughly every megabyte.
type progressWriter struct {
	out     *os.File
	written uint64
	total   uint64
	lastAt  uint64
	report  progress.Callback
}

const progressStride = 1 << 20

func (w *progressWriter) Write(p []byte) (int, error) {
	n, err := w.out.Write(p)
	w.written += uint64(n)
	if w.written-w.lastAt >= progressStride {
		w.lastAt = w.written
		w.report(progress.Event{Processed: w.written, Total: w.total, Type: progress.Update})
	}
	return n, err
}

func fetchError(err error, url string) error {
	return errors.New(err).
		Component("fetcher").
		Category(errors.CategoryNetwork).
		Context("url", url).
		Build()
}
