package lawlinks

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/iurcrowd/lawlinks/extract"
	"github.com/iurcrowd/lawlinks/model"
	"github.com/iurcrowd/lawlinks/reader"
	"github.com/iurcrowd/lawlinks/resolve"
)

// Extractor provides a fluent interface for extracting and resolving the
// links of a PDF. Each configuration method returns a new Extractor
// instance, making it safe for concurrent use and allowing method chaining.
type Extractor struct {
	// Source
	filename string
	data     []byte

	reader *reader.Reader

	// Lifecycle
	ownsReader   bool // true if we opened the reader and should close it
	readerOpened bool // true if reader has been opened

	// Configuration
	options Options
}

// clone creates a shallow copy of the Extractor.
func (e *Extractor) clone() *Extractor {
	return &Extractor{
		filename:     e.filename,
		data:         e.data,
		reader:       e.reader,
		ownsReader:   e.ownsReader,
		readerOpened: e.readerOpened,
		options:      e.options,
	}
}

// ensureReader opens the reader if not already open.
func (e *Extractor) ensureReader() error {
	if e.readerOpened {
		return nil
	}

	var (
		r   *reader.Reader
		err error
	)
	switch {
	case e.data != nil:
		r, err = reader.FromBytes(e.data)
	case e.filename != "":
		r, err = reader.Open(e.filename)
	default:
		return fmt.Errorf("no filename specified")
	}
	if err != nil {
		return &extract.DecodeError{Page: -1, Err: fmt.Errorf("failed to open PDF: %w", err)}
	}

	e.reader = r
	e.ownsReader = true
	e.readerOpened = true
	return nil
}

// Close releases resources associated with the Extractor.
// It is safe to call Close multiple times.
func (e *Extractor) Close() error {
	if e.ownsReader && e.reader != nil {
		err := e.reader.Close()
		e.reader = nil
		e.ownsReader = false
		e.readerOpened = false
		return err
	}
	return nil
}

// ============================================================================
// Configuration Methods (return new Extractor instance)
// ============================================================================

// Concurrency sets how many pages are decoded in parallel.
//
// Example:
//
//	links, err := lawlinks.Open("doc.pdf").Concurrency(4).Links(ctx)
func (e *Extractor) Concurrency(n int) *Extractor {
	newExt := e.clone()
	newExt.options.concurrency = n
	return newExt
}

// Logger sets the logger used during extraction and resolution.
func (e *Extractor) Logger(l *slog.Logger) *Extractor {
	newExt := e.clone()
	newExt.options.logger = l
	return newExt
}

// NormalizeTargets converts internationalized host names in link targets
// to ASCII.
func (e *Extractor) NormalizeTargets() *Extractor {
	newExt := e.clone()
	newExt.options.normalizeTargets = true
	return newExt
}

// ShrinkRatio sets the fraction of the annotation height ignored at the top
// and at the bottom when reading anchor text.
func (e *Extractor) ShrinkRatio(r float64) *Extractor {
	newExt := e.clone()
	newExt.options.shrinkRatio = r
	return newExt
}

// CaseInsensitive makes Resolve ignore case when matching anchor text.
//
// Example:
//
//	resolved, _, err := lawlinks.Open("doc.pdf").CaseInsensitive().Resolve(ctx, transcript)
func (e *Extractor) CaseInsensitive() *Extractor {
	newExt := e.clone()
	newExt.options.caseInsensitive = true
	return newExt
}

// ============================================================================
// Terminal Operations
// ============================================================================

// PageCount returns the number of pages.
// Note: This does NOT close the reader, allowing further operations.
func (e *Extractor) PageCount() (int, error) {
	if err := e.ensureReader(); err != nil {
		return 0, err
	}
	return e.reader.PageCount()
}

// Links extracts the link annotations with anchor text and occurrence.
// This is a terminal operation that closes the underlying reader.
//
// Example:
//
//	links, err := lawlinks.Open("doc.pdf").Links(ctx)
//	for _, l := range links {
//	    fmt.Printf("%s -> %s (#%d)\n", l.AnchorText, l.Target, l.Occurrence)
//	}
func (e *Extractor) Links(ctx context.Context) ([]model.LinkAnnotation, error) {
	if err := e.ensureReader(); err != nil {
		return nil, err
	}
	defer e.Close()

	return extract.New(e.options.extractOptions()...).Extract(ctx, e.reader)
}

// Resolve extracts the links and locates each of them in transcript.
// This is a terminal operation that closes the underlying reader.
func (e *Extractor) Resolve(ctx context.Context, transcript string) ([]model.ResolvedLink, resolve.Stats, error) {
	links, err := e.Links(ctx)
	if err != nil {
		return nil, resolve.Stats{}, err
	}

	resolved, stats := resolve.New(e.options.resolveOptions()...).Resolve(transcript, links)
	return resolved, stats, nil
}
