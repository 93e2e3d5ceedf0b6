// Package lawlinks correlates the hyperlinks of a rendered PDF with the
// plain-text transcript the PDF was rendered from.
//
// Basic usage:
//
//	links, err := lawlinks.Open("converted.pdf").Links(ctx)
//	if err != nil {
//	    // handle error
//	}
//
// Resolving against a transcript:
//
//	resolved, stats, err := lawlinks.Open("converted.pdf").
//	    Concurrency(4).
//	    Logger(logger).
//	    Resolve(ctx, transcript)
//
// For finer control the extract, resolve and reader packages are also
// available.
package lawlinks

import (
	"github.com/iurcrowd/lawlinks/reader"
)

// Open opens a PDF file and returns an Extractor for fluent configuration.
// The file is opened lazily by the first terminal operation and closed by
// it, or explicitly via Close().
//
// Example:
//
//	links, err := lawlinks.Open("converted.pdf").Links(ctx)
func Open(filename string) *Extractor {
	return &Extractor{
		filename: filename,
		options:  defaultOptions(),
	}
}

// FromBytes creates an Extractor over an in-memory PDF.
//
// Example:
//
//	links, err := lawlinks.FromBytes(pdf).Links(ctx)
func FromBytes(data []byte) *Extractor {
	return &Extractor{
		data:    data,
		options: defaultOptions(),
	}
}

// FromReader creates an Extractor from an already-opened reader.Reader.
// Note: The caller is responsible for closing the reader.
//
// Example:
//
//	r, err := reader.Open("converted.pdf")
//	if err != nil {
//	    // handle error
//	}
//	defer r.Close()
//	links, err := lawlinks.FromReader(r).Links(ctx)
func FromReader(r *reader.Reader) *Extractor {
	return &Extractor{
		reader:       r,
		ownsReader:   false,
		readerOpened: true,
		options:      defaultOptions(),
	}
}

// Must is a helper that wraps a call to a function returning (T, error)
// and panics if the error is non-nil. It is intended for use in scripts
// or tests where error handling would be cumbersome.
//
// Example:
//
//	count := lawlinks.Must(lawlinks.Open("converted.pdf").PageCount())
func Must[T any](val T, err error) T {
	if err != nil {
		panic(err)
	}
	return val
}
