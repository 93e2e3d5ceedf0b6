package reader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/ledongthuc/pdf"
)

// ErrPageRange is returned for page indexes outside the document
var ErrPageRange = errors.New("page index out of range")

// Reader represents an opened PDF document
type Reader struct {
	file *os.File // set when the Reader opened the file itself
	doc  *pdf.Reader
}

// NewReader creates a new PDF reader over r. The PDF is parsed eagerly up to
// the cross-reference table and trailer.
func NewReader(r io.ReaderAt, size int64) (rd *Reader, err error) {
	defer recoverAs("parse pdf", &err)

	doc, err := pdf.NewReader(r, size)
	if err != nil {
		return nil, fmt.Errorf("parse pdf: %w", err)
	}

	return &Reader{doc: doc}, nil
}

// FromBytes creates a reader over an in-memory PDF
func FromBytes(data []byte) (*Reader, error) {
	return NewReader(bytes.NewReader(data), int64(len(data)))
}

// Open opens a PDF file and returns a Reader
func Open(filename string) (*Reader, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to get file info: %w", err)
	}

	r, err := NewReader(file, info.Size())
	if err != nil {
		file.Close()
		return nil, err
	}
	r.file = file

	return r, nil
}

// Close closes the underlying file if the Reader opened it
func (r *Reader) Close() error {
	if r.file != nil {
		err := r.file.Close()
		r.file = nil
		return err
	}
	return nil
}

// PageCount returns the number of pages in the PDF
func (r *Reader) PageCount() (n int, err error) {
	defer recoverAs("count pages", &err)
	return r.doc.NumPage(), nil
}

// Page returns the page at the given index (0-based)
func (r *Reader) Page(index int) (p *Page, err error) {
	defer recoverAs(fmt.Sprintf("load page %d", index), &err)

	count := r.doc.NumPage()
	if index < 0 || index >= count {
		return nil, fmt.Errorf("page %d of %d: %w", index, count, ErrPageRange)
	}

	page := r.doc.Page(index + 1)
	if page.V.IsNull() {
		return nil, fmt.Errorf("page %d: missing page object", index)
	}

	return newPage(index, page)
}

// recoverAs converts a panic raised by the PDF parser into an error.
// The parser reports malformed input by panicking.
func recoverAs(op string, err *error) {
	if r := recover(); r != nil {
		*err = fmt.Errorf("%s: %v", op, r)
	}
}
