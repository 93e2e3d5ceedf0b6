// Package pdftest builds small PDF fixtures with link annotations for tests.
package pdftest

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/jung-kurt/gofpdf"
)

// FontSize is the size of all fixture text, in points
const FontSize = 10.0

// LineHeight is the distance between consecutive baselines written by Lines
const LineHeight = 14.0

// Doc is an A4 document measured in points with a top-left origin
type Doc struct {
	pdf *gofpdf.Fpdf
	tr  func(string) string

	// out holds the rendered document. gofpdf drains its buffer on Output,
	// so a Doc renders once and is read-only afterwards.
	out []byte
}

// New creates an empty document using 10pt Helvetica
func New() *Doc {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetCompression(true)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetFont("Helvetica", "", FontSize)
	return &Doc{
		pdf: pdf,
		tr:  pdf.UnicodeTranslatorFromDescriptor(""),
	}
}

// AddPage starts a new page
func (d *Doc) AddPage() *Doc {
	d.pdf.AddPage()
	return d
}

// Text writes s with its baseline at y
func (d *Doc) Text(x, y float64, s string) *Doc {
	d.pdf.Text(x, y, d.tr(s))
	return d
}

// Lines writes one string per line starting at baseline y
func (d *Doc) Lines(x, y float64, lines ...string) *Doc {
	for i, line := range lines {
		d.Text(x, y+float64(i)*LineHeight, line)
	}
	return d
}

// Width returns the rendered width of s
func (d *Doc) Width(s string) float64 {
	return d.pdf.GetStringWidth(d.tr(s))
}

// LinkRect returns the annotation rectangle used for text s written at
// baseline (x, y): the line box from ascender to descender.
func (d *Doc) LinkRect(x, y float64, s string) (rx, ry, w, h float64) {
	return x, y - FontSize*0.9, d.Width(s), FontSize * 1.15
}

// Link writes s at baseline (x, y) and covers it with a URI annotation
func (d *Doc) Link(x, y float64, s, uri string) *Doc {
	d.Text(x, y, s)
	return d.Annotate(x, y, s, uri)
}

// Annotate adds a URI annotation over text s at baseline (x, y) without
// writing the text itself
func (d *Doc) Annotate(x, y float64, s, uri string) *Doc {
	rx, ry, w, h := d.LinkRect(x, y, s)
	d.pdf.LinkString(rx, ry, w, h, uri)
	return d
}

// InternalLink writes s at baseline (x, y) and covers it with a link to the
// top of the current page, which carries no URI
func (d *Doc) InternalLink(x, y float64, s string) *Doc {
	d.Text(x, y, s)
	id := d.pdf.AddLink()
	d.pdf.SetLink(id, 0, -1)
	rx, ry, w, h := d.LinkRect(x, y, s)
	d.pdf.Link(rx, ry, w, h, id)
	return d
}

// Bytes renders the document. Later calls return the same rendering; pages
// or text added after the first call are not part of it.
func (d *Doc) Bytes(tb testing.TB) []byte {
	tb.Helper()
	if d.out == nil {
		var buf bytes.Buffer
		if err := d.pdf.Output(&buf); err != nil {
			tb.Fatalf("render fixture pdf: %v", err)
		}
		d.out = buf.Bytes()
	}
	return bytes.Clone(d.out)
}

// File renders the document into a temporary file and returns its path
func (d *Doc) File(tb testing.TB) string {
	tb.Helper()
	path := filepath.Join(tb.TempDir(), "fixture.pdf")
	if err := os.WriteFile(path, d.Bytes(tb), 0o644); err != nil {
		tb.Fatalf("write fixture pdf: %v", err)
	}
	return path
}

// CorruptStream returns a copy of data with the compressed payload of its
// n-th stream (0-based) overwritten, keeping every offset intact. Page
// content streams come first, in page order.
func CorruptStream(tb testing.TB, data []byte, n int) []byte {
	tb.Helper()
	out := bytes.Clone(data)

	start := 0
	for i := 0; ; i++ {
		idx := bytes.Index(out[start:], []byte("stream\n"))
		if idx < 0 {
			tb.Fatalf("fixture pdf has no stream %d", n)
		}
		pos := start + idx
		start = pos + len("stream\n")
		if pos >= 3 && string(out[pos-3:pos]) == "end" {
			i--
			continue
		}
		if i < n {
			continue
		}

		end := bytes.Index(out[start:], []byte("endstream"))
		if end < 4 {
			tb.Fatalf("fixture pdf stream %d is too short", n)
		}
		// Keep the two byte zlib header so the failure surfaces in the
		// deflate data itself
		for j := start + 2; j < start+end-1; j++ {
			out[j] = 0xff
		}
		return out
	}
}
