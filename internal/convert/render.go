package convert

import (
	"bytes"
	"fmt"

	"github.com/jung-kurt/gofpdf"
)

// Layout of rendered references, in points
const (
	FontSize   = 10.0
	LineHeight = 12.0
	Margin     = 10.0
)

// RenderReference lays out a reference string on A4 pages in 10pt
// Helvetica, wrapping at the right margin
func RenderReference(ref string) ([]byte, error) {
	pdf := gofpdf.New("P", "pt", "A4", "")
	pdf.SetMargins(Margin, Margin, Margin)
	pdf.SetAutoPageBreak(true, Margin)
	pdf.SetFont("Helvetica", "", FontSize)
	tr := pdf.UnicodeTranslatorFromDescriptor("")

	pdf.AddPage()
	pdf.MultiCell(0, LineHeight, tr(ref), "", "L", false)

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("render reference: %w", err)
	}
	return buf.Bytes(), nil
}
