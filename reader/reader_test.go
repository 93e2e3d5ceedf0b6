package reader

import (
	"errors"
	"math"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ledongthuc/pdf"

	"github.com/iurcrowd/lawlinks/internal/pdftest"
	"github.com/iurcrowd/lawlinks/text"
)

func TestOpenNonexistent(t *testing.T) {
	if _, err := Open(filepath.Join(t.TempDir(), "missing.pdf")); err == nil {
		t.Error("expected error for non-existent file")
	}
}

func TestFromBytesRejectsGarbage(t *testing.T) {
	if _, err := FromBytes([]byte("this is not a pdf")); err == nil {
		t.Error("expected error for non-pdf input")
	}
}

func TestOpenAndPageCount(t *testing.T) {
	doc := pdftest.New()
	doc.AddPage().Text(50, 50, "one")
	doc.AddPage().Text(50, 50, "two")
	path := doc.File(t)

	r, err := Open(path)
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	defer r.Close()

	n, err := r.PageCount()
	if err != nil {
		t.Fatalf("PageCount failed: %v", err)
	}
	if n != 2 {
		t.Errorf("PageCount() = %d, want 2", n)
	}

	if err := r.Close(); err != nil {
		t.Errorf("second Close should be a no-op, got %v", err)
	}
}

func TestPageOutOfRange(t *testing.T) {
	r, err := FromBytes(pdftest.New().AddPage().Bytes(t))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}

	for _, idx := range []int{-1, 1, 5} {
		if _, err := r.Page(idx); !errors.Is(err, ErrPageRange) {
			t.Errorf("Page(%d) error = %v, want ErrPageRange", idx, err)
		}
	}
}

func TestPageDimensions(t *testing.T) {
	r, err := FromBytes(pdftest.New().AddPage().Bytes(t))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	page, err := r.Page(0)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	// A4 in points
	if math.Abs(page.Width()-595.28) > 0.01 || math.Abs(page.Height()-841.89) > 0.01 {
		t.Errorf("page size = %vx%v, want A4", page.Width(), page.Height())
	}
	if b := page.Bounds(); b.X0 != 0 || b.Y0 != 0 || b.X1 != page.Width() {
		t.Errorf("Bounds() = %+v", b)
	}
}

func TestPageLinks(t *testing.T) {
	doc := pdftest.New()
	doc.AddPage().
		Link(50, 100, "BGH", "https://example.org/bgh").
		InternalLink(50, 130, "Inhalt").
		Link(200, 100, "OLG", "https://example.org/olg")

	r, err := FromBytes(doc.Bytes(t))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	page, err := r.Page(0)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}

	links, err := page.Links()
	if err != nil {
		t.Fatalf("Links failed: %v", err)
	}
	if len(links) != 3 {
		t.Fatalf("expected 3 links, got %d", len(links))
	}

	wantURIs := []string{"https://example.org/bgh", "", "https://example.org/olg"}
	for i, want := range wantURIs {
		if links[i].URI != want {
			t.Errorf("links[%d].URI = %q, want %q", i, links[i].URI, want)
		}
	}

	// Rect is in top-left page space, around the baseline at y=100
	rx, ry, w, h := doc.LinkRect(50, 100, "BGH")
	got := links[0].Rect
	if math.Abs(got.X0-rx) > 0.02 || math.Abs(got.Y0-ry) > 0.02 ||
		math.Abs(got.Width()-w) > 0.02 || math.Abs(got.Height()-h) > 0.02 {
		t.Errorf("links[0].Rect = %+v, want x=%v y=%v w=%v h=%v", got, rx, ry, w, h)
	}
}

func TestPageWithoutLinks(t *testing.T) {
	r, err := FromBytes(pdftest.New().AddPage().Text(50, 50, "plain").Bytes(t))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	page, err := r.Page(0)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	links, err := page.Links()
	if err != nil {
		t.Fatalf("Links failed: %v", err)
	}
	if len(links) != 0 {
		t.Errorf("expected no links, got %d", len(links))
	}
}

func TestPageGlyphs(t *testing.T) {
	doc := pdftest.New()
	doc.AddPage().Text(50, 100, "Art. 5")

	r, err := FromBytes(doc.Bytes(t))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	page, err := r.Page(0)
	if err != nil {
		t.Fatalf("Page failed: %v", err)
	}
	glyphs, err := page.Glyphs()
	if err != nil {
		t.Fatalf("Glyphs failed: %v", err)
	}
	if len(glyphs) == 0 {
		t.Fatal("expected glyphs")
	}

	first := glyphs[0]
	if math.Abs(first.X-50) > 0.02 || math.Abs(first.Y-100) > 0.02 {
		t.Errorf("first glyph at (%v, %v), want (50, 100)", first.X, first.Y)
	}
	if first.FontSize != pdftest.FontSize {
		t.Errorf("FontSize = %v, want %v", first.FontSize, pdftest.FontSize)
	}

	// Glyphs advance left to right and end where the text ends
	last := glyphs[len(glyphs)-1]
	end := last.X + last.Width
	if math.Abs(end-(50+doc.Width("Art. 5"))) > 0.1 {
		t.Errorf("text ends at %v, want %v", end, 50+doc.Width("Art. 5"))
	}

	if got := text.NewLayout(glyphs).Text(); strings.TrimSpace(got) != "Art. 5" {
		t.Errorf("layout text = %q, want %q", got, "Art. 5")
	}
}

func TestGlyphsDecodeUmlauts(t *testing.T) {
	doc := pdftest.New()
	doc.AddPage().Text(50, 100, "Oberlandesgericht München")

	r, err := FromBytes(doc.Bytes(t))
	if err != nil {
		t.Fatalf("FromBytes failed: %v", err)
	}
	page, _ := r.Page(0)
	glyphs, err := page.Glyphs()
	if err != nil {
		t.Fatalf("Glyphs failed: %v", err)
	}

	got := strings.TrimSpace(text.NewLayout(glyphs).Text())
	if got != "Oberlandesgericht München" {
		t.Errorf("layout text = %q", got)
	}
}

// TestConvertGlyphsRespacesZeroWidthRuns tests the width fallback
func TestConvertGlyphsRespacesZeroWidthRuns(t *testing.T) {
	p := &Page{mediaBox: [4]float64{0, 0, 600, 800}}
	in := []pdf.Text{
		{Font: "Helvetica", FontSize: 10, X: 100, Y: 700, S: "A"},
		{Font: "Helvetica", FontSize: 10, X: 100, Y: 700, S: "B"},
		{Font: "Helvetica", FontSize: 10, X: 300, Y: 700, S: "C"},
		{Font: "Helvetica", FontSize: 10, X: 50, Y: 680, W: 5, S: "D"},
	}

	out := p.convertGlyphs(in)
	if len(out) != 4 {
		t.Fatalf("expected 4 glyphs, got %d", len(out))
	}

	// A=667, B=667 at 10pt
	if out[0].X != 100 || math.Abs(out[0].Width-6.67) > 1e-9 {
		t.Errorf("A = %+v", out[0])
	}
	if math.Abs(out[1].X-106.67) > 1e-9 {
		t.Errorf("B.X = %v, want 106.67", out[1].X)
	}
	// A jump beyond spacing starts a new run
	if out[2].X != 300 {
		t.Errorf("C.X = %v, want 300", out[2].X)
	}
	// Explicit widths are kept; y is flipped to top-left origin
	if out[3].Width != 5 || out[3].Y != 120 {
		t.Errorf("D = %+v", out[3])
	}
	if out[0].Y != 100 {
		t.Errorf("A.Y = %v, want 100", out[0].Y)
	}
}
