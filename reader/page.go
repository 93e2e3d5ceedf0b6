package reader

import (
	"fmt"
	"math"

	"github.com/ledongthuc/pdf"

	"github.com/iurcrowd/lawlinks/font"
	"github.com/iurcrowd/lawlinks/model"
	"github.com/iurcrowd/lawlinks/text"
)

// defaultMediaBox is US Letter, used when no MediaBox is found in the page tree
var defaultMediaBox = [4]float64{0, 0, 612, 792}

// maxTreeDepth bounds the walk up the page tree for inherited attributes
const maxTreeDepth = 32

// Link is a link annotation as found on a page
type Link struct {
	// URI is empty for links without a URI action (e.g. internal GoTo links)
	URI string

	// Rect is the annotation rectangle in page space (top-left origin)
	Rect model.Rect
}

// Page is one page of a PDF document. All coordinates it reports use a
// top-left origin with y growing downward, relative to the MediaBox.
type Page struct {
	Index int

	page     pdf.Page
	mediaBox [4]float64 // llx, lly, urx, ury in PDF user space
}

func newPage(index int, page pdf.Page) (*Page, error) {
	box, err := inheritedMediaBox(page.V)
	if err != nil {
		return nil, fmt.Errorf("page %d: %w", index, err)
	}
	return &Page{Index: index, page: page, mediaBox: box}, nil
}

// Width returns the page width in points
func (p *Page) Width() float64 {
	return p.mediaBox[2] - p.mediaBox[0]
}

// Height returns the page height in points
func (p *Page) Height() float64 {
	return p.mediaBox[3] - p.mediaBox[1]
}

// Bounds returns the page rectangle in page space
func (p *Page) Bounds() model.Rect {
	return model.Rect{X0: 0, Y0: 0, X1: p.Width(), Y1: p.Height()}
}

// toPageSpace converts a point in PDF user space to page space
func (p *Page) toPageSpace(x, y float64) (float64, float64) {
	return x - p.mediaBox[0], p.mediaBox[3] - y
}

// Links returns the page's link annotations in /Annots order
func (p *Page) Links() (links []Link, err error) {
	defer recoverAs(fmt.Sprintf("read annotations of page %d", p.Index), &err)

	annots := p.page.V.Key("Annots")
	if annots.Kind() != pdf.Array {
		return nil, nil
	}

	for i := 0; i < annots.Len(); i++ {
		annot := annots.Index(i)
		if annot.Kind() != pdf.Dict || annot.Key("Subtype").Name() != "Link" {
			continue
		}

		rect := annot.Key("Rect")
		if rect.Kind() != pdf.Array || rect.Len() < 4 {
			continue
		}
		x0, y0 := p.toPageSpace(rect.Index(0).Float64(), rect.Index(1).Float64())
		x1, y1 := p.toPageSpace(rect.Index(2).Float64(), rect.Index(3).Float64())

		links = append(links, Link{
			URI:  annotationURI(annot),
			Rect: model.NewRect(x0, y0, x1, y1),
		})
	}

	return links, nil
}

// annotationURI resolves the URI either directly or through a URI action
func annotationURI(annot pdf.Value) string {
	if uri := annot.Key("URI"); uri.Kind() == pdf.String {
		return uri.Text()
	}
	action := annot.Key("A")
	if action.Kind() != pdf.Dict {
		return ""
	}
	if action.Key("S").Name() != "URI" {
		return ""
	}
	return action.Key("URI").Text()
}

// Glyphs returns the page's positioned glyphs in content stream order
func (p *Page) Glyphs() (glyphs []text.Glyph, err error) {
	defer recoverAs(fmt.Sprintf("decode content of page %d", p.Index), &err)

	if p.page.V.Key("Contents").IsNull() {
		return nil, nil
	}

	content := p.page.Content()
	return p.convertGlyphs(content.Text), nil
}

// convertGlyphs maps parser output to page space. When a font carries no
// /Widths array the parser reports zero advances and leaves every glyph of a
// show operation at the same origin; those runs are re-spaced with the
// Standard 14 metrics.
func (p *Page) convertGlyphs(in []pdf.Text) []text.Glyph {
	out := make([]text.Glyph, 0, len(in))
	metrics := make(map[string]*font.Metrics)

	var prev *pdf.Text
	var prevGlyph text.Glyph

	for i := range in {
		t := in[i]
		size := math.Abs(t.FontSize)
		x, y := p.toPageSpace(t.X, t.Y)
		width := t.W

		if width <= 0 {
			m, ok := metrics[t.Font]
			if !ok {
				m = font.ForBaseFont(t.Font)
				metrics[t.Font] = m
			}
			width = m.GetStringWidth(t.S) * size / 1000.0

			if prev != nil && continuesRun(*prev, t) {
				x = prevGlyph.X + prevGlyph.Width + (t.X - prev.X)
			}
		}

		g := text.Glyph{
			Text:     t.S,
			X:        x,
			Y:        y,
			Width:    width,
			FontName: t.Font,
			FontSize: size,
		}
		out = append(out, g)
		prev = &in[i]
		prevGlyph = g
	}

	return out
}

// continuesRun reports whether t was shown by the same operation as prev
// without an advance: same font, same baseline, and at most character or
// word spacing between the two origins.
func continuesRun(prev, t pdf.Text) bool {
	if prev.W > 0 || prev.Font != t.Font || prev.FontSize != t.FontSize || prev.Y != t.Y {
		return false
	}
	dx := t.X - prev.X
	return dx >= 0 && dx < math.Abs(t.FontSize)*0.3
}

// inheritedMediaBox walks up the page tree to find the MediaBox
func inheritedMediaBox(v pdf.Value) ([4]float64, error) {
	for depth := 0; depth < maxTreeDepth && !v.IsNull(); depth++ {
		if box := v.Key("MediaBox"); !box.IsNull() {
			return parseBox(box)
		}
		v = v.Key("Parent")
	}
	return defaultMediaBox, nil
}

func parseBox(box pdf.Value) ([4]float64, error) {
	var out [4]float64
	if box.Kind() != pdf.Array || box.Len() != 4 {
		return out, fmt.Errorf("invalid MediaBox: %v", box)
	}
	for i := 0; i < 4; i++ {
		out[i] = box.Index(i).Float64()
	}
	if out[0] > out[2] {
		out[0], out[2] = out[2], out[0]
	}
	if out[1] > out[3] {
		out[1], out[3] = out[3], out[1]
	}
	if out[2]-out[0] <= 0 || out[3]-out[1] <= 0 {
		return out, fmt.Errorf("invalid MediaBox dimensions: %v", out)
	}
	return out, nil
}
