package text

import (
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"github.com/iurcrowd/lawlinks/font"
	"github.com/iurcrowd/lawlinks/model"
	"github.com/iurcrowd/lawlinks/normalize"
)

// Vertical extent of a glyph relative to its baseline, as a fraction of the
// font size. Standard 14 fonts sit close to these values.
const (
	ascentRatio  = 0.8
	descentRatio = 0.2
)

// Glyph represents a piece of rendered text with position in page space
type Glyph struct {
	Text     string
	X        float64 // Left edge
	Y        float64 // Baseline, top-left origin
	Width    float64
	FontName string
	FontSize float64
}

// Box returns the glyph's bounding box
func (g Glyph) Box() model.Rect {
	return model.Rect{
		X0: g.X,
		Y0: g.Y - g.FontSize*ascentRatio,
		X1: g.X + g.Width,
		Y1: g.Y + g.FontSize*descentRatio,
	}
}

// Center returns the center of the glyph's bounding box
func (g Glyph) Center() model.Point {
	return g.Box().Center()
}

// Layout assembles the glyphs of one page into text
type Layout struct {
	glyphs  []Glyph
	metrics map[string]*font.Metrics
}

// NewLayout creates a layout over glyphs in content stream order
func NewLayout(glyphs []Glyph) *Layout {
	return &Layout{
		glyphs:  glyphs,
		metrics: make(map[string]*font.Metrics),
	}
}

// Glyphs returns all glyphs of the layout
func (l *Layout) Glyphs() []Glyph {
	return l.glyphs
}

// Text returns the full page text. Every line is terminated by a newline.
func (l *Layout) Text() string {
	return l.render(l.glyphs)
}

// Clip returns the text of glyphs whose center lies inside r
func (l *Layout) Clip(r model.Rect) string {
	if r.IsEmpty() {
		return ""
	}
	var inside []Glyph
	for _, g := range l.glyphs {
		if r.Contains(g.Center()) {
			inside = append(inside, g)
		}
	}
	return l.render(inside)
}

// Box returns the clipped text of r with every whitespace run collapsed to a
// single space and no leading or trailing whitespace
func (l *Layout) Box(r model.Rect) string {
	return normalize.Collapse(l.Clip(r))
}

func (l *Layout) render(glyphs []Glyph) string {
	if len(glyphs) == 0 {
		return ""
	}

	var sb strings.Builder
	for _, line := range groupGlyphsByLine(glyphs) {
		ordered := orderLine(line)
		for i, g := range ordered {
			sb.WriteString(g.Text)
			if i < len(ordered)-1 && l.shouldInsertSpace(g, ordered[i+1]) {
				sb.WriteByte(' ')
			}
		}
		sb.WriteByte('\n')
	}

	return norm.NFC.String(sb.String())
}

// groupGlyphsByLine groups consecutive glyphs sharing a baseline
func groupGlyphsByLine(glyphs []Glyph) [][]Glyph {
	lines := make([][]Glyph, 0)
	current := []Glyph{glyphs[0]}

	for i := 1; i < len(glyphs); i++ {
		g := glyphs[i]
		prev := glyphs[i-1]

		if abs(g.Y-prev.Y) <= prev.FontSize*0.5 {
			current = append(current, g)
			continue
		}
		lines = append(lines, current)
		current = []Glyph{g}
	}

	return append(lines, current)
}

// orderLine sorts a line left to right, keeping stream order for ties
func orderLine(line []Glyph) []Glyph {
	ordered := make([]Glyph, len(line))
	copy(ordered, line)
	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].X < ordered[j].X
	})
	return ordered
}

// shouldInsertSpace reports whether the gap between two neighbours on a line
// is wide enough to be a word break that the stream did not spell out
func (l *Layout) shouldInsertSpace(g, next Glyph) bool {
	if endsWithSpace(g.Text) || startsWithSpace(next.Text) {
		return false
	}

	gap := next.X - (g.X + g.Width)
	if gap < 0 || gap < g.FontSize*0.05 {
		return false
	}

	// Insert space if gap is >= 50% of a space character width
	return gap >= l.spaceWidth(g.FontName, g.FontSize)*0.5
}

func (l *Layout) spaceWidth(fontName string, fontSize float64) float64 {
	m, ok := l.metrics[fontName]
	if !ok {
		m = font.ForBaseFont(fontName)
		l.metrics[fontName] = m
	}
	return m.SpaceWidth(fontSize)
}

func endsWithSpace(s string) bool {
	return s != "" && isWhitespace(s[len(s)-1])
}

func startsWithSpace(s string) bool {
	return s != "" && isWhitespace(s[0])
}

// isWhitespace checks if a byte is a whitespace character
func isWhitespace(b byte) bool {
	return b == ' ' || b == '\t' || b == '\n' || b == '\r'
}

// abs returns the absolute value of a float64
func abs(x float64) float64 {
	if x < 0 {
		return -x
	}
	return x
}
