package font

import "strings"

// defaultWidth is used for runes missing from a metrics table (1000ths of em)
const defaultWidth = 500.0

// Metrics holds glyph advance widths for one base font
type Metrics struct {
	BaseFont string

	// Character width information, in 1000ths of em
	widths map[rune]float64
}

// ForBaseFont returns metrics for a base font name as it appears in a font
// dictionary. Subset prefixes ("ABCDEF+Helvetica") are ignored. Fonts outside
// the Standard 14 families fall back to Helvetica widths.
func ForBaseFont(baseFont string) *Metrics {
	if i := strings.Index(baseFont, "+"); i >= 0 {
		baseFont = baseFont[i+1:]
	}
	return &Metrics{
		BaseFont: baseFont,
		widths:   familyWidths(baseFont),
	}
}

// GetWidth returns the width of a character (in 1000ths of em)
func (m *Metrics) GetWidth(r rune) float64 {
	if w, ok := m.widths[r]; ok {
		return w
	}
	return defaultWidth
}

// GetStringWidth calculates the total width of a string
func (m *Metrics) GetStringWidth(s string) float64 {
	total := 0.0
	for _, r := range s {
		total += m.GetWidth(r)
	}
	return total
}

// SpaceWidth returns the width of a space in text space units for the given size
func (m *Metrics) SpaceWidth(fontSize float64) float64 {
	return m.GetWidth(' ') * fontSize / 1000.0
}

func familyWidths(baseFont string) map[rune]float64 {
	if widths, ok := standardFonts[baseFont]; ok {
		return widths
	}
	switch {
	case strings.HasPrefix(baseFont, "Times"):
		return timesWidths
	case strings.HasPrefix(baseFont, "Courier"):
		return courierWidths
	default:
		return helveticaWidths
	}
}

// Standard 14 font names. Bold and italic faces share the regular widths,
// which is close enough for estimating glyph advances.
var standardFonts = map[string]map[rune]float64{
	"Helvetica":             helveticaWidths,
	"Helvetica-Bold":        helveticaWidths,
	"Helvetica-Oblique":     helveticaWidths,
	"Helvetica-BoldOblique": helveticaWidths,
	"Times-Roman":           timesWidths,
	"Times-Bold":            timesWidths,
	"Times-Italic":          timesWidths,
	"Times-BoldItalic":      timesWidths,
	"Courier":               courierWidths,
	"Courier-Bold":          courierWidths,
	"Courier-Oblique":       courierWidths,
	"Courier-BoldOblique":   courierWidths,
	"Symbol":                courierWidths,
	"ZapfDingbats":          courierWidths,
}

// AFM advance widths for ASCII 32..126
var (
	helveticaASCII = [...]float64{
		278, 278, 355, 556, 556, 889, 667, 191, 333, 333, 389, 584, 278, 333, 278, 278, // ' '../
		556, 556, 556, 556, 556, 556, 556, 556, 556, 556, 278, 278, 584, 584, 584, 556, // 0..?
		1015, 667, 667, 722, 722, 667, 611, 778, 722, 278, 500, 667, 556, 833, 722, 778, // @..O
		667, 778, 722, 667, 611, 722, 667, 944, 667, 667, 611, 278, 278, 278, 469, 556, // P.._
		333, 556, 556, 500, 556, 556, 278, 556, 556, 222, 222, 500, 222, 833, 556, 556, // `..o
		556, 556, 333, 500, 278, 556, 500, 722, 500, 500, 500, 334, 260, 334, 584, // p..~
	}
	timesASCII = [...]float64{
		250, 333, 408, 500, 500, 833, 778, 180, 333, 333, 500, 564, 250, 333, 250, 278,
		500, 500, 500, 500, 500, 500, 500, 500, 500, 500, 278, 278, 564, 564, 564, 444,
		921, 722, 667, 667, 722, 611, 556, 722, 722, 333, 389, 722, 611, 889, 722, 722,
		556, 722, 667, 556, 611, 722, 722, 944, 722, 722, 611, 333, 278, 333, 469, 500,
		333, 444, 500, 444, 500, 444, 333, 500, 500, 278, 278, 500, 278, 778, 500, 500,
		500, 500, 333, 389, 278, 500, 500, 722, 500, 500, 444, 480, 200, 480, 541,
	}
)

// Latin-1 letters common in German legal text
var (
	helveticaLatin1 = map[rune]float64{
		'Ä': 667, 'Ö': 778, 'Ü': 722, 'ä': 556, 'ö': 556, 'ü': 556, 'ß': 611,
		'§': 556, 'é': 556, 'è': 556, '–': 556, '—': 1000, '„': 333, '“': 333,
		'\u00a0': 278,
	}
	timesLatin1 = map[rune]float64{
		'Ä': 722, 'Ö': 722, 'Ü': 722, 'ä': 444, 'ö': 500, 'ü': 500, 'ß': 500,
		'§': 500, 'é': 444, 'è': 444, '–': 500, '—': 1000, '„': 444, '“': 444,
		'\u00a0': 250,
	}
)

var (
	helveticaWidths = buildWidths(helveticaASCII[:], helveticaLatin1)
	timesWidths     = buildWidths(timesASCII[:], timesLatin1)
	courierWidths   = monospaced(600)
)

func buildWidths(ascii []float64, extra map[rune]float64) map[rune]float64 {
	widths := make(map[rune]float64, len(ascii)+len(extra))
	for i, w := range ascii {
		widths[rune(32+i)] = w
	}
	for r, w := range extra {
		widths[r] = w
	}
	return widths
}

// monospaced covers printable ASCII and Latin-1
func monospaced(w float64) map[rune]float64 {
	widths := make(map[rune]float64)
	for r := rune(32); r <= 255; r++ {
		widths[r] = w
	}
	return widths
}
