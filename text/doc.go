// Package text assembles positioned glyphs into page text.
//
// A [Layout] holds the glyphs of one page in content stream order. Lines are
// formed from consecutive glyphs sharing a baseline, ordered left to right,
// and terminated by a newline:
//
//	layout := text.NewLayout(glyphs)
//	full := layout.Text()
//	caption := layout.Box(linkRect)
//
// # Clipping
//
// [Layout.Clip] keeps the glyphs whose bounding-box center lies inside the
// clip rectangle. Clip rectangles that only share an edge therefore split
// glyphs between them without duplicates, except for centers lying exactly
// on the shared edge.
//
// # Spacing
//
// A space is inserted between two glyphs of a line when the gap between them
// is at least half the font's space width and neither side already carries
// whitespace. Space widths come from the Standard 14 metrics in package font.
//
// Output is normalized to Unicode NFC.
package text
