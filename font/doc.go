// Package font provides glyph width metrics for the Standard 14 PDF fonts.
//
// PDF producers may omit the /Widths array for Standard 14 fonts, in which
// case glyph advances must come from the built-in AFM metrics. [ForBaseFont]
// resolves a base font name to a [Metrics] table:
//
//	m := font.ForBaseFont("Helvetica")
//	w := m.GetStringWidth("Art. 5") * fontSize / 1000
//
// Widths are expressed in 1000ths of an em. Unknown characters report 500.
package font
