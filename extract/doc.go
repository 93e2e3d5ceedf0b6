// Package extract finds the hyperlink annotations of a rendered PDF together
// with the text they cover.
//
// For every /Link annotation carrying a URI, the extractor records:
//
//   - the target URI
//   - the anchor text: the text inside the annotation rectangle, shrunk by
//     10% of its height at the top and at the bottom, with whitespace
//     collapsed to single spaces
//   - the occurrence: how many times the anchor text appears, literally and
//     without overlaps, in the text rendered before the annotation
//
// "Rendered before" means the full text of all earlier pages, then the text
// above the annotation on its own page, then the text left of it within its
// vertical band. A resolver can use the occurrence to pick the right match
// when the same anchor text appears several times in a transcript.
//
// Basic usage:
//
//	links, err := extract.File(ctx, "converted.pdf")
//	if errors.Is(err, extract.ErrDecode) {
//	    // the pdf could not be read
//	}
//
// Pages can be decoded in parallel with [WithConcurrency]. Occurrences are
// always counted in page order afterwards.
package extract
