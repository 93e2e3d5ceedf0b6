// Package reader provides page-level access to PDF documents.
//
// It wraps github.com/ledongthuc/pdf and converts its output into the
// top-left page space used throughout this module.
//
// # Opening PDF Files
//
// Use [Open] to open a PDF file for reading:
//
//	r, err := reader.Open("document.pdf")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer r.Close()
//
// Or use [NewReader] with any io.ReaderAt, or [FromBytes].
//
// # Page Access
//
// Pages are addressed by 0-based index:
//
//	page, err := r.Page(0)
//	links, err := page.Links()
//	glyphs, err := page.Glyphs()
//
// [Page.Links] returns /Link annotations in /Annots order, resolving the
// target URI either from the annotation itself or from its URI action.
// [Page.Glyphs] returns positioned glyphs; fonts without a /Widths array get
// their advances from the Standard 14 metrics.
//
// # Errors
//
// The underlying parser panics on malformed input. Every exported method
// recovers such panics and returns them as errors.
package reader
