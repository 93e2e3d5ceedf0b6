// Package model defines the records exchanged between link extraction and
// transcript resolution.
//
// # Links
//
// A [LinkAnnotation] is produced for every hyperlink annotation that carries
// a URI. It records the anchor text covered by the annotation and how many
// times that text was already rendered earlier in the document:
//
//	link := model.LinkAnnotation{
//	    Target:     "https://example.org/bgh/123",
//	    AnchorText: "BGH, Urteil vom 1. Januar 2020",
//	    Occurrence: 0,
//	}
//
// A [ResolvedLink] adds an optional [Span] into a transcript. Both types
// encode to the persisted record shape:
//
//	{"link": "...", "text": "...", "ocurrence_num": 0, "start_index": 4, "end_index": 13}
//
// start_index and end_index are omitted for unresolved links.
//
// # Geometry
//
// [Rect] and [Point] use a top-left origin with y growing downward, so "above"
// means a smaller Y.
package model
