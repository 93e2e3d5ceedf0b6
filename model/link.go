package model

import "encoding/json"

// LinkAnnotation is one hyperlink annotation found on a rendered page.
type LinkAnnotation struct {
	// Target is the URI the annotation points to. Never empty.
	Target string

	// AnchorText is the whitespace-collapsed text visually covered by the
	// annotation rectangle.
	AnchorText string

	// Occurrence counts how often AnchorText appeared in the document text
	// rendered before the annotation (0 for the first appearance).
	Occurrence int

	// Page is the 0-based page index the annotation was found on.
	Page int

	// Rect is the annotation rectangle in page space.
	Rect Rect
}

// Span is a character range inside a transcript. Offsets count Unicode
// code points; End is exclusive.
type Span struct {
	Start int
	End   int
}

// Len returns the number of characters covered by the span
func (s Span) Len() int {
	return s.End - s.Start
}

// ResolvedLink is a LinkAnnotation with its position in a transcript.
type ResolvedLink struct {
	LinkAnnotation

	// Span is nil when the anchor text never matched the transcript.
	Span *Span

	// Degraded is set when Occurrence exceeded the number of matches and the
	// last match was used instead.
	Degraded bool
}

// IsResolved reports whether a span was assigned
func (l ResolvedLink) IsResolved() bool {
	return l.Span != nil
}

// linkRecord is the persisted shape consumed by the lawlinks readers.
// The "ocurrence_num" spelling is part of that format.
type linkRecord struct {
	Link       string `json:"link"`
	Text       string `json:"text"`
	Occurrence int    `json:"ocurrence_num"`
	StartIndex *int   `json:"start_index,omitempty"`
	EndIndex   *int   `json:"end_index,omitempty"`
}

// MarshalJSON encodes the annotation in the persisted record shape
func (a LinkAnnotation) MarshalJSON() ([]byte, error) {
	return json.Marshal(linkRecord{
		Link:       a.Target,
		Text:       a.AnchorText,
		Occurrence: a.Occurrence,
	})
}

// UnmarshalJSON decodes a persisted record. Page and Rect are not persisted.
func (a *LinkAnnotation) UnmarshalJSON(data []byte) error {
	var rec linkRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*a = LinkAnnotation{
		Target:     rec.Link,
		AnchorText: rec.Text,
		Occurrence: rec.Occurrence,
	}
	return nil
}

// MarshalJSON encodes the link with optional start/end offsets
func (l ResolvedLink) MarshalJSON() ([]byte, error) {
	rec := linkRecord{
		Link:       l.Target,
		Text:       l.AnchorText,
		Occurrence: l.Occurrence,
	}
	if l.Span != nil {
		start, end := l.Span.Start, l.Span.End
		rec.StartIndex = &start
		rec.EndIndex = &end
	}
	return json.Marshal(rec)
}

// UnmarshalJSON decodes a persisted record, restoring the span when both
// offsets are present.
func (l *ResolvedLink) UnmarshalJSON(data []byte) error {
	var rec linkRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return err
	}
	*l = ResolvedLink{
		LinkAnnotation: LinkAnnotation{
			Target:     rec.Link,
			AnchorText: rec.Text,
			Occurrence: rec.Occurrence,
		},
	}
	if rec.StartIndex != nil && rec.EndIndex != nil {
		l.Span = &Span{Start: *rec.StartIndex, End: *rec.EndIndex}
	}
	return nil
}
