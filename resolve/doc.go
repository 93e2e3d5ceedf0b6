// Package resolve maps link annotations onto character spans of a
// transcript.
//
// The anchor text of each link is compiled into a tolerant pattern (see
// [Pattern]): spaces match any run of whitespace, possibly empty, and
// hyphens match a hyphen or a single whitespace character, so line wrapping
// and hyphenation in the transcript do not prevent a match.
//
// The link's occurrence selects among the matches. When it is larger than
// the number of matches, the last match is used and the result is flagged
// as degraded:
//
//	resolved, stats := resolve.New(resolve.WithLogger(logger)).Resolve(transcript, links)
//	for _, l := range resolved {
//	    if l.Span == nil {
//	        continue // anchor not in transcript
//	    }
//	}
//
// Span offsets count Unicode code points, not bytes.
package resolve
