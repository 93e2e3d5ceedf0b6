package resolve

import (
	"log/slog"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/iurcrowd/lawlinks/internal/logging"
	"github.com/iurcrowd/lawlinks/model"
	"github.com/iurcrowd/lawlinks/normalize"
)

// Stats summarizes one Resolve call
type Stats struct {
	Total int

	// Resolved counts links with a span, degraded ones included
	Resolved int

	// Degraded counts links whose occurrence was out of range and that fell
	// back to the last match
	Degraded int

	// Unresolved counts links without any match
	Unresolved int
}

// Option configures a Resolver
type Option func(*Resolver)

// WithCaseInsensitive makes anchor matching ignore case
func WithCaseInsensitive() Option {
	return func(r *Resolver) {
		r.caseInsensitive = true
	}
}

// WithLogger sets the logger for degraded and unresolved links
func WithLogger(l *slog.Logger) Option {
	return func(r *Resolver) {
		if l != nil {
			r.logger = l
		}
	}
}

// Resolver locates link anchors inside a transcript. It keeps no state
// between calls and is safe for concurrent use.
type Resolver struct {
	caseInsensitive bool
	logger          *slog.Logger
}

// New creates a Resolver
func New(opts ...Option) *Resolver {
	r := &Resolver{logger: logging.Discard()}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

// Resolve locates each link with the default Resolver
func Resolve(transcript string, links []model.LinkAnnotation) []model.ResolvedLink {
	out, _ := New().Resolve(transcript, links)
	return out
}

// Resolve returns one ResolvedLink per input link, in input order. For each
// link all non-overlapping matches of its anchor pattern are collected left
// to right; the match at the link's occurrence index is used, or the last
// match when the index is out of range. Links without any match, and links
// with empty anchor text, keep a nil Span.
func (r *Resolver) Resolve(transcript string, links []model.LinkAnnotation) ([]model.ResolvedLink, Stats) {
	out := make([]model.ResolvedLink, len(links))
	stats := Stats{Total: len(links)}
	patterns := make(map[string]*regexp.Regexp)
	normalized := lazyNormalized{src: transcript}

	for i, link := range links {
		out[i] = model.ResolvedLink{LinkAnnotation: link}

		re, err := r.pattern(patterns, link.AnchorText)
		if err != nil {
			r.logger.Warn("invalid anchor pattern", "link", link.Target, "anchor", link.AnchorText, "error", err)
			stats.Unresolved++
			continue
		}
		if re == nil {
			stats.Unresolved++
			continue
		}

		matches := re.FindAllStringIndex(transcript, -1)
		if len(matches) == 0 {
			r.logger.Info("anchor not found in transcript",
				"link", link.Target,
				"anchor", link.AnchorText,
				"normalized_match", normalized.contains(link.AnchorText))
			stats.Unresolved++
			continue
		}

		idx := link.Occurrence
		if idx < 0 || idx >= len(matches) {
			r.logger.Warn("occurrence out of range, using last match",
				"link", link.Target,
				"anchor", link.AnchorText,
				"occurrence", link.Occurrence,
				"matches", len(matches))
			idx = len(matches) - 1
			out[i].Degraded = true
			stats.Degraded++
		}

		var offsets runeOffsets
		m := matches[idx]
		out[i].Span = &model.Span{
			Start: offsets.at(transcript, m[0]),
			End:   offsets.at(transcript, m[1]),
		}
		stats.Resolved++
	}

	return out, stats
}

// pattern returns the compiled pattern for anchor, or nil for an empty anchor
func (r *Resolver) pattern(cache map[string]*regexp.Regexp, anchor string) (*regexp.Regexp, error) {
	if anchor == "" {
		return nil, nil
	}
	if re, ok := cache[anchor]; ok {
		return re, nil
	}
	re, err := compile(anchor, r.caseInsensitive)
	if err != nil {
		return nil, err
	}
	cache[anchor] = re
	return re, nil
}

// lazyNormalized normalizes a transcript on first use. It tells apart
// anchors that differ from the transcript only by case or spacing.
type lazyNormalized struct {
	src  string
	text string
	done bool
}

func (n *lazyNormalized) contains(anchor string) bool {
	if !n.done {
		n.text = normalize.Text(n.src)
		n.done = true
	}
	return strings.Contains(n.text, normalize.Text(anchor))
}

// runeOffsets converts increasing byte offsets of one string to code point
// offsets
type runeOffsets struct {
	byteOff int
	runeOff int
}

func (o *runeOffsets) at(s string, b int) int {
	if b < o.byteOff {
		o.byteOff, o.runeOff = 0, 0
	}
	o.runeOff += utf8.RuneCountInString(s[o.byteOff:b])
	o.byteOff = b
	return o.runeOff
}
