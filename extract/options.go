package extract

import "log/slog"

// DefaultShrinkRatio is the fraction of the annotation height removed at the
// top and at the bottom before the anchor text is read
const DefaultShrinkRatio = 0.1

// Option configures an Extractor
type Option func(*Extractor)

// WithConcurrency sets how many pages are laid out in parallel. Values below
// one mean one.
func WithConcurrency(n int) Option {
	return func(e *Extractor) {
		if n < 1 {
			n = 1
		}
		e.concurrency = n
	}
}

// WithLogger sets the logger for skipped links and page progress
func WithLogger(l *slog.Logger) Option {
	return func(e *Extractor) {
		if l != nil {
			e.logger = l
		}
	}
}

// WithTargetNormalization converts internationalized host names of link
// targets to their ASCII form
func WithTargetNormalization() Option {
	return func(e *Extractor) {
		e.normalizeTargets = true
	}
}

// WithShrinkRatio overrides DefaultShrinkRatio. Ratios outside [0, 0.5) are
// ignored.
func WithShrinkRatio(r float64) Option {
	return func(e *Extractor) {
		if r >= 0 && r < 0.5 {
			e.shrinkRatio = r
		}
	}
}
