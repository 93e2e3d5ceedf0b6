package lawlinks

import (
	"log/slog"

	"github.com/iurcrowd/lawlinks/extract"
	"github.com/iurcrowd/lawlinks/resolve"
)

// Options holds configuration for extraction and resolution. It holds only
// values and shared read-only pointers, so copies are independent.
type Options struct {
	// Extraction
	concurrency      int
	normalizeTargets bool
	shrinkRatio      float64

	// Resolution
	caseInsensitive bool

	logger *slog.Logger
}

// defaultOptions returns the default options.
func defaultOptions() Options {
	return Options{
		concurrency: 1,
		shrinkRatio: extract.DefaultShrinkRatio,
	}
}

func (o Options) extractOptions() []extract.Option {
	opts := []extract.Option{
		extract.WithConcurrency(o.concurrency),
		extract.WithShrinkRatio(o.shrinkRatio),
		extract.WithLogger(o.logger),
	}
	if o.normalizeTargets {
		opts = append(opts, extract.WithTargetNormalization())
	}
	return opts
}

func (o Options) resolveOptions() []resolve.Option {
	opts := []resolve.Option{resolve.WithLogger(o.logger)}
	if o.caseInsensitive {
		opts = append(opts, resolve.WithCaseInsensitive())
	}
	return opts
}
