package extract

import (
	"context"
	"log/slog"
	"net/url"
	"strings"

	"golang.org/x/net/idna"
	"golang.org/x/sync/errgroup"

	"github.com/iurcrowd/lawlinks/internal/logging"
	"github.com/iurcrowd/lawlinks/model"
	"github.com/iurcrowd/lawlinks/reader"
	"github.com/iurcrowd/lawlinks/text"
)

// Document is a paginated PDF. *reader.Reader implements it.
type Document interface {
	PageCount() (int, error)
	Page(index int) (*reader.Page, error)
}

// Extractor finds link annotations and their anchor text occurrences
type Extractor struct {
	concurrency      int
	shrinkRatio      float64
	normalizeTargets bool
	logger           *slog.Logger
}

// New creates an Extractor
func New(opts ...Option) *Extractor {
	e := &Extractor{
		concurrency: 1,
		shrinkRatio: DefaultShrinkRatio,
		logger:      logging.Discard(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// File extracts the link annotations of the PDF at path
func File(ctx context.Context, path string, opts ...Option) ([]model.LinkAnnotation, error) {
	r, err := reader.Open(path)
	if err != nil {
		return nil, &DecodeError{Page: -1, Err: err}
	}
	defer r.Close()
	return New(opts...).Extract(ctx, r)
}

// Bytes extracts the link annotations of an in-memory PDF
func Bytes(ctx context.Context, data []byte, opts ...Option) ([]model.LinkAnnotation, error) {
	r, err := reader.FromBytes(data)
	if err != nil {
		return nil, &DecodeError{Page: -1, Err: err}
	}
	defer r.Close()
	return New(opts...).Extract(ctx, r)
}

// pageLayout is everything the occurrence fold needs from one page
type pageLayout struct {
	index  int
	bounds model.Rect
	links  []reader.Link
	layout *text.Layout
	text   string
}

// pageTextContext is the text of the pages already folded over
type pageTextContext struct {
	prior string
}

func (c pageTextContext) with(pageText string) pageTextContext {
	return pageTextContext{prior: c.prior + pageText}
}

// before returns the document text rendered ahead of a link, given the text
// above it and the text left of it on its own page
func (c pageTextContext) before(above, left string) string {
	return c.prior + above + left
}

// Extract returns the link annotations of doc in page order, then in
// /Annots order within a page. Annotations without a URI are skipped. Any
// decode failure aborts the whole document.
func (e *Extractor) Extract(ctx context.Context, doc Document) ([]model.LinkAnnotation, error) {
	count, err := doc.PageCount()
	if err != nil {
		return nil, &DecodeError{Page: -1, Err: err}
	}

	pages, err := e.layoutPages(ctx, doc, count)
	if err != nil {
		return nil, err
	}

	var (
		acc   pageTextContext
		links []model.LinkAnnotation
	)
	for _, p := range pages {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		links = append(links, e.annotate(p, acc)...)
		acc = acc.with(p.text)
	}

	e.logger.Debug("extracted links", "pages", count, "links", len(links))
	return links, nil
}

// layoutPages decodes every page, up to e.concurrency at a time
func (e *Extractor) layoutPages(ctx context.Context, doc Document, count int) ([]*pageLayout, error) {
	pages := make([]*pageLayout, count)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.concurrency)

	for i := 0; i < count; i++ {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			p, err := loadPage(doc, i)
			if err != nil {
				return err
			}
			pages[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, ctxErr
		}
		return nil, err
	}
	return pages, nil
}

func loadPage(doc Document, index int) (*pageLayout, error) {
	page, err := doc.Page(index)
	if err != nil {
		return nil, &DecodeError{Page: index, Err: err}
	}
	links, err := page.Links()
	if err != nil {
		return nil, &DecodeError{Page: index, Err: err}
	}
	glyphs, err := page.Glyphs()
	if err != nil {
		return nil, &DecodeError{Page: index, Err: err}
	}

	layout := text.NewLayout(glyphs)
	return &pageLayout{
		index:  index,
		bounds: page.Bounds(),
		links:  links,
		layout: layout,
		text:   layout.Text(),
	}, nil
}

// annotate builds the annotations of one page against the text seen so far
func (e *Extractor) annotate(p *pageLayout, acc pageTextContext) []model.LinkAnnotation {
	var out []model.LinkAnnotation

	for _, link := range p.links {
		if link.URI == "" {
			e.logger.Debug("skipping link without uri", "page", p.index)
			continue
		}

		inner := link.Rect.ShrinkVertical(link.Rect.Height() * e.shrinkRatio)
		anchor := p.layout.Box(inner)

		before := acc.before(
			p.layout.Clip(link.Rect.Above(p.bounds)),
			p.layout.Clip(link.Rect.LeftOf(p.bounds)),
		)

		target := link.URI
		if e.normalizeTargets {
			target = e.normalizeTarget(target)
		}

		a := model.LinkAnnotation{
			Target:     target,
			AnchorText: anchor,
			Occurrence: countOccurrences(before, anchor),
			Page:       p.index,
			Rect:       link.Rect,
		}
		e.logger.Debug("found link",
			"page", p.index,
			"link", a.Target,
			"anchor", a.AnchorText,
			"occurrence", a.Occurrence)
		out = append(out, a)
	}

	return out
}

// countOccurrences counts non-overlapping occurrences of anchor in s.
// An empty anchor occurs zero times.
func countOccurrences(s, anchor string) int {
	if anchor == "" {
		return 0
	}
	return strings.Count(s, anchor)
}

// normalizeTarget converts the host of target to ASCII. Targets that do not
// parse are returned unchanged.
func (e *Extractor) normalizeTarget(target string) string {
	u, err := url.Parse(target)
	if err != nil || u.Host == "" {
		return target
	}

	host := u.Hostname()
	ascii, err := idna.Lookup.ToASCII(host)
	if err != nil {
		e.logger.Warn("keeping link target host", "link", target, "error", err)
		return target
	}
	if ascii == host {
		return target
	}

	if port := u.Port(); port != "" {
		u.Host = ascii + ":" + port
	} else {
		u.Host = ascii
	}
	return u.String()
}
