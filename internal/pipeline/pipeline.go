// Package pipeline links the lower-court references of a decision to the
// URLs the conversion service annotates them with.
//
// For each queue event the pipeline loads the document, renders its
// vorinstanzen reference to PDF, has the conversion service add link
// annotations, extracts and resolves the links against the reference text,
// and merges the result into the document's lawlinks file in the segmented
// and output buckets.
package pipeline

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/iurcrowd/lawlinks/extract"
	"github.com/iurcrowd/lawlinks/internal/config"
	"github.com/iurcrowd/lawlinks/internal/convert"
	"github.com/iurcrowd/lawlinks/internal/intake"
	"github.com/iurcrowd/lawlinks/internal/logging"
	"github.com/iurcrowd/lawlinks/internal/store"
	"github.com/iurcrowd/lawlinks/model"
	"github.com/iurcrowd/lawlinks/reader"
	"github.com/iurcrowd/lawlinks/resolve"
)

// Response bodies
const (
	BodyDone             = "Done"
	BodyDocumentNotFound = "document store did not find given document id"
	BodyReferenceMissing = "vorinstanzen_reference does not exist in this document"
	BodyConversionFailed = "PDF conversion failed"
	BodyInvalidEvent     = "event does not name a document"
)

// Response is the result of handling one event
type Response struct {
	StatusCode int    `json:"statusCode"`
	Body       string `json:"body"`
}

// Converter turns a rendered reference into a PDF with link annotations
type Converter interface {
	Convert(ctx context.Context, pdf []byte) ([]byte, error)
}

// Pipeline handles the events of one stage
type Pipeline struct {
	stage     config.Stage
	cfg       *config.Config
	documents store.DocumentStore
	objects   store.ObjectStore
	converter Converter
	extractor *extract.Extractor
	resolver  *resolve.Resolver
	logger    *slog.Logger
}

// New creates a pipeline for stage
func New(stage config.Stage, cfg *config.Config, stores *store.Stores, converter Converter, logger *slog.Logger) *Pipeline {
	logger = logging.OrDiscard(logger).With("stage", string(stage))

	extractOpts := []extract.Option{
		extract.WithConcurrency(cfg.Extract.Concurrency),
		extract.WithLogger(logger),
	}
	if cfg.Extract.NormalizeTargets {
		extractOpts = append(extractOpts, extract.WithTargetNormalization())
	}
	resolveOpts := []resolve.Option{resolve.WithLogger(logger)}
	if cfg.Resolve.CaseInsensitive {
		resolveOpts = append(resolveOpts, resolve.WithCaseInsensitive())
	}

	return &Pipeline{
		stage:     stage,
		cfg:       cfg,
		documents: stores.Documents,
		objects:   stores.Objects,
		converter: converter,
		extractor: extract.New(extractOpts...),
		resolver:  resolve.New(resolveOpts...),
		logger:    logger,
	}
}

// StageForARN returns the stage an invocation runs in. ARNs naming no stage
// run in dev.
func StageForARN(arn string) config.Stage {
	if stage, ok := intake.StageFromARN(arn); ok {
		return stage
	}
	return config.StageDev
}

// Handle processes one queue event. Client-side problems (unknown document,
// missing reference, failed conversion) are reported with status 400. Errors
// are returned for failures that should be retried.
func (p *Pipeline) Handle(ctx context.Context, event []byte, arn string) (Response, error) {
	if stage := StageForARN(arn); stage != p.stage {
		return Response{}, fmt.Errorf("pipeline runs in %s, invoked as %s", p.stage, stage)
	}

	id, err := intake.DocumentID(event)
	if err != nil {
		p.logger.Warn("rejecting event", "error", err)
		return Response{StatusCode: http.StatusBadRequest, Body: BodyInvalidEvent}, nil
	}
	logger := p.logger.With("doc_id", id)

	doc, err := p.documents.Document(ctx, id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			logger.Warn("document not found")
			return Response{StatusCode: http.StatusBadRequest, Body: BodyDocumentNotFound}, nil
		}
		return Response{}, fmt.Errorf("load document %s: %w", id, err)
	}

	ref, ok := doc.Reference()
	if !ok {
		logger.Warn("document has no vorinstanzen reference")
		return Response{StatusCode: http.StatusBadRequest, Body: BodyReferenceMissing}, nil
	}
	logger.Debug("loaded reference", "reference", ref)

	input, err := convert.RenderReference(ref)
	if err != nil {
		return Response{}, fmt.Errorf("document %s: %w", id, err)
	}

	converted, err := p.converter.Convert(ctx, input)
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return Response{}, ctxErr
		}
		logger.Error("pdf conversion failed", "error", err)
		return Response{StatusCode: http.StatusBadRequest, Body: BodyConversionFailed}, nil
	}

	links, err := p.links(ctx, converted)
	if err != nil {
		return Response{}, fmt.Errorf("document %s: %w", id, err)
	}

	resolved, stats := p.resolver.Resolve(ref, links)
	logger.Info("resolved links",
		"total", stats.Total,
		"resolved", stats.Resolved,
		"degraded", stats.Degraded,
		"unresolved", stats.Unresolved)

	for _, bucket := range []string{p.cfg.SegmentedBucket, p.cfg.OutputBucket} {
		if err := p.store(ctx, bucket, id, resolved); err != nil {
			return Response{}, fmt.Errorf("document %s: %w", id, err)
		}
	}

	return Response{StatusCode: http.StatusOK, Body: BodyDone}, nil
}

func (p *Pipeline) links(ctx context.Context, pdf []byte) ([]model.LinkAnnotation, error) {
	r, err := reader.NewReader(bytes.NewReader(pdf), int64(len(pdf)))
	if err != nil {
		return nil, &extract.DecodeError{Page: -1, Err: err}
	}
	defer r.Close()
	return p.extractor.Extract(ctx, r)
}

// store merges links into the lawlinks file of id in bucket
func (p *Pipeline) store(ctx context.Context, bucket, id string, links []model.ResolvedLink) error {
	key := lawlinksKey(id)

	existing, err := p.objects.Get(ctx, bucket, key)
	if err != nil && !errors.Is(err, store.ErrNotFound) {
		return fmt.Errorf("load %s/%s: %w", bucket, key, err)
	}

	merged, err := mergeVorinstanzen(existing, links)
	if err != nil {
		return fmt.Errorf("merge %s/%s: %w", bucket, key, err)
	}

	if err := p.objects.Put(ctx, bucket, key, merged); err != nil {
		return fmt.Errorf("store %s/%s: %w", bucket, key, err)
	}
	p.logger.Debug("stored lawlinks", "doc_id", id, "bucket", bucket, "key", key)
	return nil
}
