package pipeline

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"golang.org/x/sync/errgroup"

	apperrors "autoreport/internal/errors"
	"autoreport/internal/infrastructure"
	"autoreport/internal/normalize"
	"autoreport/internal/schema"
	"autoreport/internal/summary"
	"autoreport/internal/table"
	"autoreport/pkg/contracts/domain"
)

// Status is the outcome of one pipeline stage
type Status string

const (
	StatusCompleted Status = "completed"
	StatusFailed    Status = "failed"
)

// StageResult reports how one source was normalized
type StageResult struct {
	Dataset  schema.Family `json:"dataset"`
	File     string        `json:"file"`
	Status   Status        `json:"status"`
	RawRows  int           `json:"raw_rows"`
	Rows     int           `json:"rows"`
	Dropped  int           `json:"dropped"`
	Duration time.Duration `json:"duration_ns"`
	Error    string        `json:"error,omitempty"`
}

// Result is the outcome of one run. Canonical tables are keyed by dataset.
type Result struct {
	RunID       string               `json:"run_id"`
	Fingerprint string               `json:"fingerprint"`
	StartedAt   time.Time            `json:"started_at"`
	CompletedAt time.Time            `json:"completed_at"`
	Cached      bool                 `json:"cached"`
	Stages      []StageResult        `json:"stages"`
	Market      domain.MarketSummary `json:"-"`
	VOC         domain.VOCSummary    `json:"-"`

	Listings map[schema.Family]domain.ListingTable `json:"-"`
	Comments map[schema.Family]domain.CommentTable `json:"-"`
	Reviews  map[schema.Family]domain.ReviewTable  `json:"-"`
	Errors   []error                               `json:"-"`
}

// Failed returns the stages that did not complete
func (r *Result) Failed() []StageResult {
	var failed []StageResult
	for _, s := range r.Stages {
		if s.Status == StatusFailed {
			failed = append(failed, s)
		}
	}
	return failed
}

// Datasets returns the datasets that produced a canonical table, in family
// order
func (r *Result) Datasets() []schema.Family {
	var out []schema.Family
	for _, f := range schema.Families() {
		if r.Has(f) {
			out = append(out, f)
		}
	}
	return out
}

// Has reports whether a canonical table exists for the dataset
func (r *Result) Has(f schema.Family) bool {
	if _, ok := r.Listings[f]; ok {
		return true
	}
	if _, ok := r.Comments[f]; ok {
		return true
	}
	_, ok := r.Reviews[f]
	return ok
}

// Pipeline normalizes sources and aggregates summaries
type Pipeline struct {
	aggregator summary.Aggregator
	cache      *Cache
	metrics    *infrastructure.AnalysisMetrics
	logger     *slog.Logger
	tracer     trace.Tracer
	now        func() time.Time
}

// Option configures a Pipeline
type Option func(*Pipeline)

// WithCache memoizes results in c
func WithCache(c *Cache) Option {
	return func(p *Pipeline) { p.cache = c }
}

// WithMetrics records run metrics
func WithMetrics(m *infrastructure.AnalysisMetrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// WithLogger sets the logger
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.logger = l
		}
	}
}

// WithTracer sets the tracer
func WithTracer(t trace.Tracer) Option {
	return func(p *Pipeline) {
		if t != nil {
			p.tracer = t
		}
	}
}

// WithAggregator sets the summary aggregator
func WithAggregator(a summary.Aggregator) Option {
	return func(p *Pipeline) { p.aggregator = a }
}

// WithClock sets the clock used for launch ages and timestamps
func WithClock(now func() time.Time) Option {
	return func(p *Pipeline) {
		if now != nil {
			p.now = now
		}
	}
}

// New creates a pipeline
func New(opts ...Option) *Pipeline {
	p := &Pipeline{
		logger: slog.Default(),
		tracer: otel.Tracer(infrastructure.InstrumentationName),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.aggregator.Now == nil {
		p.aggregator.Now = p.now
	}
	return p
}

// Cache returns the pipeline cache, which may be nil
func (p *Pipeline) Cache() *Cache {
	return p.cache
}

// normalized holds the output of one source
type normalized struct {
	stage    StageResult
	listings *domain.ListingTable
	comments *domain.CommentTable
	reviews  *domain.ReviewTable
	err      error
}

// Run normalizes every source concurrently and builds both summaries. A
// source that fails is reported in the result; Run itself fails only on
// invalid input or cancellation.
func (p *Pipeline) Run(ctx context.Context, sources []Source) (*Result, error) {
	if err := validateSources(sources); err != nil {
		return nil, err
	}

	fingerprint := Fingerprint(sources)
	if p.cache != nil {
		if cached, ok := p.cache.Get(fingerprint); ok {
			p.logger.InfoContext(ctx, "analysis served from cache",
				slog.String("run_id", cached.RunID),
				slog.String("fingerprint", fingerprint))
			hit := *cached
			hit.Cached = true
			return &hit, nil
		}
	}

	ctx, span := p.tracer.Start(ctx, "pipeline.run",
		trace.WithAttributes(attribute.Int("sources", len(sources))))
	defer span.End()

	result := &Result{
		RunID:       uuid.New().String(),
		Fingerprint: fingerprint,
		StartedAt:   p.now(),
		Listings:    make(map[schema.Family]domain.ListingTable),
		Comments:    make(map[schema.Family]domain.CommentTable),
		Reviews:     make(map[schema.Family]domain.ReviewTable),
	}
	span.SetAttributes(attribute.String("run_id", result.RunID))

	p.logger.InfoContext(ctx, "analysis started",
		slog.String("run_id", result.RunID),
		slog.Int("sources", len(sources)))

	outputs := make([]normalized, len(sources))
	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			outputs[i] = p.normalizeSource(gctx, src)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}
	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("analysis cancelled: %w", err)
	}

	for _, src := range schema.Families() {
		for _, out := range outputs {
			if out.stage.Dataset != src {
				continue
			}
			result.Stages = append(result.Stages, out.stage)
			switch {
			case out.err != nil:
				result.Errors = append(result.Errors, out.err)
			case out.listings != nil:
				result.Listings[src] = *out.listings
			case out.comments != nil:
				result.Comments[src] = *out.comments
			case out.reviews != nil:
				result.Reviews[src] = *out.reviews
			}
		}
	}

	p.summarize(ctx, result)
	result.CompletedAt = p.now()

	failed := len(result.Failed())
	p.metrics.RecordRun(ctx, result.CompletedAt.Sub(result.StartedAt), failed)
	if failed > 0 {
		span.SetStatus(codes.Error, fmt.Sprintf("%d source(s) failed", failed))
	}

	p.logger.InfoContext(ctx, "analysis completed",
		slog.String("run_id", result.RunID),
		slog.Int("datasets", len(result.Datasets())),
		slog.Int("failed", failed),
		slog.Duration("duration", result.CompletedAt.Sub(result.StartedAt)))

	if p.cache != nil {
		p.cache.Set(fingerprint, result)
	}
	return result, nil
}

// normalizeSource loads and normalizes one source
func (p *Pipeline) normalizeSource(ctx context.Context, src Source) normalized {
	ctx, span := p.tracer.Start(ctx, "pipeline.normalize",
		trace.WithAttributes(
			attribute.String("dataset", string(src.Dataset)),
			attribute.String("file", src.Name),
		))
	defer span.End()

	start := p.now()
	out := normalized{stage: StageResult{Dataset: src.Dataset, File: src.Name}}

	finish := func(rows int, err error) normalized {
		out.stage.Duration = p.now().Sub(start)
		out.stage.Rows = rows
		out.stage.Dropped = out.stage.RawRows - rows
		if err != nil {
			out.err = fmt.Errorf("%s: %w", src.Dataset, err)
			out.stage.Status = StatusFailed
			out.stage.Error = err.Error()
			out.stage.Dropped = 0
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			p.logger.WarnContext(ctx, "source failed",
				slog.String("dataset", string(src.Dataset)),
				slog.String("file", src.Name),
				slog.String("error", err.Error()))
		} else {
			out.stage.Status = StatusCompleted
			span.SetAttributes(attribute.Int("rows", rows), attribute.Int("dropped", out.stage.Dropped))
			p.logger.DebugContext(ctx, "source normalized",
				slog.String("dataset", string(src.Dataset)),
				slog.Int("rows", rows),
				slog.Int("dropped", out.stage.Dropped))
		}
		p.metrics.RecordSource(ctx, string(src.Dataset), rows, out.stage.Dropped, err)
		return out
	}

	raw, err := table.Read(src.Name, bytes.NewReader(src.Data))
	if err != nil {
		return finish(0, apperrors.NewParsingError(fmt.Sprintf("failed to read %s", src.Name), err))
	}
	out.stage.RawRows = raw.Len()

	opts := normalize.Options{Now: p.now}
	info := datasets[src.Dataset]
	switch info.kind {
	case kindListings:
		t, err := normalize.Listings(raw, info.platform, opts)
		if err != nil {
			return finish(0, err)
		}
		out.listings = &t
		return finish(t.Len(), nil)
	case kindComments:
		t, err := normalize.Comments(raw, info.source, opts)
		if err != nil {
			return finish(0, err)
		}
		out.comments = &t
		return finish(t.Len(), nil)
	default:
		t, err := normalize.Reviews(raw, info.platform, opts)
		if err != nil {
			return finish(0, err)
		}
		out.reviews = &t
		return finish(t.Len(), nil)
	}
}

// summarize fills the market and VOC summaries from the canonical tables
func (p *Pipeline) summarize(ctx context.Context, result *Result) {
	_, span := p.tracer.Start(ctx, "pipeline.summarize")
	defer span.End()

	var (
		listings []domain.ListingTable
		comments []domain.CommentTable
		reviews  []domain.ReviewTable
	)
	for _, f := range schema.Families() {
		if t, ok := result.Listings[f]; ok {
			listings = append(listings, t)
		}
		if t, ok := result.Comments[f]; ok {
			comments = append(comments, t)
		}
		if t, ok := result.Reviews[f]; ok {
			reviews = append(reviews, t)
		}
	}

	result.Market = p.aggregator.Market(listings...)
	result.VOC = p.aggregator.VOC(comments, reviews)

	span.SetAttributes(
		attribute.Int("listing_tables", len(listings)),
		attribute.Int("comment_tables", len(comments)),
		attribute.Int("review_tables", len(reviews)),
	)
}
