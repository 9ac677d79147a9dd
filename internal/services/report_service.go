package services

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"autoreport/internal/config"
	apperrors "autoreport/internal/errors"
	"autoreport/internal/exporter"
	"autoreport/internal/files"
	"autoreport/internal/pipeline"
	"autoreport/internal/schema"
	"autoreport/internal/validation"
	"autoreport/pkg/contracts/domain"
)

// Upload is one uploaded source file
type Upload struct {
	Dataset string
	Name    string
	Data    []byte
}

// RowsPage is one page of a canonical table
type RowsPage struct {
	Dataset    schema.Family `json:"dataset"`
	RunID      string        `json:"run_id"`
	Fields     []string      `json:"fields"`
	Page       int           `json:"page"`
	PerPage    int           `json:"per_page"`
	Total      int           `json:"total"`
	TotalPages int           `json:"total_pages"`
	Rows       interface{}   `json:"rows"`
}

// InvalidateResult reports what a cache invalidation removed
type InvalidateResult struct {
	Cleared       int  `json:"cleared"`
	LatestCleared bool `json:"latest_cleared"`
}

// ReportServiceConfig tunes a ReportService
type ReportServiceConfig struct {
	// RunTimeout bounds one pipeline run
	RunTimeout time.Duration
	// UploadRetention is the number of archived upload runs kept on disk
	UploadRetention int
	// ExportResults writes summaries and canonical CSVs after every run
	ExportResults bool
}

// ReportServiceConfigFrom derives the service settings from the application
// configuration
func ReportServiceConfigFrom(cfg *config.Config) ReportServiceConfig {
	return ReportServiceConfig{
		RunTimeout:      cfg.Analysis.RunTimeout,
		UploadRetention: config.DefaultUploadRetention,
		ExportResults:   true,
	}
}

// ReportService runs analyses and serves their results
type ReportService struct {
	pipeline  *pipeline.Pipeline
	validator *validation.FileValidator
	exporter  *exporter.Exporter
	files     *files.Manager
	cfg       ReportServiceConfig
	logger    *slog.Logger

	mu     sync.RWMutex
	latest *pipeline.Result
}

// NewReportService creates a report service. The exporter and file manager
// are optional; without them results are kept in memory only.
func NewReportService(p *pipeline.Pipeline, validator *validation.FileValidator, exp *exporter.Exporter, fm *files.Manager, cfg ReportServiceConfig, logger *slog.Logger) *ReportService {
	if logger == nil {
		logger = slog.Default()
	}
	if cfg.RunTimeout <= 0 {
		cfg.RunTimeout = config.DefaultRunTimeout
	}

	logger.Info("ReportService initialized",
		slog.Duration("run_timeout", cfg.RunTimeout),
		slog.Bool("export_results", cfg.ExportResults && exp != nil),
		slog.Bool("archive_uploads", fm != nil))

	return &ReportService{
		pipeline:  p,
		validator: validator,
		exporter:  exp,
		files:     fm,
		cfg:       cfg,
		logger:    logger.With(slog.String("service", "report")),
	}
}

// Analyze validates uploaded files and runs the pipeline on them
func (s *ReportService) Analyze(ctx context.Context, uploads []Upload) (*pipeline.Result, error) {
	if len(uploads) == 0 {
		return nil, ErrNoSources
	}

	sources := make([]pipeline.Source, 0, len(uploads))
	for _, u := range uploads {
		dataset, err := pipeline.ParseDataset(u.Dataset)
		if err != nil {
			return nil, apperrors.NewAppValidationError(fmt.Sprintf("unknown dataset %q", u.Dataset)).
				WithContext("dataset", u.Dataset)
		}
		if err := s.validator.ValidateUpload(u.Name, int64(len(u.Data))); err != nil {
			return nil, err
		}
		sources = append(sources, pipeline.Source{Dataset: dataset, Name: u.Name, Data: u.Data})
	}

	result, err := s.run(ctx, sources)
	if err != nil {
		return nil, err
	}

	if s.files != nil && !result.Cached {
		s.archive(ctx, result.RunID, uploads)
	}
	return result, nil
}

// AnalyzeFiles runs the pipeline on files already on disk
func (s *ReportService) AnalyzeFiles(ctx context.Context, paths map[schema.Family]string) (*pipeline.Result, error) {
	if len(paths) == 0 {
		return nil, ErrNoSources
	}

	sources := make([]pipeline.Source, 0, len(paths))
	for _, f := range schema.Families() {
		path, ok := paths[f]
		if !ok {
			continue
		}
		if err := s.validator.ValidateSourceFile(path); err != nil {
			return nil, err
		}
		src, err := pipeline.SourceFromFile(f, path)
		if err != nil {
			return nil, err
		}
		sources = append(sources, src)
	}
	if len(sources) != len(paths) {
		return nil, apperrors.NewAppValidationError("unknown dataset in source list")
	}

	return s.run(ctx, sources)
}

// run executes the pipeline under the run timeout. When every source
// failed the first source error is returned so a single bad upload surfaces
// as its own error.
func (s *ReportService) run(ctx context.Context, sources []pipeline.Source) (*pipeline.Result, error) {
	ctx, cancel := context.WithTimeout(ctx, s.cfg.RunTimeout)
	defer cancel()

	result, err := s.pipeline.Run(ctx, sources)
	if err != nil {
		s.logger.ErrorContext(ctx, "Analysis failed", slog.String("error", err.Error()))
		return nil, err
	}

	if len(result.Datasets()) == 0 && len(result.Errors) > 0 {
		s.logger.WarnContext(ctx, "Every source failed",
			slog.String("run_id", result.RunID),
			slog.Int("sources", len(sources)))
		return nil, result.Errors[0]
	}

	s.mu.Lock()
	s.latest = result
	s.mu.Unlock()

	if s.cfg.ExportResults && s.exporter != nil {
		if _, err := s.exporter.Export(result); err != nil {
			s.logger.WarnContext(ctx, "Failed to export analysis results",
				slog.String("run_id", result.RunID),
				slog.String("error", err.Error()))
		}
	}

	s.logger.InfoContext(ctx, "Analysis completed",
		slog.String("run_id", result.RunID),
		slog.Bool("cached", result.Cached),
		slog.Int("datasets", len(result.Datasets())),
		slog.Int("failed", len(result.Failed())))

	return result, nil
}

func (s *ReportService) archive(ctx context.Context, runID string, uploads []Upload) {
	for _, u := range uploads {
		if _, err := s.files.SaveUpload(runID, u.Dataset+"_"+u.Name, u.Data); err != nil {
			s.logger.WarnContext(ctx, "Failed to archive upload",
				slog.String("file", u.Name),
				slog.String("error", err.Error()))
		}
	}
	if s.cfg.UploadRetention > 0 {
		if _, err := s.files.PruneUploads(s.cfg.UploadRetention); err != nil {
			s.logger.WarnContext(ctx, "Failed to prune upload archive", slog.String("error", err.Error()))
		}
	}
}

// Latest returns the most recent successful result
func (s *ReportService) Latest() (*pipeline.Result, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.latest, s.latest != nil
}

// MarketSummary returns the market summary of the latest run
func (s *ReportService) MarketSummary(ctx context.Context) (domain.MarketSummary, error) {
	result, ok := s.Latest()
	if !ok {
		return domain.MarketSummary{}, ErrNoAnalysis
	}
	return result.Market, nil
}

// VOCSummary returns the voice-of-customer summary of the latest run
func (s *ReportService) VOCSummary(ctx context.Context) (domain.VOCSummary, error) {
	result, ok := s.Latest()
	if !ok {
		return domain.VOCSummary{}, ErrNoAnalysis
	}
	return result.VOC, nil
}

// Rows returns one page of a canonical table from the latest run
func (s *ReportService) Rows(ctx context.Context, dataset string, page validation.PageRequest) (*RowsPage, error) {
	f, err := pipeline.ParseDataset(dataset)
	if err != nil {
		return nil, err
	}

	result, ok := s.Latest()
	if !ok {
		return nil, ErrNoAnalysis
	}
	if !result.Has(f) {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("dataset %q in run %s", f, result.RunID))
	}

	out := &RowsPage{
		Dataset: f,
		RunID:   result.RunID,
		Page:    page.Page,
		PerPage: page.PerPage,
	}

	if t, ok := result.Listings[f]; ok {
		out.Fields, out.Total = fieldNames(t.Fields), len(t.Rows)
		out.Rows = paginate(t.Rows, page)
	} else if t, ok := result.Comments[f]; ok {
		out.Fields, out.Total = fieldNames(t.Fields), len(t.Rows)
		out.Rows = paginate(t.Rows, page)
	} else {
		t := result.Reviews[f]
		out.Fields, out.Total = fieldNames(t.Fields), len(t.Rows)
		out.Rows = paginate(t.Rows, page)
	}

	if page.PerPage > 0 {
		out.TotalPages = (out.Total + page.PerPage - 1) / page.PerPage
	}
	return out, nil
}

// InvalidateCache drops memoized runs. An empty fingerprint clears the whole
// cache and the latest result; otherwise only that run is dropped, and the
// latest result only when it came from that run.
func (s *ReportService) InvalidateCache(ctx context.Context, fingerprint string) InvalidateResult {
	var res InvalidateResult
	if c := s.pipeline.Cache(); c != nil {
		if fingerprint == "" {
			res.Cleared = c.Clear()
		} else if c.Invalidate(fingerprint) {
			res.Cleared = 1
		}
	}

	s.mu.Lock()
	if s.latest != nil && (fingerprint == "" || s.latest.Fingerprint == fingerprint) {
		res.LatestCleared = true
		s.latest = nil
	}
	s.mu.Unlock()

	s.logger.InfoContext(ctx, "Analysis cache invalidated",
		slog.String("fingerprint", fingerprint),
		slog.Int("cleared", res.Cleared),
		slog.Bool("latest_cleared", res.LatestCleared))

	return res
}

// CacheStats returns the pipeline cache statistics, if a cache is configured
func (s *ReportService) CacheStats() (pipeline.CacheStats, bool) {
	c := s.pipeline.Cache()
	if c == nil {
		return pipeline.CacheStats{}, false
	}
	return c.Stats(), true
}

func paginate[T any](rows []T, page validation.PageRequest) []T {
	start := page.Offset()
	if start >= len(rows) {
		return []T{}
	}
	end := start + page.PerPage
	if end > len(rows) {
		end = len(rows)
	}
	return rows[start:end]
}

func fieldNames(fs domain.FieldSet) []string {
	names := make([]string, 0, len(fs))
	for name, ok := range fs {
		if ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names
}
