package app

import (
	"log/slog"

	"autoreport/internal/config"
	"autoreport/internal/exporter"
	"autoreport/internal/files"
	"autoreport/internal/infrastructure"
	"autoreport/internal/pipeline"
	"autoreport/internal/services"
	"autoreport/internal/stats"
	"autoreport/internal/summary"
	"autoreport/internal/validation"
	"autoreport/internal/voc"
)

// NewPipeline builds the analysis pipeline from the configuration. providers
// and metrics may be nil.
func NewPipeline(cfg *config.Config, providers *infrastructure.OTelProviders, metrics *infrastructure.AnalysisMetrics, logger *slog.Logger) *pipeline.Pipeline {
	opts := []pipeline.Option{
		pipeline.WithLogger(logger),
		pipeline.WithMetrics(metrics),
		pipeline.WithAggregator(summary.Aggregator{
			Stats:      stats.Options{NumBands: cfg.Analysis.NumPriceBands},
			Classifier: voc.NewDefaultClassifier(),
		}),
	}
	if cfg.Analysis.CacheMaxEntries > 0 {
		opts = append(opts, pipeline.WithCache(
			pipeline.NewCache(cfg.Analysis.CacheTTL, cfg.Analysis.CacheMaxEntries, metrics)))
	}
	if providers != nil {
		opts = append(opts, pipeline.WithTracer(providers.Tracer))
	}
	return pipeline.New(opts...)
}

// NewReportService builds the report service with its pipeline, exporter and
// upload archive
func NewReportService(cfg *config.Config, paths *config.Paths, providers *infrastructure.OTelProviders, metrics *infrastructure.AnalysisMetrics, logger *slog.Logger) *services.ReportService {
	return services.NewReportService(
		NewPipeline(cfg, providers, metrics, logger),
		validation.NewFileValidator(logger, cfg.MaxUploadBytes()),
		exporter.NewExporter(paths, logger),
		files.NewManager(paths, logger),
		services.ReportServiceConfigFrom(cfg),
		logger,
	)
}
