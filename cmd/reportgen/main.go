package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"autoreport/internal/app"
	"autoreport/internal/config"
	"autoreport/internal/exporter"
	"autoreport/internal/files"
	"autoreport/internal/infrastructure"
	"autoreport/internal/pipeline"
	"autoreport/internal/schema"
	"autoreport/internal/services"
	"autoreport/internal/validation"
)

func main() {
	inDir := flag.String("in", "", "directory to discover export files in by file name")
	outDir := flag.String("out", "", "output directory for summaries and canonical CSVs (defaults to the configured output dir)")

	explicit := make(map[schema.Family]*string, len(schema.Families()))
	for _, f := range schema.Families() {
		explicit[f] = flag.String(flagName(f), "", fmt.Sprintf("path to the %s export (csv/xlsx)", f))
	}
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		slog.Warn("Failed to load config, using defaults", "error", err)
		cfg = config.Default()
	}
	if *outDir != "" {
		cfg.Paths.OutputDir = *outDir
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		slog.Warn("Failed to initialize logger, using default", "error", err)
		logger = slog.Default()
	}
	defer infrastructure.CloseLogFile()

	paths, err := cfg.ResolvePaths()
	if err != nil {
		logger.Error("Failed to resolve paths", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if err := paths.EnsureDirectories(); err != nil {
		logger.Error("Failed to create required directories", slog.String("error", err.Error()))
		os.Exit(1)
	}

	sources, err := collectSources(*inDir, explicit, paths, logger)
	if err != nil {
		logger.Error("Failed to collect source files", slog.String("error", err.Error()))
		os.Exit(1)
	}
	if len(sources) == 0 {
		logger.Error("No source files given; use -in or one of the dataset flags")
		flag.Usage()
		os.Exit(2)
	}

	logger.Info("Starting report generation",
		slog.Int("sources", len(sources)),
		slog.String("output_dir", paths.OutputDir))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Export happens here so the written files can be listed
	svc := services.NewReportService(
		app.NewPipeline(cfg, nil, nil, logger),
		validation.NewFileValidator(logger, cfg.MaxUploadBytes()),
		nil,
		nil,
		services.ReportServiceConfig{RunTimeout: cfg.Analysis.RunTimeout},
		logger,
	)

	result, err := svc.AnalyzeFiles(ctx, sources)
	if err != nil {
		logger.Error("Analysis failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	manifest, err := exporter.NewExporter(paths, logger).Export(result)
	if err != nil {
		logger.Error("Failed to write outputs", slog.String("error", err.Error()))
		os.Exit(1)
	}

	printStages(result)
	for _, path := range manifest.Files() {
		fmt.Println(path)
	}
	logger.Info("Report generation finished",
		slog.String("run_id", result.RunID),
		slog.Any("canonical_rows", manifest.Rows))

	if failed := result.Failed(); len(failed) > 0 {
		logger.Warn("Some sources failed", slog.Int("failed", len(failed)))
		os.Exit(3)
	}
}

// flagName turns a dataset name into its flag, e.g. amazon_sales -> amazon-sales
func flagName(f schema.Family) string {
	return strings.ReplaceAll(string(f), "_", "-")
}

// collectSources merges discovered files with explicit flags; explicit
// paths win over discovered ones
func collectSources(inDir string, explicit map[schema.Family]*string, paths *config.Paths, logger *slog.Logger) (map[schema.Family]string, error) {
	sources := make(map[schema.Family]string)

	if inDir != "" {
		discovery := files.NewDiscovery(paths.BaseDir, logger)
		found, err := discovery.DiscoverSources(inDir)
		if err != nil {
			return nil, err
		}
		for dataset, info := range found {
			sources[dataset] = info.Path
		}
	}

	for dataset, path := range explicit {
		if *path == "" {
			continue
		}
		abs, err := filepath.Abs(*path)
		if err != nil {
			return nil, fmt.Errorf("invalid path for %s: %w", dataset, err)
		}
		sources[dataset] = abs
	}

	for dataset, path := range sources {
		logger.Info("Using source file",
			slog.String("dataset", string(dataset)),
			slog.String("file", path))
	}

	return sources, nil
}

func printStages(result *pipeline.Result) {
	fmt.Printf("Run %s (%d datasets)\n", result.RunID, len(result.Datasets()))
	for _, stage := range result.Stages {
		line := fmt.Sprintf("  %-16s %-9s rows=%d dropped=%d", stage.Dataset, stage.Status, stage.Rows, stage.Dropped)
		if stage.Error != "" {
			line += " error=" + stage.Error
		}
		fmt.Println(line)
	}
}
