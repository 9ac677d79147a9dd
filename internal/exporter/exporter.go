package exporter

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"autoreport/internal/config"
	apperrors "autoreport/internal/errors"
	"autoreport/internal/pipeline"
	"autoreport/internal/schema"
)

// Manifest lists the files written by one export
type Manifest struct {
	MarketSummary string                   `json:"market_summary"`
	VOCSummary    string                   `json:"voc_summary"`
	Canonical     map[schema.Family]string `json:"canonical"`
	Rows          map[schema.Family]int    `json:"rows"`
}

// Files returns every written path, summaries first then canonical tables
// in dataset order
func (m *Manifest) Files() []string {
	files := []string{m.MarketSummary, m.VOCSummary}
	for _, f := range schema.Families() {
		if p, ok := m.Canonical[f]; ok {
			files = append(files, p)
		}
	}
	return files
}

// Exporter writes the outcome of a pipeline run to the output directory
type Exporter struct {
	paths     *config.Paths
	csvWriter *CSVWriter
	logger    *slog.Logger
}

// NewExporter creates a new result exporter
func NewExporter(paths *config.Paths, logger *slog.Logger) *Exporter {
	if logger == nil {
		logger = slog.Default()
	}
	return &Exporter{
		paths:     paths,
		csvWriter: NewCSVWriter(paths, logger),
		logger:    logger,
	}
}

// Export writes both summary documents and one canonical CSV per dataset
func (e *Exporter) Export(result *pipeline.Result) (*Manifest, error) {
	if result == nil {
		return nil, apperrors.NewAppValidationError("no analysis result to export")
	}

	manifest := &Manifest{
		MarketSummary: e.paths.MarketSummaryPath(),
		VOCSummary:    e.paths.VOCSummaryPath(),
	}
	if err := WriteJSON(manifest.MarketSummary, result.Market); err != nil {
		return nil, apperrors.NewStorageError("write market summary", err)
	}
	if err := WriteJSON(manifest.VOCSummary, result.VOC); err != nil {
		return nil, apperrors.NewStorageError("write voc summary", err)
	}

	canonical, rows, err := e.ExportCanonical(result)
	if err != nil {
		return nil, err
	}
	manifest.Canonical = canonical
	manifest.Rows = rows

	e.logger.Info("Exported analysis results",
		slog.String("run_id", result.RunID),
		slog.String("output_dir", e.paths.OutputDir),
		slog.Int("canonical_files", len(canonical)))

	return manifest, nil
}

// ExportCanonical writes one BOM-prefixed CSV per canonical table and
// returns the written paths and data row counts by dataset
func (e *Exporter) ExportCanonical(result *pipeline.Result) (map[schema.Family]string, map[schema.Family]int, error) {
	written := make(map[schema.Family]string)
	rows := make(map[schema.Family]int)
	for _, f := range result.Datasets() {
		var headers []string
		var records [][]string
		switch {
		case hasKey(result.Listings, f):
			headers, records = ListingRecords(result.Listings[f])
		case hasKey(result.Comments, f):
			headers, records = CommentRecords(result.Comments[f])
		default:
			headers, records = ReviewRecords(result.Reviews[f])
		}

		path := e.paths.CanonicalCSVPath(string(f))
		n, err := e.writeTable(path, headers, records)
		if err != nil {
			return nil, nil, apperrors.NewStorageError(fmt.Sprintf("write %s canonical table", f), err)
		}
		written[f] = path
		rows[f] = n
	}
	return written, rows, nil
}

func (e *Exporter) writeTable(path string, headers []string, records [][]string) (int, error) {
	stream, err := e.csvWriter.CreateStreamWriter(path, headers)
	if err != nil {
		return 0, err
	}
	for _, record := range records {
		if err := stream.WriteRecord(record); err != nil {
			stream.Close()
			return stream.Count(), err
		}
	}
	if err := stream.Close(); err != nil {
		return stream.Count(), err
	}

	e.logger.Debug("Canonical table written",
		slog.String("file", path),
		slog.Int("rows", stream.Count()))
	return stream.Count(), nil
}

// WriteJSON writes v as indented JSON. The document is written to a
// temporary file in the same directory and renamed into place.
func WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", filepath.Base(path), err)
	}
	data = append(data, '\n')

	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("failed to create temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write %s: %w", filepath.Base(path), err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to close temp file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

func hasKey[V any](m map[schema.Family]V, f schema.Family) bool {
	_, ok := m[f]
	return ok
}
