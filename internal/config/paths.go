package config

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
)

// Paths contains the resolved absolute directories the application reads
// from and writes to
type Paths struct {
	BaseDir    string
	DataDir    string
	OutputDir  string
	LogsDir    string
	UploadsDir string
}

// ResolvePaths resolves the configured directories against BaseDir, falling
// back to the working directory when BaseDir is empty
func (c *Config) ResolvePaths() (*Paths, error) {
	base := c.Paths.BaseDir
	if base == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("failed to get working directory: %w", err)
		}
		base = wd
	}

	base, err := filepath.Abs(base)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base directory: %w", err)
	}

	resolve := func(dir string) string {
		if filepath.IsAbs(dir) {
			return filepath.Clean(dir)
		}
		return filepath.Join(base, dir)
	}

	return &Paths{
		BaseDir:    base,
		DataDir:    resolve(c.Paths.DataDir),
		OutputDir:  resolve(c.Paths.OutputDir),
		LogsDir:    resolve(c.Paths.LogsDir),
		UploadsDir: resolve(c.Paths.UploadsDir),
	}, nil
}

// EnsureDirectories creates all required directories if they don't exist
func (p *Paths) EnsureDirectories() error {
	for _, dir := range []string{p.DataDir, p.OutputDir, p.LogsDir, p.UploadsDir} {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create directory %s: %w", dir, err)
		}
	}
	return nil
}

// MarketSummaryPath returns the market summary document path
func (p *Paths) MarketSummaryPath() string {
	return filepath.Join(p.OutputDir, MarketSummaryFile)
}

// VOCSummaryPath returns the voice-of-customer document path
func (p *Paths) VOCSummaryPath() string {
	return filepath.Join(p.OutputDir, VOCSummaryFile)
}

// CanonicalCSVPath returns the path of a dataset's canonical CSV export
func (p *Paths) CanonicalCSVPath(dataset string) string {
	return filepath.Join(p.OutputDir, dataset+CanonicalSuffix)
}

// LogPath returns a file path inside the logs directory
func (p *Paths) LogPath(filename string) string {
	return filepath.Join(p.LogsDir, filename)
}

// FileExists checks if a file exists
func FileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// LogPathResolution logs the resolved directories
func (p *Paths) LogPathResolution(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}

	logger.Info("Path resolution summary",
		slog.Group("directories",
			slog.String("base", p.BaseDir),
			slog.String("data", p.DataDir),
			slog.String("output", p.OutputDir),
			slog.String("logs", p.LogsDir),
			slog.String("uploads", p.UploadsDir),
		))
}
