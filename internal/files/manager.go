package files

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"autoreport/internal/config"
)

// Manager provides file management operations rooted at the configured
// directories
type Manager struct {
	paths  *config.Paths
	logger *slog.Logger
}

// NewManager creates a new file manager instance
func NewManager(paths *config.Paths, logger *slog.Logger) *Manager {
	if logger == nil {
		logger = slog.Default()
	}
	return &Manager{paths: paths, logger: logger}
}

// FileExists checks if a file exists at the given path
func (m *Manager) FileExists(path string) bool {
	_, err := os.Stat(m.resolvePath(path))
	return err == nil
}

// EnsureDirectory creates a directory if it doesn't exist
func (m *Manager) EnsureDirectory(path string) error {
	return os.MkdirAll(m.resolvePath(path), 0755)
}

// ReadFile reads the entire content of a file
func (m *Manager) ReadFile(path string) ([]byte, error) {
	return os.ReadFile(m.resolvePath(path))
}

// WriteFile writes data to a file, creating parent directories
func (m *Manager) WriteFile(path string, data []byte) error {
	fullPath := m.resolvePath(path)

	m.logger.Debug("Writing file",
		slog.String("path", path),
		slog.String("full_path", fullPath),
		slog.Int("size_bytes", len(data)))

	if err := os.MkdirAll(filepath.Dir(fullPath), 0755); err != nil {
		return fmt.Errorf("failed to create directory: %w", err)
	}
	return os.WriteFile(fullPath, data, 0644)
}

// DeleteFile deletes a file
func (m *Manager) DeleteFile(path string) error {
	return os.Remove(m.resolvePath(path))
}

// ListFiles returns the names of the files in a directory (non-recursive)
func (m *Manager) ListFiles(dir string) ([]string, error) {
	entries, err := os.ReadDir(m.resolvePath(dir))
	if err != nil {
		return nil, err
	}

	var files []string
	for _, entry := range entries {
		if !entry.IsDir() {
			files = append(files, entry.Name())
		}
	}
	return files, nil
}

// SaveUpload archives an uploaded file under uploads/<runID>/ and returns
// its absolute path. Only the base name of the upload is kept.
func (m *Manager) SaveUpload(runID, name string, data []byte) (string, error) {
	base := filepath.Base(filepath.Clean("/" + name))
	if base == "/" || base == "." {
		return "", fmt.Errorf("invalid upload name %q", name)
	}

	path := filepath.Join(m.paths.UploadsDir, runID, base)
	if err := m.WriteFile(path, data); err != nil {
		return "", fmt.Errorf("failed to archive upload %s: %w", base, err)
	}
	return path, nil
}

// PruneUploads keeps the keep most recent upload directories and removes
// the rest. It returns the number of directories removed.
func (m *Manager) PruneUploads(keep int) (int, error) {
	entries, err := os.ReadDir(m.paths.UploadsDir)
	if err != nil {
		if os.IsNotExist(err) {
			return 0, nil
		}
		return 0, err
	}

	type runDir struct {
		name string
		mod  int64
	}
	var dirs []runDir
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		dirs = append(dirs, runDir{name: entry.Name(), mod: info.ModTime().UnixNano()})
	}

	if keep < 0 {
		keep = 0
	}
	if len(dirs) <= keep {
		return 0, nil
	}

	sort.Slice(dirs, func(i, j int) bool {
		if dirs[i].mod != dirs[j].mod {
			return dirs[i].mod > dirs[j].mod
		}
		return dirs[i].name > dirs[j].name
	})

	removed := 0
	for _, d := range dirs[keep:] {
		if err := os.RemoveAll(filepath.Join(m.paths.UploadsDir, d.name)); err != nil {
			return removed, fmt.Errorf("failed to remove upload directory %s: %w", d.name, err)
		}
		removed++
	}

	m.logger.Info("Pruned upload archive",
		slog.Int("removed", removed),
		slog.Int("kept", keep))

	return removed, nil
}

// resolvePath resolves a path relative to the appropriate base directory
func (m *Manager) resolvePath(path string) string {
	if filepath.IsAbs(path) {
		return path
	}

	switch {
	case strings.HasPrefix(path, "uploads/"):
		return filepath.Join(m.paths.UploadsDir, strings.TrimPrefix(path, "uploads/"))
	case strings.HasPrefix(path, "output/"):
		return filepath.Join(m.paths.OutputDir, strings.TrimPrefix(path, "output/"))
	case strings.HasPrefix(path, "logs/"):
		return filepath.Join(m.paths.LogsDir, strings.TrimPrefix(path, "logs/"))
	default:
		return filepath.Join(m.paths.DataDir, path)
	}
}
