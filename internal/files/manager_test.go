package files

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoreport/internal/config"
)

func testManager(t *testing.T) (*Manager, *config.Paths) {
	t.Helper()
	dir := t.TempDir()
	paths := &config.Paths{
		BaseDir:    dir,
		DataDir:    filepath.Join(dir, "data"),
		OutputDir:  filepath.Join(dir, "output"),
		LogsDir:    filepath.Join(dir, "logs"),
		UploadsDir: filepath.Join(dir, "uploads"),
	}
	return NewManager(paths, nil), paths
}

func TestManager_ResolvePath(t *testing.T) {
	m, paths := testManager(t)

	tests := []struct {
		path string
		want string
	}{
		{"uploads/run/a.csv", filepath.Join(paths.UploadsDir, "run", "a.csv")},
		{"output/market_summary.json", filepath.Join(paths.OutputDir, "market_summary.json")},
		{"logs/app.log", filepath.Join(paths.LogsDir, "app.log")},
		{"amazon_sales.csv", filepath.Join(paths.DataDir, "amazon_sales.csv")},
		{"/abs/file.csv", "/abs/file.csv"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, m.resolvePath(tt.path))
		})
	}
}

func TestManager_FileOperations(t *testing.T) {
	m, paths := testManager(t)

	require.NoError(t, m.WriteFile("nested/a.csv", []byte("hello")))
	assert.True(t, m.FileExists("nested/a.csv"))
	assert.FileExists(t, filepath.Join(paths.DataDir, "nested", "a.csv"))

	data, err := m.ReadFile("nested/a.csv")
	require.NoError(t, err)
	assert.Equal(t, "hello", string(data))

	require.NoError(t, m.EnsureDirectory("nested/child"))
	files, err := m.ListFiles("nested")
	require.NoError(t, err)
	assert.Equal(t, []string{"a.csv"}, files)

	require.NoError(t, m.DeleteFile("nested/a.csv"))
	assert.False(t, m.FileExists("nested/a.csv"))
}

func TestManager_SaveUpload(t *testing.T) {
	m, paths := testManager(t)

	path, err := m.SaveUpload("run-1", "../../etc/amazon_sales.csv", []byte("title\n"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(paths.UploadsDir, "run-1", "amazon_sales.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "title\n", string(data))

	_, err = m.SaveUpload("run-1", "", nil)
	assert.Error(t, err)
}

func TestManager_PruneUploads(t *testing.T) {
	m, paths := testManager(t)

	removed, err := m.PruneUploads(2)
	require.NoError(t, err)
	assert.Zero(t, removed, "missing uploads directory is not an error")

	base := time.Now().Add(-time.Hour)
	for i, run := range []string{"run-a", "run-b", "run-c"} {
		_, err := m.SaveUpload(run, "x.csv", []byte("x"))
		require.NoError(t, err)
		mod := base.Add(time.Duration(i) * time.Minute)
		require.NoError(t, os.Chtimes(filepath.Join(paths.UploadsDir, run), mod, mod))
	}

	removed, err = m.PruneUploads(2)
	require.NoError(t, err)
	assert.Equal(t, 1, removed)
	assert.NoDirExists(t, filepath.Join(paths.UploadsDir, "run-a"))
	assert.DirExists(t, filepath.Join(paths.UploadsDir, "run-c"))
}
