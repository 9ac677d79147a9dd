package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoreport/internal/shared/testutil"
)

func TestResolvePaths(t *testing.T) {
	base := t.TempDir()
	abs := filepath.Join(t.TempDir(), "elsewhere")

	cfg := Default()
	cfg.Paths.BaseDir = base
	cfg.Paths.OutputDir = abs

	paths, err := cfg.ResolvePaths()
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(base, DefaultDataDir), paths.DataDir)
	assert.Equal(t, abs, paths.OutputDir)
	assert.Equal(t, filepath.Join(base, DefaultLogsDir), paths.LogsDir)
	assert.Equal(t, filepath.Join(abs, MarketSummaryFile), paths.MarketSummaryPath())
	assert.Equal(t, filepath.Join(abs, VOCSummaryFile), paths.VOCSummaryPath())
	assert.Equal(t, filepath.Join(abs, "amazon_sales_canonical.csv"), paths.CanonicalCSVPath("amazon_sales"))
	assert.Equal(t, filepath.Join(base, DefaultLogsDir, "app.log"), paths.LogPath("app.log"))
}

func TestResolvePaths_WorkingDirectory(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)

	paths, err := Default().ResolvePaths()
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(wd, DefaultUploadsDir), paths.UploadsDir)
}

func TestEnsureDirectories(t *testing.T) {
	cfg := Default()
	cfg.Paths.BaseDir = t.TempDir()

	paths, err := cfg.ResolvePaths()
	require.NoError(t, err)
	require.NoError(t, paths.EnsureDirectories())

	for _, dir := range []string{paths.DataDir, paths.OutputDir, paths.LogsDir, paths.UploadsDir} {
		info, err := os.Stat(dir)
		require.NoError(t, err)
		assert.True(t, info.IsDir())
	}
	assert.True(t, FileExists(paths.OutputDir))
	assert.False(t, FileExists(filepath.Join(paths.OutputDir, "nope")))
}

func TestLogPathResolution(t *testing.T) {
	logger, handler := testutil.NewTestLogger(t)
	paths := &Paths{BaseDir: "/srv", DataDir: "/srv/data", OutputDir: "/srv/out", LogsDir: "/srv/logs", UploadsDir: "/srv/up"}

	paths.LogPathResolution(logger)
	assert.True(t, handler.ContainsMessage("Path resolution summary"))
}
