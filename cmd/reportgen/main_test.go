package main

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoreport/internal/config"
	"autoreport/internal/schema"
)

func TestFlagName(t *testing.T) {
	tests := []struct {
		family   schema.Family
		expected string
	}{
		{schema.FamilyAmazonSales, "amazon-sales"},
		{schema.FamilyRedditComments, "reddit-comments"},
		{schema.FamilyTikTokReviews, "tiktok-reviews"},
	}

	for _, tt := range tests {
		t.Run(string(tt.family), func(t *testing.T) {
			assert.Equal(t, tt.expected, flagName(tt.family))
		})
	}
}

func TestCollectSources(t *testing.T) {
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))
	base := t.TempDir()
	inDir := filepath.Join(base, "in")
	require.NoError(t, os.MkdirAll(inDir, 0755))

	for _, name := range []string{"1. amazon销售.csv", "tk视频评论.csv", "notes.txt"} {
		require.NoError(t, os.WriteFile(filepath.Join(inDir, name), []byte("a\n1\n"), 0644))
	}
	override := filepath.Join(base, "reddit.csv")
	require.NoError(t, os.WriteFile(override, []byte("body\nhello there\n"), 0644))

	paths := &config.Paths{BaseDir: base}
	empty := ""
	explicit := map[schema.Family]*string{
		schema.FamilyRedditComments: &override,
		schema.FamilyTikTokSales:    &empty,
	}

	t.Run("discovery plus explicit flags", func(t *testing.T) {
		sources, err := collectSources(inDir, explicit, paths, logger)
		require.NoError(t, err)

		assert.Len(t, sources, 3)
		assert.Equal(t, filepath.Join(inDir, "1. amazon销售.csv"), sources[schema.FamilyAmazonSales])
		assert.Equal(t, filepath.Join(inDir, "tk视频评论.csv"), sources[schema.FamilyTikTokComments])
		assert.Equal(t, override, sources[schema.FamilyRedditComments])
		assert.NotContains(t, sources, schema.FamilyTikTokSales)
	})

	t.Run("explicit flags only", func(t *testing.T) {
		sources, err := collectSources("", explicit, paths, logger)
		require.NoError(t, err)
		assert.Equal(t, map[schema.Family]string{schema.FamilyRedditComments: override}, sources)
	})

	t.Run("missing input directory", func(t *testing.T) {
		_, err := collectSources(filepath.Join(base, "missing"), nil, paths, logger)
		assert.Error(t, err)
	})
}
