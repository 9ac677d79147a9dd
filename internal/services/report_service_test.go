package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"autoreport/internal/config"
	apperrors "autoreport/internal/errors"
	"autoreport/internal/exporter"
	"autoreport/internal/files"
	"autoreport/internal/pipeline"
	"autoreport/internal/schema"
	"autoreport/internal/validation"
	"autoreport/pkg/contracts/domain"
)

const amazonSalesCSV = "ASIN,商品标题,价格($),月销量,评分\n" +
	"B001,Human hair lace front wig 20 inch,100,50,4.5\n" +
	"B002,Body wave glueless wig,50,10,4.0\n"

const tiktokCommentsCSV = "评论内容,点赞数\n" +
	"I love this wig so much,12\n" +
	"too expensive and bad quality,3\n"

const redditCommentsNoText = "author,score\n" +
	"someone,4\n"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func testPaths(t *testing.T) *config.Paths {
	t.Helper()
	dir := t.TempDir()
	return &config.Paths{
		BaseDir:    dir,
		DataDir:    filepath.Join(dir, "data"),
		OutputDir:  filepath.Join(dir, "output"),
		LogsDir:    filepath.Join(dir, "logs"),
		UploadsDir: filepath.Join(dir, "uploads"),
	}
}

func newTestService(t *testing.T) (*ReportService, *config.Paths) {
	t.Helper()
	paths := testPaths(t)
	logger := quietLogger()
	fixed := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

	p := pipeline.New(
		pipeline.WithLogger(logger),
		pipeline.WithClock(func() time.Time { return fixed }),
		pipeline.WithCache(pipeline.NewCache(time.Hour, 4, nil)),
	)
	svc := NewReportService(
		p,
		validation.NewFileValidator(logger, 1<<20),
		exporter.NewExporter(paths, logger),
		files.NewManager(paths, logger),
		ReportServiceConfig{RunTimeout: time.Minute, UploadRetention: 5, ExportResults: true},
		logger,
	)
	return svc, paths
}

func testUploads() []Upload {
	return []Upload{
		{Dataset: "amazon_sales", Name: "1. amazon销售.csv", Data: []byte(amazonSalesCSV)},
		{Dataset: "tiktok_comments", Name: "tk视频评论.csv", Data: []byte(tiktokCommentsCSV)},
	}
}

func requireAppError(t *testing.T, err error, want apperrors.ErrorType) {
	t.Helper()
	var appErr *apperrors.AppError
	require.ErrorAs(t, err, &appErr)
	assert.Equal(t, want, appErr.Type)
}

func TestReportService_Analyze(t *testing.T) {
	svc, paths := newTestService(t)

	result, err := svc.Analyze(context.Background(), testUploads())
	require.NoError(t, err)

	assert.Equal(t, []schema.Family{schema.FamilyAmazonSales, schema.FamilyTikTokComments}, result.Datasets())
	assert.Empty(t, result.Failed())

	latest, ok := svc.Latest()
	require.True(t, ok)
	assert.Equal(t, result.RunID, latest.RunID)

	market, err := svc.MarketSummary(context.Background())
	require.NoError(t, err)
	assert.Contains(t, market.Platforms, domain.PlatformAmazon)
	assert.Equal(t, 2, market.Platforms[domain.PlatformAmazon].MarketOverview.TotalProducts)

	voc, err := svc.VOCSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, voc.Stage2.TotalComments)

	assert.FileExists(t, paths.MarketSummaryPath())
	assert.FileExists(t, paths.VOCSummaryPath())
	assert.FileExists(t, paths.CanonicalCSVPath("amazon_sales"))
	assert.FileExists(t, filepath.Join(paths.UploadsDir, result.RunID, "amazon_sales_1. amazon销售.csv"))
}

func TestReportService_AnalyzeCachedRun(t *testing.T) {
	svc, paths := newTestService(t)

	first, err := svc.Analyze(context.Background(), testUploads())
	require.NoError(t, err)

	second, err := svc.Analyze(context.Background(), testUploads())
	require.NoError(t, err)
	assert.True(t, second.Cached)
	assert.Equal(t, first.RunID, second.RunID)

	entries, err := os.ReadDir(paths.UploadsDir)
	require.NoError(t, err)
	assert.Len(t, entries, 1, "cached runs are not archived again")

	stats, ok := svc.CacheStats()
	require.True(t, ok)
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(1), stats.HitCount)
}

func TestReportService_AnalyzeValidation(t *testing.T) {
	svc, _ := newTestService(t)

	tests := []struct {
		name    string
		uploads []Upload
	}{
		{"no uploads", nil},
		{"unknown dataset", []Upload{{Dataset: "ebay_sales", Name: "a.csv", Data: []byte("x")}}},
		{"unsupported file", []Upload{{Dataset: "amazon_sales", Name: "a.pdf", Data: []byte("x")}}},
		{"empty file", []Upload{{Dataset: "amazon_sales", Name: "a.csv"}}},
		{"path traversal", []Upload{{Dataset: "amazon_sales", Name: "../a.csv", Data: []byte("x")}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Analyze(context.Background(), tt.uploads)
			require.Error(t, err)
			requireAppError(t, err, apperrors.ErrTypeValidation)
		})
	}

	_, ok := svc.Latest()
	assert.False(t, ok)
}

func TestReportService_AnalyzeEverySourceFailed(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.Analyze(context.Background(), []Upload{
		{Dataset: "reddit_comments", Name: "reddit.csv", Data: []byte(redditCommentsNoText)},
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsSchemaError(err))

	_, ok := svc.Latest()
	assert.False(t, ok, "a run without any canonical table is not kept")
}

func TestReportService_AnalyzePartialFailure(t *testing.T) {
	svc, _ := newTestService(t)

	uploads := append(testUploads(), Upload{Dataset: "reddit_comments", Name: "reddit.csv", Data: []byte(redditCommentsNoText)})
	result, err := svc.Analyze(context.Background(), uploads)
	require.NoError(t, err)

	failed := result.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, schema.FamilyRedditComments, failed[0].Dataset)
}

func TestReportService_AnalyzeCancelled(t *testing.T) {
	svc, _ := newTestService(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Analyze(ctx, testUploads())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestReportService_AnalyzeFiles(t *testing.T) {
	svc, _ := newTestService(t)
	dir := t.TempDir()
	path := filepath.Join(dir, "amazon_sales.csv")
	require.NoError(t, os.WriteFile(path, []byte(amazonSalesCSV), 0644))

	result, err := svc.AnalyzeFiles(context.Background(), map[schema.Family]string{
		schema.FamilyAmazonSales: path,
	})
	require.NoError(t, err)
	assert.True(t, result.Has(schema.FamilyAmazonSales))

	_, err = svc.AnalyzeFiles(context.Background(), map[schema.Family]string{
		schema.FamilyAmazonSales: filepath.Join(dir, "missing.csv"),
	})
	requireAppError(t, err, apperrors.ErrTypeNotFound)

	_, err = svc.AnalyzeFiles(context.Background(), nil)
	assert.ErrorIs(t, err, ErrNoSources)
}

func TestReportService_NoAnalysis(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.MarketSummary(ctx)
	assert.ErrorIs(t, err, ErrNoAnalysis)

	_, err = svc.VOCSummary(ctx)
	assert.ErrorIs(t, err, ErrNoAnalysis)

	_, err = svc.Rows(ctx, "amazon_sales", validation.PageRequest{Page: 1, PerPage: 10})
	assert.ErrorIs(t, err, ErrNoAnalysis)
}

func TestReportService_Rows(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Analyze(ctx, testUploads())
	require.NoError(t, err)

	page, err := svc.Rows(ctx, "amazon_sales", validation.PageRequest{Page: 2, PerPage: 1})
	require.NoError(t, err)
	assert.Equal(t, 2, page.Total)
	assert.Equal(t, 2, page.TotalPages)
	assert.Contains(t, page.Fields, domain.FieldPrice)
	rows, ok := page.Rows.([]domain.Listing)
	require.True(t, ok)
	require.Len(t, rows, 1)
	assert.Equal(t, "B002", rows[0].ProductID)

	page, err = svc.Rows(ctx, "AMAZON_SALES", validation.PageRequest{Page: 5, PerPage: 10})
	require.NoError(t, err)
	assert.Empty(t, page.Rows)

	page, err = svc.Rows(ctx, "tiktok_comments", validation.PageRequest{Page: 1, PerPage: 10})
	require.NoError(t, err)
	comments, ok := page.Rows.([]domain.Comment)
	require.True(t, ok)
	assert.Len(t, comments, 2)

	_, err = svc.Rows(ctx, "ebay_sales", validation.PageRequest{Page: 1, PerPage: 10})
	requireAppError(t, err, apperrors.ErrTypeNotFound)

	_, err = svc.Rows(ctx, "amazon_reviews", validation.PageRequest{Page: 1, PerPage: 10})
	requireAppError(t, err, apperrors.ErrTypeNotFound)
}

func TestReportService_InvalidateCache(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	_, err := svc.Analyze(ctx, testUploads())
	require.NoError(t, err)

	res := svc.InvalidateCache(ctx, "")
	assert.Equal(t, 1, res.Cleared)
	assert.True(t, res.LatestCleared)

	_, err = svc.MarketSummary(ctx)
	assert.ErrorIs(t, err, ErrNoAnalysis)

	res = svc.InvalidateCache(ctx, "")
	assert.Zero(t, res.Cleared)
	assert.False(t, res.LatestCleared)

	again, err := svc.Analyze(ctx, testUploads())
	require.NoError(t, err)
	assert.False(t, again.Cached)
}

func TestReportService_InvalidateCacheByFingerprint(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()
	first, err := svc.Analyze(ctx, testUploads())
	require.NoError(t, err)

	res := svc.InvalidateCache(ctx, "unknown")
	assert.Zero(t, res.Cleared)
	assert.False(t, res.LatestCleared)

	_, err = svc.MarketSummary(ctx)
	require.NoError(t, err, "latest result survives an unrelated fingerprint")

	res = svc.InvalidateCache(ctx, first.Fingerprint)
	assert.Equal(t, 1, res.Cleared)
	assert.True(t, res.LatestCleared)

	again, err := svc.Analyze(ctx, testUploads())
	require.NoError(t, err)
	assert.False(t, again.Cached)
	assert.Equal(t, first.Fingerprint, again.Fingerprint)
}

func TestReportServiceConfigFrom(t *testing.T) {
	cfg := config.Default()
	got := ReportServiceConfigFrom(cfg)

	assert.Equal(t, cfg.Analysis.RunTimeout, got.RunTimeout)
	assert.Equal(t, config.DefaultUploadRetention, got.UploadRetention)
	assert.True(t, got.ExportResults)
}
