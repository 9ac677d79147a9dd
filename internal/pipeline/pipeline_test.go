package pipeline

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

	apperrors "autoreport/internal/errors"
	"autoreport/internal/schema"
	"autoreport/pkg/contracts/domain"
)

var fixedNow = time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)

const amazonSalesCSV = "ASIN,商品标题,价格($),月销量,评分\n" +
	"B001,Human hair lace front wig 20 inch,100,50,4.5\n" +
	"B002,Body wave glueless wig,50,10,4.0\n" +
	"B003,,10,1,4\n"

const tiktokCommentsCSV = "评论内容,点赞数\n" +
	"I love this wig so much,12\n" +
	"too expensive and bad quality,3\n" +
	"ok,1\n"

const redditCommentsNoText = "author,score\n" +
	"someone,4\n"

const amazonReviewsCSV = "review_text,rating,helpful\n" +
	"Great quality, soft and natural looking,5,3\n" +
	"Terrible shedding after one week,1,7\n"

func quietLogger() *slog.Logger {
	return slog.New(slog.NewJSONHandler(io.Discard, nil))
}

func newTestPipeline(opts ...Option) *Pipeline {
	base := []Option{WithLogger(quietLogger()), WithClock(func() time.Time { return fixedNow })}
	return New(append(base, opts...)...)
}

func testSources() []Source {
	return []Source{
		{Dataset: schema.FamilyAmazonReviews, Name: "amazon_reviews.csv", Data: []byte(amazonReviewsCSV)},
		{Dataset: schema.FamilyRedditComments, Name: "reddit.csv", Data: []byte(redditCommentsNoText)},
		{Dataset: schema.FamilyAmazonSales, Name: "amazon_sales.csv", Data: []byte(amazonSalesCSV)},
		{Dataset: schema.FamilyTikTokComments, Name: "tk_comments.csv", Data: []byte(tiktokCommentsCSV)},
	}
}

func TestRunNormalizesAndSummarizes(t *testing.T) {
	result, err := newTestPipeline().Run(context.Background(), testSources())
	require.NoError(t, err)

	require.Len(t, result.Stages, 4)
	assert.Equal(t, schema.FamilyAmazonSales, result.Stages[0].Dataset)
	assert.Equal(t, schema.FamilyTikTokComments, result.Stages[1].Dataset)
	assert.Equal(t, schema.FamilyRedditComments, result.Stages[2].Dataset)
	assert.Equal(t, schema.FamilyAmazonReviews, result.Stages[3].Dataset)

	sales := result.Stages[0]
	assert.Equal(t, StatusCompleted, sales.Status)
	assert.Equal(t, 3, sales.RawRows)
	assert.Equal(t, 2, sales.Rows)
	assert.Equal(t, 1, sales.Dropped)

	comments := result.Stages[1]
	assert.Equal(t, StatusCompleted, comments.Status)
	assert.Equal(t, 2, comments.Rows)

	assert.NotEmpty(t, result.RunID)
	assert.Len(t, result.Fingerprint, 64)
	assert.False(t, result.Cached)
	assert.Equal(t, fixedNow, result.StartedAt)

	assert.Equal(t, []schema.Family{
		schema.FamilyAmazonSales,
		schema.FamilyTikTokComments,
		schema.FamilyAmazonReviews,
	}, result.Datasets())

	require.Contains(t, result.Market.Platforms, domain.PlatformAmazon)
	assert.Equal(t, 2, result.Market.Platforms[domain.PlatformAmazon].MarketOverview.TotalProducts)
	assert.Nil(t, result.Market.CrossPlatform)
	assert.Equal(t, "2026-01-02T03:04:05Z", result.Market.Timestamp)

	assert.Equal(t, 2, result.VOC.Stage2.TotalComments)
	assert.Equal(t, 2, result.VOC.Stage3.TotalReviews)
	assert.InDelta(t, 3.0, result.VOC.Stage3.AvgRating, 1e-9)
}

func TestRunRecordsFailedSourceAndContinues(t *testing.T) {
	result, err := newTestPipeline().Run(context.Background(), testSources())
	require.NoError(t, err)

	failed := result.Failed()
	require.Len(t, failed, 1)
	assert.Equal(t, schema.FamilyRedditComments, failed[0].Dataset)
	assert.Equal(t, StatusFailed, failed[0].Status)
	assert.NotEmpty(t, failed[0].Error)
	assert.Zero(t, failed[0].Rows)

	require.Len(t, result.Errors, 1)
	assert.True(t, errors.Is(result.Errors[0], apperrors.ErrSchema))
	assert.False(t, result.Has(schema.FamilyRedditComments))
}

func TestRunUnsupportedFileIsParsingFailure(t *testing.T) {
	result, err := newTestPipeline().Run(context.Background(), []Source{
		{Dataset: schema.FamilyTikTokSales, Name: "tk_sales.pdf", Data: []byte("%PDF")},
	})
	require.NoError(t, err)

	require.Len(t, result.Errors, 1)
	var appErr *apperrors.AppError
	require.True(t, errors.As(result.Errors[0], &appErr))
	assert.Equal(t, apperrors.ErrTypeParsing, appErr.Type)

	assert.Empty(t, result.Market.Platforms)
	assert.Equal(t, 0, result.VOC.Stage2.TotalComments)
}

func TestRunValidatesSources(t *testing.T) {
	tests := []struct {
		name    string
		sources []Source
	}{
		{"no_sources", nil},
		{"unknown_dataset", []Source{{Dataset: "ebay_sales", Name: "x.csv"}}},
		{"duplicate_dataset", []Source{
			{Dataset: schema.FamilyAmazonSales, Name: "a.csv"},
			{Dataset: schema.FamilyAmazonSales, Name: "b.csv"},
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := newTestPipeline().Run(context.Background(), tt.sources)
			var appErr *apperrors.AppError
			require.True(t, errors.As(err, &appErr))
			assert.Equal(t, apperrors.ErrTypeValidation, appErr.Type)
		})
	}
}

func TestRunHonoursCancellation(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := newTestPipeline().Run(ctx, testSources())
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}

func TestRunServesRepeatedInputsFromCache(t *testing.T) {
	cache := NewCache(time.Hour, 4, nil)
	p := newTestPipeline(WithCache(cache))

	first, err := p.Run(context.Background(), testSources())
	require.NoError(t, err)

	reordered := testSources()
	reordered[0], reordered[3] = reordered[3], reordered[0]
	second, err := p.Run(context.Background(), reordered)
	require.NoError(t, err)

	assert.True(t, second.Cached)
	assert.False(t, first.Cached)
	assert.Equal(t, first.RunID, second.RunID)
	assert.Same(t, p.Cache(), cache)

	stats := cache.Stats()
	assert.Equal(t, 1, stats.Entries)
	assert.Equal(t, int64(1), stats.HitCount)
	assert.Equal(t, int64(1), stats.MissCount)

	cache.Clear()
	third, err := p.Run(context.Background(), testSources())
	require.NoError(t, err)
	assert.False(t, third.Cached)
	assert.NotEqual(t, first.RunID, third.RunID)
}

func TestFingerprint(t *testing.T) {
	a := []Source{
		{Dataset: schema.FamilyAmazonSales, Name: "a.csv", Data: []byte("x")},
		{Dataset: schema.FamilyTikTokSales, Name: "b.csv", Data: []byte("y")},
	}
	b := []Source{a[1], a[0]}
	assert.Equal(t, Fingerprint(a), Fingerprint(b))

	c := []Source{a[0], {Dataset: schema.FamilyTikTokSales, Name: "b.csv", Data: []byte("z")}}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(c))

	d := []Source{a[0], {Dataset: schema.FamilyTikTokSales, Name: "b.xlsx", Data: []byte("y")}}
	assert.NotEqual(t, Fingerprint(a), Fingerprint(d))
}

func TestParseDataset(t *testing.T) {
	f, err := ParseDataset(" Amazon_Sales ")
	require.NoError(t, err)
	assert.Equal(t, schema.FamilyAmazonSales, f)

	for _, family := range schema.Families() {
		got, err := ParseDataset(string(family))
		require.NoError(t, err)
		assert.Equal(t, family, got)
	}

	_, err = ParseDataset("walmart_sales")
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeNotFound, appErr.Type)
}

func TestSourceFromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "amazon销售.csv")
	require.NoError(t, os.WriteFile(path, []byte(amazonSalesCSV), 0644))

	src, err := SourceFromFile(schema.FamilyAmazonSales, path)
	require.NoError(t, err)
	assert.Equal(t, "amazon销售.csv", src.Name)
	assert.Equal(t, []byte(amazonSalesCSV), src.Data)

	_, err = SourceFromFile(schema.FamilyAmazonSales, filepath.Join(t.TempDir(), "missing.csv"))
	var appErr *apperrors.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, apperrors.ErrTypeStorage, appErr.Type)
}
