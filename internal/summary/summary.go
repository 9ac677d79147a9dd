// Package summary assembles the market and voice-of-customer documents from
// canonical tables.
package summary

import (
	"time"

	"autoreport/internal/stats"
	"autoreport/internal/voc"
	"autoreport/pkg/contracts/domain"
)

// TimestampLayout is the layout of the summary timestamp
const TimestampLayout = time.RFC3339

// Aggregator builds summary documents. The zero value is usable: it stamps
// documents with the current time and uses the default statistics options
// and keyword classifier.
type Aggregator struct {
	Now        func() time.Time
	Stats      stats.Options
	Classifier voc.Classifier
}

func (a Aggregator) timestamp() string {
	now := time.Now
	if a.Now != nil {
		now = a.Now
	}
	return now().Format(TimestampLayout)
}

func (a Aggregator) classifier() voc.Classifier {
	if a.Classifier == nil {
		return voc.NewDefaultClassifier()
	}
	return a.Classifier
}

// Market computes statistics for every listing table. Tables of the same
// platform are merged. cross_platform is set only when both amazon and
// tiktok have rows.
func (a Aggregator) Market(tables ...domain.ListingTable) domain.MarketSummary {
	merged := mergeListings(tables)

	out := domain.MarketSummary{
		Timestamp: a.timestamp(),
		Platforms: make(map[domain.Platform]domain.PlatformStats, len(merged)),
	}
	for platform, t := range merged {
		out.Platforms[platform] = stats.Compute(t, a.Stats)
	}

	amazon, tiktok := merged[domain.PlatformAmazon], merged[domain.PlatformTikTok]
	out.CrossPlatform = stats.CrossPlatform(amazon, tiktok)
	return out
}

// VOC computes the comment (stage 2) and review (stage 3) insight blocks
func (a Aggregator) VOC(comments []domain.CommentTable, reviews []domain.ReviewTable) domain.VOCSummary {
	c := a.classifier()
	return domain.VOCSummary{
		Timestamp: a.timestamp(),
		Stage2:    voc.ComputeCommentStatistics(c, comments...),
		Stage3:    reviewInsights(c, reviews),
	}
}

func reviewInsights(c voc.Classifier, tables []domain.ReviewTable) domain.ReviewInsights {
	out := domain.ReviewInsights{
		ReviewStatistics:   voc.ComputeReviewStatistics(c, tables...),
		PlatformComparison: make(map[domain.Platform]domain.PlatformReviewStats),
	}

	total := 0.0
	for platform, t := range mergeReviews(tables) {
		out.PlatformComparison[platform] = voc.PlatformReviewStats(t)
		out.TotalReviews += t.Len()
		for _, r := range t.Rows {
			total += r.Rating
		}
	}
	if out.TotalReviews > 0 {
		out.AvgRating = total / float64(out.TotalReviews)
	}
	return out
}

func mergeListings(tables []domain.ListingTable) map[domain.Platform]domain.ListingTable {
	out := make(map[domain.Platform]domain.ListingTable)
	for _, t := range tables {
		if t.Platform == "" {
			continue
		}
		cur, ok := out[t.Platform]
		if !ok {
			out[t.Platform] = domain.ListingTable{
				Platform: t.Platform,
				Fields:   unionFields(nil, t.Fields),
				Rows:     append([]domain.Listing{}, t.Rows...),
			}
			continue
		}
		cur.Fields = unionFields(cur.Fields, t.Fields)
		cur.Rows = append(cur.Rows, t.Rows...)
		out[t.Platform] = cur
	}
	return out
}

func mergeReviews(tables []domain.ReviewTable) map[domain.Platform]domain.ReviewTable {
	out := make(map[domain.Platform]domain.ReviewTable)
	for _, t := range tables {
		if t.Platform == "" {
			continue
		}
		cur := out[t.Platform]
		cur.Platform = t.Platform
		cur.Fields = unionFields(cur.Fields, t.Fields)
		cur.Rows = append(cur.Rows, t.Rows...)
		out[t.Platform] = cur
	}
	return out
}

func unionFields(a, b domain.FieldSet) domain.FieldSet {
	out := make(domain.FieldSet, len(a)+len(b))
	for f, ok := range a {
		if ok {
			out[f] = true
		}
	}
	for f, ok := range b {
		if ok {
			out[f] = true
		}
	}
	return out
}
