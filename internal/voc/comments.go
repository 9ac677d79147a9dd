package voc

import (
	"sort"

	"autoreport/pkg/contracts/domain"
)

const (
	// TopCandidates is how many buy / don't-buy candidates are kept
	TopCandidates = 10
	// TopUsageExamples is how many usage comments are kept
	TopUsageExamples = 10
	// SegmentExamples is how many example comments each user segment keeps
	SegmentExamples = 3
	// TopByLikes is how many most-liked comments are reported
	TopByLikes = 10
)

// CommentCategories is the result of CategorizeComments
type CommentCategories struct {
	ReasonsToBuy    []domain.CommentCandidate
	ReasonsNotToBuy []domain.CommentCandidate
	UsageScenarios  []domain.CommentExample
	UserSegments    []domain.UserSegment
}

// CategorizeComments splits comments by net sentiment and tags usage
// mentions and user segments. A comment with equal positive and negative
// hits is neither a reason to buy nor a reason not to buy. Usage and segment
// tagging are independent of sentiment and a comment may join several
// segments.
func CategorizeComments(c Classifier, comments []domain.Comment) CommentCategories {
	c = orDefault(c)
	out := CommentCategories{
		ReasonsToBuy:    []domain.CommentCandidate{},
		ReasonsNotToBuy: []domain.CommentCandidate{},
		UsageScenarios:  []domain.CommentExample{},
		UserSegments:    []domain.UserSegment{},
	}

	segments := make(map[string][]domain.CommentExample)
	for _, cm := range comments {
		labels := c.Classify(cm.Text)

		pos := hitsFor(labels, DimensionSentiment, SentimentPositive)
		neg := hitsFor(labels, DimensionSentiment, SentimentNegative)
		switch {
		case pos > neg:
			out.ReasonsToBuy = append(out.ReasonsToBuy, candidate(cm, pos))
		case neg > pos:
			out.ReasonsNotToBuy = append(out.ReasonsNotToBuy, candidate(cm, neg))
		}

		if len(namesIn(labels, DimensionUsage)) > 0 {
			out.UsageScenarios = append(out.UsageScenarios, example(cm))
		}
		for _, seg := range namesIn(labels, DimensionSegment) {
			segments[seg] = append(segments[seg], example(cm))
		}
	}

	out.ReasonsToBuy = topCandidates(out.ReasonsToBuy, TopCandidates)
	out.ReasonsNotToBuy = topCandidates(out.ReasonsNotToBuy, TopCandidates)
	out.UsageScenarios = topExamples(out.UsageScenarios, TopUsageExamples)

	counts := make(map[string]int, len(segments))
	for seg, ex := range segments {
		counts[seg] = len(ex)
	}
	for _, seg := range sortedNames(counts, rankOf(c, DimensionSegment)) {
		out.UserSegments = append(out.UserSegments, domain.UserSegment{
			Segment:      seg,
			MentionCount: counts[seg],
			Examples:     topExamples(segments[seg], SegmentExamples),
		})
	}
	return out
}

// ComputeCommentStatistics combines comment tables from every source into
// the comment insight block
func ComputeCommentStatistics(c Classifier, tables ...domain.CommentTable) domain.CommentInsights {
	var all []domain.Comment
	bySource := make(map[domain.CommentSource]int)
	for _, t := range tables {
		if t.Source != "" {
			bySource[t.Source] += t.Len()
		}
		all = append(all, t.Rows...)
	}

	cats := CategorizeComments(c, all)
	out := domain.CommentInsights{
		PotentialReasonsToBuy:    cats.ReasonsToBuy,
		PotentialReasonsNotToBuy: cats.ReasonsNotToBuy,
		UsageScenarios:           cats.UsageScenarios,
		UserSegments:             cats.UserSegments,
		TotalComments:            len(all),
		BySource:                 bySource,
		TopByLikes:               []domain.CommentExample{},
	}

	examples := make([]domain.CommentExample, len(all))
	for i, cm := range all {
		out.TotalLikes += cm.Likes
		examples[i] = example(cm)
	}
	if len(all) > 0 {
		out.AvgLikes = out.TotalLikes / float64(len(all))
		out.TopByLikes = topExamples(examples, TopByLikes)
	}
	return out
}

func candidate(cm domain.Comment, score int) domain.CommentCandidate {
	return domain.CommentCandidate{Text: cm.Text, Likes: cm.Likes, Score: score, Source: cm.Source}
}

func example(cm domain.Comment) domain.CommentExample {
	return domain.CommentExample{Text: cm.Text, Likes: cm.Likes, Source: cm.Source}
}

// topCandidates ranks by (score, likes) descending then text ascending
func topCandidates(cs []domain.CommentCandidate, n int) []domain.CommentCandidate {
	sort.SliceStable(cs, func(i, j int) bool {
		if cs[i].Score != cs[j].Score {
			return cs[i].Score > cs[j].Score
		}
		if cs[i].Likes != cs[j].Likes {
			return cs[i].Likes > cs[j].Likes
		}
		return cs[i].Text < cs[j].Text
	})
	if len(cs) > n {
		cs = cs[:n]
	}
	return cs
}

// topExamples ranks by likes descending then text ascending
func topExamples(es []domain.CommentExample, n int) []domain.CommentExample {
	sorted := append([]domain.CommentExample{}, es...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Likes != sorted[j].Likes {
			return sorted[i].Likes > sorted[j].Likes
		}
		return sorted[i].Text < sorted[j].Text
	})
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	return sorted
}
