package voc

import (
	"math"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"unicode/utf8"

	"autoreport/pkg/contracts/domain"
)

const (
	// MustHaveMinRating is the lowest rating scanned for must-have factors
	MustHaveMinRating = 4
	// PitfallMaxRating is the highest rating scanned for critical pitfalls
	PitfallMaxRating = 2
	// TopInsights caps factors, pitfalls, scenarios and unmet needs
	TopInsights = 5
	// InsightExamples is how many example reviews a factor or pitfall keeps
	InsightExamples = 3
	// ExampleRunes truncates example review text
	ExampleRunes = 200
	// TopProducts is how many products are listed per platform
	TopProducts = 5

	needWindowBefore = 50
	needWindowAfter  = 100
)

var needPatterns = []*regexp.Regexp{
	regexp.MustCompile(`(?i)wish (?:it|there) (?:was|were|had)`),
	regexp.MustCompile(`(?i)would be (?:better|nice|great) if`),
	regexp.MustCompile(`(?i)should have`),
	regexp.MustCompile(`(?i)needs? (?:to|more)`),
	regexp.MustCompile(`(?i)missing`),
	regexp.MustCompile(`(?i)lacking`),
	regexp.MustCompile(`(?i)could use`),
}

// labelled is a review together with its labels
type labelled struct {
	review domain.Review
	labels []Label
}

func classifyAll(c Classifier, reviews []domain.Review, keep func(domain.Review) bool) []labelled {
	var out []labelled
	for _, r := range reviews {
		if keep(r) {
			out = append(out, labelled{review: r, labels: c.Classify(r.Text)})
		}
	}
	return out
}

// groupBy collects reviews per label name of one dimension
func groupBy(rows []labelled, dim Dimension) map[string][]domain.Review {
	groups := make(map[string][]domain.Review)
	for _, row := range rows {
		for _, name := range namesIn(row.labels, dim) {
			groups[name] = append(groups[name], row.review)
		}
	}
	return groups
}

func counts(groups map[string][]domain.Review) map[string]int {
	out := make(map[string]int, len(groups))
	for name, rs := range groups {
		out[name] = len(rs)
	}
	return out
}

// ExtractMustHaveFactors finds the factors praised in reviews rated 4 or
// above. Examples rank by (helpful, rating) descending.
func ExtractMustHaveFactors(c Classifier, reviews []domain.Review) []domain.FactorInsight {
	c = orDefault(c)
	out := []domain.FactorInsight{}

	rows := classifyAll(c, reviews, func(r domain.Review) bool { return r.Rating >= MustHaveMinRating })
	groups := groupBy(rows, DimensionFactor)
	n := counts(groups)
	for _, name := range top(sortedNames(n, rankOf(c, DimensionFactor)), TopInsights) {
		out = append(out, domain.FactorInsight{
			Factor:       name,
			MentionCount: n[name],
			Examples:     examples(groups[name], func(r domain.Review) float64 { return r.Rating }),
		})
	}
	return out
}

// ExtractCriticalPitfalls finds the complaints raised in reviews rated 2 or
// below. Examples rank by helpful descending, then the lowest rating first.
func ExtractCriticalPitfalls(c Classifier, reviews []domain.Review) []domain.PitfallInsight {
	c = orDefault(c)
	out := []domain.PitfallInsight{}

	rows := classifyAll(c, reviews, func(r domain.Review) bool { return r.Rating <= PitfallMaxRating })
	groups := groupBy(rows, DimensionPitfall)
	n := counts(groups)
	for _, name := range top(sortedNames(n, rankOf(c, DimensionPitfall)), TopInsights) {
		out = append(out, domain.PitfallInsight{
			Pitfall:      name,
			MentionCount: n[name],
			Examples:     examples(groups[name], func(r domain.Review) float64 { return -r.Rating }),
		})
	}
	return out
}

// ExtractUsageScenarios counts scenario mentions across all reviews and the
// mean rating of the mentioning reviews
func ExtractUsageScenarios(c Classifier, reviews []domain.Review) []domain.ScenarioInsight {
	c = orDefault(c)
	out := []domain.ScenarioInsight{}

	rows := classifyAll(c, reviews, func(domain.Review) bool { return true })
	groups := groupBy(rows, DimensionScenario)
	n := counts(groups)
	for _, name := range top(sortedNames(n, rankOf(c, DimensionScenario)), TopInsights) {
		total := 0.0
		for _, r := range groups[name] {
			total += r.Rating
		}
		out = append(out, domain.ScenarioInsight{
			Scenario:     name,
			MentionCount: n[name],
			AvgRating:    total / float64(n[name]),
		})
	}
	return out
}

// ExtractUnmetNeeds collects the text around wish and need phrases and
// returns the most frequent snippets. Snippets are compared verbatim.
func ExtractUnmetNeeds(reviews []domain.Review) []domain.UnmetNeed {
	out := []domain.UnmetNeed{}

	freq := make(map[string]int)
	for _, r := range reviews {
		for _, snippet := range needSnippets(r.Text) {
			freq[snippet]++
		}
	}
	for _, snippet := range top(sortedNames(freq, func(a, b string) bool { return a < b }), TopInsights) {
		out = append(out, domain.UnmetNeed{Need: snippet, MentionCount: freq[snippet]})
	}
	return out
}

// needSnippets returns one snippet per pattern match, spanning 50 runes
// before and 100 runes after the match
func needSnippets(text string) []string {
	var out []string
	var runes []rune
	for _, re := range needPatterns {
		for _, loc := range re.FindAllStringIndex(text, -1) {
			if runes == nil {
				runes = []rune(text)
			}
			start := utf8.RuneCountInString(text[:loc[0]]) - needWindowBefore
			end := utf8.RuneCountInString(text[:loc[1]]) + needWindowAfter
			if start < 0 {
				start = 0
			}
			if end > len(runes) {
				end = len(runes)
			}
			if s := strings.TrimSpace(string(runes[start:end])); s != "" {
				out = append(out, s)
			}
		}
	}
	return out
}

// ComputeReviewStatistics combines review tables from every platform into the
// keyword insight block. Empty input yields four empty lists.
func ComputeReviewStatistics(c Classifier, tables ...domain.ReviewTable) domain.ReviewStatistics {
	c = orDefault(c)
	var all []domain.Review
	for _, t := range tables {
		all = append(all, t.Rows...)
	}
	if len(all) == 0 {
		return domain.NewReviewStatistics()
	}
	return domain.ReviewStatistics{
		MustHaveFactors:  ExtractMustHaveFactors(c, all),
		CriticalPitfalls: ExtractCriticalPitfalls(c, all),
		UsageScenarios:   ExtractUsageScenarios(c, all),
		UnmetNeeds:       ExtractUnmetNeeds(all),
	}
}

// PlatformReviewStats summarizes one platform's reviews: the distribution of
// rounded star ratings and the products with the most reviews
func PlatformReviewStats(t domain.ReviewTable) domain.PlatformReviewStats {
	out := domain.PlatformReviewStats{
		TotalReviews:       t.Len(),
		RatingDistribution: map[string]int{},
		TopProducts:        []domain.ProductReviewCount{},
	}
	if t.Len() == 0 {
		return out
	}

	total := 0.0
	perProduct := make(map[string]int)
	for _, r := range t.Rows {
		total += r.Rating
		out.RatingDistribution[strconv.Itoa(int(math.Round(r.Rating)))]++
		if r.ProductID != "" {
			perProduct[r.ProductID]++
		}
	}
	out.AvgRating = total / float64(t.Len())

	for _, id := range top(sortedNames(perProduct, func(a, b string) bool { return a < b }), TopProducts) {
		out.TopProducts = append(out.TopProducts, domain.ProductReviewCount{ProductID: id, Count: perProduct[id]})
	}
	return out
}

// examples ranks reviews by helpful votes, then by secondary descending,
// then by text, and keeps InsightExamples truncated examples
func examples(reviews []domain.Review, secondary func(domain.Review) float64) []domain.ReviewExample {
	sorted := append([]domain.Review{}, reviews...)
	sort.SliceStable(sorted, func(i, j int) bool {
		if sorted[i].Helpful != sorted[j].Helpful {
			return sorted[i].Helpful > sorted[j].Helpful
		}
		if si, sj := secondary(sorted[i]), secondary(sorted[j]); si != sj {
			return si > sj
		}
		return sorted[i].Text < sorted[j].Text
	})

	out := make([]domain.ReviewExample, 0, InsightExamples)
	for _, r := range top(sorted, InsightExamples) {
		out = append(out, domain.ReviewExample{
			Text:    truncateRunes(r.Text, ExampleRunes),
			Rating:  r.Rating,
			Helpful: r.Helpful,
		})
	}
	return out
}

func top[T any](xs []T, n int) []T {
	if len(xs) > n {
		return xs[:n]
	}
	return xs
}

func truncateRunes(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}
