package stats

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"autoreport/pkg/contracts/domain"
)

// Feature is a type=value tag read from a product title
type Feature struct {
	Type  string
	Value string
}

// String renders the tag as "type=value"
func (f Feature) String() string {
	return f.Type + "=" + f.Value
}

// FeatureExtractor reads feature tags from a title
type FeatureExtractor interface {
	Extract(title string) []Feature
}

// FeatureExtractorFunc adapts a function to FeatureExtractor
type FeatureExtractorFunc func(title string) []Feature

// Extract implements FeatureExtractor
func (f FeatureExtractorFunc) Extract(title string) []Feature { return f(title) }

var lengthPattern = regexp.MustCompile(`(\d+)\s*(?:inch|in\b|")`)

var colorKeywords = []string{"black", "brown", "blonde", "burgundy", "red", "ombre", "highlight"}

// KeywordFeatureExtractor recognizes wig attributes: lace type, glueless,
// texture, length in inches and colour
type KeywordFeatureExtractor struct{}

// Extract implements FeatureExtractor
func (KeywordFeatureExtractor) Extract(title string) []Feature {
	lower := strings.ToLower(title)
	var out []Feature

	if strings.Contains(lower, "lace") {
		value := "lace"
		switch {
		case strings.Contains(lower, "front"):
			value = "lace_front"
		case strings.Contains(lower, "360"):
			value = "360_lace"
		case strings.Contains(lower, "closure"):
			value = "lace_closure"
		}
		out = append(out, Feature{Type: "lace_type", Value: value})
	}

	if strings.Contains(lower, "glueless") {
		out = append(out, Feature{Type: "glueless", Value: "true"})
	}

	switch {
	case strings.Contains(lower, "body wave"):
		out = append(out, Feature{Type: "texture", Value: "body_wave"})
	case strings.Contains(lower, "straight"):
		out = append(out, Feature{Type: "texture", Value: "straight"})
	case strings.Contains(lower, "curly"):
		out = append(out, Feature{Type: "texture", Value: "curly"})
	case strings.Contains(lower, "kinky"):
		out = append(out, Feature{Type: "texture", Value: "kinky"})
	}

	if m := lengthPattern.FindStringSubmatch(lower); m != nil {
		if n, err := strconv.Atoi(m[1]); err == nil {
			out = append(out, Feature{Type: "length", Value: strconv.Itoa(n)})
		}
	}

	for _, color := range colorKeywords {
		if strings.Contains(lower, color) {
			out = append(out, Feature{Type: "color", Value: color})
			break
		}
	}

	return out
}

type featureAgg struct {
	count    int
	sales    float64
	priceSum float64
	rateSum  float64
}

// FeaturePerformance aggregates listings per extracted feature tag and
// returns the TopFeatures tags by total sales, ties broken by tag name
func FeaturePerformance(t domain.ListingTable, extractor FeatureExtractor) []domain.FeatureStat {
	out := []domain.FeatureStat{}
	if t.Len() == 0 {
		return out
	}
	if extractor == nil {
		extractor = KeywordFeatureExtractor{}
	}

	aggs := make(map[string]*featureAgg)
	for _, l := range t.Rows {
		seen := make(map[string]bool)
		for _, f := range extractor.Extract(l.Title) {
			key := f.String()
			if seen[key] {
				continue
			}
			seen[key] = true

			a, ok := aggs[key]
			if !ok {
				a = &featureAgg{}
				aggs[key] = a
			}
			a.count++
			a.sales += l.Sales
			a.priceSum += l.Price
			a.rateSum += l.Rating
		}
	}

	for key, a := range aggs {
		out = append(out, domain.FeatureStat{
			Feature:      key,
			ProductCount: a.count,
			TotalSales:   a.sales,
			AvgPrice:     a.priceSum / float64(a.count),
			AvgRating:    a.rateSum / float64(a.count),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].TotalSales != out[j].TotalSales {
			return out[i].TotalSales > out[j].TotalSales
		}
		return out[i].Feature < out[j].Feature
	})

	if len(out) > TopFeatures {
		out = out[:TopFeatures]
	}
	return out
}
