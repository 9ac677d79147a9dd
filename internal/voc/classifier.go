// Package voc extracts voice-of-customer signals from canonical comments and
// reviews. Text is labelled by a Classifier and every aggregation works only
// on those labels, so the keyword dictionaries can be replaced by any other
// labelling strategy.
package voc

import (
	"sort"
	"strings"
)

// Dimension groups labels that answer the same question about a text
type Dimension string

const (
	DimensionSentiment Dimension = "sentiment"
	DimensionUsage     Dimension = "usage"
	DimensionSegment   Dimension = "segment"
	DimensionFactor    Dimension = "factor"
	DimensionPitfall   Dimension = "pitfall"
	DimensionScenario  Dimension = "scenario"
)

// Sentiment and usage label names
const (
	SentimentPositive = "positive"
	SentimentNegative = "negative"
	UsageMentioned    = "mentioned"
)

// dimensionOrder fixes the order Classify emits labels in
var dimensionOrder = []Dimension{
	DimensionSentiment,
	DimensionUsage,
	DimensionSegment,
	DimensionFactor,
	DimensionPitfall,
	DimensionScenario,
}

// Label is one classification of a text. Hits is the number of distinct cues
// that matched and is always positive.
type Label struct {
	Dimension Dimension `json:"dimension"`
	Name      string    `json:"name"`
	Hits      int       `json:"hits"`
}

// Classifier assigns labels to free text. Implementations must be
// deterministic: the same text always yields the same labels.
type Classifier interface {
	Classify(text string) []Label
}

// NameOrderer is implemented by classifiers with a canonical order of label
// names per dimension. Aggregations use it to break ties; without it names
// are ordered alphabetically.
type NameOrderer interface {
	Names(dim Dimension) []string
}

// Category is a named keyword list
type Category struct {
	Name     string
	Keywords []string
}

// Dictionary maps each dimension to its ordered categories
type Dictionary map[Dimension][]Category

// KeywordClassifier labels text by case-insensitive substring matches
// against a Dictionary
type KeywordClassifier struct {
	dict Dictionary
}

// NewKeywordClassifier creates a classifier over dict. Keywords are matched
// lowercased.
func NewKeywordClassifier(dict Dictionary) *KeywordClassifier {
	lowered := make(Dictionary, len(dict))
	for dim, cats := range dict {
		out := make([]Category, len(cats))
		for i, c := range cats {
			kws := make([]string, len(c.Keywords))
			for j, kw := range c.Keywords {
				kws[j] = strings.ToLower(kw)
			}
			out[i] = Category{Name: c.Name, Keywords: kws}
		}
		lowered[dim] = out
	}
	return &KeywordClassifier{dict: lowered}
}

// NewDefaultClassifier creates a KeywordClassifier over DefaultDictionary
func NewDefaultClassifier() *KeywordClassifier {
	return NewKeywordClassifier(DefaultDictionary())
}

// Classify implements Classifier
func (k *KeywordClassifier) Classify(text string) []Label {
	lower := strings.ToLower(text)
	var labels []Label
	for _, dim := range dimensionOrder {
		for _, cat := range k.dict[dim] {
			hits := 0
			for _, kw := range cat.Keywords {
				if kw != "" && strings.Contains(lower, kw) {
					hits++
				}
			}
			if hits > 0 {
				labels = append(labels, Label{Dimension: dim, Name: cat.Name, Hits: hits})
			}
		}
	}
	return labels
}

// Names implements NameOrderer
func (k *KeywordClassifier) Names(dim Dimension) []string {
	cats := k.dict[dim]
	names := make([]string, len(cats))
	for i, c := range cats {
		names[i] = c.Name
	}
	return names
}

// hitsFor returns the hits of the named label, 0 when absent
func hitsFor(labels []Label, dim Dimension, name string) int {
	for _, l := range labels {
		if l.Dimension == dim && l.Name == name {
			return l.Hits
		}
	}
	return 0
}

// namesIn returns the label names of one dimension
func namesIn(labels []Label, dim Dimension) []string {
	var names []string
	for _, l := range labels {
		if l.Dimension == dim {
			names = append(names, l.Name)
		}
	}
	return names
}

// rankOf returns a tie-break rank for label names: the classifier's own
// order when it has one, alphabetical otherwise
func rankOf(c Classifier, dim Dimension) func(a, b string) bool {
	if o, ok := c.(NameOrderer); ok {
		pos := make(map[string]int)
		for i, n := range o.Names(dim) {
			pos[n] = i
		}
		return func(a, b string) bool {
			pa, oka := pos[a]
			pb, okb := pos[b]
			switch {
			case oka && okb && pa != pb:
				return pa < pb
			case oka != okb:
				return oka
			default:
				return a < b
			}
		}
	}
	return func(a, b string) bool { return a < b }
}

// sortedNames orders the keys of counts by count descending, then by less
func sortedNames(counts map[string]int, less func(a, b string) bool) []string {
	names := make([]string, 0, len(counts))
	for n := range counts {
		names = append(names, n)
	}
	sort.Slice(names, func(i, j int) bool {
		if counts[names[i]] != counts[names[j]] {
			return counts[names[i]] > counts[names[j]]
		}
		return less(names[i], names[j])
	})
	return names
}

func orDefault(c Classifier) Classifier {
	if c == nil {
		return NewDefaultClassifier()
	}
	return c
}
