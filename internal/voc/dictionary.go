package voc

// DefaultDictionary returns the built-in keyword dictionaries. Each call
// returns a fresh copy.
func DefaultDictionary() Dictionary {
	return Dictionary{
		DimensionSentiment: {
			{Name: SentimentPositive, Keywords: []string{
				"love", "amazing", "perfect", "great", "best", "beautiful",
				"recommend", "worth", "buy", "purchased", "happy",
			}},
			{Name: SentimentNegative, Keywords: []string{
				"bad", "terrible", "worst", "poor", "disappointed", "waste",
				"don't buy", "regret", "cheap", "fake", "scam",
			}},
		},
		DimensionUsage: {
			{Name: UsageMentioned, Keywords: []string{
				"use", "wear", "tried", "works", "applying", "installed",
				"occasion", "event", "party", "daily", "everyday",
			}},
		},
		DimensionSegment: {
			{Name: "beginners", Keywords: []string{"first time", "beginner", "new to", "starting"}},
			{Name: "professionals", Keywords: []string{"professional", "expert", "experienced", "pro"}},
			{Name: "budget_conscious", Keywords: []string{"cheap", "affordable", "budget", "price"}},
			{Name: "quality_seekers", Keywords: []string{"quality", "premium", "high-end", "luxury"}},
		},
		DimensionFactor: {
			{Name: "quality", Keywords: []string{"quality", "well made", "durable", "sturdy", "solid"}},
			{Name: "price_value", Keywords: []string{"worth", "value", "price", "affordable", "reasonable"}},
			{Name: "easy_use", Keywords: []string{"easy", "simple", "convenient", "straightforward", "user-friendly"}},
			{Name: "performance", Keywords: []string{"works", "performs", "effective", "efficient", "reliable"}},
			{Name: "appearance", Keywords: []string{"looks", "beautiful", "attractive", "gorgeous", "pretty"}},
			{Name: "comfort", Keywords: []string{"comfortable", "soft", "cozy", "fit", "smooth"}},
			{Name: "fast_shipping", Keywords: []string{"fast", "quick", "arrived", "delivery", "shipping"}},
		},
		DimensionPitfall: {
			{Name: "poor_quality", Keywords: []string{"poor quality", "cheap", "broke", "broken", "fall apart", "defective"}},
			{Name: "not_as_described", Keywords: []string{"not as described", "misleading", "different", "wrong", "not what"}},
			{Name: "bad_fit", Keywords: []string{"doesn't fit", "too small", "too large", "wrong size", "uncomfortable"}},
			{Name: "delivery_issues", Keywords: []string{"late", "damaged", "never arrived", "shipping", "package"}},
			{Name: "overpriced", Keywords: []string{"overpriced", "too expensive", "not worth", "waste of money"}},
			{Name: "difficult_use", Keywords: []string{"difficult", "hard to use", "complicated", "confusing"}},
			{Name: "bad_smell", Keywords: []string{"smell", "odor", "stink", "chemical"}},
		},
		DimensionScenario: {
			{Name: "daily_use", Keywords: []string{"daily", "everyday", "regular", "routine"}},
			{Name: "special_occasions", Keywords: []string{"wedding", "party", "event", "occasion", "celebration"}},
			{Name: "professional", Keywords: []string{"work", "office", "professional", "business", "meeting"}},
			{Name: "outdoor", Keywords: []string{"outdoor", "outside", "hiking", "camping", "travel"}},
			{Name: "home", Keywords: []string{"home", "house", "indoor", "bedroom", "living room"}},
		},
	}
}
