package normalize

import (
	"autoreport/internal/schema"
)

// MaxRating is the top of the canonical rating scale
const MaxRating = 5.0

// RatingRule is how a family's raw ratings are brought onto the 0-5 scale
type RatingRule int

const (
	// RatingDivideByTen divides each value above 5 by 10 (10-point exports)
	RatingDivideByTen RatingRule = iota
	// RatingScaleByMax rescales every value by 5/max when the observed max exceeds 5
	RatingScaleByMax
	// RatingClip clips non-zero values into [1,5]; unparsable values stay 0
	RatingClip
)

// String implements fmt.Stringer
func (r RatingRule) String() string {
	switch r {
	case RatingDivideByTen:
		return "divide_by_ten"
	case RatingScaleByMax:
		return "scale_by_max"
	case RatingClip:
		return "clip"
	default:
		return "unknown"
	}
}

// RatingRuleFor returns the rescale rule applied to a family
func RatingRuleFor(f schema.Family) RatingRule {
	switch f {
	case schema.FamilyAmazonSales:
		return RatingDivideByTen
	case schema.FamilyTikTokReviews:
		return RatingClip
	default:
		return RatingScaleByMax
	}
}

// RescaleRatings applies rule to raw ratings in place and guarantees every
// result lies in [0,5]. Negative raw values become 0.
func RescaleRatings(ratings []float64, rule RatingRule) {
	maxSeen := 0.0
	for i, v := range ratings {
		if v < 0 {
			ratings[i] = 0
			continue
		}
		if v > maxSeen {
			maxSeen = v
		}
	}

	for i, v := range ratings {
		switch rule {
		case RatingDivideByTen:
			if v > MaxRating {
				v /= 10
			}
		case RatingScaleByMax:
			if maxSeen > MaxRating {
				v = v / maxSeen * MaxRating
			}
		case RatingClip:
			if v > 0 && v < 1 {
				v = 1
			}
		}
		ratings[i] = clampRating(v)
	}
}

func clampRating(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > MaxRating {
		return MaxRating
	}
	return v
}
