// Package stats computes descriptive market statistics over canonical
// listing tables. Every function is pure and returns a zero-valued structure,
// never an error, when its input is empty or lacks the columns it needs.
package stats

import (
	"autoreport/pkg/contracts/domain"
)

const (
	// DefaultNumBands is the default number of equal-frequency price bands
	DefaultNumBands = 5
	// SweetSpotBuckets is the number of equal-width price buckets scanned for sweet spots
	SweetSpotBuckets = 10
	// SweetSpotCount is how many sweet spots are reported
	SweetSpotCount = 3
	// TopFeatures is how many feature tags are reported
	TopFeatures = 20
	// CorrelationThreshold separates positive/negative from weak relationships
	CorrelationThreshold = 0.3
)

// Options configures Compute
type Options struct {
	NumBands  int
	Extractor FeatureExtractor
}

func (o Options) withDefaults() Options {
	if o.NumBands <= 0 {
		o.NumBands = DefaultNumBands
	}
	if o.Extractor == nil {
		o.Extractor = KeywordFeatureExtractor{}
	}
	return o
}

// Compute runs every listing statistic for one platform table. An empty
// table yields the empty statistics block.
func Compute(t domain.ListingTable, opts Options) domain.PlatformStats {
	if t.Len() == 0 {
		return domain.NewPlatformStats()
	}
	opts = opts.withDefaults()
	return domain.PlatformStats{
		MarketOverview:     MarketOverview(t),
		Competition:        Competition(t),
		PriceBands:         PriceBands(t, opts.NumBands),
		PriceVsSales:       PriceVsSales(t),
		FeaturePerformance: FeaturePerformance(t, opts.Extractor),
		LaunchProfile:      LaunchProfile(t),
		RatingProfile:      RatingProfile(t),
	}
}

// CrossPlatform compares two platforms. It returns nil unless both tables
// have at least one row.
func CrossPlatform(a, b domain.ListingTable) *domain.CrossPlatform {
	if a.Len() == 0 || b.Len() == 0 {
		return nil
	}

	cp := &domain.CrossPlatform{
		VolumeComparison: make(map[string]float64, 4),
		PriceComparison:  make(map[string]float64, 2),
		RatingComparison: make(map[string]float64, 2),
	}
	for _, t := range []domain.ListingTable{a, b} {
		prefix := string(t.Platform) + "_"
		cp.VolumeComparison[prefix+"products"] = float64(t.Len())
		cp.VolumeComparison[prefix+"sales"] = sumIf(t, domain.FieldSales, sales)
		cp.PriceComparison[prefix+"avg"] = meanIf(t, domain.FieldPrice, price)
		cp.RatingComparison[prefix+"avg"] = meanIf(t, domain.FieldRating, rating)
	}
	return cp
}
