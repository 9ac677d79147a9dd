package domain

// MarketSummary is the market statistics document handed to report synthesis.
// Every nested key is always present; CrossPlatform is present only when both
// platforms produced a non-empty listing table.
type MarketSummary struct {
	Timestamp     string                     `json:"timestamp"`
	Platforms     map[Platform]PlatformStats `json:"platforms"`
	CrossPlatform *CrossPlatform             `json:"cross_platform,omitempty"`
}

// PlatformStats groups every listing statistic computed for one platform
type PlatformStats struct {
	MarketOverview     MarketOverview     `json:"market_overview"`
	Competition        CompetitionMetrics `json:"competition"`
	PriceBands         []PriceBand        `json:"price_bands"`
	PriceVsSales       PriceVsSales       `json:"price_vs_sales"`
	FeaturePerformance []FeatureStat      `json:"feature_performance"`
	LaunchProfile      LaunchProfile      `json:"launch_profile"`
	RatingProfile      RatingProfile      `json:"rating_profile"`
}

// PriceRange is a closed price interval
type PriceRange struct {
	Min float64 `json:"min"`
	Max float64 `json:"max"`
}

// MarketOverview represents headline listing aggregates
type MarketOverview struct {
	TotalProducts int        `json:"total_products"`
	TotalSales    float64    `json:"total_sales"`
	TotalRevenue  float64    `json:"total_revenue"`
	AvgPrice      float64    `json:"avg_price"`
	MedianPrice   float64    `json:"median_price"`
	AvgRating     float64    `json:"avg_rating"`
	PriceRange    PriceRange `json:"price_range"`
}

// CompetitionMetrics represents sales concentration across products and sellers
type CompetitionMetrics struct {
	Top10Share        float64 `json:"top10_share"`
	Top20Share        float64 `json:"top20_share"`
	LongTailIndex     float64 `json:"long_tail_index"`
	Top10SellerShare  float64 `json:"top10_seller_share"`
	UniqueSellers     int     `json:"unique_sellers"`
	AvgSalesPerSeller float64 `json:"avg_sales_per_seller"`
}

// PriceBand represents one equal-frequency price segment
type PriceBand struct {
	Band         int        `json:"band"`
	PriceRange   PriceRange `json:"price_range"`
	ProductCount int        `json:"product_count"`
	TotalSales   float64    `json:"total_sales"`
	TotalRevenue float64    `json:"total_revenue"`
	AvgRating    float64    `json:"avg_rating"`
}

// PriceVsSales represents the price/sales relationship
type PriceVsSales struct {
	Correlation  float64     `json:"correlation"`
	Relationship string      `json:"relationship"`
	SweetSpots   []SweetSpot `json:"sweet_spots"`
}

// Relationship labels for PriceVsSales
const (
	RelationshipPositive = "positive"
	RelationshipNegative = "negative"
	RelationshipWeak     = "weak"
)

// SweetSpot is an equal-width price bucket with high total sales
type SweetSpot struct {
	PriceRange   string  `json:"price_range"`
	Min          float64 `json:"min"`
	Max          float64 `json:"max"`
	TotalSales   float64 `json:"total_sales"`
	ProductCount int     `json:"product_count"`
}

// FeatureStat aggregates listings that mention a title feature tag
type FeatureStat struct {
	Feature      string  `json:"feature"`
	ProductCount int     `json:"product_count"`
	TotalSales   float64 `json:"total_sales"`
	AvgPrice     float64 `json:"avg_price"`
	AvgRating    float64 `json:"avg_rating"`
}

// LaunchProfile represents listing age distribution
type LaunchProfile struct {
	AgeDistribution       []AgeBand `json:"age_distribution"`
	AvgDaysSinceLaunch    float64   `json:"avg_days_since_launch"`
	MedianDaysSinceLaunch float64   `json:"median_days_since_launch"`
}

// AgeBand is one launch-age bucket
type AgeBand struct {
	Age          string  `json:"age"`
	ProductCount int     `json:"product_count"`
	TotalSales   float64 `json:"total_sales"`
	AvgRating    float64 `json:"avg_rating"`
}

// RatingProfile represents listing rating distribution
type RatingProfile struct {
	RatingDistribution []RatingBand `json:"rating_distribution"`
	AvgRating          float64      `json:"avg_rating"`
	MedianRating       float64      `json:"median_rating"`
	ReviewToSalesRatio float64      `json:"review_to_sales_ratio"`
}

// RatingBand is one star-rating bucket
type RatingBand struct {
	Category     string  `json:"category"`
	ProductCount int     `json:"product_count"`
	SalesShare   float64 `json:"sales_share"`
}

// CrossPlatform compares two platforms side by side. Keys are prefixed with
// the platform name, e.g. "amazon_products" or "tiktok_avg".
type CrossPlatform struct {
	VolumeComparison map[string]float64 `json:"volume_comparison"`
	PriceComparison  map[string]float64 `json:"price_comparison"`
	RatingComparison map[string]float64 `json:"rating_comparison"`
}

// NewPlatformStats returns the documented empty statistics block
func NewPlatformStats() PlatformStats {
	return PlatformStats{
		PriceBands:         []PriceBand{},
		PriceVsSales:       NewPriceVsSales(),
		FeaturePerformance: []FeatureStat{},
		LaunchProfile:      LaunchProfile{AgeDistribution: []AgeBand{}},
		RatingProfile:      RatingProfile{RatingDistribution: []RatingBand{}},
	}
}

// NewPriceVsSales returns the empty price/sales block
func NewPriceVsSales() PriceVsSales {
	return PriceVsSales{Relationship: RelationshipWeak, SweetSpots: []SweetSpot{}}
}
