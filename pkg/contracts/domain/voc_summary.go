package domain

// VOCSummary is the voice-of-customer document handed to report synthesis
type VOCSummary struct {
	Timestamp string          `json:"timestamp"`
	Stage2    CommentInsights `json:"stage2_comments"`
	Stage3    ReviewInsights  `json:"stage3_reviews"`
}

// CommentInsights aggregates community comments across sources
type CommentInsights struct {
	PotentialReasonsToBuy    []CommentCandidate    `json:"potential_reasons_to_buy"`
	PotentialReasonsNotToBuy []CommentCandidate    `json:"potential_reasons_not_to_buy"`
	UsageScenarios           []CommentExample      `json:"usage_scenarios"`
	UserSegments             []UserSegment         `json:"user_segments"`
	TotalComments            int                   `json:"total_comments"`
	BySource                 map[CommentSource]int `json:"by_source"`
	TotalLikes               float64               `json:"total_likes"`
	AvgLikes                 float64               `json:"avg_likes"`
	TopByLikes               []CommentExample      `json:"top_by_likes"`
}

// CommentCandidate is a comment with a net sentiment score
type CommentCandidate struct {
	Text   string        `json:"text"`
	Likes  float64       `json:"likes"`
	Score  int           `json:"score"`
	Source CommentSource `json:"source"`
}

// CommentExample is a comment quoted as evidence
type CommentExample struct {
	Text   string        `json:"text"`
	Likes  float64       `json:"likes"`
	Source CommentSource `json:"source"`
}

// UserSegment groups comments that mention a buyer profile
type UserSegment struct {
	Segment      string           `json:"segment"`
	MentionCount int              `json:"mention_count"`
	Examples     []CommentExample `json:"examples"`
}

// ReviewStatistics is the keyword-derived review insight block
type ReviewStatistics struct {
	MustHaveFactors  []FactorInsight   `json:"must_have_factors"`
	CriticalPitfalls []PitfallInsight  `json:"critical_pitfalls"`
	UsageScenarios   []ScenarioInsight `json:"usage_scenarios"`
	UnmetNeeds       []UnmetNeed       `json:"unmet_needs"`
}

// NewReviewStatistics returns the empty review insight block
func NewReviewStatistics() ReviewStatistics {
	return ReviewStatistics{
		MustHaveFactors:  []FactorInsight{},
		CriticalPitfalls: []PitfallInsight{},
		UsageScenarios:   []ScenarioInsight{},
		UnmetNeeds:       []UnmetNeed{},
	}
}

// ReviewInsights is ReviewStatistics plus per-platform review aggregates
type ReviewInsights struct {
	ReviewStatistics
	PlatformComparison map[Platform]PlatformReviewStats `json:"platform_comparison"`
	TotalReviews       int                              `json:"total_reviews"`
	AvgRating          float64                          `json:"avg_rating"`
}

// ReviewExample is a review quoted as evidence
type ReviewExample struct {
	Text    string  `json:"text"`
	Rating  float64 `json:"rating"`
	Helpful float64 `json:"helpful"`
}

// FactorInsight is a purchase factor praised in positive reviews
type FactorInsight struct {
	Factor       string          `json:"factor"`
	MentionCount int             `json:"mention_count"`
	Examples     []ReviewExample `json:"examples"`
}

// PitfallInsight is a complaint raised in negative reviews
type PitfallInsight struct {
	Pitfall      string          `json:"pitfall"`
	MentionCount int             `json:"mention_count"`
	Examples     []ReviewExample `json:"examples"`
}

// ScenarioInsight is a usage scenario mentioned in reviews
type ScenarioInsight struct {
	Scenario     string  `json:"scenario"`
	MentionCount int     `json:"mention_count"`
	AvgRating    float64 `json:"avg_rating"`
}

// UnmetNeed is a wish/need snippet and how often it occurred verbatim
type UnmetNeed struct {
	Need         string `json:"need"`
	MentionCount int    `json:"mention_count"`
}

// PlatformReviewStats summarizes the reviews of one platform
type PlatformReviewStats struct {
	TotalReviews       int                  `json:"total_reviews"`
	AvgRating          float64              `json:"avg_rating"`
	RatingDistribution map[string]int       `json:"rating_distribution"`
	TopProducts        []ProductReviewCount `json:"top_products"`
}

// ProductReviewCount is the number of reviews for one product or SKU
type ProductReviewCount struct {
	ProductID string `json:"product_id"`
	Count     int    `json:"count"`
}
