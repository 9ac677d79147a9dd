package domain

import (
	"time"
)

// Platform identifies the marketplace a listing or review came from
type Platform string

const (
	PlatformAmazon Platform = "amazon"
	PlatformTikTok Platform = "tiktok"
)

// CommentSource identifies the community a comment came from
type CommentSource string

const (
	SourceTikTok CommentSource = "tiktok"
	SourceReddit CommentSource = "reddit"
)

// Canonical listing field names
const (
	FieldProductID       = "product_id"
	FieldTitle           = "title"
	FieldPrice           = "price"
	FieldSales           = "sales"
	FieldRevenue         = "revenue"
	FieldRating          = "rating"
	FieldReviews         = "reviews"
	FieldCategory        = "category"
	FieldSeller          = "seller"
	FieldShop            = "shop"
	FieldLaunchDate      = "launch_date"
	FieldDaysSinceLaunch = "days_since_launch"
	FieldSize            = "size"
	FieldWeight          = "weight"
)

// Canonical comment and review field names
const (
	FieldText      = "text"
	FieldLikes     = "likes"
	FieldCreatedAt = "created_at"
	FieldUserID    = "user_id"
	FieldHelpful   = "helpful"
	FieldDate      = "date"
	FieldVerified  = "verified"
	FieldCountry   = "country"
)

// FieldSet records which canonical fields a normalized table actually carries.
// Statistics treat a missing field as zero/empty rather than as an error.
type FieldSet map[string]bool

// NewFieldSet builds a FieldSet from field names
func NewFieldSet(fields ...string) FieldSet {
	fs := make(FieldSet, len(fields))
	for _, f := range fields {
		fs[f] = true
	}
	return fs
}

// Has reports whether the field is present
func (fs FieldSet) Has(field string) bool {
	return fs[field]
}

// Listing represents one canonical product listing row
type Listing struct {
	ProductID       string     `json:"product_id"`
	Title           string     `json:"title"`
	Price           float64    `json:"price"`
	Sales           float64    `json:"sales"`
	Revenue         float64    `json:"revenue"`
	Rating          float64    `json:"rating"`
	Reviews         float64    `json:"reviews"`
	Category        string     `json:"category"`
	Seller          string     `json:"seller"`
	Shop            string     `json:"shop"`
	LaunchDate      *time.Time `json:"launch_date,omitempty"`
	DaysSinceLaunch *int       `json:"days_since_launch,omitempty"`
	Size            string     `json:"size,omitempty"`
	Weight          float64    `json:"weight,omitempty"`
	Platform        Platform   `json:"platform"`
}

// ListingTable is a canonical listing table for one platform
type ListingTable struct {
	Platform Platform  `json:"platform"`
	Fields   FieldSet  `json:"fields"`
	Rows     []Listing `json:"rows"`
}

// Len returns the number of rows
func (t ListingTable) Len() int { return len(t.Rows) }

// Comment represents one canonical community comment
type Comment struct {
	Text      string        `json:"text"`
	Likes     float64       `json:"likes"`
	CreatedAt *time.Time    `json:"created_at,omitempty"`
	UserID    string        `json:"user_id,omitempty"`
	Source    CommentSource `json:"source"`
}

// CommentTable is a canonical comment table for one source
type CommentTable struct {
	Source CommentSource `json:"source"`
	Fields FieldSet      `json:"fields"`
	Rows   []Comment     `json:"rows"`
}

// Len returns the number of rows
func (t CommentTable) Len() int { return len(t.Rows) }

// Review represents one canonical product review
type Review struct {
	Text      string     `json:"text"`
	Rating    float64    `json:"rating"`
	Helpful   float64    `json:"helpful"`
	Date      *time.Time `json:"date,omitempty"`
	Verified  bool       `json:"verified"`
	ProductID string     `json:"product_id,omitempty"`
	Country   string     `json:"country,omitempty"`
	Title     string     `json:"title,omitempty"`
	Platform  Platform   `json:"platform"`
}

// ReviewTable is a canonical review table for one platform
type ReviewTable struct {
	Platform Platform `json:"platform"`
	Fields   FieldSet `json:"fields"`
	Rows     []Review `json:"rows"`
}

// Len returns the number of rows
func (t ReviewTable) Len() int { return len(t.Rows) }
