package schema

import (
	"autoreport/pkg/contracts/domain"
)

// Family names one kind of source export
type Family string

const (
	FamilyAmazonSales    Family = "amazon_sales"
	FamilyTikTokSales    Family = "tiktok_sales"
	FamilyTikTokComments Family = "tiktok_comments"
	FamilyRedditComments Family = "reddit_comments"
	FamilyAmazonReviews  Family = "amazon_reviews"
	FamilyTikTokReviews  Family = "tiktok_reviews"
)

// FieldAliases lists the accepted source column names for one logical field,
// in priority order
type FieldAliases struct {
	Field    string
	Aliases  []string
	Required bool
}

// AliasMap is the ordered alias configuration for one family
type AliasMap struct {
	Family Family
	Fields []FieldAliases
}

var amazonSales = AliasMap{
	Family: FamilyAmazonSales,
	Fields: []FieldAliases{
		{Field: domain.FieldProductID, Aliases: []string{"asin", "product_id", "product id", "id", "商品ID"}},
		{Field: domain.FieldTitle, Aliases: []string{"title", "product_title", "product name", "name", "商品标题", "标题", "商品名称"}, Required: true},
		{Field: domain.FieldPrice, Aliases: []string{"price", "unit_price", "list_price", "价格($)", "价格", "售价"}},
		{Field: domain.FieldSales, Aliases: []string{"sales", "units_sold", "quantity", "qty", "月销量", "销量"}},
		{Field: domain.FieldRevenue, Aliases: []string{"revenue", "total_revenue", "sales_amount", "月销售额($)", "月销售额", "销售额"}},
		{Field: domain.FieldRating, Aliases: []string{"rating", "avg_rating", "average_rating", "star_rating", "评分"}},
		{Field: domain.FieldReviews, Aliases: []string{"reviews", "review_count", "number_of_reviews", "评分数", "评论数"}},
		{Field: domain.FieldLaunchDate, Aliases: []string{"launch_date", "release_date", "available_date", "上架时间", "上架日期"}},
		{Field: domain.FieldCategory, Aliases: []string{"category", "product_category", "department", "小类目", "大类目", "类目"}},
		{Field: domain.FieldSeller, Aliases: []string{"seller", "seller_name", "merchant", "卖家", "卖家名称", "品牌"}},
		{Field: domain.FieldSize, Aliases: []string{"size", "product_size", "dimensions", "尺寸"}},
		{Field: domain.FieldWeight, Aliases: []string{"weight", "product_weight", "shipping_weight", "重量"}},
	},
}

var tiktokSales = AliasMap{
	Family: FamilyTikTokSales,
	Fields: []FieldAliases{
		{Field: domain.FieldProductID, Aliases: []string{"product_id", "product id", "id", "sku", "商品ID"}},
		{Field: domain.FieldTitle, Aliases: []string{"title", "product_title", "product name", "name", "product_name", "商品名称", "商品标题"}, Required: true},
		{Field: domain.FieldPrice, Aliases: []string{"price", "unit_price", "selling_price", "sale_price", "商品售价", "售价", "价格"}},
		{Field: domain.FieldSales, Aliases: []string{"sales", "units_sold", "quantity_sold", "qty", "sold", "销量", "总销量"}},
		{Field: domain.FieldRevenue, Aliases: []string{"revenue", "total_revenue", "gmv", "sales_amount", "总销售额", "销售额"}},
		{Field: domain.FieldRating, Aliases: []string{"rating", "avg_rating", "average_rating", "score", "评分"}},
		{Field: domain.FieldReviews, Aliases: []string{"reviews", "review_count", "number_of_reviews", "评论数"}},
		{Field: domain.FieldLaunchDate, Aliases: []string{"launch_date", "created_at", "publish_date", "上架时间", "发布时间"}},
		{Field: domain.FieldCategory, Aliases: []string{"category", "product_category", "category_name", "商品分类", "类目"}},
		{Field: domain.FieldShop, Aliases: []string{"shop", "shop_name", "store", "store_name", "seller", "店铺名", "店铺名称"}},
		{Field: domain.FieldSize, Aliases: []string{"size", "product_size", "尺寸"}},
		{Field: domain.FieldWeight, Aliases: []string{"weight", "product_weight", "重量"}},
	},
}

var tiktokComments = AliasMap{
	Family: FamilyTikTokComments,
	Fields: []FieldAliases{
		{Field: domain.FieldText, Aliases: []string{"text", "comment", "comment_text", "content", "评论内容", "评论"}, Required: true},
		{Field: domain.FieldLikes, Aliases: []string{"likes", "like_count", "digg_count", "thumbs_up", "点赞数"}},
		{Field: domain.FieldCreatedAt, Aliases: []string{"created_at", "create_time", "timestamp", "date", "发布时间", "评论时间"}},
		{Field: domain.FieldUserID, Aliases: []string{"user_id", "user", "username", "author", "用户昵称", "用户名"}},
	},
}

var redditComments = AliasMap{
	Family: FamilyRedditComments,
	Fields: []FieldAliases{
		{Field: domain.FieldText, Aliases: []string{"text", "body", "comment", "content"}, Required: true},
		{Field: domain.FieldLikes, Aliases: []string{"upvotes", "score", "likes", "ups"}},
		{Field: domain.FieldCreatedAt, Aliases: []string{"created_at", "created_utc", "date", "timestamp"}},
		{Field: domain.FieldUserID, Aliases: []string{"user_id", "author", "username"}},
	},
}

var amazonReviews = AliasMap{
	Family: FamilyAmazonReviews,
	Fields: []FieldAliases{
		{Field: domain.FieldProductID, Aliases: []string{"asin", "product_id", "product id", "型号"}},
		{Field: domain.FieldText, Aliases: []string{"text", "review_text", "review", "body", "comment", "内容", "评论内容"}, Required: true},
		{Field: domain.FieldRating, Aliases: []string{"rating", "star_rating", "stars", "score", "星级", "评分"}},
		{Field: domain.FieldHelpful, Aliases: []string{"helpful", "helpful_count", "helpful_votes", "upvotes", "赞同数"}},
		{Field: domain.FieldDate, Aliases: []string{"date", "review_date", "created_at", "timestamp", "评论时间"}},
		{Field: domain.FieldCountry, Aliases: []string{"country", "location", "marketplace", "国家"}},
		{Field: domain.FieldTitle, Aliases: []string{"title", "review_title", "summary", "标题"}},
		{Field: domain.FieldVerified, Aliases: []string{"verified", "verified_purchase", "VP评论"}},
	},
}

var tiktokReviews = AliasMap{
	Family: FamilyTikTokReviews,
	Fields: []FieldAliases{
		{Field: domain.FieldRating, Aliases: []string{"评分", "星级", "rating", "star"}},
		{Field: domain.FieldText, Aliases: []string{"评论", "评论内容", "content", "review_text"}, Required: true},
		{Field: domain.FieldDate, Aliases: []string{"日期", "时间", "评论时间", "date"}},
		{Field: domain.FieldProductID, Aliases: []string{"SKU", "sku", "变体", "规格"}},
	},
}

var registry = map[Family]AliasMap{
	FamilyAmazonSales:    amazonSales,
	FamilyTikTokSales:    tiktokSales,
	FamilyTikTokComments: tiktokComments,
	FamilyRedditComments: redditComments,
	FamilyAmazonReviews:  amazonReviews,
	FamilyTikTokReviews:  tiktokReviews,
}

// Families returns every known family in a fixed order
func Families() []Family {
	return []Family{
		FamilyAmazonSales,
		FamilyTikTokSales,
		FamilyTikTokComments,
		FamilyRedditComments,
		FamilyAmazonReviews,
		FamilyTikTokReviews,
	}
}

// Lookup returns the alias map of a family
func Lookup(f Family) (AliasMap, bool) {
	m, ok := registry[f]
	return m, ok
}

// ListingFamily returns the listing family of a platform
func ListingFamily(p domain.Platform) Family {
	if p == domain.PlatformTikTok {
		return FamilyTikTokSales
	}
	return FamilyAmazonSales
}

// ReviewFamily returns the review family of a platform
func ReviewFamily(p domain.Platform) Family {
	if p == domain.PlatformTikTok {
		return FamilyTikTokReviews
	}
	return FamilyAmazonReviews
}

// CommentFamily returns the comment family of a source
func CommentFamily(s domain.CommentSource) Family {
	if s == domain.SourceReddit {
		return FamilyRedditComments
	}
	return FamilyTikTokComments
}
