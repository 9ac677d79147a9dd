package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apierrors "autoreport/internal/errors"
	"autoreport/pkg/contracts/domain"
)

func TestResolve(t *testing.T) {
	tests := []struct {
		name    string
		family  Family
		columns []string
		want    Mapping
	}{
		{
			name:    "english snake case",
			family:  FamilyAmazonSales,
			columns: []string{"asin", "title", "price", "units_sold", "avg_rating"},
			want: Mapping{
				domain.FieldProductID: "asin",
				domain.FieldTitle:     "title",
				domain.FieldPrice:     "price",
				domain.FieldSales:     "units_sold",
				domain.FieldRating:    "avg_rating",
			},
		},
		{
			name:    "case insensitive fallback",
			family:  FamilyAmazonSales,
			columns: []string{"ASIN", "Product Name", " Price "},
			want: Mapping{
				domain.FieldProductID: "ASIN",
				domain.FieldTitle:     "Product Name",
				domain.FieldPrice:     " Price ",
			},
		},
		{
			name:    "chinese export headers",
			family:  FamilyAmazonSales,
			columns: []string{"ASIN", "品牌", "商品标题", "大类目", "月销量", "月销售额($)", "价格($)", "评分数", "评分", "上架时间"},
			want: Mapping{
				domain.FieldProductID:  "ASIN",
				domain.FieldTitle:      "商品标题",
				domain.FieldPrice:      "价格($)",
				domain.FieldSales:      "月销量",
				domain.FieldRevenue:    "月销售额($)",
				domain.FieldRating:     "评分",
				domain.FieldReviews:    "评分数",
				domain.FieldLaunchDate: "上架时间",
				domain.FieldCategory:   "大类目",
				domain.FieldSeller:     "品牌",
			},
		},
		{
			name:    "full width parentheses normalize",
			family:  FamilyAmazonSales,
			columns: []string{"商品标题", "价格（$）"},
			want: Mapping{
				domain.FieldTitle: "商品标题",
				domain.FieldPrice: "价格（$）",
			},
		},
		{
			name:    "tiktok reviews",
			family:  FamilyTikTokReviews,
			columns: []string{"评分", "评论", "日期", "SKU"},
			want: Mapping{
				domain.FieldRating:    "评分",
				domain.FieldText:      "评论",
				domain.FieldDate:      "日期",
				domain.FieldProductID: "SKU",
			},
		},
		{
			name:    "reddit upvotes become likes",
			family:  FamilyRedditComments,
			columns: []string{"body", "upvotes", "author"},
			want: Mapping{
				domain.FieldText:   "body",
				domain.FieldLikes:  "upvotes",
				domain.FieldUserID: "author",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ResolveFamily(tt.columns, tt.family)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestResolve_AliasPriority(t *testing.T) {
	// "title" is listed before "name", so it wins regardless of column order
	got, err := ResolveFamily([]string{"name", "title"}, FamilyAmazonSales)
	require.NoError(t, err)
	assert.Equal(t, "title", got[domain.FieldTitle])

	// an exact match of the same alias beats a case-folded one
	got, err = ResolveFamily([]string{"Title", "title"}, FamilyAmazonSales)
	require.NoError(t, err)
	assert.Equal(t, "title", got[domain.FieldTitle])

	// permutations resolve identically
	cols := []string{"likes", "text", "date"}
	first, err := ResolveFamily(cols, FamilyTikTokComments)
	require.NoError(t, err)
	second, err := ResolveFamily([]string{"date", "likes", "text"}, FamilyTikTokComments)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestResolve_MissingRequired(t *testing.T) {
	tests := []struct {
		family Family
		field  string
	}{
		{FamilyTikTokComments, domain.FieldText},
		{FamilyAmazonReviews, domain.FieldText},
		{FamilyTikTokReviews, domain.FieldText},
		{FamilyAmazonSales, domain.FieldTitle},
		{FamilyTikTokSales, domain.FieldTitle},
	}

	for _, tt := range tests {
		t.Run(string(tt.family), func(t *testing.T) {
			_, err := ResolveFamily([]string{"unrelated", "columns"}, tt.family)
			require.Error(t, err)
			assert.True(t, apierrors.IsSchemaError(err))

			var schemaErr *apierrors.SchemaError
			require.ErrorAs(t, err, &schemaErr)
			assert.Equal(t, string(tt.family), schemaErr.Family)
			assert.Equal(t, tt.field, schemaErr.Field)
			assert.Equal(t, []string{"unrelated", "columns"}, schemaErr.Columns)
		})
	}
}

func TestResolve_OptionalFieldsAbsent(t *testing.T) {
	got, err := ResolveFamily([]string{"comment"}, FamilyTikTokComments)
	require.NoError(t, err)

	_, ok := got.Column(domain.FieldLikes)
	assert.False(t, ok)
	assert.Equal(t, []string{domain.FieldText}, got.Fields(tiktokComments))
}

func TestResolveFamily_Unknown(t *testing.T) {
	_, err := ResolveFamily([]string{"a"}, Family("instagram"))
	require.Error(t, err)
	assert.False(t, apierrors.IsSchemaError(err))
}

func TestFamiliesRegistered(t *testing.T) {
	for _, f := range Families() {
		am, ok := Lookup(f)
		require.True(t, ok, f)
		assert.Equal(t, f, am.Family)

		required := 0
		for _, fa := range am.Fields {
			if fa.Required {
				required++
			}
		}
		assert.Equal(t, 1, required, "%s has exactly one required field", f)
	}

	assert.Equal(t, FamilyTikTokSales, ListingFamily(domain.PlatformTikTok))
	assert.Equal(t, FamilyAmazonReviews, ReviewFamily(domain.PlatformAmazon))
	assert.Equal(t, FamilyRedditComments, CommentFamily(domain.SourceReddit))
}
