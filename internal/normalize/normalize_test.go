package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	apierrors "autoreport/internal/errors"
	"autoreport/internal/table"
	"autoreport/pkg/contracts/domain"
)

var fixedNow = time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)

func testOptions() Options {
	return Options{Now: func() time.Time { return fixedNow }}
}

func TestListings_WigScenario(t *testing.T) {
	raw := table.New("amazon.csv",
		[]string{"title", "price", "sales", "rating"},
		[][]string{{"Lace Front Wig 20 inch", "45", "100", "9.5"}})

	got, err := Listings(raw, domain.PlatformAmazon, testOptions())
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())

	l := got.Rows[0]
	assert.Equal(t, "AMZ_0", l.ProductID)
	assert.InDelta(t, 0.95, l.Rating, 1e-9)
	assert.Equal(t, 4500.0, l.Revenue, "revenue derived from price*sales")
	assert.Equal(t, domain.PlatformAmazon, l.Platform)
	assert.True(t, got.Fields.Has(domain.FieldRevenue))
	assert.False(t, got.Fields.Has(domain.FieldDaysSinceLaunch))
	assert.Nil(t, l.DaysSinceLaunch)
}

func TestListings_ChineseAmazonExport(t *testing.T) {
	raw := table.New("amazon销售.xlsx",
		[]string{"ASIN", "品牌", "商品标题", "月销量", "月销售额($)", "价格($)", "评分数", "评分", "上架时间"},
		[][]string{
			{"B0A", "Acme", "Body Wave Wig", "1,200", "$35,988.00", "$29.99", "1,024", "4.6", "2024-06-01"},
			{"B0B", "Beta", "", "10", "100", "10", "1", "4", "2024-01-01"},
			{"", "Gamma", "Straight Bob", "abc", "", "19.5", "", "", "not a date"},
		})

	got, err := Listings(raw, domain.PlatformAmazon, testOptions())
	require.NoError(t, err)
	require.Equal(t, 2, got.Len(), "row with empty title is dropped")

	first := got.Rows[0]
	assert.Equal(t, "B0A", first.ProductID)
	assert.Equal(t, 1200.0, first.Sales)
	assert.Equal(t, 35988.0, first.Revenue, "resolved revenue column is not recomputed")
	assert.Equal(t, 29.99, first.Price)
	assert.Equal(t, 1024.0, first.Reviews)
	assert.Equal(t, "Acme", first.Seller)
	require.NotNil(t, first.DaysSinceLaunch)
	assert.Equal(t, 30, *first.DaysSinceLaunch)

	second := got.Rows[1]
	assert.Equal(t, "AMZ_2", second.ProductID, "ids are generated from the raw row index")
	assert.Equal(t, 0.0, second.Sales, "unparsable sales default to 0")
	assert.Equal(t, 0.0, second.Revenue)
	assert.Nil(t, second.DaysSinceLaunch)

	assert.True(t, got.Fields.Has(domain.FieldDaysSinceLaunch))
	assert.True(t, got.Fields.Has(domain.FieldSeller))
	assert.False(t, got.Fields.Has(domain.FieldShop))
}

func TestListings_TikTokRatingScaledByMax(t *testing.T) {
	raw := table.New("tk.csv",
		[]string{"商品名称", "店铺名", "商品售价", "销量", "评分"},
		[][]string{
			{"Wig A", "Shop1", "20", "5", "10"},
			{"Wig B", "Shop2", "30", "5", "5"},
			{"Wig C", "Shop2", "30", "5", "-3"},
		})

	got, err := Listings(raw, domain.PlatformTikTok, testOptions())
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())

	assert.Equal(t, "TT_0", got.Rows[0].ProductID)
	assert.Equal(t, 5.0, got.Rows[0].Rating)
	assert.Equal(t, 2.5, got.Rows[1].Rating)
	assert.Equal(t, 0.0, got.Rows[2].Rating)
	assert.Equal(t, "Shop2", got.Rows[1].Shop)
	assert.Equal(t, 150.0, got.Rows[1].Revenue)
}

func TestListings_MissingTitle(t *testing.T) {
	raw := table.New("x.csv", []string{"price", "sales"}, [][]string{{"1", "2"}})

	_, err := Listings(raw, domain.PlatformAmazon, testOptions())
	require.Error(t, err)
	assert.True(t, apierrors.IsSchemaError(err))
}

func TestListings_Empty(t *testing.T) {
	raw := table.New("x.csv", []string{"title"}, nil)

	got, err := Listings(raw, domain.PlatformTikTok, testOptions())
	require.NoError(t, err)
	assert.NotNil(t, got.Rows)
	assert.Equal(t, 0, got.Len())
}

func TestRatingsAlwaysInRange(t *testing.T) {
	inputs := [][]string{{"9.5"}, {"50"}, {"-1"}, {"abc"}, {"4.2"}, {"100"}, {"0.3"}}

	for _, platform := range []domain.Platform{domain.PlatformAmazon, domain.PlatformTikTok} {
		rows := make([][]string, len(inputs))
		for i, in := range inputs {
			rows[i] = []string{"Wig", in[0]}
		}
		got, err := Listings(table.New("r.csv", []string{"title", "rating"}, rows), platform, testOptions())
		require.NoError(t, err)
		for _, l := range got.Rows {
			assert.GreaterOrEqual(t, l.Rating, 0.0)
			assert.LessOrEqual(t, l.Rating, 5.0)
		}
	}

	for _, platform := range []domain.Platform{domain.PlatformAmazon, domain.PlatformTikTok} {
		rows := make([][]string, len(inputs))
		for i, in := range inputs {
			rows[i] = []string{"a perfectly long review text", in[0]}
		}
		header := []string{"text", "rating"}
		if platform == domain.PlatformTikTok {
			header = []string{"评论", "评分"}
		}
		got, err := Reviews(table.New("r.csv", header, rows), platform, testOptions())
		require.NoError(t, err)
		for _, r := range got.Rows {
			assert.GreaterOrEqual(t, r.Rating, 0.0)
			assert.LessOrEqual(t, r.Rating, 5.0)
		}
	}
}

func TestComments(t *testing.T) {
	raw := table.New("tk视频评论.csv",
		[]string{"评论内容", "点赞数", "发布时间", "用户昵称"},
		[][]string{
			{"I love this wig 😍 #hairgoals @bestie https://x.co/abc", "1.2k", "2024-05-01 10:00:00", "amy"},
			{"follow me for more wigs!!", "99", "", "spam"},
			{"😍😍😍", "5", "", "emoji"},
			{"ok!", "1", "", "short"},
			{"!!!!!! ......", "1", "", "punct"},
			{"Great fit, wearing it daily", "n/a", "bad", ""},
		})

	got, err := Comments(raw, domain.SourceTikTok, testOptions())
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	first := got.Rows[0]
	assert.Equal(t, "I love this wig hairgoals", first.Text)
	assert.Equal(t, 1200.0, first.Likes)
	assert.Equal(t, "amy", first.UserID)
	require.NotNil(t, first.CreatedAt)
	assert.Equal(t, domain.SourceTikTok, first.Source)

	second := got.Rows[1]
	assert.Equal(t, 0.0, second.Likes)
	assert.Nil(t, second.CreatedAt)
}

func TestComments_Reddit(t *testing.T) {
	raw := table.New("reddit.csv",
		[]string{"body", "upvotes", "created_utc"},
		[][]string{{"**Best** wig I own, see [here](http://a.b) /u/someone in /r/wigs ~~lol~~", "12", "1714557600"}})

	got, err := Comments(raw, domain.SourceReddit, testOptions())
	require.NoError(t, err)
	require.Equal(t, 1, got.Len())
	assert.Equal(t, "Best wig I own, see in lol", got.Rows[0].Text)
	assert.Equal(t, 12.0, got.Rows[0].Likes)
	require.NotNil(t, got.Rows[0].CreatedAt)
	assert.Equal(t, 2024, got.Rows[0].CreatedAt.Year())
	assert.Equal(t, domain.SourceReddit, got.Rows[0].Source)
}

func TestComments_MissingText(t *testing.T) {
	raw := table.New("c.csv", []string{"likes"}, [][]string{{"1"}})

	_, err := Comments(raw, domain.SourceTikTok, testOptions())
	require.Error(t, err)

	var schemaErr *apierrors.SchemaError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "tiktok_comments", schemaErr.Family)
}

func TestReviews_Amazon(t *testing.T) {
	raw := table.New("amazon商品评论.xlsx",
		[]string{"ASIN", "标题", "内容", "星级", "赞同数", "评论时间", "VP评论"},
		[][]string{
			{"B0A", "Great", "Really soft hair!!!!! Would buy again", "10", "3", "2024-03-02", "Y"},
			{"B0A", "Meh", "too short", "6", "", "", ""},
			{"B0B", "Bad", "Smells of chemicals, returned it", "2", "7", "", "N"},
		})

	got, err := Reviews(raw, domain.PlatformAmazon, testOptions())
	require.NoError(t, err)
	require.Equal(t, 2, got.Len(), "reviews under ten characters are dropped")

	first := got.Rows[0]
	assert.Equal(t, "Really soft hair!! Would buy again", first.Text)
	assert.Equal(t, 5.0, first.Rating, "scaled by observed max")
	assert.Equal(t, 3.0, first.Helpful)
	assert.True(t, first.Verified)
	assert.Equal(t, "B0A", first.ProductID)
	assert.Equal(t, "Great", first.Title)
	require.NotNil(t, first.Date)

	second := got.Rows[1]
	assert.Equal(t, 1.0, second.Rating)
	assert.False(t, second.Verified)
}

func TestReviews_TikTokClip(t *testing.T) {
	raw := table.New("tiktok店铺评论.csv",
		[]string{"评分", "评论", "SKU"},
		[][]string{
			{"7", "Lovely texture and color", "Black 20\""},
			{"0.5", "Lovely texture and color again", ""},
			{"bad", "Lovely texture, no rating", ""},
		})

	got, err := Reviews(raw, domain.PlatformTikTok, testOptions())
	require.NoError(t, err)
	require.Equal(t, 3, got.Len())

	assert.Equal(t, 5.0, got.Rows[0].Rating)
	assert.Equal(t, 1.0, got.Rows[1].Rating)
	assert.Equal(t, 0.0, got.Rows[2].Rating)
	assert.True(t, got.Rows[2].Verified, "verified defaults to true")
	assert.Equal(t, `Black 20"`, got.Rows[0].ProductID)
}

func TestReviews_Empty(t *testing.T) {
	got, err := Reviews(table.New("r.csv", []string{"review"}, nil), domain.PlatformAmazon, testOptions())
	require.NoError(t, err)
	assert.Equal(t, 0, got.Len())
	assert.NotNil(t, got.Rows)
}

func TestListings_XLSXDateCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"title", "price", "launch_date"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Body Wave Wig", 39.9, time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"Bob Wig", 25, ""}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	raw, err := table.ReadXLSX("amazon销售.xlsx", buf)
	require.NoError(t, err)

	now := time.Date(2024, 3, 15, 0, 0, 0, 0, time.UTC)
	got, err := Listings(raw, domain.PlatformAmazon, Options{Now: func() time.Time { return now }})
	require.NoError(t, err)
	require.Equal(t, 2, got.Len())

	first := got.Rows[0]
	require.NotNil(t, first.LaunchDate, "date cell %q", raw.Cell(0, 2))
	assert.Equal(t, "2024-01-15", first.LaunchDate.Format("2006-01-02"))
	require.NotNil(t, first.DaysSinceLaunch)
	assert.Equal(t, 60, *first.DaysSinceLaunch)
	assert.Equal(t, 39.9, first.Price)

	assert.Nil(t, got.Rows[1].LaunchDate)
	assert.Nil(t, got.Rows[1].DaysSinceLaunch)
}
