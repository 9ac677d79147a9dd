package normalize

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestParseNumber(t *testing.T) {
	tests := []struct {
		in     string
		want   float64
		wantOK bool
	}{
		{"45", 45, true},
		{"$1,299.50", 1299.5, true},
		{"¥ 88", 88, true},
		{"USD 12.5", 12.5, true},
		{"12%", 12, true},
		{"1.2k", 1200, true},
		{"3.5万", 35000, true},
		{"-4", -4, true},
		{"", 0, false},
		{"nan", 0, false},
		{"abc", 0, false},
		{"Inf", 0, false},
		{"0x1p4", 0, false},
		{"0x10", 0, false},
		{"1_000", 0, false},
		{"1.5e3", 1500, true},
		{".5", 0.5, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseNumber(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}

	assert.Equal(t, 0.0, NonNegative("-4"))
	assert.Equal(t, 1.5, ExtractNumber("1.5 pounds"))
	assert.Equal(t, 0.0, ExtractNumber("light"))
}

func TestParseDate(t *testing.T) {
	want := time.Date(2024, 3, 2, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		in     string
		wantOK bool
	}{
		{"2024-03-02", true},
		{"2024/3/2", true},
		{"03/02/2024", true},
		{"2024年3月2日", true},
		{"20240302", true},
		{"45353", true},
		{"03-02-24", true},
		{"3/2/24", true},
		{"0x1p4", false},
		{"", false},
		{"yesterday", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, ok := ParseDate(tt.in)
			assert.Equal(t, tt.wantOK, ok)
			if ok {
				assert.Equal(t, want.Format("2006-01-02"), got.Format("2006-01-02"))
			}
		})
	}

	ts, ok := ParseDate("1709337600")
	assert.True(t, ok)
	assert.Equal(t, "2024-03-02", ts.Format("2006-01-02"))

	ms, ok := ParseDate("1709337600000")
	assert.True(t, ok)
	assert.True(t, ts.Equal(ms))
}

func TestDaysBetween(t *testing.T) {
	now := time.Date(2024, 7, 1, 12, 0, 0, 0, time.UTC)
	assert.Equal(t, 30, DaysBetween(time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC), now))
	assert.Equal(t, 0, DaysBetween(now.Add(-time.Hour), now))
	assert.Equal(t, -1, DaysBetween(now.Add(time.Hour), now))
}

func TestCleaning(t *testing.T) {
	assert.Equal(t, "so cute", CleanComment("  so   cute 🥰🥰 "))
	assert.Equal(t, "great product", CleanComment("great😀product"))
	assert.Equal(t, "soft hair", CleanRedditComment("soft🔥hair"))
	assert.Equal(t, "nice wig, thanks", CleanReview("nice wig,👍thanks"))
	assert.Equal(t, "wig life", CleanComment("#wig life @user.name"))
	assert.Equal(t, "Wow!! really?? ok..", CleanReview("Wow!!!! really????? ok..."))
	assert.Equal(t, "Mixed??", CleanReview("Mixed!?!?"))
	assert.Equal(t, "no link", CleanReview("no link www.example.com/x"))
}

func TestIsValidComment(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{"love it", true},
		{"好看好看的", true},
		{"love", false},
		{"!!!!!!", false},
		{"DM me for deals", false},
		{"Check out my page", false},
		{"please CLICK LINK now", false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, IsValidComment(tt.in))
		})
	}
}

func TestRescaleRatings(t *testing.T) {
	tenPoint := []float64{9.5, 4, 50, -2}
	RescaleRatings(tenPoint, RatingDivideByTen)
	assert.Equal(t, []float64{0.95, 4, 5, 0}, tenPoint)

	byMax := []float64{10, 5, 0}
	RescaleRatings(byMax, RatingScaleByMax)
	assert.Equal(t, []float64{5, 2.5, 0}, byMax)

	unchanged := []float64{4.5, 3}
	RescaleRatings(unchanged, RatingScaleByMax)
	assert.Equal(t, []float64{4.5, 3}, unchanged)

	clipped := []float64{7, 0.5, 0}
	RescaleRatings(clipped, RatingClip)
	assert.Equal(t, []float64{5, 1, 0}, clipped)

	assert.Equal(t, "divide_by_ten", RatingDivideByTen.String())
}
