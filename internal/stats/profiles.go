package stats

import (
	"math"

	"autoreport/pkg/contracts/domain"
)

// ageBands are the launch-age buckets, each covering (prev upper, upper] days
var ageBands = []struct {
	label string
	upper float64
}{
	{"<1mo", 30},
	{"1-3mo", 90},
	{"3-6mo", 180},
	{"6-12mo", 365},
	{">12mo", math.Inf(1)},
}

// ratingBands are the star buckets: [0,2], (2,3], (3,4], (4,5]
var ratingBands = []struct {
	label string
	upper float64
}{
	{"1-2 stars", 2},
	{"2-3 stars", 3},
	{"3-4 stars", 4},
	{"4-5 stars", 5},
}

// LaunchProfile buckets listings with a positive days_since_launch by age.
// Listings without a parsed launch date are ignored.
func LaunchProfile(t domain.ListingTable) domain.LaunchProfile {
	out := domain.LaunchProfile{AgeDistribution: []domain.AgeBand{}}

	var valid []domain.Listing
	for _, l := range t.Rows {
		if l.DaysSinceLaunch != nil && *l.DaysSinceLaunch > 0 {
			valid = append(valid, l)
		}
	}
	if len(valid) == 0 {
		return out
	}

	grouped := make([][]domain.Listing, len(ageBands))
	days := make([]float64, len(valid))
	for i, l := range valid {
		d := float64(*l.DaysSinceLaunch)
		days[i] = d
		for k, band := range ageBands {
			if d <= band.upper {
				grouped[k] = append(grouped[k], l)
				break
			}
		}
	}

	for k, band := range ageBands {
		out.AgeDistribution = append(out.AgeDistribution, domain.AgeBand{
			Age:          band.label,
			ProductCount: len(grouped[k]),
			TotalSales:   sum(values(grouped[k], sales)),
			AvgRating:    mean(values(grouped[k], rating)),
		})
	}
	out.AvgDaysSinceLaunch = mean(days)
	out.MedianDaysSinceLaunch = median(days)
	return out
}

// RatingProfile buckets listings by star rating and relates reviews to sales
func RatingProfile(t domain.ListingTable) domain.RatingProfile {
	out := domain.RatingProfile{RatingDistribution: []domain.RatingBand{}}
	if t.Len() == 0 || !t.Fields.Has(domain.FieldRating) {
		return out
	}

	hasSales := t.Fields.Has(domain.FieldSales)
	totalSales := sumIf(t, domain.FieldSales, sales)

	counts := make([]int, len(ratingBands))
	bandSales := make([]float64, len(ratingBands))
	for _, l := range t.Rows {
		for k, band := range ratingBands {
			if l.Rating <= band.upper {
				counts[k]++
				bandSales[k] += l.Sales
				break
			}
		}
	}

	for k, band := range ratingBands {
		share := 0.0
		if hasSales {
			share = ratio(bandSales[k], totalSales)
		}
		out.RatingDistribution = append(out.RatingDistribution, domain.RatingBand{
			Category:     band.label,
			ProductCount: counts[k],
			SalesShare:   share,
		})
	}

	ratings := values(t.Rows, rating)
	out.AvgRating = mean(ratings)
	out.MedianRating = median(ratings)
	if hasSales && t.Fields.Has(domain.FieldReviews) {
		out.ReviewToSalesRatio = ratio(sumIf(t, domain.FieldReviews, reviews), totalSales)
	}
	return out
}
