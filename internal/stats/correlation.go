package stats

import (
	"fmt"
	"math"
	"sort"

	"autoreport/pkg/contracts/domain"
)

// PriceVsSales reports the Pearson correlation of price and sales and the
// equal-width price buckets with the highest total sales
func PriceVsSales(t domain.ListingTable) domain.PriceVsSales {
	out := domain.NewPriceVsSales()
	if t.Len() == 0 || !t.Fields.Has(domain.FieldPrice) || !t.Fields.Has(domain.FieldSales) {
		return out
	}

	out.Correlation = Pearson(values(t.Rows, price), values(t.Rows, sales))
	out.Relationship = Relationship(out.Correlation)
	out.SweetSpots = SweetSpots(t.Rows, SweetSpotBuckets, SweetSpotCount)
	return out
}

// Pearson returns the correlation coefficient of xs and ys, or 0 when it is
// undefined (fewer than two points or a constant series)
func Pearson(xs, ys []float64) float64 {
	n := len(xs)
	if n < 2 || n != len(ys) {
		return 0
	}

	mx, my := mean(xs), mean(ys)
	var cov, vx, vy float64
	for i := range xs {
		dx, dy := xs[i]-mx, ys[i]-my
		cov += dx * dy
		vx += dx * dx
		vy += dy * dy
	}
	if vx == 0 || vy == 0 {
		return 0
	}

	r := cov / math.Sqrt(vx*vy)
	return math.Max(-1, math.Min(1, r))
}

// Relationship labels a correlation coefficient
func Relationship(r float64) string {
	switch {
	case r > CorrelationThreshold:
		return domain.RelationshipPositive
	case r < -CorrelationThreshold:
		return domain.RelationshipNegative
	default:
		return domain.RelationshipWeak
	}
}

type bucket struct {
	index int
	lo    float64
	hi    float64
	sales float64
	count int
}

// SweetSpots splits [min price, max price] into numBuckets equal-width
// buckets and returns the top non-empty buckets by total sales, ties going to
// the cheaper bucket
func SweetSpots(rows []domain.Listing, numBuckets, top int) []domain.SweetSpot {
	spots := []domain.SweetSpot{}
	if len(rows) == 0 || numBuckets <= 0 {
		return spots
	}

	minP, maxP := rows[0].Price, rows[0].Price
	for _, l := range rows[1:] {
		minP = math.Min(minP, l.Price)
		maxP = math.Max(maxP, l.Price)
	}

	width := (maxP - minP) / float64(numBuckets)
	if width == 0 {
		numBuckets = 1
	}

	buckets := make([]bucket, numBuckets)
	for k := range buckets {
		buckets[k] = bucket{index: k, lo: minP + float64(k)*width, hi: minP + float64(k+1)*width}
	}
	buckets[numBuckets-1].hi = maxP

	for _, l := range rows {
		k := 0
		if width > 0 {
			// right-closed buckets: (lo, hi], the first also holding minP
			k = int(math.Ceil((l.Price-minP)/width)) - 1
			if k < 0 {
				k = 0
			}
			if k >= numBuckets {
				k = numBuckets - 1
			}
		}
		buckets[k].sales += l.Sales
		buckets[k].count++
	}

	filled := buckets[:0]
	for _, b := range buckets {
		if b.count > 0 {
			filled = append(filled, b)
		}
	}
	sort.SliceStable(filled, func(i, j int) bool {
		if filled[i].sales != filled[j].sales {
			return filled[i].sales > filled[j].sales
		}
		return filled[i].index < filled[j].index
	})

	for i := 0; i < len(filled) && i < top; i++ {
		b := filled[i]
		spots = append(spots, domain.SweetSpot{
			PriceRange:   fmt.Sprintf("%.2f - %.2f", b.lo, b.hi),
			Min:          b.lo,
			Max:          b.hi,
			TotalSales:   b.sales,
			ProductCount: b.count,
		})
	}
	return spots
}
