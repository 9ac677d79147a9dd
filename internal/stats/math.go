package stats

import (
	"sort"

	"autoreport/pkg/contracts/domain"
)

type accessor func(domain.Listing) float64

func price(l domain.Listing) float64   { return l.Price }
func sales(l domain.Listing) float64   { return l.Sales }
func revenue(l domain.Listing) float64 { return l.Revenue }
func rating(l domain.Listing) float64  { return l.Rating }
func reviews(l domain.Listing) float64 { return l.Reviews }

func values(rows []domain.Listing, get accessor) []float64 {
	out := make([]float64, len(rows))
	for i, r := range rows {
		out[i] = get(r)
	}
	return out
}

func sum(xs []float64) float64 {
	total := 0.0
	for _, x := range xs {
		total += x
	}
	return total
}

func mean(xs []float64) float64 {
	if len(xs) == 0 {
		return 0
	}
	return sum(xs) / float64(len(xs))
}

// median returns the middle value, averaging the two middle values for even
// lengths. xs is not modified.
func median(xs []float64) float64 {
	n := len(xs)
	if n == 0 {
		return 0
	}
	sorted := append([]float64(nil), xs...)
	sort.Float64s(sorted)
	if n%2 == 1 {
		return sorted[n/2]
	}
	return (sorted[n/2-1] + sorted[n/2]) / 2
}

// quantile uses linear interpolation between closest ranks; sorted must be ascending
func quantile(sorted []float64, q float64) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	pos := q * float64(n-1)
	lo := int(pos)
	if lo >= n-1 {
		return sorted[n-1]
	}
	frac := pos - float64(lo)
	return sorted[lo] + frac*(sorted[lo+1]-sorted[lo])
}

func sumIf(t domain.ListingTable, field string, get accessor) float64 {
	if !t.Fields.Has(field) {
		return 0
	}
	return sum(values(t.Rows, get))
}

func meanIf(t domain.ListingTable, field string, get accessor) float64 {
	if !t.Fields.Has(field) {
		return 0
	}
	return mean(values(t.Rows, get))
}

func ratio(num, den float64) float64 {
	if den == 0 {
		return 0
	}
	return num / den
}
