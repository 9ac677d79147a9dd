package stats

import (
	"sort"

	"autoreport/pkg/contracts/domain"
)

// PriceBands partitions listings into up to numBands equal-frequency price
// bands. Quantile edges are linearly interpolated and duplicates collapsed,
// so fewer bands may come back. Each band covers (lo, hi], the first band
// also includes its lower edge, and consecutive bands share an edge: together
// they span [min price, max price] and hold every row exactly once. A bin the
// edges leave empty is folded into the band above it.
func PriceBands(t domain.ListingTable, numBands int) []domain.PriceBand {
	bands := []domain.PriceBand{}
	if t.Len() == 0 || !t.Fields.Has(domain.FieldPrice) {
		return bands
	}
	if numBands <= 0 {
		numBands = DefaultNumBands
	}

	prices := values(t.Rows, price)
	sort.Float64s(prices)
	edges := quantileEdges(prices, numBands)

	// members[k] holds the rows falling into bin k
	members := make([][]domain.Listing, len(edges)-1)
	for _, l := range t.Rows {
		k := binIndex(edges, l.Price)
		members[k] = append(members[k], l)
	}

	lo := edges[0]
	for k, rows := range members {
		if len(rows) == 0 {
			continue
		}
		hi := edges[k+1]
		bands = append(bands, summarizeBand(len(bands), lo, hi, rows, t.Fields))
		lo = hi
	}
	return bands
}

// quantileEdges returns strictly increasing bin edges. When every price is
// equal a single degenerate bin [p, p] is returned.
func quantileEdges(sorted []float64, numBands int) []float64 {
	edges := make([]float64, 0, numBands+1)
	for k := 0; k <= numBands; k++ {
		q := quantile(sorted, float64(k)/float64(numBands))
		if k == numBands {
			q = sorted[len(sorted)-1]
		}
		if len(edges) == 0 || q > edges[len(edges)-1] {
			edges = append(edges, q)
		}
	}
	if len(edges) == 1 {
		edges = append(edges, edges[0])
	}
	return edges
}

// binIndex finds the bin (edges[k], edges[k+1]] holding p; values at or
// below the first edge land in bin 0
func binIndex(edges []float64, p float64) int {
	last := len(edges) - 2
	k := sort.SearchFloat64s(edges, p) - 1
	if k < 0 {
		return 0
	}
	if k > last {
		return last
	}
	return k
}

func summarizeBand(idx int, lo, hi float64, rows []domain.Listing, fields domain.FieldSet) domain.PriceBand {
	band := domain.PriceBand{
		Band:         idx,
		PriceRange:   domain.PriceRange{Min: lo, Max: hi},
		ProductCount: len(rows),
	}
	if fields.Has(domain.FieldSales) {
		band.TotalSales = sum(values(rows, sales))
	}
	if fields.Has(domain.FieldRevenue) {
		band.TotalRevenue = sum(values(rows, revenue))
	}
	if fields.Has(domain.FieldRating) {
		band.AvgRating = mean(values(rows, rating))
	}
	return band
}
