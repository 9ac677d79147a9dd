package stats

import (
	"sort"

	"autoreport/pkg/contracts/domain"
)

// MarketOverview computes headline totals and price/rating summaries
func MarketOverview(t domain.ListingTable) domain.MarketOverview {
	out := domain.MarketOverview{TotalProducts: t.Len()}
	if t.Len() == 0 {
		return out
	}

	out.TotalSales = sumIf(t, domain.FieldSales, sales)
	out.TotalRevenue = sumIf(t, domain.FieldRevenue, revenue)
	out.AvgRating = meanIf(t, domain.FieldRating, rating)

	if t.Fields.Has(domain.FieldPrice) {
		prices := values(t.Rows, price)
		out.AvgPrice = mean(prices)
		out.MedianPrice = median(prices)
		sort.Float64s(prices)
		out.PriceRange = domain.PriceRange{Min: prices[0], Max: prices[len(prices)-1]}
	}
	return out
}

// Competition computes product and seller concentration of sales
func Competition(t domain.ListingTable) domain.CompetitionMetrics {
	var out domain.CompetitionMetrics
	if t.Len() == 0 || !t.Fields.Has(domain.FieldSales) {
		return out
	}

	ranked := append([]domain.Listing(nil), t.Rows...)
	sort.SliceStable(ranked, func(i, j int) bool {
		if ranked[i].Sales != ranked[j].Sales {
			return ranked[i].Sales > ranked[j].Sales
		}
		return ranked[i].ProductID < ranked[j].ProductID
	})

	// Prefix sums over the ranked order keep top10 <= top20 <= total exact.
	var top10, top20, total float64
	for i, l := range ranked {
		total += l.Sales
		if i < 10 {
			top10 += l.Sales
		}
		if i < 20 {
			top20 += l.Sales
		}
	}
	out.Top10Share = clampUnit(ratio(top10, total))
	out.Top20Share = clampUnit(ratio(top20, total))

	avg := total / float64(len(ranked))
	below := 0
	for _, l := range ranked {
		if l.Sales < avg {
			below++
		}
	}
	out.LongTailIndex = float64(below) / float64(len(ranked))

	if seller, ok := sellerOf(t.Fields); ok {
		out.Top10SellerShare, out.UniqueSellers, out.AvgSalesPerSeller = sellerConcentration(ranked, seller, total)
	}
	return out
}

// sellerOf picks the first seller-like field the table carries
func sellerOf(fields domain.FieldSet) (func(domain.Listing) string, bool) {
	switch {
	case fields.Has(domain.FieldSeller):
		return func(l domain.Listing) string { return l.Seller }, true
	case fields.Has(domain.FieldShop):
		return func(l domain.Listing) string { return l.Shop }, true
	default:
		return nil, false
	}
}

func sellerConcentration(rows []domain.Listing, seller func(domain.Listing) string, total float64) (float64, int, float64) {
	bySeller := make(map[string]float64)
	for _, l := range rows {
		name := seller(l)
		if name == "" {
			continue
		}
		bySeller[name] += l.Sales
	}
	if len(bySeller) == 0 {
		return 0, 0, 0
	}

	names := make([]string, 0, len(bySeller))
	for name := range bySeller {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if bySeller[names[i]] != bySeller[names[j]] {
			return bySeller[names[i]] > bySeller[names[j]]
		}
		return names[i] < names[j]
	})

	var top, all float64
	for i, name := range names {
		all += bySeller[name]
		if i < 10 {
			top += bySeller[name]
		}
	}
	return clampUnit(ratio(top, total)), len(names), all / float64(len(names))
}

func clampUnit(v float64) float64 {
	if v > 1 {
		return 1
	}
	if v < 0 {
		return 0
	}
	return v
}
