package normalize

import (
	"fmt"
	"strings"

	"autoreport/internal/schema"
	"autoreport/internal/table"
	"autoreport/pkg/contracts/domain"
)

// idPrefix is used to generate product ids when an export carries none
var idPrefix = map[domain.Platform]string{
	domain.PlatformAmazon: "AMZ",
	domain.PlatformTikTok: "TT",
}

// Listings normalizes a sales export of one platform
func Listings(t *table.Table, platform domain.Platform, opts Options) (domain.ListingTable, error) {
	family := schema.ListingFamily(platform)
	r, err := resolve(t, family)
	if err != nil {
		return domain.ListingTable{}, err
	}

	var (
		productID  = r.col(domain.FieldProductID)
		title      = r.col(domain.FieldTitle)
		price      = r.col(domain.FieldPrice)
		sales      = r.col(domain.FieldSales)
		revenue    = r.col(domain.FieldRevenue)
		rating     = r.col(domain.FieldRating)
		reviews    = r.col(domain.FieldReviews)
		launchDate = r.col(domain.FieldLaunchDate)
		category   = r.col(domain.FieldCategory)
		seller     = r.col(domain.FieldSeller)
		shop       = r.col(domain.FieldShop)
		size       = r.col(domain.FieldSize)
		weight     = r.col(domain.FieldWeight)
	)

	fields := domain.NewFieldSet(domain.FieldProductID, domain.FieldTitle)
	for _, f := range r.mapping.Fields(mustLookup(family)) {
		fields[f] = true
	}
	deriveRevenue := !r.has(domain.FieldRevenue) && r.has(domain.FieldPrice) && r.has(domain.FieldSales)
	if deriveRevenue {
		fields[domain.FieldRevenue] = true
	}
	if r.has(domain.FieldLaunchDate) {
		fields[domain.FieldDaysSinceLaunch] = true
	}

	now := opts.now()
	rows := make([]domain.Listing, 0, r.tbl.Len())
	rawRatings := make([]float64, 0, r.tbl.Len())

	for i := 0; i < r.tbl.Len(); i++ {
		name := textOf(title.at(i))
		if name == "" {
			continue
		}

		l := domain.Listing{
			ProductID: textOf(productID.at(i)),
			Title:     name,
			Price:     NonNegative(price.at(i)),
			Sales:     NonNegative(sales.at(i)),
			Revenue:   NonNegative(revenue.at(i)),
			Reviews:   NonNegative(reviews.at(i)),
			Category:  textOf(category.at(i)),
			Seller:    textOf(seller.at(i)),
			Shop:      textOf(shop.at(i)),
			Size:      textOf(size.at(i)),
			Weight:    ExtractNumber(weight.at(i)),
			Platform:  platform,
		}
		if l.ProductID == "" {
			l.ProductID = fmt.Sprintf("%s_%d", idPrefix[platform], i)
		}
		if deriveRevenue {
			l.Revenue = l.Price * l.Sales
		}
		if launchDate.ok() {
			if d, ok := ParseDate(launchDate.at(i)); ok {
				days := DaysBetween(d, now)
				l.LaunchDate = &d
				l.DaysSinceLaunch = &days
			}
		}

		rows = append(rows, l)
		rawRatings = append(rawRatings, NumberOrZero(rating.at(i)))
	}

	RescaleRatings(rawRatings, RatingRuleFor(family))
	for i := range rows {
		rows[i].Rating = rawRatings[i]
	}

	return domain.ListingTable{Platform: platform, Fields: fields, Rows: rows}, nil
}

func mustLookup(f schema.Family) schema.AliasMap {
	am, ok := schema.Lookup(f)
	if !ok {
		panic("normalize: unregistered family " + string(f))
	}
	return am
}

// truthy values for boolean cells
var truthy = map[string]bool{
	"true": true, "yes": true, "y": true, "1": true, "t": true,
	"是": true, "vp": true, "verified": true, "verified purchase": true,
}

var falsy = map[string]bool{
	"false": true, "no": true, "n": true, "0": true, "f": true, "否": true,
}

// parseBool reads a yes/no cell; anything unrecognized yields def
func parseBool(s string, def bool) bool {
	key := strings.ToLower(strings.TrimSpace(s))
	switch {
	case truthy[key]:
		return true
	case falsy[key]:
		return false
	default:
		return def
	}
}
