package normalize

import (
	"autoreport/internal/schema"
	"autoreport/internal/table"
	"autoreport/pkg/contracts/domain"
)

// Reviews normalizes a review export of one platform. Rows whose cleaned text
// is shorter than MinReviewLength are dropped.
func Reviews(t *table.Table, platform domain.Platform, _ Options) (domain.ReviewTable, error) {
	family := schema.ReviewFamily(platform)
	r, err := resolve(t, family)
	if err != nil {
		return domain.ReviewTable{}, err
	}

	var (
		text      = r.col(domain.FieldText)
		rating    = r.col(domain.FieldRating)
		helpful   = r.col(domain.FieldHelpful)
		date      = r.col(domain.FieldDate)
		verified  = r.col(domain.FieldVerified)
		productID = r.col(domain.FieldProductID)
		country   = r.col(domain.FieldCountry)
		title     = r.col(domain.FieldTitle)
	)

	fields := domain.NewFieldSet(domain.FieldText, domain.FieldRating, domain.FieldHelpful, domain.FieldVerified)
	for _, f := range r.mapping.Fields(mustLookup(family)) {
		fields[f] = true
	}

	rows := make([]domain.Review, 0, r.tbl.Len())
	rawRatings := make([]float64, 0, r.tbl.Len())

	for i := 0; i < r.tbl.Len(); i++ {
		cleaned := CleanReview(textOf(text.at(i)))
		if !IsValidReview(cleaned) {
			continue
		}

		rv := domain.Review{
			Text:      cleaned,
			Helpful:   NonNegative(helpful.at(i)),
			Verified:  parseBool(verified.at(i), true),
			ProductID: textOf(productID.at(i)),
			Country:   textOf(country.at(i)),
			Title:     textOf(title.at(i)),
			Platform:  platform,
		}
		if d, ok := ParseDate(date.at(i)); ok {
			rv.Date = &d
		}

		rows = append(rows, rv)
		rawRatings = append(rawRatings, NumberOrZero(rating.at(i)))
	}

	RescaleRatings(rawRatings, RatingRuleFor(family))
	for i := range rows {
		rows[i].Rating = rawRatings[i]
	}

	return domain.ReviewTable{Platform: platform, Fields: fields, Rows: rows}, nil
}
