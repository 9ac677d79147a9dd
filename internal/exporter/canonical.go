package exporter

import (
	"autoreport/pkg/contracts/domain"
)

// column renders one canonical field of a row
type column[T any] struct {
	name  string
	value func(T) string
}

var listingColumns = []column[domain.Listing]{
	{domain.FieldProductID, func(l domain.Listing) string { return l.ProductID }},
	{domain.FieldTitle, func(l domain.Listing) string { return l.Title }},
	{domain.FieldPrice, func(l domain.Listing) string { return formatFloat(l.Price) }},
	{domain.FieldSales, func(l domain.Listing) string { return formatFloat(l.Sales) }},
	{domain.FieldRevenue, func(l domain.Listing) string { return formatFloat(l.Revenue) }},
	{domain.FieldRating, func(l domain.Listing) string { return formatFloat(l.Rating) }},
	{domain.FieldReviews, func(l domain.Listing) string { return formatFloat(l.Reviews) }},
	{domain.FieldCategory, func(l domain.Listing) string { return l.Category }},
	{domain.FieldSeller, func(l domain.Listing) string { return l.Seller }},
	{domain.FieldShop, func(l domain.Listing) string { return l.Shop }},
	{domain.FieldLaunchDate, func(l domain.Listing) string { return formatTime(l.LaunchDate) }},
	{domain.FieldDaysSinceLaunch, func(l domain.Listing) string { return formatInt(l.DaysSinceLaunch) }},
	{domain.FieldSize, func(l domain.Listing) string { return l.Size }},
	{domain.FieldWeight, func(l domain.Listing) string { return formatFloat(l.Weight) }},
}

var commentColumns = []column[domain.Comment]{
	{domain.FieldText, func(c domain.Comment) string { return c.Text }},
	{domain.FieldLikes, func(c domain.Comment) string { return formatFloat(c.Likes) }},
	{domain.FieldCreatedAt, func(c domain.Comment) string { return formatTime(c.CreatedAt) }},
	{domain.FieldUserID, func(c domain.Comment) string { return c.UserID }},
}

var reviewColumns = []column[domain.Review]{
	{domain.FieldProductID, func(r domain.Review) string { return r.ProductID }},
	{domain.FieldTitle, func(r domain.Review) string { return r.Title }},
	{domain.FieldText, func(r domain.Review) string { return r.Text }},
	{domain.FieldRating, func(r domain.Review) string { return formatFloat(r.Rating) }},
	{domain.FieldHelpful, func(r domain.Review) string { return formatFloat(r.Helpful) }},
	{domain.FieldDate, func(r domain.Review) string { return formatTime(r.Date) }},
	{domain.FieldVerified, func(r domain.Review) string { return formatBool(r.Verified) }},
	{domain.FieldCountry, func(r domain.Review) string { return r.Country }},
}

// ListingRecords renders a listing table as CSV records. Only the fields the
// table carries are emitted, followed by the platform.
func ListingRecords(t domain.ListingTable) ([]string, [][]string) {
	return render(listingColumns, t.Fields, t.Rows, "platform", func(l domain.Listing) string {
		return string(l.Platform)
	})
}

// CommentRecords renders a comment table as CSV records followed by the
// comment source
func CommentRecords(t domain.CommentTable) ([]string, [][]string) {
	return render(commentColumns, t.Fields, t.Rows, "source", func(c domain.Comment) string {
		return string(c.Source)
	})
}

// ReviewRecords renders a review table as CSV records followed by the
// platform
func ReviewRecords(t domain.ReviewTable) ([]string, [][]string) {
	return render(reviewColumns, t.Fields, t.Rows, "platform", func(r domain.Review) string {
		return string(r.Platform)
	})
}

func render[T any](all []column[T], fields domain.FieldSet, rows []T, tag string, tagValue func(T) string) ([]string, [][]string) {
	cols := make([]column[T], 0, len(all)+1)
	for _, c := range all {
		if fields.Has(c.name) {
			cols = append(cols, c)
		}
	}
	cols = append(cols, column[T]{name: tag, value: tagValue})

	headers := make([]string, len(cols))
	for i, c := range cols {
		headers[i] = c.name
	}

	records := make([][]string, len(rows))
	for i, row := range rows {
		record := make([]string, len(cols))
		for j, c := range cols {
			record[j] = c.value(row)
		}
		records[i] = record
	}
	return headers, records
}
