package normalize

import (
	"autoreport/internal/schema"
	"autoreport/internal/table"
	"autoreport/pkg/contracts/domain"
)

// Comments normalizes a comment export of one source. Rows whose cleaned text
// is too short, has no letters or digits, or contains a spam phrase are dropped.
func Comments(t *table.Table, source domain.CommentSource, _ Options) (domain.CommentTable, error) {
	family := schema.CommentFamily(source)
	r, err := resolve(t, family)
	if err != nil {
		return domain.CommentTable{}, err
	}

	clean := CleanComment
	if source == domain.SourceReddit {
		clean = CleanRedditComment
	}

	var (
		text      = r.col(domain.FieldText)
		likes     = r.col(domain.FieldLikes)
		createdAt = r.col(domain.FieldCreatedAt)
		userID    = r.col(domain.FieldUserID)
	)

	fields := domain.NewFieldSet(domain.FieldText, domain.FieldLikes)
	for _, f := range r.mapping.Fields(mustLookup(family)) {
		fields[f] = true
	}

	rows := make([]domain.Comment, 0, r.tbl.Len())
	for i := 0; i < r.tbl.Len(); i++ {
		cleaned := clean(textOf(text.at(i)))
		if !IsValidComment(cleaned) {
			continue
		}

		c := domain.Comment{
			Text:   cleaned,
			Likes:  NonNegative(likes.at(i)),
			UserID: textOf(userID.at(i)),
			Source: source,
		}
		if ts, ok := ParseDate(createdAt.at(i)); ok {
			c.CreatedAt = &ts
		}
		rows = append(rows, c)
	}

	return domain.CommentTable{Source: source, Fields: fields, Rows: rows}, nil
}
