// Package normalize turns raw marketplace tables into canonical listing,
// comment and review tables. Only an unresolvable required column is an
// error; every other anomaly falls back to a documented default.
package normalize

import (
	"fmt"
	"strings"
	"time"

	"autoreport/internal/schema"
	"autoreport/internal/table"
)

// Options controls normalization
type Options struct {
	// Now is the clock used for days_since_launch. Defaults to time.Now.
	Now func() time.Time
}

func (o Options) now() time.Time {
	if o.Now == nil {
		return time.Now()
	}
	return o.Now()
}

// column reads one canonical field out of a raw table
type column struct {
	tbl *table.Table
	idx int
}

func (c column) ok() bool { return c.idx >= 0 }

func (c column) at(i int) string {
	if c.idx < 0 {
		return ""
	}
	return strings.TrimSpace(c.tbl.Cell(i, c.idx))
}

type resolved struct {
	tbl     *table.Table
	mapping schema.Mapping
}

func resolve(t *table.Table, f schema.Family) (resolved, error) {
	if t == nil {
		t = table.New("", nil, nil)
	}
	mapping, err := schema.ResolveFamily(t.Columns, f)
	if err != nil {
		return resolved{}, fmt.Errorf("failed to resolve %s columns of %q: %w", f, t.Name, err)
	}
	return resolved{tbl: t, mapping: mapping}, nil
}

func (r resolved) col(field string) column {
	name, ok := r.mapping.Column(field)
	if !ok {
		return column{tbl: r.tbl, idx: -1}
	}
	return column{tbl: r.tbl, idx: r.tbl.Index(name)}
}

func (r resolved) has(field string) bool {
	_, ok := r.mapping.Column(field)
	return ok
}

func textOf(s string) string {
	if isNullish(s) {
		return ""
	}
	return s
}
