// Package table provides the in-memory tabular abstraction the normalizers
// consume, together with CSV and Excel loaders for marketplace exports.
package table

import (
	"strings"
)

// Table is a raw, untyped table: a header row and string cells.
// Rows may be shorter than Columns; missing cells read as "".
type Table struct {
	Name    string
	Columns []string
	Rows    [][]string
}

// New creates a table from a header and rows. Header cells are trimmed.
func New(name string, columns []string, rows [][]string) *Table {
	cols := make([]string, len(columns))
	for i, c := range columns {
		cols[i] = strings.TrimSpace(strings.TrimPrefix(c, "\ufeff"))
	}
	return &Table{Name: name, Columns: cols, Rows: rows}
}

// Len returns the number of data rows
func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.Rows)
}

// Index returns the position of column name, or -1
func (t *Table) Index(name string) int {
	for i, c := range t.Columns {
		if c == name {
			return i
		}
	}
	return -1
}

// Cell returns the value at row i, column position col, or "" when out of range
func (t *Table) Cell(i, col int) string {
	if col < 0 || i < 0 || i >= len(t.Rows) {
		return ""
	}
	row := t.Rows[i]
	if col >= len(row) {
		return ""
	}
	return row[col]
}
