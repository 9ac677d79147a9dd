package table

import (
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/xuri/excelize/v2"
)

// maxHeaderScan bounds how many leading rows are inspected for the header.
// Marketplace exports often carry a title banner above the real header.
const maxHeaderScan = 20

// ReadXLSX parses the first sheet holding data in an .xlsx workbook.
func ReadXLSX(name string, r io.Reader) (*Table, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", name, err)
	}
	defer f.Close()

	for _, sheet := range f.GetSheetList() {
		// Raw values keep date cells as serial numbers instead of the
		// locale-dependent display format
		rows, err := f.GetRows(sheet, excelize.Options{RawCellValue: true})
		if err != nil {
			return nil, fmt.Errorf("failed to read sheet %q of %s: %w", sheet, name, err)
		}

		headerRow := findHeaderRow(rows)
		if headerRow < 0 {
			continue
		}

		slog.Debug("workbook sheet selected",
			slog.String("file", name),
			slog.String("sheet", sheet),
			slog.Int("header_row", headerRow),
			slog.Int("total_rows", len(rows)))

		return New(name, rows[headerRow], dropBlankRows(rows[headerRow+1:])), nil
	}

	return New(name, nil, nil), nil
}

// findHeaderRow returns the first row with at least two non-empty cells,
// falling back to the first non-empty row for single-column sheets.
func findHeaderRow(rows [][]string) int {
	firstNonEmpty := -1
	for i := 0; i < len(rows) && i < maxHeaderScan; i++ {
		filled := 0
		for _, cell := range rows[i] {
			if strings.TrimSpace(cell) != "" {
				filled++
			}
		}
		if filled >= 2 {
			return i
		}
		if filled == 1 && firstNonEmpty < 0 {
			firstNonEmpty = i
		}
	}
	return firstNonEmpty
}
