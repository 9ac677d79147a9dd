package table

import (
	"bytes"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
	"golang.org/x/text/encoding/simplifiedchinese"
)

func TestReadCSV(t *testing.T) {
	t.Run("strips BOM and trims headers", func(t *testing.T) {
		input := "\ufeff ASIN ,Title,Price\nB001,Wig,45\n,,\nB002,Hat,\n"
		tbl, err := ReadCSV("sales.csv", strings.NewReader(input))
		require.NoError(t, err)

		assert.Equal(t, []string{"ASIN", "Title", "Price"}, tbl.Columns)
		assert.Equal(t, 2, tbl.Len(), "blank rows are dropped")
		assert.Equal(t, "B002", tbl.Cell(1, 0))
		assert.Equal(t, "", tbl.Cell(1, 2))
		assert.Equal(t, "", tbl.Cell(1, 9), "out of range cells read as empty")
	})

	t.Run("decodes GB18030", func(t *testing.T) {
		encoded, err := simplifiedchinese.GB18030.NewEncoder().String("商品标题,价格\n假发,45\n")
		require.NoError(t, err)

		tbl, err := ReadCSV("tk销售.csv", bytes.NewReader([]byte(encoded)))
		require.NoError(t, err)
		assert.Equal(t, []string{"商品标题", "价格"}, tbl.Columns)
		assert.Equal(t, "假发", tbl.Cell(0, 0))
	})

	t.Run("empty input", func(t *testing.T) {
		tbl, err := ReadCSV("empty.csv", strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, 0, tbl.Len())
		assert.Empty(t, tbl.Columns)
	})
}

func TestIndex(t *testing.T) {
	tbl := New("t", []string{"a", "b"}, [][]string{{"1", "2"}, {"3"}})

	assert.Equal(t, 1, tbl.Index("b"))
	assert.Equal(t, -1, tbl.Index("c"))
	assert.Equal(t, "", tbl.Cell(1, 1), "short rows read as empty")
}

func TestLoadXLSX(t *testing.T) {
	tmpDir := t.TempDir()

	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	// Title banner above the real header row
	require.NoError(t, f.SetCellValue(sheet, "A1", "Amazon export 2024-06"))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"ASIN", "商品标题", "价格($)"}))
	require.NoError(t, f.SetSheetRow(sheet, "A3", &[]interface{}{"B001", "Lace Front Wig", 45.5}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"B002", "Bob Wig", 30}))

	path := filepath.Join(tmpDir, "amazon销售.xlsx")
	require.NoError(t, f.SaveAs(path))

	tbl, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"ASIN", "商品标题", "价格($)"}, tbl.Columns)
	require.Equal(t, 2, tbl.Len())
	assert.Equal(t, "Lace Front Wig", tbl.Cell(0, 1))
	assert.Equal(t, "45.5", tbl.Cell(0, 2))
	assert.Equal(t, "amazon销售.xlsx", tbl.Name)
}

func TestReadXLSX_RawDateCells(t *testing.T) {
	f := excelize.NewFile()
	defer f.Close()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"title", "launch_date"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Wig", time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)}))

	buf, err := f.WriteToBuffer()
	require.NoError(t, err)

	tbl, err := ReadXLSX("dates.xlsx", buf)
	require.NoError(t, err)
	require.Equal(t, 1, tbl.Len())
	assert.Equal(t, "45306", tbl.Cell(0, 1), "date cells keep their serial value")
}

func TestDetectFormat(t *testing.T) {
	tests := []struct {
		name    string
		want    Format
		wantErr bool
	}{
		{"sales.csv", FormatCSV, false},
		{"SALES.XLSX", FormatXLSX, false},
		{"legacy.xls", "", true},
		{"notes.pdf", "", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DetectFormat(tt.name)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFindHeaderRow(t *testing.T) {
	assert.Equal(t, -1, findHeaderRow(nil))
	assert.Equal(t, 0, findHeaderRow([][]string{{"text"}, {"hello"}}))
	assert.Equal(t, 1, findHeaderRow([][]string{{"", "banner"}, {"a", "b"}}))
}
