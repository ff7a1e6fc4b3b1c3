package fetcher

import (
	"os"
	"strconv"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/commission-cli/internal/dataset"
)

// XLSXOptions configures the XLSX reader.
type XLSXOptions struct {
	SheetIndex int    // default 0
	SheetName  string // if set, overrides SheetIndex
	SkipRows   int    // rows above the header to skip
}

// ReadXLSX reads one sheet of an XLSX file and returns all rows as string
// slices. Open failures are I/O errors; undecodable content is a
// dataset.ParseError.
func ReadXLSX(path string, opts XLSXOptions) ([][]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, eris.Wrap(err, "xlsx: open file")
	}
	return ReadXLSXBytes(data, opts)
}

// ReadXLSXBytes reads one sheet of an in-memory XLSX workbook.
func ReadXLSXBytes(data []byte, opts XLSXOptions) ([][]string, error) {
	f, err := xlsx.OpenBinary(data)
	if err != nil {
		return nil, dataset.NewParseError(eris.Wrap(err, "xlsx: decode workbook"))
	}

	sheet, err := getSheet(f, opts)
	if err != nil {
		return nil, dataset.NewParseError(err)
	}

	var rows [][]string
	for i, row := range sheet.Rows {
		if i < opts.SkipRows {
			continue
		}
		if row == nil {
			// Keep the slot so row positions match the sheet.
			rows = append(rows, nil)
			continue
		}
		rows = append(rows, rowToStrings(row))
	}
	return rows, nil
}

func getSheet(f *xlsx.File, opts XLSXOptions) (*xlsx.Sheet, error) {
	if opts.SheetName != "" {
		sheet, ok := f.Sheet[opts.SheetName]
		if !ok {
			return nil, eris.Errorf("xlsx: sheet %q not found", opts.SheetName)
		}
		return sheet, nil
	}

	if opts.SheetIndex < 0 || opts.SheetIndex >= len(f.Sheets) {
		return nil, eris.Errorf("xlsx: sheet index %d out of range (file has %d sheets)", opts.SheetIndex, len(f.Sheets))
	}

	return f.Sheets[opts.SheetIndex], nil
}

func rowToStrings(row *xlsx.Row) []string {
	cells := make([]string, len(row.Cells))
	for j, cell := range row.Cells {
		cells[j] = cellText(cell)
	}
	return cells
}

// cellText returns the stored value of number cells. String() would apply
// the display format and round prices and weights to what the sheet shows.
func cellText(cell *xlsx.Cell) string {
	if cell.Type() != xlsx.CellTypeNumeric {
		return cell.String()
	}
	f, err := cell.Float()
	if err != nil {
		return cell.Value
	}
	return strconv.FormatFloat(f, 'f', -1, 64)
}
