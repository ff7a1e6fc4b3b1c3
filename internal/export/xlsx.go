// Package export writes commission results as XLSX workbooks and CSV files.
package export

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"github.com/tealeg/xlsx/v2"

	"github.com/sells-group/commission-cli/internal/dataset"
	"github.com/sells-group/commission-cli/internal/model"
)

// Default sheet names.
const (
	DetailSheet  = "提成明细"
	SummarySheet = "销售员汇总"
)

// XLSXOptions names the workbook sheets. Empty names fall back to the
// defaults.
type XLSXOptions struct {
	DetailSheet  string
	SummarySheet string
}

// WriteXLSX writes the annotated detail table and the salesperson summary as
// a two-sheet workbook. Source cells keep their text; derived amounts and
// ratios are written as numbers. A nil summary omits the summary sheet.
func WriteXLSX(w io.Writer, annotated *dataset.Table, summary []model.SalespersonSummary, opts XLSXOptions) error {
	detailName := orDefault(opts.DetailSheet, DetailSheet)
	summaryName := orDefault(opts.SummarySheet, SummarySheet)

	f := xlsx.NewFile()
	detail, err := f.AddSheet(detailName)
	if err != nil {
		return eris.Wrapf(err, "export: add sheet %s", detailName)
	}
	writeStrings(detail.AddRow(), annotated.Header)

	// The first derived column is the type label; the rest are numeric.
	numericFrom := annotated.Derived + 1
	if annotated.Derived == 0 {
		numericFrom = len(annotated.Header)
	}
	for _, src := range annotated.Rows {
		row := detail.AddRow()
		for j, v := range src {
			cell := row.AddCell()
			if j >= numericFrom {
				setNumber(cell, v)
				continue
			}
			cell.SetString(v)
		}
	}

	if summary != nil {
		sheet, err := f.AddSheet(summaryName)
		if err != nil {
			return eris.Wrapf(err, "export: add sheet %s", summaryName)
		}
		writeStrings(sheet.AddRow(), SummaryHeader)
		for _, s := range summary {
			row := sheet.AddRow()
			row.AddCell().SetString(s.Salesperson)
			row.AddCell().SetInt(s.Orders)
			row.AddCell().SetFloat(s.Commission.Round(2).InexactFloat64())
		}
	}

	if err := f.Write(w); err != nil {
		return eris.Wrap(err, "export: write workbook")
	}
	return nil
}

// SummaryHeader is the column row of the salesperson summary.
var SummaryHeader = []string{"主销", "订单数", "整单提成"}

func writeStrings(row *xlsx.Row, values []string) {
	for _, v := range values {
		row.AddCell().SetString(v)
	}
}

func setNumber(cell *xlsx.Cell, v string) {
	d, err := decimal.NewFromString(v)
	if err != nil {
		cell.SetString(v)
		return
	}
	cell.SetFloat(d.InexactFloat64())
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
