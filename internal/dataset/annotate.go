package dataset

import (
	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"

	"github.com/sells-group/commission-cli/internal/model"
)

// Annotate returns a new table holding the source columns followed by the
// derived commission columns. rows must be index-aligned with t.Rows; source
// cells are copied untouched and row order is preserved. Derived values are
// written at full precision so per-row columns add up to the order total.
func Annotate(t *Table, rows []model.Derived) (*Table, error) {
	if len(rows) != len(t.Rows) {
		return nil, eris.Errorf("dataset: annotate %d rows with %d results", len(t.Rows), len(rows))
	}

	width := len(t.Header)
	header := make([]string, 0, width+len(DerivedColumns))
	header = append(header, t.Header...)
	header = append(header, DerivedColumns...)

	out := make([][]string, len(t.Rows))
	for r, src := range t.Rows {
		row := make([]string, width, len(header))
		copy(row, src)
		out[r] = append(row, derivedCells(rows[r])...)
	}

	return &Table{Header: header, Rows: out, Lines: t.Lines, Derived: width}, nil
}

func derivedCells(d model.Derived) []string {
	return []string{
		d.Type.Label(),
		d.DiscountRatio.String(),
		d.MarkupRate.String(),
		d.Markup.String(),
		d.GoldWeight.String(),
		d.LaborFee.String(),
		d.OldMaterial.String(),
		d.OrderTotal.String(),
	}
}

// FormatMoney renders an amount rounded to cents without trailing zeros.
func FormatMoney(v decimal.Decimal) string { return v.Round(2).String() }

// FormatRatio renders a ratio or rate to four places without trailing zeros.
func FormatRatio(v decimal.Decimal) string { return v.Round(4).String() }
