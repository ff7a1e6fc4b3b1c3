package dataset

import (
	"strings"

	"github.com/rotisserie/eris"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/sells-group/commission-cli/internal/model"
)

// Validate checks that every required column is present. All missing
// columns are reported at once.
func Validate(t *Table) error {
	var missing []string
	for _, col := range RequiredColumns {
		if !t.Has(col) {
			missing = append(missing, col)
		}
	}
	if len(missing) > 0 {
		return &SchemaError{Missing: missing}
	}
	return nil
}

// Ingest validates the table and converts every row to a typed LineItem.
// Every row needs an order id. Unrecognized state or pricing method labels
// are logged and kept as model.StateUnknown or model.MethodUnknown, which no
// category matches, so only that row's order is left unclassified. Amounts
// that are blank or not numbers read as zero.
func Ingest(t *Table) ([]model.LineItem, error) {
	if err := Validate(t); err != nil {
		return nil, err
	}

	items := make([]model.LineItem, 0, len(t.Rows))
	for r := range t.Rows {
		li, err := ingestRow(t, r)
		if err != nil {
			return nil, err
		}
		items = append(items, li)
	}
	return items, nil
}

func ingestRow(t *Table, r int) (model.LineItem, error) {
	orderID := t.Cell(r, ColOrderID)
	if orderID == "" {
		return model.LineItem{}, &ParseError{Row: t.Line(r), Column: ColOrderID, Err: eris.New("order id is blank")}
	}

	rawState := t.Cell(r, ColState)
	state, ok := model.ParseState(rawState)
	if !ok {
		warnUnknownLabel(t.Line(r), orderID, ColState, rawState)
	}

	rawMethod := t.Cell(r, ColMethod)
	method, ok := model.ParsePricingMethod(rawMethod)
	if !ok {
		warnUnknownLabel(t.Line(r), orderID, ColMethod, rawMethod)
	}

	return model.LineItem{
		Row:         r,
		OrderID:     orderID,
		State:       state,
		Method:      method,
		Category:    t.Cell(r, ColCategory),
		Salesperson: t.Cell(r, ColSalesperson),
		Customer:    t.Cell(r, ColCustomer),

		ListedPrice:      ParseAmount(t.Cell(r, ColListedPrice)),
		FinalPrice:       ParseAmount(t.Cell(r, ColFinalPrice)),
		GoldPrice:        ParseAmount(t.Cell(r, ColGoldPrice)),
		NetGoldPrice:     ParseAmount(t.Cell(r, ColNetGoldPrice)),
		Weight:           ParseAmount(t.Cell(r, ColWeight)),
		StandardLaborFee: ParseAmount(t.Cell(r, ColStandardLaborFee)),
		RetailLaborFee:   ParseAmount(t.Cell(r, ColRetailLaborFee)),
		Received:         ParseAmount(t.Cell(r, ColReceived)),
	}, nil
}

func warnUnknownLabel(line int, orderID, col, value string) {
	zap.L().Warn("dataset: unknown label, order will be unclassified",
		zap.Int("row", line),
		zap.String("order_id", orderID),
		zap.String("column", col),
		zap.String("value", value),
	)
}

var amountReplacer = strings.NewReplacer("¥", "", "￥", "", ",", "", "，", "", " ", "")

// ParseAmount reads a monetary or weight cell. Currency signs and thousands
// separators are ignored; anything unparsable is zero.
func ParseAmount(s string) decimal.Decimal {
	s = amountReplacer.Replace(strings.TrimSpace(s))
	if s == "" || s == "-" {
		return decimal.Zero
	}
	v, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return v
}
