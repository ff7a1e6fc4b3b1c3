package dataset

import "github.com/shopspring/decimal"

// Stats is the pre-calculation preview of an uploaded sheet.
type Stats struct {
	Rows          int             `json:"rows"`
	Orders        int             `json:"orders"`
	TotalReceived decimal.Decimal `json:"total_received"`
	Missing       []string        `json:"missing_columns,omitempty"`
}

// Describe computes preview figures without requiring a valid schema. Orders
// is 0 when the order id column is absent.
func Describe(t *Table) Stats {
	s := Stats{Rows: len(t.Rows), TotalReceived: decimal.Zero}
	if se, ok := IsSchemaError(Validate(t)); ok {
		s.Missing = se.Missing
	}

	if t.Has(ColOrderID) {
		seen := make(map[string]struct{})
		for _, id := range t.Column(ColOrderID) {
			if id != "" {
				seen[id] = struct{}{}
			}
		}
		s.Orders = len(seen)
	}
	if t.Has(ColReceived) {
		for _, v := range t.Column(ColReceived) {
			s.TotalReceived = s.TotalReceived.Add(ParseAmount(v))
		}
	}
	return s
}
