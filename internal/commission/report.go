package commission

import (
	"sort"

	"github.com/shopspring/decimal"

	"github.com/sells-group/commission-cli/internal/model"
)

// Report holds run-level totals shown after a calculation.
type Report struct {
	RunID           string                       `json:"run_id"`
	Rows            int                          `json:"rows"`
	Orders          int                          `json:"orders"`
	TotalCommission decimal.Decimal              `json:"total_commission"`
	TotalReceived   decimal.Decimal              `json:"total_received"`
	AverageRate     decimal.Decimal              `json:"average_rate"` // commission / received, 0 without revenue
	AOrders         int                          `json:"a_orders"`
	BOrders         int                          `json:"b_orders"`
	Unsupported     int                          `json:"unsupported_orders"` // classified, but no formula
	ByType          map[model.CommissionType]int `json:"by_type"`
}

func buildReport(runID string, items []model.LineItem, orders []model.OrderSummary) Report {
	r := Report{
		RunID:           runID,
		Rows:            len(items),
		Orders:          len(orders),
		TotalCommission: decimal.Zero,
		TotalReceived:   decimal.Zero,
		AverageRate:     decimal.Zero,
		ByType:          make(map[model.CommissionType]int),
	}

	for _, li := range items {
		r.TotalReceived = r.TotalReceived.Add(li.Received)
	}
	for _, o := range orders {
		r.TotalCommission = r.TotalCommission.Add(o.Total)
		r.ByType[o.Type]++
		switch {
		case o.Type.IsA():
			r.AOrders++
		case o.Type.IsB():
			r.BOrders++
		}
		if !Supported(o.Type) {
			r.Unsupported++
		}
	}
	if r.TotalReceived.IsPositive() {
		r.AverageRate = r.TotalCommission.Div(r.TotalReceived)
	}
	return r
}

// Summarize groups order totals by salesperson: distinct orders and summed
// commission rounded to cents, sorted by salesperson.
//
// Each order counts once, for the salesperson on its first row, because the
// order total sits on that row. Salespeople named only on later rows of an
// order get neither the order nor its commission. Orders whose first row has
// no salesperson are grouped under "" rather than dropped, so the summary
// always adds up to the report total.
func Summarize(res *Result) []model.SalespersonSummary {
	idx := make(map[string]int)
	var out []model.SalespersonSummary
	for _, o := range res.Orders {
		k, ok := idx[o.Salesperson]
		if !ok {
			k = len(out)
			idx[o.Salesperson] = k
			out = append(out, model.SalespersonSummary{Salesperson: o.Salesperson})
		}
		out[k].Orders++
		out[k].Commission = out[k].Commission.Add(o.Total)
	}
	for i := range out {
		out[i].Commission = out[i].Commission.Round(2)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Salesperson < out[j].Salesperson })
	return out
}
