package commission

import (
	"github.com/shopspring/decimal"

	"github.com/sells-group/commission-cli/internal/model"
	"github.com/sells-group/commission-cli/internal/rates"
)

// calculator fills the monetary columns of out, which is index-aligned with
// items. Columns it does not touch stay zero.
type calculator func(cat *rates.Catalog, items []model.LineItem, out []model.Derived)

// calculators lists the types with a monetary formula. A3 and B1-B4 are
// classified but have no formula yet; their orders total zero.
var calculators = map[model.CommissionType]calculator{
	model.TypeA1: markupCommission,
	model.TypeA2: goldAndLaborCommission,
}

// Supported reports whether t has a monetary formula.
func Supported(t model.CommissionType) bool {
	_, ok := calculators[t]
	return ok
}

// markupCommission rates every row with a positive listed price by its
// discount ratio.
func markupCommission(cat *rates.Catalog, items []model.LineItem, out []model.Derived) {
	for i, li := range items {
		if !li.ListedPrice.IsPositive() {
			continue
		}
		ratio := li.FinalPrice.Div(li.ListedPrice)
		rate := cat.MarkupRate(li.Category, ratio)
		out[i].DiscountRatio = ratio
		out[i].MarkupRate = rate
		out[i].Markup = li.FinalPrice.Mul(rate)
	}
}

// goldAndLaborCommission applies the gold-weight and labor-fee tables to sale
// rows. Either, both or neither may apply to a row.
func goldAndLaborCommission(_ *rates.Catalog, items []model.LineItem, out []model.Derived) {
	for i, li := range items {
		if li.State != model.StateSale {
			continue
		}
		if li.GoldPrice.IsPositive() && li.NetGoldPrice.IsPositive() {
			diff := li.GoldPrice.Sub(li.NetGoldPrice)
			out[i].GoldWeight = li.Weight.Mul(rates.GoldWeightRate(diff))
		}
		if li.StandardLaborFee.IsPositive() {
			ratio := li.RetailLaborFee.Div(li.StandardLaborFee)
			out[i].LaborFee = li.RetailLaborFee.Mul(rates.LaborFeeRate(ratio))
		}
	}
}

func orderTotal(rows []model.Derived) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Commission())
	}
	return total
}
