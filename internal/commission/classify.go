// Package commission classifies orders and computes their commission columns.
package commission

import "github.com/sells-group/commission-cli/internal/model"

// Facts are the four presence flags an order's type is derived from.
type Facts struct {
	SalePiece     bool
	SaleWeight    bool
	RecyclePiece  bool
	RecycleWeight bool
}

// FactsOf scans an order's line items.
func FactsOf(items []model.LineItem) Facts {
	var f Facts
	for _, li := range items {
		switch {
		case li.Is(model.StateSale, model.MethodByPiece):
			f.SalePiece = true
		case li.Is(model.StateSale, model.MethodByWeight):
			f.SaleWeight = true
		case li.Is(model.StateRecycle, model.MethodByPiece):
			f.RecyclePiece = true
		case li.Is(model.StateRecycle, model.MethodByWeight):
			f.RecycleWeight = true
		}
	}
	return f
}

// Type evaluates the classification table. Rows are checked in order and the
// first match wins, so B1 shadows the broader B2 row.
func (f Facts) Type() model.CommissionType {
	sp, sw, rp, rw := f.SalePiece, f.SaleWeight, f.RecyclePiece, f.RecycleWeight
	switch {
	case sp && !sw && !rp && !rw:
		return model.TypeA1
	case !sp && sw && !rp && !rw:
		return model.TypeA2
	case sp && sw && !rp && !rw:
		return model.TypeA3
	case !sp && sw && !rp && rw:
		return model.TypeB1
	case !sp && sw && (rp || rw):
		return model.TypeB2
	case sp && !sw && !rp && rw:
		return model.TypeB3
	case sp && !sw && rp && !rw:
		return model.TypeB4
	default:
		return model.TypeUnclassified
	}
}

// Classify returns the commission type of one order's line items.
func Classify(items []model.LineItem) model.CommissionType {
	return FactsOf(items).Type()
}
