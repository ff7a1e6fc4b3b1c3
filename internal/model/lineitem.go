// Package model defines the typed records that flow through a commission run.
package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// State is the transaction state of a line item.
type State string

const (
	StateSale    State = "SALE"
	StateRecycle State = "RECYCLE"
	StateUnknown State = "UNKNOWN" // unrecognized label; matches no classification flag
)

// PricingMethod describes how a line item is priced.
type PricingMethod string

const (
	MethodByPiece  PricingMethod = "BY_PIECE"
	MethodByWeight PricingMethod = "BY_WEIGHT"
	MethodUnknown  PricingMethod = "UNKNOWN"
)

var stateLabels = map[string]State{
	"销售":      StateSale,
	"SALE":    StateSale,
	"回收":      StateRecycle,
	"RECYCLE": StateRecycle,
}

var methodLabels = map[string]PricingMethod{
	"件数":        MethodByPiece,
	"BY_PIECE":  MethodByPiece,
	"重量":        MethodByWeight,
	"BY_WEIGHT": MethodByWeight,
}

// ParseState maps a spreadsheet label (销售/回收 or SALE/RECYCLE) to a State.
// Any other label yields StateUnknown and false.
func ParseState(s string) (State, bool) {
	st, ok := stateLabels[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return StateUnknown, false
	}
	return st, true
}

// ParsePricingMethod maps a spreadsheet label (件数/重量 or BY_PIECE/BY_WEIGHT)
// to a PricingMethod. Any other label yields MethodUnknown and false.
func ParsePricingMethod(s string) (PricingMethod, bool) {
	m, ok := methodLabels[strings.ToUpper(strings.TrimSpace(s))]
	if !ok {
		return MethodUnknown, false
	}
	return m, true
}

// LineItem is one row of the uploaded sales sheet. Amounts that were blank or
// unparsable in the source are zero.
type LineItem struct {
	Row         int // zero-based position in the source dataset
	OrderID     string
	State       State
	Method      PricingMethod
	Category    string
	Salesperson string
	Customer    string

	ListedPrice      decimal.Decimal // 标签价
	FinalPrice       decimal.Decimal // 最终售价
	GoldPrice        decimal.Decimal // 当天金价
	NetGoldPrice     decimal.Decimal // 实销金价（不含工费）
	Weight           decimal.Decimal // 金重
	StandardLaborFee decimal.Decimal // 原精品工费
	RetailLaborFee   decimal.Decimal // 零售工费
	Received         decimal.Decimal // 总实收金额
}

// Is reports whether the item has the given state and pricing method.
func (li LineItem) Is(state State, method PricingMethod) bool {
	return li.State == state && li.Method == method
}

// Order is the set of line items sharing an order id, in source row order.
type Order struct {
	ID    string
	Items []LineItem
}

// FirstRow returns the source position of the order's first line item.
func (o Order) FirstRow() int {
	if len(o.Items) == 0 {
		return -1
	}
	return o.Items[0].Row
}
