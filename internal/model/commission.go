package model

import (
	"strings"

	"github.com/shopspring/decimal"
)

// CommissionType is the classification label of an order.
type CommissionType string

const (
	TypeA1           CommissionType = "A1" // sale by piece
	TypeA2           CommissionType = "A2" // sale by weight
	TypeA3           CommissionType = "A3" // sale by piece + by weight
	TypeB1           CommissionType = "B1" // sale by weight + recycle by weight
	TypeB2           CommissionType = "B2" // sale by weight + any other recycle mix
	TypeB3           CommissionType = "B3" // sale by piece + recycle by weight
	TypeB4           CommissionType = "B4" // sale by piece + recycle by piece
	TypeUnclassified CommissionType = "UNCLASSIFIED"
)

// AllTypes lists every commission type in report order.
func AllTypes() []CommissionType {
	return []CommissionType{
		TypeA1, TypeA2, TypeA3,
		TypeB1, TypeB2, TypeB3, TypeB4,
		TypeUnclassified,
	}
}

// Label returns the value written to the 提成类型 column.
func (t CommissionType) Label() string {
	if t == TypeUnclassified {
		return "未识别"
	}
	return string(t)
}

// IsA reports whether t belongs to the sale-only family.
func (t CommissionType) IsA() bool { return strings.HasPrefix(string(t), "A") }

// IsB reports whether t belongs to the sale-plus-recycle family.
func (t CommissionType) IsB() bool { return strings.HasPrefix(string(t), "B") }

// Derived holds the computed columns for one line item.
type Derived struct {
	Type          CommissionType
	DiscountRatio decimal.Decimal // 标价折扣率
	MarkupRate    decimal.Decimal // 标价提成率
	Markup        decimal.Decimal // 标价提成
	GoldWeight    decimal.Decimal // 增购金重提成
	LaborFee      decimal.Decimal // 工费提成
	OldMaterial   decimal.Decimal // 旧料提成
	OrderTotal    decimal.Decimal // 整单提成, first row of the order only
}

// Commission returns the row's contribution to its order total.
func (d Derived) Commission() decimal.Decimal {
	return d.Markup.Add(d.GoldWeight).Add(d.LaborFee).Add(d.OldMaterial)
}

// OrderSummary is the per-order aggregate merged onto the order's first row.
type OrderSummary struct {
	OrderID     string          `json:"order_id"`
	Type        CommissionType  `json:"type"`
	FirstRow    int             `json:"first_row"`
	Rows        int             `json:"rows"`
	Salesperson string          `json:"salesperson"`
	Total       decimal.Decimal `json:"total"`
}

// SalespersonSummary is one line of the 销售员汇总 sheet.
type SalespersonSummary struct {
	Salesperson string          `csv:"主销" json:"salesperson"`
	Orders      int             `csv:"订单数" json:"orders"`
	Commission  decimal.Decimal `csv:"整单提成" json:"commission"`
}
