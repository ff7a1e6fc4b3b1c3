// Package dataset converts between sales spreadsheets and typed line items.
package dataset

// Source column headers, as exported by the store's POS system.
const (
	ColOrderID          = "销售单号"
	ColState            = "状态"
	ColMethod           = "计价方式"
	ColListedPrice      = "标签价"
	ColFinalPrice       = "最终售价"
	ColCategory         = "货品种类"
	ColGoldPrice        = "当天金价"
	ColNetGoldPrice     = "实销金价（不含工费）"
	ColWeight           = "金重"
	ColStandardLaborFee = "原精品工费"
	ColRetailLaborFee   = "零售工费"
	ColReceived         = "总实收金额"
	ColSalesperson      = "主销"
	ColCustomer         = "客户姓名"
)

// Derived column headers appended by Annotate.
const (
	ColType          = "提成类型"
	ColDiscountRatio = "标价折扣率"
	ColMarkupRate    = "标价提成率"
	ColMarkup        = "标价提成"
	ColGoldWeight    = "增购金重提成"
	ColLaborFee      = "工费提成"
	ColOldMaterial   = "旧料提成"
	ColOrderTotal    = "整单提成"
)

// RequiredColumns must all be present for a run to start.
var RequiredColumns = []string{
	ColOrderID,
	ColState,
	ColMethod,
	ColListedPrice,
	ColFinalPrice,
	ColCategory,
}

// OptionalColumns are read when present; absent ones read as blank.
var OptionalColumns = []string{
	ColGoldPrice,
	ColNetGoldPrice,
	ColWeight,
	ColStandardLaborFee,
	ColRetailLaborFee,
	ColReceived,
	ColSalesperson,
	ColCustomer,
}

// DerivedColumns are appended to every annotated dataset, in this order.
var DerivedColumns = []string{
	ColType,
	ColDiscountRatio,
	ColMarkupRate,
	ColMarkup,
	ColGoldWeight,
	ColLaborFee,
	ColOldMaterial,
	ColOrderTotal,
}
