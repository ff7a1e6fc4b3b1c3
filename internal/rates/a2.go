package rates

import "github.com/shopspring/decimal"

// goldWeightSteps bins the differential (day gold price - net gold sale
// price) with upper-inclusive bounds: (-inf,10] (10,20] ... (40,50].
var goldWeightSteps = []step{
	{bound: d("10"), rate: d("5")},
	{bound: d("20"), rate: d("4")},
	{bound: d("30"), rate: d("3")},
	{bound: d("40"), rate: d("2")},
	{bound: d("50"), rate: d("1")},
}

var goldWeightAbove = d("0.5")

// laborFeeSteps bins retail/standard labor fee with lower-inclusive bounds,
// highest first: [0.99,inf) [0.95,0.99) ... [0.80,0.85). Below 0.80 is 0.
var laborFeeSteps = []step{
	{bound: d("0.99"), rate: d("0.05")},
	{bound: d("0.95"), rate: d("0.04")},
	{bound: d("0.90"), rate: d("0.03")},
	{bound: d("0.85"), rate: d("0.02")},
	{bound: d("0.80"), rate: d("0.01")},
}

// GoldWeightRate returns the per-gram multiplier for a gold price
// differential. The result is multiplied by weight, it is not a percentage.
func GoldWeightRate(diff decimal.Decimal) decimal.Decimal {
	return atMost(goldWeightSteps, goldWeightAbove, diff)
}

// LaborFeeRate returns the commission rate for a retail/standard labor fee
// ratio. The result is multiplied by the retail labor fee.
func LaborFeeRate(ratio decimal.Decimal) decimal.Decimal {
	return atLeast(laborFeeSteps, ratio)
}
