// Package rates holds the static commission rate tables and their lookups.
package rates

import "github.com/shopspring/decimal"

// step is one rung of a threshold table: the rate applies when the input
// reaches bound, in the direction the table defines.
type step struct {
	bound decimal.Decimal
	rate  decimal.Decimal
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

// atLeast scans steps from the highest bound down and returns the rate of the
// first step with x >= bound. Below the lowest bound it returns zero.
func atLeast(steps []step, x decimal.Decimal) decimal.Decimal {
	for _, s := range steps {
		if x.GreaterThanOrEqual(s.bound) {
			return s.rate
		}
	}
	return decimal.Zero
}

// atMost scans steps from the lowest bound up and returns the rate of the
// first step with x <= bound. Above the highest bound it returns above.
func atMost(steps []step, above, x decimal.Decimal) decimal.Decimal {
	for _, s := range steps {
		if x.LessThanOrEqual(s.bound) {
			return s.rate
		}
	}
	return above
}
