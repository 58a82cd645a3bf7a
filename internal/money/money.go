// Package money holds the fixed two-decimal currency helpers used for
// rounding and display.
package money

import (
	"github.com/shopspring/decimal"
)

var half = decimal.NewFromFloat(0.5)

// ToCents normalizes v to two decimal places (half away from zero).
func ToCents(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}

// Ceil rounds v up to the next whole unit after normalizing to cents.
func Ceil(v float64) float64 {
	return ToCents(v).Ceil().InexactFloat64()
}

// Floor rounds v down to the whole unit after normalizing to cents.
func Floor(v float64) float64 {
	return ToCents(v).Floor().InexactFloat64()
}

// RoundHalfUp rounds v to the nearest whole unit; .50 goes up.
func RoundHalfUp(v float64) float64 {
	return ToCents(v).Add(half).Floor().InexactFloat64()
}

// Round2 rounds v to cents and returns it as a float.
func Round2(v float64) float64 {
	return ToCents(v).InexactFloat64()
}

// Format renders v as a USD-style amount, e.g. "$12.30" or "-$0.40".
func Format(v float64) string {
	d := ToCents(v)
	if d.IsNegative() {
		return "-$" + d.Neg().StringFixed(2)
	}
	return "$" + d.StringFixed(2)
}

// Plain renders v with exactly two decimals and no symbol, e.g. "12.30".
func Plain(v float64) string {
	return ToCents(v).StringFixed(2)
}
