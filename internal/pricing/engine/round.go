// Package engine implements the quote calculation pipeline. It is pure and
// deterministic: the same (config, input) snapshot always produces the same
// totals, with no accumulation of rounding error across runs. The preview
// endpoint and the authoritative recalculation both call into this package so
// the two can never diverge.
package engine

import "github.com/shopspring/decimal"

var (
	ten      = decimal.NewFromInt(10)
	hundred  = decimal.NewFromInt(100)
	rateStep = decimal.RequireFromString("2.5")
)

// CeilToTenth rounds up to the nearest 0.1. Rounding to nearest instead of up
// here silently undercharges.
func CeilToTenth(d decimal.Decimal) decimal.Decimal {
	return d.Mul(ten).Ceil().Div(ten)
}

// CeilToRateStep rounds a per-page rate up to the nearest $2.50.
func CeilToRateStep(d decimal.Decimal) decimal.Decimal {
	return d.Div(rateStep).Ceil().Mul(rateStep)
}

// RoundCents rounds half-up to two fraction digits. Applied only at line and
// total boundaries; intermediate products stay exact.
func RoundCents(d decimal.Decimal) decimal.Decimal {
	return d.Round(2)
}
