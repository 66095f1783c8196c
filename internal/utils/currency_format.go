package utils

import (
	"github.com/shopspring/decimal"
)

// RatePrecision is the number of fractional digits shown for exchange rates.
const RatePrecision = 6

// FormatWithPrecision formats an amount with the given precision.
// Trailing zeros are dropped: 12.340000 -> "12.34".
func FormatWithPrecision(amount decimal.Decimal, precision int) string {
	return amount.Round(int32(precision)).String()
}

// FormatRate returns numerator/denominator rounded to RatePrecision digits,
// or "1" when either side is zero.
func FormatRate(numerator, denominator decimal.Decimal) string {
	if numerator.IsZero() || denominator.IsZero() {
		return "1"
	}
	return FormatWithPrecision(numerator.Div(denominator), RatePrecision)
}
