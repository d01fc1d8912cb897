package utils

import (
	"github.com/shopspring/decimal"
)

// MoneyPrecision is the number of minor-unit digits money is rounded and shown with.
const MoneyPrecision int32 = 2

// FormatMoney formats an amount with the money precision.
// Example: amount 9000 returns "9000.00"
// Example: amount 12.3456 returns "12.35"
func FormatMoney(amount decimal.Decimal) string {
	return amount.StringFixed(MoneyPrecision)
}

// FormatRate formats a ratio as a percentage without trailing zeros.
// Example: rate 0.1 returns "10"
// Example: rate 0.125 returns "12.5"
func FormatRate(rate decimal.Decimal) string {
	return rate.Mul(decimal.NewFromInt(100)).String()
}
