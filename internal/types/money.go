// README: Money rounding shared by every cost path.
package types

import "github.com/shopspring/decimal"

// RoundMoney rounds half-up to cents. Amounts are non-negative, so half away from zero is half-up.
func RoundMoney(v float64) decimal.Decimal {
	return decimal.NewFromFloat(v).Round(2)
}
