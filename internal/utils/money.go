// internal/utils/money.go
package utils

import (
	"github.com/shopspring/decimal"
)

// RoundMoney rounds a monetary amount to two decimal places. Rounding
// happens once, at the boundary where a value is stored or emitted;
// intermediate arithmetic keeps full precision.
func RoundMoney(value float64) float64 {
	return decimal.NewFromFloat(value).Round(2).InexactFloat64()
}
