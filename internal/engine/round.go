package engine

import "github.com/shopspring/decimal"

// Round rounds half away from zero to the given number of decimal places.
// 2.675 rounds to 2.68, not 2.67.
func Round(v float64, places int32) float64 {
	return decimal.NewFromFloat(v).Round(places).InexactFloat64()
}
