package domain

import (
	"fmt"
	"math"
)

// Decimal renders cents as a two-place decimal amount, e.g. 15000 -> "150.00".
func Decimal(cents int64) string {
	sign := ""
	if cents < 0 {
		sign = "-"
		cents = -cents
	}
	return fmt.Sprintf("%s%d.%02d", sign, cents/100, cents%100)
}

// Dollars renders cents with a leading currency sign, e.g. 15000 -> "$150.00".
func Dollars(cents int64) string {
	return "$" + Decimal(cents)
}

// ApplyDiscount returns total reduced by percent, rounded to the nearest cent.
func ApplyDiscount(total int64, percent float64) int64 {
	return int64(math.Round(float64(total) * (100 - percent) / 100))
}

// CentsFromFloat converts an amount in currency units into cents.
func CentsFromFloat(amount float64) int64 {
	return int64(math.Round(amount * 100))
}
