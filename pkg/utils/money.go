package utils

import "math"

// ToCents converts a decimal currency amount to minor units, rounding to the
// nearest cent so that values like 15.50 survive the float round trip intact.
func ToCents(amount float64) int64 {
	return int64(math.Round(amount * 100))
}

// FromCents converts minor units back to a decimal currency amount.
func FromCents(cents int64) float64 {
	return float64(cents) / 100
}
