package utils

import "math"

// Round2 rounds a currency amount to two decimal places.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}
