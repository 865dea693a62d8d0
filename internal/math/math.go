package math

import (
	"math"
	"strconv"
)

// Format formats a float with 2 decimals.
func Format(f float64) string {
	return strconv.FormatFloat(f, 'f', 2, 64)
}

// FormatAll formats all given floats.
func FormatAll(ff []float64) []string {
	ss := make([]string, len(ff))
	for i, f := range ff {
		ss[i] = Format(f)
	}
	return ss
}

// Round rounds the value to the given number of decimals.
func Round(f float64, decimals int) float64 {
	p := math.Pow(10, float64(decimals))
	return math.Round(f*p) / p
}

// Percent returns the percentage of part in total, 0 if total is 0.
func Percent(part, total int) float64 {
	if total == 0 {
		return 0
	}
	return float64(part) / float64(total) * 100
}
