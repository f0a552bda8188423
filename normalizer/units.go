// Package normalizer maps provider payloads onto the fixed view-models
// the dashboard cards and charts bind to.
package normalizer

import (
	"math"
	"strconv"
)

const absoluteZeroC = 273.15

// Round2 rounds to two decimals.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// KelvinToCelsius converts and rounds to two decimals.
func KelvinToCelsius(k float64) float64 {
	return Round2(k - absoluteZeroC)
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(Round2(v), 'f', -1, 64)
}
