// market/instruments.go
package market

import (
	"math"
	"strings"
)

// CommonPairs is the list of majors offered as suggestions by the CLI.
// Pairs are free-form symbols everywhere else; nothing validates against it.
var CommonPairs = []string{
	"EURUSD",
	"GBPUSD",
	"USDJPY",
	"USDCHF",
	"AUDUSD",
	"NZDUSD",
	"USDCAD",
}

// IsJPY reports whether the pair is quoted in yen ("USDJPY", "EUR_JPY", "GBP/JPY").
func IsJPY(pair string) bool {
	return strings.HasSuffix(pair, "JPY")
}

// PipLocation is the power of ten of one pip: -2 for yen pairs, -4 otherwise.
func PipLocation(pair string) int {
	if IsJPY(pair) {
		return -2
	}
	return -4
}

// PipSize returns the price increment of one pip for the pair.
func PipSize(pair string) float64 {
	return math.Pow10(PipLocation(pair))
}

// Pips converts a price distance into pips for the pair.
func Pips(pair string, distance float64) float64 {
	return distance / PipSize(pair)
}
