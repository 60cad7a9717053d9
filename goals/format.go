package goals

import (
	"fmt"
	"math"

	"github.com/shopspring/decimal"
)

// FormatValue renders a target or current value in the unit of t.
func FormatValue(t Type, v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return fmt.Sprint(v)
	}
	d := decimal.NewFromFloat(v)
	switch t {
	case Profit:
		return "$" + d.StringFixed(2)
	case WinRate, MaxDrawdown:
		return d.StringFixed(1) + "%"
	case RiskReward:
		return d.StringFixed(2)
	case TradeFrequency:
		return d.Round(0).String()
	default:
		return fmt.Sprint(v)
	}
}
