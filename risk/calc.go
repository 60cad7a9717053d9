package risk

import "math"

// RR is the planned reward-to-risk ratio of a trade: distance to take profit
// over distance to stop. A trade without stop distance has no ratio (0).
func RR(entry, stop, takeProfit float64) float64 {
	risk := math.Abs(entry - stop)
	reward := math.Abs(takeProfit - entry)
	if risk == 0 {
		return 0
	}
	return reward / risk
}
