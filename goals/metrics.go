package goals

import (
	"math"
	"time"

	"github.com/rustyeddy/tradejournal/stats"
)

const day = 24 * time.Hour

// ComputeMetrics derives the display metrics of g at now. previous is the
// last recorded current value; nil yields a neutral trend.
func ComputeMetrics(g Goal, previous *float64, now time.Time) Metrics {
	return Metrics{
		Progress:      Progress(g.Current, g.Target),
		Trend:         trend(g.Current, previous),
		DaysRemaining: DaysRemaining(g.EndDate, now),
	}
}

// Progress is current as a percentage of target, clamped to 0..100.
func Progress(current, target float64) float64 {
	if !(target > 0) || math.IsNaN(current) {
		return 0
	}
	return math.Max(0, math.Min(100, current/target*100))
}

// DaysRemaining counts started days until end, never below 0.
func DaysRemaining(end, now time.Time) int {
	left := end.Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(float64(left) / float64(day)))
}

func trend(current float64, previous *float64) stats.Trend {
	switch {
	case previous == nil:
		return stats.Neutral
	case current > *previous:
		return stats.Up
	case current < *previous:
		return stats.Down
	default:
		return stats.Neutral
	}
}

// NextStatus applies the transition rules to an ACTIVE goal: reaching the
// target completes it, otherwise passing the end date fails it. Any other
// status is returned unchanged.
func NextStatus(g Goal, now time.Time) Status {
	if g.Status != Active {
		return g.Status
	}
	switch {
	case g.Current >= g.Target:
		return Completed
	case now.After(g.EndDate):
		return Failed
	default:
		return Active
	}
}
