package goals

import (
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/stats"
)

// LinkedTrades returns the trades linked to g and dated inside its window.
func LinkedTrades(g Goal, trades []journal.Trade) []journal.Trade {
	out := make([]journal.Trade, 0)
	for _, t := range journal.Between(trades, g.StartDate, g.EndDate) {
		if t.LinkedTo(g.ID) {
			out = append(out, t)
		}
	}
	return out
}

// CurrentFromTrades measures g's current value from its linked trades, in
// the unit of the goal type. startBalance seeds the equity curve used for
// MAX_DRAWDOWN.
func CurrentFromTrades(g Goal, trades []journal.Trade, startBalance float64) float64 {
	linked := LinkedTrades(g, trades)

	switch g.Type {
	case Profit:
		return stats.Summarize(linked).TotalPnL
	case WinRate:
		return stats.Summarize(linked).WinRate
	case RiskReward:
		closed := journal.Apply(linked, journal.Filter{Status: []journal.Status{journal.Closed}})
		return stats.AverageRR(stats.RiskReward(closed))
	case TradeFrequency:
		n := 0
		for _, t := range linked {
			if t.Status != journal.Cancelled {
				n++
			}
		}
		return float64(n)
	case MaxDrawdown:
		return stats.MaxDrawdownPct(startBalance, stats.EquityCurve(linked, startBalance))
	default:
		return g.Current
	}
}

// Sync recomputes every non-archived goal from trades at now and returns
// the ids of the goals whose current value or status changed. Goals are
// updated in place. Each recomputation counts as an observation, so a goal
// whose current value did not move gets a neutral trend. A goal whose value
// cannot be derived keeps its current value and is reported in the error.
func Sync(gs []Goal, trades []journal.Trade, startBalance float64, now time.Time) ([]string, error) {
	var (
		changed []string
		errs    []error
	)
	for i := range gs {
		g := &gs[i]
		if g.Status == Archived {
			continue
		}
		before, status := g.Current, g.Status

		current := CurrentFromTrades(*g, trades, startBalance)
		switch {
		case math.IsNaN(current) || math.IsInf(current, 0):
			errs = append(errs, fmt.Errorf("sync goal %s: derived current is %v", g.ID, current))
			g.Refresh(now)
			if g.Status != status {
				changed = append(changed, g.ID)
			}
			continue
		case current < 0:
			current = 0
			fallthrough
		default:
			if current != before {
				if err := g.Update(current, now); err != nil {
					errs = append(errs, fmt.Errorf("sync goal %s: %w", g.ID, err))
					continue
				}
			} else {
				g.Metrics = ComputeMetrics(*g, &before, now)
				g.Status = NextStatus(*g, now)
			}
		}
		if g.Current != before || g.Status != status {
			changed = append(changed, g.ID)
		}
	}
	return changed, errors.Join(errs...)
}
