package stats

import (
	"math"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/risk"
)

// RRPoint is one dot of the risk/reward scatter: planned pips to the stop
// against planned pips to the target.
type RRPoint struct {
	TradeID string          `json:"tradeId"`
	Pair    string          `json:"pair"`
	Outcome journal.Outcome `json:"outcome"`
	Risk    float64         `json:"risk"`
	Reward  float64         `json:"reward"`
	Ratio   float64         `json:"ratio"`
}

// RiskReward plots every non-cancelled trade that has a stop distance.
func RiskReward(trades []journal.Trade) []RRPoint {
	out := make([]RRPoint, 0, len(trades))
	for _, t := range trades {
		if t.Status == journal.Cancelled || t.EntryPrice == t.StopLoss {
			continue
		}
		out = append(out, RRPoint{
			TradeID: t.ID,
			Pair:    t.Pair,
			Outcome: t.Outcome,
			Risk:    market.Pips(t.Pair, math.Abs(t.EntryPrice-t.StopLoss)),
			Reward:  market.Pips(t.Pair, math.Abs(t.TakeProfit-t.EntryPrice)),
			Ratio:   risk.RR(t.EntryPrice, t.StopLoss, t.TakeProfit),
		})
	}
	return out
}

// AverageRR is the mean planned ratio of the points, 0 for none.
func AverageRR(points []RRPoint) float64 {
	if len(points) == 0 {
		return 0
	}
	var total float64
	for _, p := range points {
		total += p.Ratio
	}
	return total / float64(len(points))
}
