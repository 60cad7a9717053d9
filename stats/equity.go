package stats

import (
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
)

type EquityPoint struct {
	Date    time.Time `json:"date"`
	TradeID string    `json:"tradeId"`
	PnL     float64   `json:"pnl"`
	Balance float64   `json:"balance"`
}

// EquityCurve replays closed trades in date order on top of startBalance.
func EquityCurve(trades []journal.Trade, startBalance float64) []EquityPoint {
	closed := Chronological(journal.Apply(trades, journal.Filter{Status: []journal.Status{journal.Closed}}))

	balance := dec(startBalance)
	out := make([]EquityPoint, 0, len(closed))
	for _, t := range closed {
		balance = balance.Add(dec(t.PnL))
		out = append(out, EquityPoint{
			Date:    t.Date,
			TradeID: t.ID,
			PnL:     t.PnL,
			Balance: balance.InexactFloat64(),
		})
	}
	return out
}

// MaxDrawdownPct is the largest peak-to-trough decline of the curve as a
// positive percentage of the peak. The starting balance counts as the first
// peak. Curves that never go above zero have no drawdown.
func MaxDrawdownPct(startBalance float64, curve []EquityPoint) float64 {
	peak := dec(startBalance)
	worst := decimal.Zero
	hundred := decimal.NewFromInt(100)

	for _, p := range curve {
		bal := dec(p.Balance)
		if bal.GreaterThan(peak) {
			peak = bal
		}
		if !peak.IsPositive() {
			continue
		}
		dd := peak.Sub(bal).Div(peak).Mul(hundred)
		if dd.GreaterThan(worst) {
			worst = dd
		}
	}
	return worst.Round(2).InexactFloat64()
}
