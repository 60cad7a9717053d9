package stats

import (
	"sort"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
)

// Breakdown is the performance of the trades sharing one key (a pair or a
// strategy).
type Breakdown struct {
	Key     string  `json:"key"`
	Trades  int     `json:"trades"`
	Closed  int     `json:"closed"`
	Wins    int     `json:"wins"`
	WinRate float64 `json:"winRate"`
	PnL     float64 `json:"pnl"`
}

// ByPair groups trades by instrument, best performer first.
func ByPair(trades []journal.Trade) []Breakdown {
	return breakdown(trades, func(t journal.Trade) string { return t.Pair })
}

// ByStrategy groups trades by strategy, best performer first.
func ByStrategy(trades []journal.Trade) []Breakdown {
	return breakdown(trades, func(t journal.Trade) string { return string(t.Strategy) })
}

func breakdown(trades []journal.Trade, key func(journal.Trade) string) []Breakdown {
	type acc struct {
		b   Breakdown
		pnl decimal.Decimal
	}
	groups := map[string]*acc{}

	for _, t := range trades {
		k := key(t)
		g, ok := groups[k]
		if !ok {
			g = &acc{b: Breakdown{Key: k}}
			groups[k] = g
		}
		g.b.Trades++
		g.pnl = g.pnl.Add(dec(t.PnL))
		if t.Status == journal.Closed {
			g.b.Closed++
			if t.Outcome == journal.Win {
				g.b.Wins++
			}
		}
	}

	out := make([]Breakdown, 0, len(groups))
	for _, g := range groups {
		g.b.PnL = g.pnl.Round(2).InexactFloat64()
		g.b.WinRate = percent(g.b.Wins, g.b.Closed)
		out = append(out, g.b)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].PnL != out[j].PnL {
			return out[i].PnL > out[j].PnL
		}
		return out[i].Key < out[j].Key
	})
	return out
}
