package stats

import (
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

var day0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func day(n int) time.Time { return day0.Add(time.Duration(n) * 24 * time.Hour) }

func closed(id string, d int, pair string, o journal.Outcome, pnl float64) journal.Trade {
	return journal.Trade{
		ID: id, Date: day(d), Pair: pair, Type: journal.Long, Strategy: journal.Breakout,
		EntryPrice: 1.1000, StopLoss: 1.0950, TakeProfit: 1.1100, LotSize: 1,
		Status: journal.Closed, Outcome: o, PnL: pnl,
	}
}

func sampleTrades() []journal.Trade {
	t1 := closed("1", 0, "EURUSD", journal.Win, 111)
	t1.Strategy = journal.TrendFollowing
	t1.Pips = 11.1
	t2 := closed("2", 1, "GBPUSD", journal.Win, 55.5)
	t2.Strategy = journal.Reversal
	t2.Pips = 11.1
	t3 := closed("3", 2, "USDJPY", journal.Loss, -200)
	t3.EntryPrice, t3.StopLoss, t3.TakeProfit = 150.10, 149.80, 150.70
	t3.Pips = -30
	t4 := journal.Trade{
		ID: "4", Date: day(3), Pair: "EURUSD", Type: journal.Short, Strategy: journal.Scalping,
		EntryPrice: 1.0800, StopLoss: 1.0820, TakeProfit: 1.0760, LotSize: 2,
		Status: journal.Open, Outcome: journal.Pending,
	}
	return []journal.Trade{t1, t2, t3, t4}
}
