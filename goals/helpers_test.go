package goals

import (
	"time"

	"github.com/rustyeddy/tradejournal/journal"
)

var (
	may1  = time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	may31 = time.Date(2024, 5, 31, 0, 0, 0, 0, time.UTC)
)

func validInput() GoalInput {
	return GoalInput{
		Title:     "May profit",
		Type:      Profit,
		Timeframe: Monthly,
		Target:    5000,
		StartDate: may1,
		EndDate:   may31,
	}
}

func newGoal(in GoalInput) Goal {
	g, err := NewGoal(in, in.StartDate)
	if err != nil {
		panic(err)
	}
	return g
}

func linkedTrade(id string, d time.Time, status journal.Status, pnl float64, goals ...string) journal.Trade {
	t := journal.Trade{
		ID: id, Date: d, Pair: "EURUSD", Type: journal.Long, Strategy: journal.Breakout,
		EntryPrice: 1.1000, StopLoss: 1.0950, TakeProfit: 1.1100, LotSize: 1,
		Status: status, Outcome: journal.Pending, PnL: pnl, LinkedGoals: goals,
	}
	if status == journal.Closed {
		switch {
		case pnl > 0:
			t.Outcome = journal.Win
		case pnl < 0:
			t.Outcome = journal.Loss
		default:
			t.Outcome = journal.Breakeven
		}
	}
	return t
}
