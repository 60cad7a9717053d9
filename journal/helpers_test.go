package journal

import "time"

var day0 = time.Date(2024, 5, 1, 9, 0, 0, 0, time.UTC)

func ptr(x float64) *float64 { return &x }

func sampleTrades() []Trade {
	return []Trade{
		{
			ID: "1", Date: day0, Pair: "EURUSD", Type: Long, Strategy: TrendFollowing,
			EntryPrice: 1.05432, ExitPrice: ptr(1.05543), StopLoss: 1.05000, TakeProfit: 1.05300, LotSize: 1,
			Status: Closed, Outcome: Win, PnL: 111, Pips: 11.1,
			Notes: "Strong trend continuation trade", Tags: []string{"trend", "continuation"},
			LinkedGoals: []string{"monthly-profit"}, CreatedAt: day0, UpdatedAt: day0,
		},
		{
			ID: "2", Date: day0.Add(24 * time.Hour), Pair: "GBPUSD", Type: Short, Strategy: Reversal,
			EntryPrice: 1.25432, ExitPrice: ptr(1.25321), StopLoss: 1.25500, TakeProfit: 1.25300, LotSize: 0.5,
			Status: Closed, Outcome: Win, PnL: 55.5, Pips: 11.1,
			Notes: "Price action reversal at resistance", Tags: []string{"reversal", "resistance"},
			LinkedGoals: []string{"weekly-win-rate"}, CreatedAt: day0, UpdatedAt: day0,
		},
		{
			ID: "3", Date: day0.Add(48 * time.Hour), Pair: "USDJPY", Type: Long, Strategy: Breakout,
			EntryPrice: 150.10, ExitPrice: ptr(149.80), StopLoss: 149.80, TakeProfit: 150.70, LotSize: 1,
			Status: Closed, Outcome: Loss, PnL: -200, Pips: -30,
			CreatedAt: day0, UpdatedAt: day0,
		},
		{
			ID: "4", Date: day0.Add(72 * time.Hour), Pair: "EURUSD", Type: Short, Strategy: Scalping,
			EntryPrice: 1.0800, StopLoss: 1.0820, TakeProfit: 1.0760, LotSize: 2,
			Status: Open, Outcome: Pending,
			CreatedAt: day0, UpdatedAt: day0,
		},
	}
}

func validInput() TradeInput {
	return TradeInput{
		Date:       day0,
		Pair:       "EURUSD",
		Type:       Long,
		Strategy:   Breakout,
		EntryPrice: 1.1000,
		StopLoss:   1.0950,
		TakeProfit: 1.1100,
		LotSize:    1,
	}
}
