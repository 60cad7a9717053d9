// Package stats derives performance figures from a collection of trades.
//
// Every function here is pure: inputs are never modified and results never
// contain NaN, whatever the collection looks like.
package stats

import (
	"math"
	"sort"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/shopspring/decimal"
)

type Trend string

const (
	Up      Trend = "up"
	Down    Trend = "down"
	Neutral Trend = "neutral"
)

type Stats struct {
	TotalTrades  int `json:"totalTrades"`
	ClosedTrades int `json:"closedTrades"`
	OpenTrades   int `json:"openTrades"`
	Wins         int `json:"wins"`
	Losses       int `json:"losses"`
	Breakevens   int `json:"breakevens"`

	// WinRate is a percentage of closed trades, one decimal.
	WinRate float64 `json:"winRate"`
	// TotalPnL sums every trade passed in, not only closed ones. Two decimals.
	TotalPnL     float64      `json:"totalPnl"`
	TotalPips    float64      `json:"totalPips"`
	GrossProfit  float64      `json:"grossProfit"`
	GrossLoss    float64      `json:"grossLoss"`
	ProfitFactor ProfitFactor `json:"profitFactor"`

	LargestWin  *float64 `json:"largestWin,omitempty"`
	LargestLoss *float64 `json:"largestLoss,omitempty"`
	AverageWin  float64  `json:"averageWin"`
	AverageLoss float64  `json:"averageLoss"`

	WinStreak  int `json:"winStreak"`
	LossStreak int `json:"lossStreak"`

	// Trend is Up only for a strictly positive TotalPnL; zero counts as Down.
	Trend Trend `json:"trend"`

	ByPair     []Breakdown `json:"byPair"`
	ByStrategy []Breakdown `json:"byStrategy"`
}

// Summarize computes Stats for trades. Money is accumulated in decimal so
// the result does not depend on the order of trades (streaks aside).
func Summarize(trades []journal.Trade) Stats {
	s := Stats{
		TotalTrades:  len(trades),
		ProfitFactor: Infinite(),
	}

	var (
		total, pips       decimal.Decimal
		gross, lost       decimal.Decimal
		winSum, lossSum   decimal.Decimal
		largest, smallest decimal.Decimal
		closed            = make([]journal.Trade, 0, len(trades))
	)

	for _, t := range trades {
		pnl := dec(t.PnL)
		total = total.Add(pnl)

		if t.Status == journal.Open {
			s.OpenTrades++
		}
		if t.Status != journal.Closed {
			continue
		}

		if len(closed) == 0 || pnl.GreaterThan(largest) {
			largest = pnl
		}
		if len(closed) == 0 || pnl.LessThan(smallest) {
			smallest = pnl
		}
		closed = append(closed, t)
		pips = pips.Add(dec(t.Pips))

		switch {
		case pnl.IsPositive():
			gross = gross.Add(pnl)
		case pnl.IsNegative():
			lost = lost.Add(pnl.Abs())
		}

		switch t.Outcome {
		case journal.Win:
			s.Wins++
			winSum = winSum.Add(pnl)
		case journal.Loss:
			s.Losses++
			lossSum = lossSum.Add(pnl.Abs())
		case journal.Breakeven:
			s.Breakevens++
		}
	}

	s.ClosedTrades = len(closed)
	s.WinRate = percent(s.Wins, s.ClosedTrades)
	s.TotalPnL = total.Round(2).InexactFloat64()
	s.TotalPips = pips.InexactFloat64()
	s.GrossProfit = gross.InexactFloat64()
	s.GrossLoss = lost.InexactFloat64()
	if !lost.IsZero() {
		s.ProfitFactor = Finite(gross.Div(lost).InexactFloat64())
	}

	if s.ClosedTrades > 0 {
		hi, lo := largest.InexactFloat64(), smallest.InexactFloat64()
		s.LargestWin, s.LargestLoss = &hi, &lo
	}
	if s.Wins > 0 {
		s.AverageWin = winSum.Div(decimal.NewFromInt(int64(s.Wins))).InexactFloat64()
	}
	if s.Losses > 0 {
		s.AverageLoss = lossSum.Div(decimal.NewFromInt(int64(s.Losses))).InexactFloat64()
	}

	s.WinStreak, s.LossStreak = Streaks(closed)

	s.Trend = Down
	if total.IsPositive() {
		s.Trend = Up
	}

	s.ByPair = ByPair(trades)
	s.ByStrategy = ByStrategy(trades)
	return s
}

// Streaks returns the longest runs of consecutive WIN and LOSS outcomes among
// closed trades ordered by date. Ties in date keep their input order.
func Streaks(trades []journal.Trade) (win, loss int) {
	ordered := Chronological(journal.Apply(trades, journal.Filter{Status: []journal.Status{journal.Closed}}))

	var curWin, curLoss int
	for _, t := range ordered {
		switch t.Outcome {
		case journal.Win:
			curWin++
			curLoss = 0
		case journal.Loss:
			curLoss++
			curWin = 0
		default:
			curWin, curLoss = 0, 0
		}
		win = max(win, curWin)
		loss = max(loss, curLoss)
	}
	return win, loss
}

// Chronological returns a copy of trades stably sorted by date ascending.
func Chronological(trades []journal.Trade) []journal.Trade {
	out := make([]journal.Trade, len(trades))
	copy(out, trades)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].Date.Before(out[j].Date)
	})
	return out
}

// Distribution counts trades per outcome. Every outcome has an entry.
func Distribution(trades []journal.Trade) map[journal.Outcome]int {
	out := make(map[journal.Outcome]int, len(journal.Outcomes))
	for _, o := range journal.Outcomes {
		out[o] = 0
	}
	for _, t := range trades {
		out[t.Outcome]++
	}
	return out
}

// percent is n/d as a percentage with one decimal, 0 when d is 0.
func percent(n, d int) float64 {
	if d == 0 {
		return 0
	}
	return decimal.NewFromInt(int64(n)).
		Mul(decimal.NewFromInt(100)).
		Div(decimal.NewFromInt(int64(d))).
		Round(1).
		InexactFloat64()
}

// dec converts a float to decimal, treating NaN and infinities as 0.
func dec(x float64) decimal.Decimal {
	if math.IsNaN(x) || math.IsInf(x, 0) {
		return decimal.Zero
	}
	return decimal.NewFromFloat(x)
}
