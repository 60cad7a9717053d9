package stats

import (
	"encoding/json"
	"math"
	"testing"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSummarizeEmpty(t *testing.T) {
	t.Parallel()

	s := Summarize(nil)

	assert.Equal(t, 0.0, s.WinRate)
	assert.Equal(t, "0.00", FormatMoney(s.TotalPnL))
	assert.Equal(t, "infinite", s.ProfitFactor.String())
	assert.Equal(t, 0, s.TotalTrades)
	assert.Nil(t, s.LargestWin)
	assert.Nil(t, s.LargestLoss)
	assert.Equal(t, 0.0, s.AverageWin)
	assert.Equal(t, 0.0, s.AverageLoss)
	assert.Equal(t, 0, s.WinStreak)
	assert.Equal(t, Down, s.Trend)
	assert.Empty(t, s.ByPair)
}

func TestSummarizeWinAndLoss(t *testing.T) {
	t.Parallel()

	s := Summarize([]journal.Trade{
		closed("a", 0, "EURUSD", journal.Win, 100),
		closed("b", 1, "EURUSD", journal.Loss, -50),
	})

	assert.Equal(t, 50.0, s.WinRate)
	assert.Equal(t, "50.00", FormatMoney(s.TotalPnL))
	assert.Equal(t, "2.00", s.ProfitFactor.String())
	assert.False(t, s.ProfitFactor.Infinite)
	assert.Equal(t, Up, s.Trend)
}

func TestSummarizeSample(t *testing.T) {
	t.Parallel()

	s := Summarize(sampleTrades())

	assert.Equal(t, 4, s.TotalTrades)
	assert.Equal(t, 3, s.ClosedTrades)
	assert.Equal(t, 1, s.OpenTrades)
	assert.Equal(t, 2, s.Wins)
	assert.Equal(t, 1, s.Losses)
	assert.Equal(t, 66.7, s.WinRate)
	assert.Equal(t, -33.5, s.TotalPnL)
	assert.Equal(t, -7.8, s.TotalPips)
	assert.Equal(t, 166.5, s.GrossProfit)
	assert.Equal(t, 200.0, s.GrossLoss)
	assert.Equal(t, "0.83", s.ProfitFactor.String())
	require.NotNil(t, s.LargestWin)
	require.NotNil(t, s.LargestLoss)
	assert.Equal(t, 111.0, *s.LargestWin)
	assert.Equal(t, -200.0, *s.LargestLoss)
	assert.Equal(t, 83.25, s.AverageWin)
	assert.Equal(t, 200.0, s.AverageLoss)
	assert.Equal(t, 2, s.WinStreak)
	assert.Equal(t, 1, s.LossStreak)
	assert.Equal(t, Down, s.Trend)

	require.Len(t, s.ByPair, 3)
	assert.Equal(t, Breakdown{Key: "EURUSD", Trades: 2, Closed: 1, Wins: 1, WinRate: 100, PnL: 111}, s.ByPair[0])
	assert.Equal(t, "GBPUSD", s.ByPair[1].Key)
	assert.Equal(t, "USDJPY", s.ByPair[2].Key)
	assert.Equal(t, 0.0, s.ByPair[2].WinRate)

	require.Len(t, s.ByStrategy, 4)
	assert.Equal(t, string(journal.TrendFollowing), s.ByStrategy[0].Key)
}

func TestSummarizeTotalPnLCountsEveryTrade(t *testing.T) {
	t.Parallel()

	cancelled := closed("c", 0, "EURUSD", journal.Pending, 25)
	cancelled.Status = journal.Cancelled

	s := Summarize([]journal.Trade{cancelled})
	assert.Equal(t, 25.0, s.TotalPnL)
	assert.Equal(t, 0, s.ClosedTrades)
	assert.Equal(t, 0.0, s.WinRate)
	assert.Equal(t, Up, s.Trend)
}

func TestSummarizeZeroPnLTrendsDown(t *testing.T) {
	t.Parallel()

	s := Summarize([]journal.Trade{closed("a", 0, "EURUSD", journal.Breakeven, 0)})
	assert.Equal(t, Down, s.Trend)
	assert.Equal(t, 1, s.Breakevens)
	assert.True(t, s.ProfitFactor.Infinite)
}

func TestSummarizeSingleTrade(t *testing.T) {
	t.Parallel()

	s := Summarize([]journal.Trade{closed("a", 0, "EURUSD", journal.Loss, -10)})
	assert.Equal(t, 0, s.WinStreak)
	assert.Equal(t, 1, s.LossStreak)
	assert.Equal(t, "0.00", s.ProfitFactor.String())
	assert.Equal(t, 10.0, s.AverageLoss)
	require.NotNil(t, s.LargestWin)
	assert.Equal(t, -10.0, *s.LargestWin)
}

func TestSummarizeIgnoresNonFinitePnL(t *testing.T) {
	t.Parallel()

	s := Summarize([]journal.Trade{
		closed("a", 0, "EURUSD", journal.Win, math.NaN()),
		closed("b", 1, "EURUSD", journal.Loss, math.Inf(-1)),
	})
	assert.Equal(t, 0.0, s.TotalPnL)
	assert.False(t, math.IsNaN(s.AverageWin))
	assert.True(t, s.ProfitFactor.Infinite)
}

func TestSummarizeDoesNotModifyInput(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{
		closed("late", 5, "EURUSD", journal.Win, 1),
		closed("early", 1, "EURUSD", journal.Loss, -1),
	}
	Summarize(trades)
	assert.Equal(t, "late", trades[0].ID)
}

func TestStreaksUseChronologicalOrder(t *testing.T) {
	t.Parallel()

	trades := []journal.Trade{
		closed("a", 4, "EURUSD", journal.Win, 1),
		closed("b", 0, "EURUSD", journal.Win, 1),
		closed("c", 2, "EURUSD", journal.Loss, -1),
		closed("d", 1, "EURUSD", journal.Win, 1),
		closed("e", 3, "EURUSD", journal.Loss, -1),
		closed("f", 5, "EURUSD", journal.Breakeven, 0),
		closed("g", 6, "EURUSD", journal.Win, 1),
	}
	// by date: W(b) W(d) L(c) L(e) W(a) BE(f) W(g)
	win, loss := Streaks(trades)
	assert.Equal(t, 2, win)
	assert.Equal(t, 2, loss)
}

func TestStreaksSkipOpenTrades(t *testing.T) {
	t.Parallel()

	open := closed("o", 1, "EURUSD", journal.Pending, 0)
	open.Status = journal.Open
	win, _ := Streaks([]journal.Trade{
		closed("a", 0, "EURUSD", journal.Win, 1),
		open,
		closed("b", 2, "EURUSD", journal.Win, 1),
	})
	assert.Equal(t, 2, win)
}

func TestDistribution(t *testing.T) {
	t.Parallel()

	d := Distribution(sampleTrades())
	assert.Equal(t, 2, d[journal.Win])
	assert.Equal(t, 1, d[journal.Loss])
	assert.Equal(t, 0, d[journal.Breakeven])
	assert.Equal(t, 1, d[journal.Pending])
}

func TestStatsJSON(t *testing.T) {
	t.Parallel()

	data, err := json.Marshal(Summarize(nil))
	require.NoError(t, err)

	var raw map[string]any
	require.NoError(t, json.Unmarshal(data, &raw))
	assert.Equal(t, "infinite", raw["profitFactor"])
	assert.Equal(t, 0.0, raw["winRate"])
	assert.Equal(t, "down", raw["trend"])
}
