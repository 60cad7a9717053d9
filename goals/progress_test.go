package goals

import (
	"math"
	"testing"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/stats"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func goalTrades(goalID string) []journal.Trade {
	b := linkedTrade("b", may1.Add(2*day), journal.Closed, -40, goalID)
	b.StopLoss = 1.0900
	return []journal.Trade{
		linkedTrade("a", may1.Add(day), journal.Closed, 100, goalID),
		b,
		linkedTrade("c", may1.Add(3*day), journal.Open, 0, goalID),
		linkedTrade("d", may1.Add(4*day), journal.Cancelled, 0, goalID, "other"),
		linkedTrade("e", may1.Add(day), journal.Closed, 500),
		linkedTrade("f", may31.Add(5*day), journal.Closed, 70, goalID),
	}
}

func TestLinkedTrades(t *testing.T) {
	t.Parallel()

	g := newGoal(validInput())
	linked := LinkedTrades(g, goalTrades(g.ID))

	got := make([]string, 0, len(linked))
	for _, tr := range linked {
		got = append(got, tr.ID)
	}
	assert.Equal(t, []string{"a", "b", "c", "d"}, got)
}

func TestCurrentFromTrades(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  Type
		want float64
	}{
		{Profit, 60},
		{WinRate, 50},
		{RiskReward, 1.5},
		{TradeFrequency, 3},
		{MaxDrawdown, 3.64},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(string(tt.typ), func(t *testing.T) {
			t.Parallel()

			in := validInput()
			in.Type = tt.typ
			g := newGoal(in)
			assert.InDelta(t, tt.want, CurrentFromTrades(g, goalTrades(g.ID), 1000), 1e-6)
		})
	}
}

func TestCurrentFromTradesNoLinks(t *testing.T) {
	t.Parallel()

	for _, typ := range Types {
		in := validInput()
		in.Type = typ
		g := newGoal(in)
		assert.Equal(t, 0.0, CurrentFromTrades(g, nil, 1000), typ)
	}
}

func TestSync(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.Target = 50
	profit := newGoal(in)

	in.Type = TradeFrequency
	in.Target = 10
	freq := newGoal(in)

	in.Type = Profit
	archived := newGoal(in)
	require.NoError(t, archived.Archive(may1))

	idle := newGoal(validInput())

	trades := append(goalTrades(profit.ID), goalTrades(freq.ID)...)
	trades = append(trades, goalTrades(archived.ID)...)

	gs := []Goal{profit, freq, archived, idle}
	changed, err := Sync(gs, trades, 1000, may1.Add(10*day))
	require.NoError(t, err)

	assert.Equal(t, []string{profit.ID, freq.ID}, changed)

	assert.Equal(t, 60.0, gs[0].Current)
	assert.Equal(t, Completed, gs[0].Status)
	assert.Equal(t, stats.Up, gs[0].Metrics.Trend)

	assert.Equal(t, 3.0, gs[1].Current)
	assert.Equal(t, Active, gs[1].Status)
	assert.InDelta(t, 30.0, gs[1].Metrics.Progress, 1e-9)

	assert.Equal(t, archived, gs[2])

	assert.Equal(t, 20, gs[3].Metrics.DaysRemaining)
}

func TestSyncNegativeProfitFloorsAtZero(t *testing.T) {
	t.Parallel()

	g := newGoal(validInput())
	gs := []Goal{g}
	trades := []journal.Trade{linkedTrade("x", may1.Add(day), journal.Closed, -250, g.ID)}

	changed, err := Sync(gs, trades, 1000, may1.Add(day))
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, 0.0, gs[0].Current)
}

func TestSyncFailsExpiredGoals(t *testing.T) {
	t.Parallel()

	g := newGoal(validInput())
	gs := []Goal{g}
	changed, err := Sync(gs, nil, 1000, may31.Add(day))
	require.NoError(t, err)

	assert.Equal(t, []string{g.ID}, changed)
	assert.Equal(t, Failed, gs[0].Status)
}

func TestSyncUnchangedValueTurnsTrendNeutral(t *testing.T) {
	t.Parallel()

	in := validInput()
	in.Target = 500
	g := newGoal(in)
	gs := []Goal{g}
	trades := []journal.Trade{linkedTrade("x", may1.Add(day), journal.Closed, 100, g.ID)}

	changed, err := Sync(gs, trades, 1000, may1.Add(2*day))
	require.NoError(t, err)
	assert.Equal(t, []string{g.ID}, changed)
	assert.Equal(t, stats.Up, gs[0].Metrics.Trend)
	updated := gs[0].UpdatedAt

	changed, err = Sync(gs, trades, 1000, may1.Add(3*day))
	require.NoError(t, err)
	assert.Empty(t, changed)
	assert.Equal(t, 100.0, gs[0].Current)
	assert.Equal(t, stats.Neutral, gs[0].Metrics.Trend)
	assert.InDelta(t, 20.0, gs[0].Metrics.Progress, 1e-9)
	assert.True(t, gs[0].UpdatedAt.Equal(updated))
}

func TestSyncReportsUnderivableCurrent(t *testing.T) {
	t.Parallel()

	bad := newGoal(validInput())
	bad.Type = "UNKNOWN"
	bad.Current = math.NaN()
	good := newGoal(validInput())
	gs := []Goal{bad, good}
	trades := []journal.Trade{linkedTrade("x", may1.Add(day), journal.Closed, 25, good.ID)}

	changed, err := Sync(gs, trades, 1000, may1.Add(2*day))
	require.Error(t, err)
	assert.Contains(t, err.Error(), bad.ID)
	assert.Equal(t, []string{good.ID}, changed)
	assert.True(t, math.IsNaN(gs[0].Current))
	assert.Equal(t, 25.0, gs[1].Current)
}

func TestFormatValue(t *testing.T) {
	t.Parallel()

	tests := []struct {
		typ  Type
		v    float64
		want string
	}{
		{Profit, 3250, "$3250.00"},
		{Profit, -12.5, "$-12.50"},
		{WinRate, 66.66, "66.7%"},
		{MaxDrawdown, 3.6363, "3.6%"},
		{RiskReward, 1.5, "1.50"},
		{TradeFrequency, 12, "12"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, FormatValue(tt.typ, tt.v), tt.typ)
	}
}
