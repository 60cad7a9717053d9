package cli

import (
	"fmt"
	"strconv"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/stats"
	"github.com/spf13/cobra"
)

type statsReport struct {
	stats.Stats
	Distribution map[journal.Outcome]int `json:"distribution"`
	Equity       []stats.EquityPoint     `json:"equity,omitempty"`
	MaxDrawdown  *float64                `json:"maxDrawdownPct,omitempty"`
	RiskReward   []stats.RRPoint         `json:"riskReward,omitempty"`
	AverageRR    *float64                `json:"averageRR,omitempty"`
}

func newStatsCmd(app *App) *cobra.Command {
	var (
		ff     filterFlags
		equity bool
		rr     bool
	)

	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Summarize trading performance",
		Long: `Print win rate, P/L, profit factor, streaks and per-pair and per-strategy
performance for the trades matching the filters.

Examples:
  tradejournal stats --period 30d
  tradejournal stats --pair EURUSD --pair GBPUSD --equity`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades, err := loadTrades(cmd, app, &ff)
			if err != nil {
				return err
			}

			rep := statsReport{
				Stats:        stats.Summarize(trades),
				Distribution: stats.Distribution(trades),
			}
			if equity {
				start := app.Config.Account.StartBalance
				rep.Equity = stats.EquityCurve(trades, start)
				dd := stats.MaxDrawdownPct(start, rep.Equity)
				rep.MaxDrawdown = &dd
			}
			if rr {
				rep.RiskReward = stats.RiskReward(trades)
				avg := stats.AverageRR(rep.RiskReward)
				rep.AverageRR = &avg
			}

			out := app.output(cmd)
			if out.IsJSON() {
				return out.JSON(rep)
			}
			return printStats(out, rep, app.Config.Account.Currency)
		},
	}
	ff.register(cmd)
	cmd.Flags().BoolVar(&equity, "equity", false, "Include the equity curve and max drawdown")
	cmd.Flags().BoolVar(&rr, "rr", false, "Include planned risk/reward per trade")
	return cmd
}

func printStats(out *Output, rep statsReport, currency string) error {
	s := rep.Stats

	out.Header("Performance (%d trades, %d closed, %d open)", s.TotalTrades, s.ClosedTrades, s.OpenTrades)
	out.Printf("  Win rate:       %s%% (%d W / %d L / %d BE)\n", stats.FormatPercent(s.WinRate), s.Wins, s.Losses, s.Breakevens)
	out.Printf("  Total P/L:      %s %s (%s)\n", out.Money(s.TotalPnL), currency, s.Trend)
	out.Printf("  Total pips:     %.1f\n", s.TotalPips)
	out.Printf("  Profit factor:  %s\n", s.ProfitFactor)
	out.Printf("  Average win:    %s\n", stats.FormatMoney(s.AverageWin))
	out.Printf("  Average loss:   %s\n", stats.FormatMoney(s.AverageLoss))
	if s.LargestWin != nil {
		out.Printf("  Largest win:    %s\n", out.Money(*s.LargestWin))
		out.Printf("  Largest loss:   %s\n", out.Money(*s.LargestLoss))
	}
	out.Printf("  Streaks:        %d wins / %d losses\n", s.WinStreak, s.LossStreak)
	out.Printf("  Outcomes:       ")
	for i, o := range journal.Outcomes {
		if i > 0 {
			out.Printf(", ")
		}
		out.Printf("%s %d", o, rep.Distribution[o])
	}
	out.Println()

	if err := printBreakdown(out, "By pair", "PAIR", s.ByPair); err != nil {
		return err
	}
	if err := printBreakdown(out, "By strategy", "STRATEGY", s.ByStrategy); err != nil {
		return err
	}

	if rep.MaxDrawdown != nil {
		out.Println()
		out.Header("Equity (max drawdown %.2f%%)", *rep.MaxDrawdown)
		rows := make([][]string, 0, len(rep.Equity))
		for _, p := range rep.Equity {
			rows = append(rows, []string{p.Date.Format(dateLayout), p.TradeID, out.Money(p.PnL), stats.FormatMoney(p.Balance)})
		}
		if err := out.Table([]string{"DATE", "TRADE", "P/L", "BALANCE"}, rows); err != nil {
			return err
		}
	}

	if rep.AverageRR != nil {
		out.Println()
		out.Header("Risk/reward (average %.2f)", *rep.AverageRR)
		rows := make([][]string, 0, len(rep.RiskReward))
		for _, p := range rep.RiskReward {
			rows = append(rows, []string{
				p.TradeID, p.Pair, string(p.Outcome),
				fmt.Sprintf("%.1f", p.Risk), fmt.Sprintf("%.1f", p.Reward), fmt.Sprintf("%.2f", p.Ratio),
			})
		}
		if err := out.Table([]string{"TRADE", "PAIR", "OUTCOME", "RISK", "REWARD", "R:R"}, rows); err != nil {
			return err
		}
	}
	return nil
}

func printBreakdown(out *Output, title, key string, rows []stats.Breakdown) error {
	if len(rows) == 0 {
		return nil
	}
	out.Println()
	out.Header("%s", title)
	cells := make([][]string, 0, len(rows))
	for _, b := range rows {
		cells = append(cells, []string{
			b.Key,
			strconv.Itoa(b.Trades),
			strconv.Itoa(b.Closed),
			stats.FormatPercent(b.WinRate) + "%",
			out.Money(b.PnL),
		})
	}
	return out.Table([]string{key, "TRADES", "CLOSED", "WIN RATE", "P/L"}, cells)
}
