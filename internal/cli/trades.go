package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/pkg/validate"
	"github.com/rustyeddy/tradejournal/store"
	"github.com/spf13/cobra"
)

func newTradesCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "trades",
		Aliases: []string{"trade", "t"},
		Short:   "Log and review trades",
		Long: `Log, edit and review trades in the journal.

Examples:
  tradejournal trades add --pair EURUSD --type LONG --strategy BREAKOUT --entry 1.0850 --stop 1.0820 --tp 1.0910 --lots 1
  tradejournal trades close <id> --exit 1.0905 --pnl 55
  tradejournal trades list --period 30d --pair EURUSD
  tradejournal trades export trades.csv`,
	}

	cmd.AddCommand(
		newTradesListCmd(app),
		newTradesAddCmd(app),
		newTradesEditCmd(app),
		newTradesCloseCmd(app),
		newTradesCancelCmd(app),
		newTradesRmCmd(app),
		newTradesShowCmd(app),
		newTradesImportCmd(app),
		newTradesExportCmd(app),
	)
	return cmd
}

// loadTrades returns the stored trades passing ff.
func loadTrades(cmd *cobra.Command, app *App, ff *filterFlags) ([]journal.Trade, error) {
	f, err := ff.filter(app.Now())
	if err != nil {
		return nil, err
	}
	s, err := app.Store()
	if err != nil {
		return nil, err
	}
	all, err := s.ListTrades(cmd.Context())
	if err != nil {
		return nil, fmt.Errorf("list trades: %w", err)
	}
	return journal.Apply(all, f), nil
}

func newTradesListCmd(app *App) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List trades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			trades, err := loadTrades(cmd, app, &ff)
			if err != nil {
				return err
			}

			out := app.output(cmd)
			if out.IsJSON() {
				return out.JSON(trades)
			}
			if len(trades) == 0 {
				out.Println("No trades.")
				return nil
			}

			rows := make([][]string, 0, len(trades))
			for _, t := range trades {
				rows = append(rows, []string{
					t.ID,
					t.Date.Format(dateLayout),
					t.Pair,
					string(t.Type),
					string(t.Strategy),
					string(t.Status),
					string(t.Outcome),
					out.Money(t.PnL),
					fmt.Sprintf("%.1f", t.Pips),
				})
			}
			return out.Table([]string{"ID", "DATE", "PAIR", "TYPE", "STRATEGY", "STATUS", "OUTCOME", "P/L", "PIPS"}, rows)
		},
	}
	ff.register(cmd)
	return cmd
}

// tradeFlags backs add and edit. Only flags the user set are applied.
type tradeFlags struct {
	date, pair, typ, strategy, status, outcome, notes string
	entry, exit, stop, tp, lots, pnl, pips            float64
	tags, goals, screenshots                          []string
}

func (tf *tradeFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&tf.date, "date", "", "Trade date (YYYY-MM-DD or RFC 3339, default now)")
	fl.StringVar(&tf.pair, "pair", "", "Currency pair, e.g. EURUSD")
	fl.StringVar(&tf.typ, "type", string(journal.Long), "LONG or SHORT")
	fl.StringVar(&tf.strategy, "strategy", string(journal.OtherStrategy), "Strategy")
	fl.StringVar(&tf.status, "status", string(journal.Open), "OPEN, CLOSED or CANCELLED")
	fl.StringVar(&tf.outcome, "outcome", string(journal.Pending), "WIN, LOSS, BREAKEVEN or PENDING")
	fl.StringVar(&tf.notes, "notes", "", "Free-text notes")
	fl.Float64Var(&tf.entry, "entry", 0, "Entry price")
	fl.Float64Var(&tf.exit, "exit", 0, "Exit price")
	fl.Float64Var(&tf.stop, "stop", 0, "Stop loss")
	fl.Float64Var(&tf.tp, "tp", 0, "Take profit")
	fl.Float64Var(&tf.lots, "lots", 0, "Lot size")
	fl.Float64Var(&tf.pnl, "pnl", 0, "Realized P/L")
	fl.Float64Var(&tf.pips, "pips", 0, "Realized pips")
	fl.StringSliceVar(&tf.tags, "tag", nil, "Tags (repeatable)")
	fl.StringSliceVar(&tf.goals, "goal", nil, "Linked goal ids (repeatable)")
	fl.StringSliceVar(&tf.screenshots, "screenshot", nil, "Screenshot paths or URLs (repeatable)")

	_ = cmd.RegisterFlagCompletionFunc("pair", completePairs)
	_ = cmd.RegisterFlagCompletionFunc("strategy", completeStrategies)
}

func (tf *tradeFlags) apply(cmd *cobra.Command, in *journal.TradeInput) error {
	changed := cmd.Flags().Changed
	upper := strings.ToUpper

	if changed("date") {
		d, err := parseDate(tf.date)
		if err != nil {
			return err
		}
		in.Date = d
	}
	if changed("pair") {
		in.Pair = upper(tf.pair)
	}
	if changed("type") || in.Type == "" {
		in.Type = journal.TradeType(upper(tf.typ))
	}
	if changed("strategy") || in.Strategy == "" {
		in.Strategy = journal.Strategy(upper(tf.strategy))
	}
	if changed("status") || in.Status == "" {
		in.Status = journal.Status(upper(tf.status))
	}
	if changed("outcome") || in.Outcome == "" {
		in.Outcome = journal.Outcome(upper(tf.outcome))
	}
	if changed("notes") {
		in.Notes = tf.notes
	}
	if changed("entry") {
		in.EntryPrice = tf.entry
	}
	if changed("exit") {
		v := tf.exit
		in.ExitPrice = &v
	}
	if changed("stop") {
		in.StopLoss = tf.stop
	}
	if changed("tp") {
		in.TakeProfit = tf.tp
	}
	if changed("lots") {
		in.LotSize = tf.lots
	}
	if changed("pnl") {
		in.PnL = tf.pnl
	}
	if changed("pips") {
		in.Pips = tf.pips
	}
	if changed("tag") {
		in.Tags = tf.tags
	}
	if changed("goal") {
		in.LinkedGoals = tf.goals
	}
	if changed("screenshot") {
		in.Screenshots = tf.screenshots
	}
	return nil
}

// reportInvalid prints one line per failing field and returns err.
func reportInvalid(out *Output, err error) error {
	var vs validate.Violations
	if errors.As(err, &vs) && !out.IsJSON() {
		for _, v := range vs {
			out.Error("%s", v)
		}
	}
	return err
}

func newTradesAddCmd(app *App) *cobra.Command {
	var tf tradeFlags

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Log a new trade",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := app.output(cmd)
			now := app.Now()

			in := journal.TradeInput{Date: now}
			if err := tf.apply(cmd, &in); err != nil {
				return err
			}
			t, err := journal.NewTrade(in, now)
			if err != nil {
				return reportInvalid(out, err)
			}

			s, err := app.Store()
			if err != nil {
				return err
			}
			if err := s.SaveTrade(cmd.Context(), t); err != nil {
				return err
			}
			app.Logger.Info().Str("trade", t.ID).Str("pair", t.Pair).Msg("trade added")

			if out.IsJSON() {
				return out.JSON(t)
			}
			out.Success("Trade %s added: %s %s @ %.5f", t.ID, t.Pair, t.Type, t.EntryPrice)
			return nil
		},
	}
	tf.register(cmd)
	return cmd
}

func newTradesEditCmd(app *App) *cobra.Command {
	var tf tradeFlags

	cmd := &cobra.Command{
		Use:   "edit <trade-id>",
		Short: "Change fields of a trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := app.output(cmd)
			s, err := app.Store()
			if err != nil {
				return err
			}
			t, err := s.GetTrade(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			in := t.Input()
			if err := tf.apply(cmd, &in); err != nil {
				return err
			}
			if err := t.Apply(in, app.Now()); err != nil {
				return reportInvalid(out, err)
			}
			if err := s.SaveTrade(cmd.Context(), t); err != nil {
				return err
			}

			if out.IsJSON() {
				return out.JSON(t)
			}
			out.Success("Trade %s updated", t.ID)
			return nil
		},
	}
	tf.register(cmd)
	return cmd
}

func newTradesCloseCmd(app *App) *cobra.Command {
	var exit, pnl float64

	cmd := &cobra.Command{
		Use:   "close <trade-id>",
		Short: "Close an open trade at an exit price",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := app.output(cmd)
			s, err := app.Store()
			if err != nil {
				return err
			}
			t, err := s.GetTrade(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := t.Close(exit, pnl, app.Now()); err != nil {
				return reportInvalid(out, err)
			}
			if err := s.SaveTrade(cmd.Context(), t); err != nil {
				return err
			}
			app.Logger.Info().Str("trade", t.ID).Str("outcome", string(t.Outcome)).Msg("trade closed")

			if out.IsJSON() {
				return out.JSON(t)
			}
			out.Success("Trade %s closed: %s %s (%.1f pips)", t.ID, t.Outcome, out.Money(t.PnL), t.Pips)
			return nil
		},
	}
	cmd.Flags().Float64Var(&exit, "exit", 0, "Exit price (required)")
	cmd.Flags().Float64Var(&pnl, "pnl", 0, "Realized P/L (required)")
	_ = cmd.MarkFlagRequired("exit")
	_ = cmd.MarkFlagRequired("pnl")
	return cmd
}

func newTradesCancelCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "cancel <trade-id>",
		Short: "Withdraw an open trade",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Store()
			if err != nil {
				return err
			}
			t, err := s.GetTrade(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := t.Cancel(app.Now()); err != nil {
				return err
			}
			if err := s.SaveTrade(cmd.Context(), t); err != nil {
				return err
			}
			app.output(cmd).Success("Trade %s cancelled", t.ID)
			return nil
		},
	}
}

func newTradesRmCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:     "rm <trade-id>",
		Aliases: []string{"delete"},
		Short:   "Delete a trade",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Store()
			if err != nil {
				return err
			}
			if err := s.DeleteTrade(cmd.Context(), args[0]); err != nil {
				return err
			}
			app.Logger.Info().Str("trade", args[0]).Msg("trade deleted")
			app.output(cmd).Success("Trade %s deleted", args[0])
			return nil
		},
	}
}

func newTradesShowCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "show <trade-id>",
		Short: "Print a trade as an Org-mode entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Store()
			if err != nil {
				return err
			}
			t, err := s.GetTrade(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			out := app.output(cmd)
			if out.IsJSON() {
				return out.JSON(t)
			}
			out.Printf("%s", journal.FormatTradeOrg(t))
			return nil
		},
	}
}

func newTradesImportCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "import <file.csv|file.yaml|file.json>",
		Short: "Import trades (and goals) from a file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]

			var ds store.Dataset
			if strings.EqualFold(filepath.Ext(path), ".csv") {
				f, err := os.Open(path)
				if err != nil {
					return err
				}
				defer f.Close()
				if ds.Trades, err = journal.ReadCSV(f); err != nil {
					return fmt.Errorf("import %s: %w", path, err)
				}
			} else {
				if _, err := os.Stat(path); err != nil {
					return err
				}
				var err error
				if ds, err = store.ReadDataset(path); err != nil {
					return err
				}
			}

			s, err := app.Store()
			if err != nil {
				return err
			}
			nt, ng, err := store.Import(cmd.Context(), s, ds, app.Now())
			if err != nil {
				return err
			}
			app.Logger.Info().Str("file", path).Int("trades", nt).Int("goals", ng).Msg("import done")
			app.output(cmd).Success("Imported %d trades and %d goals from %s", nt, ng, path)
			return nil
		},
	}
}

func newTradesExportCmd(app *App) *cobra.Command {
	var ff filterFlags

	cmd := &cobra.Command{
		Use:   "export <file.csv|file.org|file.yaml|file.json>",
		Short: "Export filtered trades; the format follows the file extension",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			trades, err := loadTrades(cmd, app, &ff)
			if err != nil {
				return err
			}

			switch strings.ToLower(filepath.Ext(path)) {
			case ".csv":
				err = writeFile(path, func(f *os.File) error { return journal.WriteCSV(f, trades) })
			case ".org":
				err = os.WriteFile(path, []byte(journal.FormatTradesOrg(trades)), 0o644)
			case ".yaml", ".yml", ".json":
				s, serr := app.Store()
				if serr != nil {
					return serr
				}
				gs, gerr := s.ListGoals(cmd.Context())
				if gerr != nil {
					return gerr
				}
				err = store.WriteDataset(path, store.Dataset{Trades: trades, Goals: gs})
			default:
				return fmt.Errorf("export %s: unknown format (want .csv, .org, .yaml or .json)", path)
			}
			if err != nil {
				return fmt.Errorf("export %s: %w", path, err)
			}
			app.output(cmd).Success("Exported %d trades to %s", len(trades), path)
			return nil
		},
	}
	ff.register(cmd)
	return cmd
}

func writeFile(path string, write func(*os.File) error) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(f); err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
