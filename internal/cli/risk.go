package cli

import (
	"strings"

	"github.com/rustyeddy/tradejournal/risk"
	"github.com/spf13/cobra"
)

type riskReport struct {
	Input  risk.Input   `json:"input"`
	Result *risk.Result `json:"result"`
	RR     *float64     `json:"rr,omitempty"`
}

func newRiskCmd(app *App) *cobra.Command {
	var in risk.Input
	var tp float64

	cmd := &cobra.Command{
		Use:   "risk",
		Short: "Size a position from account risk",
		Long: `Compute the amount at risk, pip distance, pip value and position size (in
standard lots) for a trade. Account size and risk default to the config.

Example:
  tradejournal risk --account 10000 --risk 1 --entry 1.0850 --stop 1.0800 --pair EURUSD`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("account") {
				in.AccountSize = app.Config.Risk.AccountSize
			}
			if !cmd.Flags().Changed("risk") {
				in.RiskPercentage = app.Config.Risk.DefaultRiskPercent
			}
			in.Pair = strings.ToUpper(in.Pair)

			out := app.output(cmd)
			res, err := risk.ComputeRisk(in)
			if err != nil {
				return reportInvalid(out, err)
			}

			rep := riskReport{Input: in, Result: res}
			if cmd.Flags().Changed("tp") {
				v := risk.RR(in.EntryPrice, in.StopLoss, tp)
				rep.RR = &v
			}
			if out.IsJSON() {
				return out.JSON(rep)
			}

			if res == nil {
				out.Warning("Stop loss equals entry: no position size")
				return nil
			}
			out.Header("%s risk %.1f%% of %.2f", in.Pair, in.RiskPercentage, in.AccountSize)
			out.Printf("  Risk amount:    %.2f\n", res.RiskAmount)
			out.Printf("  Pip distance:   %.1f\n", res.PipDistance)
			out.Printf("  Pip value:      %.2f\n", res.PipValue)
			out.Printf("  Position size:  %.2f lots\n", res.PositionSize)
			if rep.RR != nil {
				out.Printf("  Planned R:R:    %.2f\n", *rep.RR)
			}
			return nil
		},
	}

	cmd.Flags().Float64Var(&in.AccountSize, "account", 0, "Account size")
	cmd.Flags().Float64Var(&in.RiskPercentage, "risk", 0, "Risk per trade in percent (0.1 to 10)")
	cmd.Flags().Float64Var(&in.EntryPrice, "entry", 0, "Entry price")
	cmd.Flags().Float64Var(&in.StopLoss, "stop", 0, "Stop loss")
	cmd.Flags().Float64Var(&tp, "tp", 0, "Take profit, to report the planned R:R")
	cmd.Flags().StringVar(&in.Pair, "pair", "", "Currency pair")
	_ = cmd.RegisterFlagCompletionFunc("pair", completePairs)
	return cmd
}
