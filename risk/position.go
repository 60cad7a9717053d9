package risk

import (
	"fmt"
	"math"

	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/pkg/validate"
)

const (
	MinRiskPercentage = 0.1
	MaxRiskPercentage = 10.0

	// StandardLot is the notional used to turn one pip into account currency.
	StandardLot = 100_000

	// Distances are always quoted in four-decimal pips, yen pairs included.
	// Only the pip value distinguishes yen pairs. This is the calculator's
	// documented approximation, not a cross-rate conversion.
	pipsPerPrice = 10_000
)

type Input struct {
	AccountSize    float64 `json:"accountSize" yaml:"accountSize"`
	RiskPercentage float64 `json:"riskPercentage" yaml:"riskPercentage"` // 1 means 1%
	EntryPrice     float64 `json:"entryPrice" yaml:"entryPrice"`
	StopLoss       float64 `json:"stopLoss" yaml:"stopLoss"`
	Pair           string  `json:"pair" yaml:"pair"`
}

// Result is always a consistent triple. A nil *Result means the inputs were
// valid but insufficient (entry equals stop), so nothing was computed.
type Result struct {
	RiskAmount   float64 `json:"riskAmount"`
	PipDistance  float64 `json:"pipDistance"`
	PipValue     float64 `json:"pipValue"`
	PositionSize float64 `json:"positionSize"`
}

// Validate returns the field-level problems with in, or nil.
func (in Input) Validate() error {
	var vs validate.Violations

	vs.Positive("accountSize", in.AccountSize, "Account size must be positive")
	switch {
	case math.IsNaN(in.RiskPercentage) || in.RiskPercentage < MinRiskPercentage:
		vs.Add("RISK_TOO_LOW", "riskPercentage",
			fmt.Sprintf("Risk must be at least %.1f%%", MinRiskPercentage))
	case in.RiskPercentage > MaxRiskPercentage:
		vs.Add("RISK_TOO_HIGH", "riskPercentage",
			fmt.Sprintf("Risk cannot exceed %.0f%%", MaxRiskPercentage))
	}
	vs.Positive("entryPrice", in.EntryPrice, "Entry price must be positive")
	vs.Positive("stopLoss", in.StopLoss, "Stop loss must be positive")
	vs.Required("pair", in.Pair, "Currency pair is required")

	return vs.Err()
}

// PipValue is the account-currency value of one pip on a standard lot.
func PipValue(pair string) float64 {
	return market.PipSize(pair) * StandardLot
}

// ComputeRisk sizes a position so that hitting the stop loses
// riskPercentage of the account. Invalid input yields a validate.Violations
// error; entry == stop yields (nil, nil).
func ComputeRisk(in Input) (*Result, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}

	riskAmount := in.AccountSize * in.RiskPercentage / 100
	pipDistance := math.Abs(in.EntryPrice-in.StopLoss) * pipsPerPrice
	if pipDistance <= 0 {
		return nil, nil
	}
	pipValue := PipValue(in.Pair)

	return &Result{
		RiskAmount:   riskAmount,
		PipDistance:  pipDistance,
		PipValue:     pipValue,
		PositionSize: riskAmount / (pipDistance * pipValue),
	}, nil
}
