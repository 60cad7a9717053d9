// journal/trade.go
package journal

import (
	"errors"
	"fmt"
	"math"
	"slices"
	"time"

	"github.com/rustyeddy/tradejournal/market"
	"github.com/rustyeddy/tradejournal/pkg/id"
	"github.com/rustyeddy/tradejournal/pkg/validate"
)

var ErrNotFound = errors.New("trade not found")

type TradeType string

const (
	Long  TradeType = "LONG"
	Short TradeType = "SHORT"
)

func (t TradeType) Valid() bool { return t == Long || t == Short }

type Strategy string

const (
	TrendFollowing Strategy = "TREND_FOLLOWING"
	Breakout       Strategy = "BREAKOUT"
	Reversal       Strategy = "REVERSAL"
	Scalping       Strategy = "SCALPING"
	Swing          Strategy = "SWING"
	OtherStrategy  Strategy = "OTHER"
)

var Strategies = []Strategy{TrendFollowing, Breakout, Reversal, Scalping, Swing, OtherStrategy}

func (s Strategy) Valid() bool { return slices.Contains(Strategies, s) }

type Status string

const (
	Open      Status = "OPEN"
	Closed    Status = "CLOSED"
	Cancelled Status = "CANCELLED"
)

var Statuses = []Status{Open, Closed, Cancelled}

func (s Status) Valid() bool { return slices.Contains(Statuses, s) }

type Outcome string

const (
	Win       Outcome = "WIN"
	Loss      Outcome = "LOSS"
	Breakeven Outcome = "BREAKEVEN"
	Pending   Outcome = "PENDING"
)

var Outcomes = []Outcome{Win, Loss, Breakeven, Pending}

func (o Outcome) Valid() bool { return slices.Contains(Outcomes, o) }

// Trade is one logged position.
type Trade struct {
	ID       string    `json:"id" yaml:"id"`
	Date     time.Time `json:"date" yaml:"date"`
	Pair     string    `json:"pair" yaml:"pair"`
	Type     TradeType `json:"type" yaml:"type"`
	Strategy Strategy  `json:"strategy" yaml:"strategy"`

	EntryPrice float64  `json:"entryPrice" yaml:"entryPrice"`
	ExitPrice  *float64 `json:"exitPrice,omitempty" yaml:"exitPrice,omitempty"`
	StopLoss   float64  `json:"stopLoss" yaml:"stopLoss"`
	TakeProfit float64  `json:"takeProfit" yaml:"takeProfit"`
	LotSize    float64  `json:"lotSize" yaml:"lotSize"`

	Status  Status  `json:"status" yaml:"status"`
	Outcome Outcome `json:"outcome" yaml:"outcome"`
	PnL     float64 `json:"pnl" yaml:"pnl"`
	Pips    float64 `json:"pips" yaml:"pips"`

	Notes       string   `json:"notes,omitempty" yaml:"notes,omitempty"`
	Tags        []string `json:"tags,omitempty" yaml:"tags,omitempty"`
	LinkedGoals []string `json:"linkedGoals,omitempty" yaml:"linkedGoals,omitempty"`
	Screenshots []string `json:"screenshots,omitempty" yaml:"screenshots,omitempty"`

	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt" yaml:"updatedAt"`
}

// TradeInput is everything a user submits for a trade; id and bookkeeping
// timestamps are assigned by NewTrade.
type TradeInput struct {
	Date        time.Time
	Pair        string
	Type        TradeType
	Strategy    Strategy
	EntryPrice  float64
	ExitPrice   *float64
	StopLoss    float64
	TakeProfit  float64
	LotSize     float64
	Status      Status
	Outcome     Outcome
	PnL         float64
	Pips        float64
	Notes       string
	Tags        []string
	LinkedGoals []string
	Screenshots []string
}

// Validate checks the shape of a submitted trade.
func (in TradeInput) Validate() error {
	var vs validate.Violations

	if in.Date.IsZero() {
		vs.Add("REQUIRED", "date", "Date is required")
	}
	vs.Required("pair", in.Pair, "Currency pair is required")
	if !in.Type.Valid() {
		vs.Add("INVALID_ENUM", "type", fmt.Sprintf("unknown trade type %q", in.Type))
	}
	if !in.Strategy.Valid() {
		vs.Add("INVALID_ENUM", "strategy", fmt.Sprintf("unknown strategy %q", in.Strategy))
	}
	vs.Positive("entryPrice", in.EntryPrice, "Entry price must be positive")
	if in.ExitPrice != nil {
		vs.Positive("exitPrice", *in.ExitPrice, "Exit price must be positive")
	}
	vs.Positive("stopLoss", in.StopLoss, "Stop loss must be positive")
	vs.Positive("takeProfit", in.TakeProfit, "Take profit must be positive")
	vs.Positive("lotSize", in.LotSize, "Lot size must be positive")
	if !in.Status.Valid() {
		vs.Add("INVALID_ENUM", "status", fmt.Sprintf("unknown status %q", in.Status))
	}
	if !in.Outcome.Valid() {
		vs.Add("INVALID_ENUM", "outcome", fmt.Sprintf("unknown outcome %q", in.Outcome))
	}
	if math.IsNaN(in.PnL) || math.IsInf(in.PnL, 0) {
		vs.Add("NOT_FINITE", "pnl", "P/L must be a number")
	}
	if math.IsNaN(in.Pips) || math.IsInf(in.Pips, 0) {
		vs.Add("NOT_FINITE", "pips", "Pips must be a number")
	}

	return vs.Err()
}

// Validate checks a stored trade the same way a submission is checked.
func (t Trade) Validate() error {
	var vs validate.Violations
	vs.Required("id", t.ID, "id is required")
	if err := t.Input().Validate(); err != nil {
		var fields validate.Violations
		if errors.As(err, &fields) {
			vs = append(vs, fields...)
		}
	}
	return vs.Err()
}

// NewTrade validates in and creates a trade with a fresh id.
func NewTrade(in TradeInput, now time.Time) (Trade, error) {
	in.defaults()
	if err := in.Validate(); err != nil {
		return Trade{}, err
	}

	t := Trade{
		ID:        id.NewAt(now),
		CreatedAt: now,
		UpdatedAt: now,
	}
	t.set(in)
	t.Normalize()
	return t, nil
}

// Apply edits the trade in place. ID and CreatedAt never change.
// Empty status and outcome default to OPEN and PENDING, as in NewTrade.
func (t *Trade) Apply(in TradeInput, now time.Time) error {
	in.defaults()
	if err := in.Validate(); err != nil {
		return err
	}
	t.set(in)
	t.Normalize()
	t.UpdatedAt = now
	return nil
}

func (in *TradeInput) defaults() {
	if in.Status == "" {
		in.Status = Open
	}
	if in.Outcome == "" {
		in.Outcome = Pending
	}
}

func (t *Trade) set(in TradeInput) {
	t.Date = in.Date
	t.Pair = in.Pair
	t.Type = in.Type
	t.Strategy = in.Strategy
	t.EntryPrice = in.EntryPrice
	t.ExitPrice = cloneFloat(in.ExitPrice)
	t.StopLoss = in.StopLoss
	t.TakeProfit = in.TakeProfit
	t.LotSize = in.LotSize
	t.Status = in.Status
	t.Outcome = in.Outcome
	t.PnL = in.PnL
	t.Pips = in.Pips
	t.Notes = in.Notes
	t.Tags = slices.Clone(in.Tags)
	t.LinkedGoals = slices.Clone(in.LinkedGoals)
	t.Screenshots = slices.Clone(in.Screenshots)
}

// Input returns the user-editable fields of t, for use with Apply.
func (t Trade) Input() TradeInput {
	return TradeInput{
		Date:        t.Date,
		Pair:        t.Pair,
		Type:        t.Type,
		Strategy:    t.Strategy,
		EntryPrice:  t.EntryPrice,
		ExitPrice:   t.ExitPrice,
		StopLoss:    t.StopLoss,
		TakeProfit:  t.TakeProfit,
		LotSize:     t.LotSize,
		Status:      t.Status,
		Outcome:     t.Outcome,
		PnL:         t.PnL,
		Pips:        t.Pips,
		Notes:       t.Notes,
		Tags:        t.Tags,
		LinkedGoals: t.LinkedGoals,
		Screenshots: t.Screenshots,
	}
}

// Normalize enforces that an open trade is PENDING with no realized P/L.
func (t *Trade) Normalize() {
	if t.Status == Open {
		t.Outcome = Pending
		t.PnL = 0
		t.Pips = 0
	}
}

// Close marks the trade closed at exit with realized pnl. Pips are derived
// from the price move in the trade's direction and the outcome from the sign
// of pnl.
func (t *Trade) Close(exit, pnl float64, now time.Time) error {
	if t.Status != Open {
		return fmt.Errorf("close trade %s: status is %s", t.ID, t.Status)
	}
	if !(exit > 0) {
		return validate.Violations{{Code: "NOT_POSITIVE", Field: "exitPrice", Msg: "Exit price must be positive"}}
	}

	move := exit - t.EntryPrice
	if t.Type == Short {
		move = -move
	}

	t.ExitPrice = &exit
	t.PnL = pnl
	t.Pips = market.Pips(t.Pair, move)
	t.Status = Closed
	switch {
	case pnl > 0:
		t.Outcome = Win
	case pnl < 0:
		t.Outcome = Loss
	default:
		t.Outcome = Breakeven
	}
	t.UpdatedAt = now
	return nil
}

// Cancel withdraws an open trade.
func (t *Trade) Cancel(now time.Time) error {
	if t.Status != Open {
		return fmt.Errorf("cancel trade %s: status is %s", t.ID, t.Status)
	}
	t.Status = Cancelled
	t.UpdatedAt = now
	return nil
}

// LinkedTo reports whether the trade counts toward goalID.
func (t Trade) LinkedTo(goalID string) bool {
	return slices.Contains(t.LinkedGoals, goalID)
}

// Find returns the trade with the given id.
func Find(trades []Trade, tradeID string) (Trade, error) {
	for _, t := range trades {
		if t.ID == tradeID {
			return t, nil
		}
	}
	return Trade{}, fmt.Errorf("%w: %q", ErrNotFound, tradeID)
}

// Remove returns a new slice without the trade tradeID.
func Remove(trades []Trade, tradeID string) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if t.ID != tradeID {
			out = append(out, t)
		}
	}
	return out
}

func cloneFloat(p *float64) *float64 {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}
