// Package goals tracks targets over a time window and derives their
// progress, trend and status.
package goals

import (
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/rustyeddy/tradejournal/pkg/id"
	"github.com/rustyeddy/tradejournal/pkg/validate"
	"github.com/rustyeddy/tradejournal/stats"
)

var (
	ErrNotFound = errors.New("goal not found")
	ErrArchived = errors.New("goal is archived")
)

type Type string

const (
	Profit         Type = "PROFIT"
	WinRate        Type = "WIN_RATE"
	RiskReward     Type = "RISK_REWARD"
	TradeFrequency Type = "TRADE_FREQUENCY"
	MaxDrawdown    Type = "MAX_DRAWDOWN"
)

var Types = []Type{Profit, WinRate, RiskReward, TradeFrequency, MaxDrawdown}

func (t Type) Valid() bool { return slices.Contains(Types, t) }

// Timeframe labels the goal window. It is not checked against the dates.
type Timeframe string

const (
	Daily     Timeframe = "DAILY"
	Weekly    Timeframe = "WEEKLY"
	Monthly   Timeframe = "MONTHLY"
	Quarterly Timeframe = "QUARTERLY"
	Yearly    Timeframe = "YEARLY"
)

var Timeframes = []Timeframe{Daily, Weekly, Monthly, Quarterly, Yearly}

func (t Timeframe) Valid() bool { return slices.Contains(Timeframes, t) }

type Status string

const (
	Active    Status = "ACTIVE"
	Completed Status = "COMPLETED"
	Failed    Status = "FAILED"
	Archived  Status = "ARCHIVED"
)

var Statuses = []Status{Active, Completed, Failed, Archived}

func (s Status) Valid() bool { return slices.Contains(Statuses, s) }

type Metrics struct {
	Progress      float64     `json:"progress" yaml:"progress"`
	Trend         stats.Trend `json:"trend" yaml:"trend"`
	DaysRemaining int         `json:"daysRemaining" yaml:"daysRemaining"`
}

// Goal is a target tracked between StartDate and EndDate. Metrics is a
// cached copy of ComputeMetrics and is only ever written through it.
type Goal struct {
	ID          string    `json:"id" yaml:"id"`
	Title       string    `json:"title" yaml:"title"`
	Description string    `json:"description,omitempty" yaml:"description,omitempty"`
	Type        Type      `json:"type" yaml:"type"`
	Timeframe   Timeframe `json:"timeframe" yaml:"timeframe"`
	Target      float64   `json:"target" yaml:"target"`
	Current     float64   `json:"current" yaml:"current"`
	StartDate   time.Time `json:"startDate" yaml:"startDate"`
	EndDate     time.Time `json:"endDate" yaml:"endDate"`
	Status      Status    `json:"status" yaml:"status"`
	Metrics     Metrics   `json:"metrics" yaml:"metrics"`
	CreatedAt   time.Time `json:"createdAt" yaml:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" yaml:"updatedAt"`
}

type GoalInput struct {
	Title       string
	Description string
	Type        Type
	Timeframe   Timeframe
	Target      float64
	StartDate   time.Time
	EndDate     time.Time
}

func (in GoalInput) Validate() error {
	var vs validate.Violations

	vs.Required("title", in.Title, "Title is required")
	if !in.Type.Valid() {
		vs.Add("INVALID_ENUM", "type", fmt.Sprintf("unknown goal type %q", in.Type))
	}
	if !in.Timeframe.Valid() {
		vs.Add("INVALID_ENUM", "timeframe", fmt.Sprintf("unknown timeframe %q", in.Timeframe))
	}
	vs.Positive("target", in.Target, "Target must be positive")
	if in.StartDate.IsZero() {
		vs.Add("REQUIRED", "startDate", "Start date is required")
	}
	if in.EndDate.IsZero() {
		vs.Add("REQUIRED", "endDate", "End date is required")
	} else if in.EndDate.Before(in.StartDate) {
		vs.Add("END_BEFORE_START", "endDate", "End date must not be before start date")
	}
	return vs.Err()
}

// Validate checks a stored goal: the submitted fields plus id, status and a
// non-negative current value.
func (g Goal) Validate() error {
	var vs validate.Violations
	vs.Required("id", g.ID, "id is required")
	if err := g.input().Validate(); err != nil {
		var fields validate.Violations
		if errors.As(err, &fields) {
			vs = append(vs, fields...)
		}
	}
	if !g.Status.Valid() {
		vs.Add("INVALID_ENUM", "status", fmt.Sprintf("unknown status %q", g.Status))
	}
	if g.Current < 0 {
		vs.Add("NEGATIVE", "current", "Current value must not be negative")
	}
	return vs.Err()
}

func (g Goal) input() GoalInput {
	return GoalInput{
		Title:       g.Title,
		Description: g.Description,
		Type:        g.Type,
		Timeframe:   g.Timeframe,
		Target:      g.Target,
		StartDate:   g.StartDate,
		EndDate:     g.EndDate,
	}
}

// NewGoal creates an ACTIVE goal with current 0 and a neutral trend.
func NewGoal(in GoalInput, now time.Time) (Goal, error) {
	if err := in.Validate(); err != nil {
		return Goal{}, err
	}
	g := Goal{
		ID:          id.NewAt(now),
		Title:       in.Title,
		Description: in.Description,
		Type:        in.Type,
		Timeframe:   in.Timeframe,
		Target:      in.Target,
		StartDate:   in.StartDate,
		EndDate:     in.EndDate,
		Status:      Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	g.Metrics = ComputeMetrics(g, nil, now)
	return g, nil
}

// Update records a new current value, recomputes metrics against the
// previous value and applies any status transition.
func (g *Goal) Update(current float64, now time.Time) error {
	if g.Status == Archived {
		return fmt.Errorf("update goal %s: %w", g.ID, ErrArchived)
	}
	if !(current >= 0) {
		return validate.Violations{{Code: "NEGATIVE", Field: "current", Msg: "Current value must not be negative"}}
	}

	previous := g.Current
	g.Current = current
	g.Metrics = ComputeMetrics(*g, &previous, now)
	g.Status = NextStatus(*g, now)
	g.UpdatedAt = now
	return nil
}

// Refresh recomputes progress, days remaining and status at now without a
// new observation. A valid stored trend is kept; anything else becomes
// neutral.
func (g *Goal) Refresh(now time.Time) {
	trend := g.Metrics.Trend
	g.Metrics = ComputeMetrics(*g, nil, now)
	switch trend {
	case stats.Up, stats.Down, stats.Neutral:
		g.Metrics.Trend = trend
	}
	g.Status = NextStatus(*g, now)
}

// Archive retires the goal. Archived is terminal.
func (g *Goal) Archive(now time.Time) error {
	if g.Status == Archived {
		return fmt.Errorf("archive goal %s: %w", g.ID, ErrArchived)
	}
	g.Status = Archived
	g.UpdatedAt = now
	return nil
}

// Find returns the goal with the given id.
func Find(goals []Goal, goalID string) (Goal, error) {
	for _, g := range goals {
		if g.ID == goalID {
			return g, nil
		}
	}
	return Goal{}, fmt.Errorf("%w: %q", ErrNotFound, goalID)
}

// All selects every status in FilterByStatus.
const All = "ALL"

// FilterByStatus keeps goals with the given status, or every goal for All
// or "". Order is preserved and the result is a new slice.
func FilterByStatus(goals []Goal, status string) []Goal {
	out := make([]Goal, 0, len(goals))
	for _, g := range goals {
		if status == "" || status == All || string(g.Status) == status {
			out = append(out, g)
		}
	}
	return out
}
