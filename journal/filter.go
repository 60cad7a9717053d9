package journal

import (
	"fmt"
	"slices"
	"time"
)

// DateRange bounds Trade.Date inclusively on both ends. Either end may be nil.
type DateRange struct {
	Start *time.Time `json:"start,omitempty" yaml:"start,omitempty"`
	End   *time.Time `json:"end,omitempty" yaml:"end,omitempty"`
}

// Filter is a transient trade query. Values within one dimension are OR'd,
// dimensions are AND'd, and an empty dimension does not constrain.
type Filter struct {
	DateRange  *DateRange `json:"dateRange,omitempty" yaml:"dateRange,omitempty"`
	Pairs      []string   `json:"pairs,omitempty" yaml:"pairs,omitempty"`
	Strategies []Strategy `json:"strategies,omitempty" yaml:"strategies,omitempty"`
	Outcomes   []Outcome  `json:"outcomes,omitempty" yaml:"outcomes,omitempty"`
	Status     []Status   `json:"status,omitempty" yaml:"status,omitempty"`
}

// IsZero reports whether the filter constrains nothing.
func (f Filter) IsZero() bool {
	noDates := f.DateRange == nil || (f.DateRange.Start == nil && f.DateRange.End == nil)
	return noDates &&
		len(f.Pairs) == 0 &&
		len(f.Strategies) == 0 &&
		len(f.Outcomes) == 0 &&
		len(f.Status) == 0
}

// Match reports whether t passes every constraint of f.
func (f Filter) Match(t Trade) bool {
	if r := f.DateRange; r != nil {
		if r.Start != nil && t.Date.Before(*r.Start) {
			return false
		}
		if r.End != nil && t.Date.After(*r.End) {
			return false
		}
	}
	if len(f.Pairs) > 0 && !slices.Contains(f.Pairs, t.Pair) {
		return false
	}
	if len(f.Strategies) > 0 && !slices.Contains(f.Strategies, t.Strategy) {
		return false
	}
	if len(f.Outcomes) > 0 && !slices.Contains(f.Outcomes, t.Outcome) {
		return false
	}
	if len(f.Status) > 0 && !slices.Contains(f.Status, t.Status) {
		return false
	}
	return true
}

// Apply returns the trades matching f in their original order. The result is
// always a new slice; trades is never modified.
func Apply(trades []Trade, f Filter) []Trade {
	out := make([]Trade, 0, len(trades))
	for _, t := range trades {
		if f.Match(t) {
			out = append(out, t)
		}
	}
	return out
}

// Between returns the trades dated within [start, end].
func Between(trades []Trade, start, end time.Time) []Trade {
	return Apply(trades, Filter{DateRange: &DateRange{Start: &start, End: &end}})
}

// Periods lists the look-back windows accepted by Period.
var Periods = []string{"7d", "30d", "90d", "1y", "all"}

// Period returns the date range covering the look-back window name ending
// at now. "all" and "" are unbounded and return nil.
func Period(name string, now time.Time) (*DateRange, error) {
	var start time.Time
	switch name {
	case "", "all":
		return nil, nil
	case "7d":
		start = now.AddDate(0, 0, -7)
	case "30d":
		start = now.AddDate(0, 0, -30)
	case "90d":
		start = now.AddDate(0, 0, -90)
	case "1y":
		start = now.AddDate(-1, 0, 0)
	default:
		return nil, fmt.Errorf("unknown period %q (want one of %v)", name, Periods)
	}
	return &DateRange{Start: &start, End: &now}, nil
}
