package goals

import (
	"fmt"
	"time"

	"github.com/rustyeddy/tradejournal/pkg/id"
)

type AlertType string

const (
	Deadline    AlertType = "DEADLINE"
	Threshold   AlertType = "THRESHOLD"
	Achievement AlertType = "ACHIEVEMENT"
)

// DefaultDeadlineDays is how close the end date must be before a DEADLINE
// alert fires.
const DefaultDeadlineDays = 7

type Alert struct {
	ID        string    `json:"id" yaml:"id"`
	GoalID    string    `json:"goalId" yaml:"goalId"`
	Type      AlertType `json:"type" yaml:"type"`
	Message   string    `json:"message" yaml:"message"`
	CreatedAt time.Time `json:"createdAt" yaml:"createdAt"`
	Read      bool      `json:"read" yaml:"read"`
}

var thresholds = []float64{75, 50}

// Alerts lists what is worth telling the user about g at now. Metrics are
// recomputed first so a stale cache cannot hide an alert.
func Alerts(g Goal, now time.Time, deadlineDays int) []Alert {
	if deadlineDays <= 0 {
		deadlineDays = DefaultDeadlineDays
	}
	g.Refresh(now)

	var out []Alert
	add := func(t AlertType, msg string) {
		out = append(out, Alert{
			ID:        id.NewAt(now),
			GoalID:    g.ID,
			Type:      t,
			Message:   msg,
			CreatedAt: now,
		})
	}

	switch g.Status {
	case Completed:
		add(Achievement, fmt.Sprintf("%s: target of %s reached", g.Title, FormatValue(g.Type, g.Target)))
	case Active:
		if days := g.Metrics.DaysRemaining; days <= deadlineDays && g.Metrics.Progress < 100 {
			add(Deadline, fmt.Sprintf("%s: %d days left at %.0f%%", g.Title, days, g.Metrics.Progress))
		}
		for _, th := range thresholds {
			if g.Metrics.Progress >= th {
				add(Threshold, fmt.Sprintf("%s: %.0f%% of target reached", g.Title, th))
				break
			}
		}
	}
	return out
}

// AlertsFor collects alerts for every goal, in goal order.
func AlertsFor(goals []Goal, now time.Time, deadlineDays int) []Alert {
	var out []Alert
	for _, g := range goals {
		out = append(out, Alerts(g, now, deadlineDays)...)
	}
	return out
}
