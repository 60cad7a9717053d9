package store

import (
	"context"
	"fmt"
	"time"
)

// Import validates every record of ds and then saves them all into s.
// Nothing is written when any record is invalid. Records whose id already
// exists replace the stored copy. Goal metrics are recomputed at now rather
// than taken from the file.
func Import(ctx context.Context, s Store, ds Dataset, now time.Time) (trades, goals int, err error) {
	for i, t := range ds.Trades {
		if err := t.Validate(); err != nil {
			return 0, 0, fmt.Errorf("trade %d (%s): %w", i+1, t.ID, err)
		}
	}
	for i, g := range ds.Goals {
		if err := g.Validate(); err != nil {
			return 0, 0, fmt.Errorf("goal %d (%s): %w", i+1, g.ID, err)
		}
	}

	for _, t := range ds.Trades {
		t.Normalize()
		if err := s.SaveTrade(ctx, t); err != nil {
			return trades, goals, err
		}
		trades++
	}
	for _, g := range ds.Goals {
		g.Refresh(now)
		if err := s.SaveGoal(ctx, g); err != nil {
			return trades, goals, err
		}
		goals++
	}
	return trades, goals, nil
}
