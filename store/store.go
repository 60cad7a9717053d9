// Package store persists trades and goals, either in SQLite or in a single
// YAML/JSON data file.
package store

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/config"
	"github.com/rustyeddy/tradejournal/goals"
	"github.com/rustyeddy/tradejournal/journal"
)

// Store is the persistence boundary of the journal. Lookups of unknown ids
// return errors wrapping journal.ErrNotFound or goals.ErrNotFound.
type Store interface {
	SaveTrade(ctx context.Context, t journal.Trade) error
	GetTrade(ctx context.Context, id string) (journal.Trade, error)
	ListTrades(ctx context.Context) ([]journal.Trade, error)
	DeleteTrade(ctx context.Context, id string) error

	SaveGoal(ctx context.Context, g goals.Goal) error
	GetGoal(ctx context.Context, id string) (goals.Goal, error)
	ListGoals(ctx context.Context) ([]goals.Goal, error)

	Close() error
}

const (
	TypeSQLite = "sqlite"
	TypeFile   = "file"
)

// Open returns the store selected by cfg.
func Open(cfg config.Store, log zerolog.Logger) (Store, error) {
	switch cfg.Type {
	case TypeSQLite, "":
		return NewSQLite(cfg.DBPath, log)
	case TypeFile:
		return NewFile(cfg.DataFile, log)
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.Type)
	}
}
