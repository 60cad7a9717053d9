package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/goals"
	"github.com/rustyeddy/tradejournal/journal"
)

type SQLite struct {
	db  *sql.DB
	log zerolog.Logger
}

func NewSQLite(path string, log zerolog.Logger) (*SQLite, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	if _, err := db.Exec(Schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema in %s: %w", path, err)
	}

	log = log.With().Str("store", "sqlite").Str("path", path).Logger()
	log.Debug().Msg("store opened")
	return &SQLite{db: db, log: log}, nil
}

const tradeColumns = `id, date, pair, type, strategy, entry_price, exit_price, stop_loss, take_profit,
	lot_size, status, outcome, pnl, pips, notes, tags, linked_goals, screenshots, created_at, updated_at`

// SaveTrade inserts t or replaces the stored trade with the same id.
func (s *SQLite) SaveTrade(ctx context.Context, t journal.Trade) error {
	tags, err := encodeList(t.Tags)
	if err != nil {
		return err
	}
	linked, err := encodeList(t.LinkedGoals)
	if err != nil {
		return err
	}
	shots, err := encodeList(t.Screenshots)
	if err != nil {
		return err
	}

	var exit sql.NullFloat64
	if t.ExitPrice != nil {
		exit = sql.NullFloat64{Float64: *t.ExitPrice, Valid: true}
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO trades (`+tradeColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, t.Date, t.Pair, t.Type, t.Strategy, t.EntryPrice, exit, t.StopLoss, t.TakeProfit,
		t.LotSize, t.Status, t.Outcome, t.PnL, t.Pips, t.Notes, tags, linked, shots, t.CreatedAt, t.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save trade %s: %w", t.ID, err)
	}
	s.log.Debug().Str("trade", t.ID).Str("pair", t.Pair).Str("status", string(t.Status)).Msg("trade saved")
	return nil
}

func (s *SQLite) GetTrade(ctx context.Context, id string) (journal.Trade, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+tradeColumns+` FROM trades WHERE id = ?`, id)
	t, err := scanTrade(row)
	if errors.Is(err, sql.ErrNoRows) {
		return journal.Trade{}, fmt.Errorf("%w: %q", journal.ErrNotFound, id)
	}
	return t, err
}

// ListTrades returns every trade by date ascending.
func (s *SQLite) ListTrades(ctx context.Context) ([]journal.Trade, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+tradeColumns+` FROM trades ORDER BY date ASC, created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []journal.Trade{}
	for rows.Next() {
		t, err := scanTrade(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLite) DeleteTrade(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM trades WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("delete trade %s: %w", id, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", journal.ErrNotFound, id)
	}
	s.log.Debug().Str("trade", id).Msg("trade deleted")
	return nil
}

const goalColumns = `id, title, description, type, timeframe, target, current, start_date, end_date,
	status, progress, trend, days_remaining, created_at, updated_at`

func (s *SQLite) SaveGoal(ctx context.Context, g goals.Goal) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO goals (`+goalColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		g.ID, g.Title, g.Description, g.Type, g.Timeframe, g.Target, g.Current, g.StartDate, g.EndDate,
		g.Status, g.Metrics.Progress, g.Metrics.Trend, g.Metrics.DaysRemaining, g.CreatedAt, g.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("save goal %s: %w", g.ID, err)
	}
	s.log.Debug().Str("goal", g.ID).Str("status", string(g.Status)).Msg("goal saved")
	return nil
}

func (s *SQLite) GetGoal(ctx context.Context, id string) (goals.Goal, error) {
	row := s.db.QueryRowContext(ctx, `SELECT `+goalColumns+` FROM goals WHERE id = ?`, id)
	g, err := scanGoal(row)
	if errors.Is(err, sql.ErrNoRows) {
		return goals.Goal{}, fmt.Errorf("%w: %q", goals.ErrNotFound, id)
	}
	return g, err
}

// ListGoals returns every goal, archived ones included, oldest first.
func (s *SQLite) ListGoals(ctx context.Context) ([]goals.Goal, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT `+goalColumns+` FROM goals ORDER BY created_at ASC, id ASC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []goals.Goal{}
	for rows.Next() {
		g, err := scanGoal(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, g)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func (s *SQLite) Close() error {
	return s.db.Close()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanTrade(sc scanner) (journal.Trade, error) {
	var (
		t                     journal.Trade
		exit                  sql.NullFloat64
		tags, linked, screens string
	)
	err := sc.Scan(
		&t.ID,
		&t.Date,
		&t.Pair,
		&t.Type,
		&t.Strategy,
		&t.EntryPrice,
		&exit,
		&t.StopLoss,
		&t.TakeProfit,
		&t.LotSize,
		&t.Status,
		&t.Outcome,
		&t.PnL,
		&t.Pips,
		&t.Notes,
		&tags,
		&linked,
		&screens,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		return journal.Trade{}, err
	}
	if exit.Valid {
		v := exit.Float64
		t.ExitPrice = &v
	}
	if t.Tags, err = decodeList(tags); err != nil {
		return journal.Trade{}, fmt.Errorf("trade %s tags: %w", t.ID, err)
	}
	if t.LinkedGoals, err = decodeList(linked); err != nil {
		return journal.Trade{}, fmt.Errorf("trade %s linked goals: %w", t.ID, err)
	}
	if t.Screenshots, err = decodeList(screens); err != nil {
		return journal.Trade{}, fmt.Errorf("trade %s screenshots: %w", t.ID, err)
	}
	return t, nil
}

func scanGoal(sc scanner) (goals.Goal, error) {
	var g goals.Goal
	err := sc.Scan(
		&g.ID,
		&g.Title,
		&g.Description,
		&g.Type,
		&g.Timeframe,
		&g.Target,
		&g.Current,
		&g.StartDate,
		&g.EndDate,
		&g.Status,
		&g.Metrics.Progress,
		&g.Metrics.Trend,
		&g.Metrics.DaysRemaining,
		&g.CreatedAt,
		&g.UpdatedAt,
	)
	if err != nil {
		return goals.Goal{}, err
	}
	return g, nil
}

// List columns hold a JSON array; an empty list is stored as [] and read
// back as nil.
func encodeList(xs []string) (string, error) {
	if len(xs) == 0 {
		return "[]", nil
	}
	b, err := json.Marshal(xs)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func decodeList(s string) ([]string, error) {
	if s == "" || s == "[]" {
		return nil, nil
	}
	var out []string
	if err := json.Unmarshal([]byte(s), &out); err != nil {
		return nil, err
	}
	return out, nil
}
