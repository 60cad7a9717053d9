package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"sync"

	"github.com/rs/zerolog"
	"github.com/rustyeddy/tradejournal/goals"
	"github.com/rustyeddy/tradejournal/journal"
	"gopkg.in/yaml.v3"
)

// Dataset is the on-disk layout of a data file and of import files.
type Dataset struct {
	Trades []journal.Trade `json:"trades" yaml:"trades"`
	Goals  []goals.Goal    `json:"goals" yaml:"goals"`
}

// ReadDataset loads a .json, .yaml or .yml file. A missing file is an
// empty dataset.
func ReadDataset(path string) (Dataset, error) {
	var ds Dataset
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return ds, nil
	}
	if err != nil {
		return ds, err
	}

	if isJSON(path) {
		err = json.Unmarshal(data, &ds)
	} else {
		err = yaml.Unmarshal(data, &ds)
	}
	if err != nil {
		return Dataset{}, fmt.Errorf("parse %s: %w", path, err)
	}
	return ds, nil
}

// WriteDataset replaces path with ds. The file is written next to path and
// renamed over it.
func WriteDataset(path string, ds Dataset) error {
	var (
		data []byte
		err  error
	)
	if isJSON(path) {
		data, err = json.MarshalIndent(ds, "", "  ")
	} else {
		data, err = yaml.Marshal(ds)
	}
	if err != nil {
		return err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

func isJSON(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".json")
}

// File keeps the whole dataset in memory and rewrites the file on every
// change.
type File struct {
	mu   sync.Mutex
	path string
	ds   Dataset
	log  zerolog.Logger
}

func NewFile(path string, log zerolog.Logger) (*File, error) {
	if path == "" {
		return nil, errors.New("file store: no data file configured")
	}
	ds, err := ReadDataset(path)
	if err != nil {
		return nil, err
	}
	log = log.With().Str("store", "file").Str("path", path).Logger()
	log.Debug().Int("trades", len(ds.Trades)).Int("goals", len(ds.Goals)).Msg("store opened")
	return &File{path: path, ds: ds, log: log}, nil
}

func (f *File) SaveTrade(ctx context.Context, t journal.Trade) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.next()
	i := slices.IndexFunc(next.Trades, func(x journal.Trade) bool { return x.ID == t.ID })
	if i < 0 {
		next.Trades = append(next.Trades, t)
	} else {
		next.Trades[i] = t
	}
	if err := f.commit(next); err != nil {
		return fmt.Errorf("save trade %s: %w", t.ID, err)
	}
	f.log.Debug().Str("trade", t.ID).Msg("trade saved")
	return nil
}

func (f *File) GetTrade(ctx context.Context, id string) (journal.Trade, error) {
	if err := ctx.Err(); err != nil {
		return journal.Trade{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return journal.Find(f.ds.Trades, id)
}

// ListTrades returns every trade by date ascending.
func (f *File) ListTrades(ctx context.Context) ([]journal.Trade, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	out := slices.Clone(f.ds.Trades)
	if out == nil {
		out = []journal.Trade{}
	}
	slices.SortStableFunc(out, func(a, b journal.Trade) int { return a.Date.Compare(b.Date) })
	return out, nil
}

func (f *File) DeleteTrade(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	if _, err := journal.Find(f.ds.Trades, id); err != nil {
		return err
	}
	next := f.next()
	next.Trades = journal.Remove(next.Trades, id)
	if err := f.commit(next); err != nil {
		return fmt.Errorf("delete trade %s: %w", id, err)
	}
	f.log.Debug().Str("trade", id).Msg("trade deleted")
	return nil
}

func (f *File) SaveGoal(ctx context.Context, g goals.Goal) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	next := f.next()
	i := slices.IndexFunc(next.Goals, func(x goals.Goal) bool { return x.ID == g.ID })
	if i < 0 {
		next.Goals = append(next.Goals, g)
	} else {
		next.Goals[i] = g
	}
	if err := f.commit(next); err != nil {
		return fmt.Errorf("save goal %s: %w", g.ID, err)
	}
	f.log.Debug().Str("goal", g.ID).Msg("goal saved")
	return nil
}

func (f *File) GetGoal(ctx context.Context, id string) (goals.Goal, error) {
	if err := ctx.Err(); err != nil {
		return goals.Goal{}, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	return goals.Find(f.ds.Goals, id)
}

func (f *File) ListGoals(ctx context.Context) ([]goals.Goal, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()

	out := slices.Clone(f.ds.Goals)
	if out == nil {
		out = []goals.Goal{}
	}
	return out, nil
}

func (f *File) Close() error { return nil }

// next returns a copy of the dataset for a mutation to work on.
func (f *File) next() Dataset {
	return Dataset{Trades: slices.Clone(f.ds.Trades), Goals: slices.Clone(f.ds.Goals)}
}

// commit writes ds and only then makes it the in-memory dataset, so a failed
// write leaves memory matching the file.
func (f *File) commit(ds Dataset) error {
	if err := WriteDataset(f.path, ds); err != nil {
		return err
	}
	f.ds = ds
	return nil
}
