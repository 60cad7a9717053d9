// journal/csv.go
package journal

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"
)

var csvHeader = []string{
	"id", "date", "pair", "type", "strategy",
	"entry_price", "exit_price", "stop_loss", "take_profit", "lot_size",
	"status", "outcome", "pnl", "pips",
	"notes", "tags", "linked_goals", "screenshots",
	"created_at", "updated_at",
}

// list fields are joined with this separator inside one cell
const listSep = "|"

// WriteCSV writes trades with a header row. Floats are written in their
// shortest round-trip form so ReadCSV restores identical values.
func WriteCSV(w io.Writer, trades []Trade) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(csvHeader); err != nil {
		return err
	}

	for _, t := range trades {
		exit := ""
		if t.ExitPrice != nil {
			exit = f(*t.ExitPrice)
		}
		err := cw.Write([]string{
			t.ID,
			t.Date.Format(time.RFC3339Nano),
			t.Pair,
			string(t.Type),
			string(t.Strategy),
			f(t.EntryPrice),
			exit,
			f(t.StopLoss),
			f(t.TakeProfit),
			f(t.LotSize),
			string(t.Status),
			string(t.Outcome),
			f(t.PnL),
			f(t.Pips),
			t.Notes,
			strings.Join(t.Tags, listSep),
			strings.Join(t.LinkedGoals, listSep),
			strings.Join(t.Screenshots, listSep),
			t.CreatedAt.Format(time.RFC3339Nano),
			t.UpdatedAt.Format(time.RFC3339Nano),
		})
		if err != nil {
			return fmt.Errorf("write trade %s: %w", t.ID, err)
		}
	}

	cw.Flush()
	return cw.Error()
}

// ReadCSV parses a file produced by WriteCSV. Each row is validated.
func ReadCSV(r io.Reader) ([]Trade, error) {
	cr := csv.NewReader(r)
	cr.FieldsPerRecord = len(csvHeader)

	header, err := cr.Read()
	if err == io.EOF {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("read header: %w", err)
	}
	if strings.Join(header, ",") != strings.Join(csvHeader, ",") {
		return nil, fmt.Errorf("unexpected header %v", header)
	}

	var out []Trade
	for line := 2; ; line++ {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		t, err := parseRow(row)
		if err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("line %d: %w", line, err)
		}
		out = append(out, t)
	}
	return out, nil
}

func parseRow(row []string) (Trade, error) {
	p := rowParser{row: row}

	t := Trade{
		ID:          row[0],
		Date:        p.time(1),
		Pair:        row[2],
		Type:        TradeType(row[3]),
		Strategy:    Strategy(row[4]),
		EntryPrice:  p.float(5),
		StopLoss:    p.float(7),
		TakeProfit:  p.float(8),
		LotSize:     p.float(9),
		Status:      Status(row[10]),
		Outcome:     Outcome(row[11]),
		PnL:         p.float(12),
		Pips:        p.float(13),
		Notes:       row[14],
		Tags:        split(row[15]),
		LinkedGoals: split(row[16]),
		Screenshots: split(row[17]),
		CreatedAt:   p.time(18),
		UpdatedAt:   p.time(19),
	}
	if row[6] != "" {
		exit := p.float(6)
		t.ExitPrice = &exit
	}
	return t, p.err
}

// rowParser keeps the first conversion error so parseRow reads linearly.
type rowParser struct {
	row []string
	err error
}

func (p *rowParser) float(i int) float64 {
	v, err := strconv.ParseFloat(p.row[i], 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %s: %w", csvHeader[i], err)
	}
	return v
}

func (p *rowParser) time(i int) time.Time {
	v, err := time.Parse(time.RFC3339Nano, p.row[i])
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("column %s: %w", csvHeader[i], err)
	}
	return v
}

func split(s string) []string {
	if s == "" {
		return nil
	}
	return strings.Split(s, listSep)
}

func f(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}
