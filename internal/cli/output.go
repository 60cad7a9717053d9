package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/fatih/color"
	"github.com/rustyeddy/tradejournal/stats"
)

// Output writes command results as text or, with --json, as indented JSON.
type Output struct {
	w        io.Writer
	jsonMode bool

	green, red, yellow, cyan, bold *color.Color
}

func NewOutput(w io.Writer, noColor, jsonMode bool) *Output {
	o := &Output{
		w:        w,
		jsonMode: jsonMode,
		green:    color.New(color.FgGreen),
		red:      color.New(color.FgRed),
		yellow:   color.New(color.FgYellow),
		cyan:     color.New(color.FgCyan),
		bold:     color.New(color.Bold),
	}
	if noColor || jsonMode {
		for _, c := range []*color.Color{o.green, o.red, o.yellow, o.cyan, o.bold} {
			c.DisableColor()
		}
	}
	return o
}

func (o *Output) IsJSON() bool { return o.jsonMode }

func (o *Output) JSON(data any) error {
	enc := json.NewEncoder(o.w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

func (o *Output) Printf(format string, args ...any) {
	fmt.Fprintf(o.w, format, args...)
}

func (o *Output) Println(args ...any) {
	fmt.Fprintln(o.w, args...)
}

// Success prints a green line prefixed with a check mark.
func (o *Output) Success(format string, args ...any) {
	o.green.Fprintf(o.w, "✓ "+format+"\n", args...)
}

func (o *Output) Warning(format string, args ...any) {
	o.yellow.Fprintf(o.w, "! "+format+"\n", args...)
}

func (o *Output) Error(format string, args ...any) {
	o.red.Fprintf(o.w, "✗ "+format+"\n", args...)
}

func (o *Output) Header(format string, args ...any) {
	o.cyan.Fprintf(o.w, format+"\n", args...)
}

// Money formats a P/L figure with two decimals, green above zero and red
// below.
func (o *Output) Money(x float64) string {
	s := stats.FormatMoney(x)
	switch {
	case x > 0:
		return o.green.Sprint(s)
	case x < 0:
		return o.red.Sprint(s)
	default:
		return s
	}
}

// Table writes aligned columns.
func (o *Output) Table(header []string, rows [][]string) error {
	tw := tabwriter.NewWriter(o.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, o.bold.Sprint(strings.Join(header, "\t")))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	return tw.Flush()
}
