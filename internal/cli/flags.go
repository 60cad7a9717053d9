package cli

import (
	"fmt"
	"strings"
	"time"

	"github.com/rustyeddy/tradejournal/journal"
	"github.com/rustyeddy/tradejournal/market"
	"github.com/spf13/cobra"
)

const dateLayout = "2006-01-02"

// parseDate accepts YYYY-MM-DD (midnight UTC) or RFC 3339.
func parseDate(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("bad date %q: want YYYY-MM-DD or RFC 3339", s)
	}
	return t, nil
}

// endOfDay moves a bare date to its last instant so --to includes the day.
func endOfDay(s string, t time.Time) time.Time {
	if len(s) == len(dateLayout) {
		return t.Add(24*time.Hour - time.Nanosecond)
	}
	return t
}

type filterFlags struct {
	period     string
	from, to   string
	pairs      []string
	strategies []string
	outcomes   []string
	statuses   []string
}

func (ff *filterFlags) register(cmd *cobra.Command) {
	cmd.Flags().StringVar(&ff.period, "period", "all", "Look-back window: "+strings.Join(journal.Periods, "|"))
	cmd.Flags().StringVar(&ff.from, "from", "", "Only trades on or after this date")
	cmd.Flags().StringVar(&ff.to, "to", "", "Only trades on or before this date")
	cmd.Flags().StringSliceVar(&ff.pairs, "pair", nil, "Currency pairs (repeatable)")
	cmd.Flags().StringSliceVar(&ff.strategies, "strategy", nil, "Strategies (repeatable)")
	cmd.Flags().StringSliceVar(&ff.outcomes, "outcome", nil, "Outcomes (repeatable)")
	cmd.Flags().StringSliceVar(&ff.statuses, "status", nil, "Statuses (repeatable)")

	_ = cmd.RegisterFlagCompletionFunc("pair", completePairs)
	_ = cmd.RegisterFlagCompletionFunc("strategy", completeStrategies)
	_ = cmd.RegisterFlagCompletionFunc("period", fixedCompletion(journal.Periods))
}

// filter turns the flags into a journal.Filter. --from/--to win over --period.
func (ff *filterFlags) filter(now time.Time) (journal.Filter, error) {
	var f journal.Filter

	dr, err := journal.Period(ff.period, now)
	if err != nil {
		return f, err
	}
	if ff.from != "" || ff.to != "" {
		dr = &journal.DateRange{}
		if ff.from != "" {
			t, err := parseDate(ff.from)
			if err != nil {
				return f, err
			}
			dr.Start = &t
		}
		if ff.to != "" {
			t, err := parseDate(ff.to)
			if err != nil {
				return f, err
			}
			t = endOfDay(ff.to, t)
			dr.End = &t
		}
	}
	f.DateRange = dr

	for _, p := range ff.pairs {
		f.Pairs = append(f.Pairs, strings.ToUpper(p))
	}
	for _, s := range ff.strategies {
		v := journal.Strategy(strings.ToUpper(s))
		if !v.Valid() {
			return f, fmt.Errorf("unknown strategy %q", s)
		}
		f.Strategies = append(f.Strategies, v)
	}
	for _, s := range ff.outcomes {
		v := journal.Outcome(strings.ToUpper(s))
		if !v.Valid() {
			return f, fmt.Errorf("unknown outcome %q", s)
		}
		f.Outcomes = append(f.Outcomes, v)
	}
	for _, s := range ff.statuses {
		v := journal.Status(strings.ToUpper(s))
		if !v.Valid() {
			return f, fmt.Errorf("unknown status %q", s)
		}
		f.Status = append(f.Status, v)
	}
	return f, nil
}

func completePairs(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	return market.CommonPairs, cobra.ShellCompDirectiveNoFileComp
}

func completeStrategies(cmd *cobra.Command, args []string, toComplete string) ([]string, cobra.ShellCompDirective) {
	out := make([]string, 0, len(journal.Strategies))
	for _, s := range journal.Strategies {
		out = append(out, string(s))
	}
	return out, cobra.ShellCompDirectiveNoFileComp
}

func fixedCompletion(values []string) func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
	return func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return values, cobra.ShellCompDirectiveNoFileComp
	}
}
