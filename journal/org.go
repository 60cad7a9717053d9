package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a Trade as an Org-mode block for pasting into a
// journal. Facts go into the PROPERTIES drawer; the notes seed the Review
// section.
func FormatTradeOrg(t Trade) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Pair, t.Type, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	if len(t.Tags) > 0 {
		b.WriteString(" :" + strings.Join(t.Tags, ":") + ":")
	}
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":DATE: %s\n", t.Date.UTC().Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":PAIR: %s\n", t.Pair))
	b.WriteString(fmt.Sprintf(":TYPE: %s\n", t.Type))
	b.WriteString(fmt.Sprintf(":STRATEGY: %s\n", t.Strategy))
	b.WriteString(fmt.Sprintf(":STATUS: %s\n", t.Status))
	b.WriteString(fmt.Sprintf(":OUTCOME: %s\n", t.Outcome))
	b.WriteString(fmt.Sprintf(":LOT_SIZE: %.2f\n", t.LotSize))
	b.WriteString(fmt.Sprintf(":ENTRY_PRICE: %.5f\n", t.EntryPrice))
	if t.ExitPrice != nil {
		b.WriteString(fmt.Sprintf(":EXIT_PRICE: %.5f\n", *t.ExitPrice))
	}
	b.WriteString(fmt.Sprintf(":STOP_LOSS: %.5f\n", t.StopLoss))
	b.WriteString(fmt.Sprintf(":TAKE_PROFIT: %.5f\n", t.TakeProfit))
	b.WriteString(fmt.Sprintf(":PNL: %.2f\n", t.PnL))
	b.WriteString(fmt.Sprintf(":PIPS: %.1f\n", t.Pips))
	if len(t.LinkedGoals) > 0 {
		b.WriteString(fmt.Sprintf(":GOALS: %s\n", strings.Join(t.LinkedGoals, " ")))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n")
	if t.Notes != "" {
		b.WriteString("- " + t.Notes + "\n")
	} else {
		b.WriteString("- \n")
	}

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []Trade) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
