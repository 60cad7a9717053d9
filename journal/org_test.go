package journal

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatTradeOrg(t *testing.T) {
	t.Parallel()

	tr := sampleTrades()[0]
	tr.ID = "01HX4Z8M3N7Q2R5S6T7V8W9XYZ"

	result := FormatTradeOrg(tr)

	assert.Contains(t, result, "** Trade: EURUSD LONG (01HX4Z8M) :trend:continuation:")
	assert.Contains(t, result, ":PROPERTIES:")
	assert.Contains(t, result, ":ID: 01HX4Z8M3N7Q2R5S6T7V8W9XYZ")
	assert.Contains(t, result, ":DATE: 2024-05-01T09:00:00Z")
	assert.Contains(t, result, ":STRATEGY: TREND_FOLLOWING")
	assert.Contains(t, result, ":ENTRY_PRICE: 1.05432")
	assert.Contains(t, result, ":EXIT_PRICE: 1.05543")
	assert.Contains(t, result, ":PNL: 111.00")
	assert.Contains(t, result, ":PIPS: 11.1")
	assert.Contains(t, result, ":GOALS: monthly-profit")
	assert.Contains(t, result, ":END:")
	assert.Contains(t, result, "*** Thesis")
	assert.Contains(t, result, "*** Review\n- Strong trend continuation trade")
}

func TestFormatTradeOrgOpenTrade(t *testing.T) {
	t.Parallel()

	result := FormatTradeOrg(sampleTrades()[3])
	assert.Contains(t, result, "** Trade: EURUSD SHORT (4)\n")
	assert.NotContains(t, result, ":EXIT_PRICE:")
	assert.NotContains(t, result, ":GOALS:")
}

func TestFormatTradesOrg(t *testing.T) {
	t.Parallel()

	trades := sampleTrades()
	result := FormatTradesOrg(trades)
	assert.Equal(t, len(trades), strings.Count(result, "** Trade:"))
	assert.Empty(t, FormatTradesOrg(nil))
}
