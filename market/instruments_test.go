package market

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPipSize(t *testing.T) {
	t.Parallel()

	tests := []struct {
		pair string
		want float64
	}{
		{"EURUSD", 0.0001},
		{"EUR_USD", 0.0001},
		{"USDJPY", 0.01},
		{"GBP/JPY", 0.01},
		{"XAUUSD", 0.0001},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.pair, func(t *testing.T) {
			t.Parallel()
			assert.InDelta(t, tt.want, PipSize(tt.pair), 1e-12)
		})
	}
}

func TestIsJPYIsSuffixOnly(t *testing.T) {
	t.Parallel()

	assert.True(t, IsJPY("USDJPY"))
	assert.False(t, IsJPY("JPYUSD"))
	assert.False(t, IsJPY(""))
}

func TestPips(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 12.3, Pips("EURUSD", 1.05123-1.05000), 1e-9)
	assert.InDelta(t, 50.0, Pips("USDJPY", 150.00-149.50), 1e-9)
}

func TestCommonPairsAreNotJPYOnly(t *testing.T) {
	t.Parallel()

	assert.Contains(t, CommonPairs, "EURUSD")
	assert.Contains(t, CommonPairs, "USDJPY")
}
