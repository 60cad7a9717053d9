package risk

import (
	"errors"
	"math"
	"testing"

	"github.com/rustyeddy/tradejournal/pkg/validate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestComputeRisk_EURUSD(t *testing.T) {
	t.Parallel()

	entry, stop := 1.05123, 1.05000
	got, err := ComputeRisk(Input{
		AccountSize:    10000,
		RiskPercentage: 1,
		EntryPrice:     entry,
		StopLoss:       stop,
		Pair:           "EURUSD",
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.Equal(t, 100.0, got.RiskAmount)
	assert.InDelta(t, 12.3, got.PipDistance, 1e-9)
	assert.InDelta(t, 10.0, got.PipValue, 1e-12)

	// entry and stop are variables so the subtraction happens at run time,
	// the same way ComputeRisk does it.
	pipDistance := math.Abs(entry-stop) * 10000
	assert.Equal(t, pipDistance, got.PipDistance)
	want := 100.0 / (pipDistance * got.PipValue)
	assert.Equal(t, want, got.PositionSize)
}

func TestComputeRisk_JPYPipValue(t *testing.T) {
	t.Parallel()

	got, err := ComputeRisk(Input{
		AccountSize:    5000,
		RiskPercentage: 2,
		EntryPrice:     150.00,
		StopLoss:       149.50,
		Pair:           "USDJPY",
	})
	require.NoError(t, err)
	require.NotNil(t, got)

	assert.InDelta(t, 100.0, got.RiskAmount, 1e-9)
	assert.InDelta(t, 1000.0, got.PipValue, 1e-9)
	// Four-decimal pip distance is applied to yen pairs as well.
	assert.InDelta(t, 5000.0, got.PipDistance, 1e-6)
	assert.InDelta(t, 100.0/(5000.0*1000.0), got.PositionSize, 1e-15)
}

func TestComputeRisk_EntryEqualsStop(t *testing.T) {
	t.Parallel()

	got, err := ComputeRisk(Input{
		AccountSize:    10000,
		RiskPercentage: 1,
		EntryPrice:     1.1,
		StopLoss:       1.1,
		Pair:           "EURUSD",
	})
	assert.NoError(t, err)
	assert.Nil(t, got)
}

func TestComputeRisk_InvalidInput(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		in     Input
		fields []string
	}{
		{
			name:   "zero account",
			in:     Input{AccountSize: 0, RiskPercentage: 1, EntryPrice: 1.1, StopLoss: 1.0, Pair: "EURUSD"},
			fields: []string{"accountSize"},
		},
		{
			name:   "risk below range",
			in:     Input{AccountSize: 1000, RiskPercentage: 0.05, EntryPrice: 1.1, StopLoss: 1.0, Pair: "EURUSD"},
			fields: []string{"riskPercentage"},
		},
		{
			name:   "risk above range",
			in:     Input{AccountSize: 1000, RiskPercentage: 10.5, EntryPrice: 1.1, StopLoss: 1.0, Pair: "EURUSD"},
			fields: []string{"riskPercentage"},
		},
		{
			name:   "everything wrong",
			in:     Input{AccountSize: -1, RiskPercentage: math.NaN(), EntryPrice: 0, StopLoss: -1},
			fields: []string{"accountSize", "riskPercentage", "entryPrice", "stopLoss", "pair"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ComputeRisk(tt.in)
			require.Error(t, err)
			assert.Nil(t, got)

			var vs validate.Violations
			require.True(t, errors.As(err, &vs))
			assert.Len(t, vs, len(tt.fields))
			for _, f := range tt.fields {
				assert.True(t, vs.Has(f), "missing violation for %s", f)
			}
		})
	}
}

func TestComputeRisk_RangeBoundsInclusive(t *testing.T) {
	t.Parallel()

	for _, pct := range []float64{MinRiskPercentage, MaxRiskPercentage} {
		got, err := ComputeRisk(Input{AccountSize: 1000, RiskPercentage: pct, EntryPrice: 1.2, StopLoss: 1.1, Pair: "EURUSD"})
		require.NoError(t, err)
		require.NotNil(t, got)
	}
}

func TestRR(t *testing.T) {
	t.Parallel()

	assert.InDelta(t, 2.0, RR(1.1000, 1.0950, 1.1100), 1e-9)
	assert.InDelta(t, 2.0, RR(1.1000, 1.1050, 1.0900), 1e-9)
	assert.Equal(t, 0.0, RR(1.1, 1.1, 1.2))
}
