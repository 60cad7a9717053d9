package stats

import (
	"encoding/json"
	"fmt"
)

const infinite = "infinite"

// ProfitFactor is gross profit over gross loss. With no losses the ratio is
// unbounded and Infinite is set; Value is then meaningless.
type ProfitFactor struct {
	Value    float64
	Infinite bool
}

func Finite(v float64) ProfitFactor { return ProfitFactor{Value: v} }

func Infinite() ProfitFactor { return ProfitFactor{Infinite: true} }

// String renders two decimals or "infinite".
func (pf ProfitFactor) String() string {
	if pf.Infinite {
		return infinite
	}
	return dec(pf.Value).StringFixed(2)
}

// MarshalJSON writes a number, or the string "infinite".
func (pf ProfitFactor) MarshalJSON() ([]byte, error) {
	if pf.Infinite {
		return json.Marshal(infinite)
	}
	return json.Marshal(pf.Value)
}

func (pf *ProfitFactor) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		if s != infinite {
			return fmt.Errorf("profit factor: unexpected string %q", s)
		}
		*pf = Infinite()
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("profit factor: %w", err)
	}
	*pf = Finite(v)
	return nil
}

// Profitable reports whether the factor exceeds 1.
func (pf ProfitFactor) Profitable() bool {
	return pf.Infinite || pf.Value > 1
}
