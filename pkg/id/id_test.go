package id

import (
	"sort"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewIsUniqueAndSorted(t *testing.T) {
	t.Parallel()

	ids := make([]string, 0, 200)
	seen := map[string]bool{}
	for i := 0; i < 200; i++ {
		s := New()
		require.False(t, seen[s], "duplicate id %s", s)
		seen[s] = true
		ids = append(ids, s)
	}
	assert.True(t, sort.StringsAreSorted(ids))
}

func TestNewAtRoundTripsTime(t *testing.T) {
	t.Parallel()

	at := time.Date(2024, 3, 15, 10, 30, 45, 123_000_000, time.UTC)
	got, ok := Time(NewAt(at))
	require.True(t, ok)
	assert.True(t, got.Equal(at), "got %s", got)
}

func TestTimeRejectsForeignIDs(t *testing.T) {
	t.Parallel()

	_, ok := Time("monthly-profit")
	assert.False(t, ok)
}
