package validate

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestErrNilWhenEmpty(t *testing.T) {
	t.Parallel()

	var vs Violations
	assert.NoError(t, vs.Err())
}

func TestPositive(t *testing.T) {
	t.Parallel()

	var vs Violations
	vs.Positive("a", 1, "a must be positive")
	vs.Positive("b", 0, "b must be positive")
	vs.Positive("c", -2, "c must be positive")
	vs.Positive("d", math.NaN(), "d must be positive")

	require.Len(t, vs, 3)
	assert.False(t, vs.Has("a"))
	assert.True(t, vs.Has("b"))
	assert.True(t, vs.Has("c"))
	assert.True(t, vs.Has("d"))
	assert.Equal(t, "NOT_POSITIVE", vs[0].Code)
}

func TestRequiredAndFields(t *testing.T) {
	t.Parallel()

	var vs Violations
	vs.Required("pair", "  ", "Currency pair is required")
	vs.Add("RANGE", "pair", "second message")

	fields := vs.Fields()
	assert.Equal(t, "Currency pair is required", fields["pair"])
	assert.Len(t, fields, 1)
}

func TestErrorsAs(t *testing.T) {
	t.Parallel()

	var vs Violations
	vs.Required("title", "", "Title is required")
	err := vs.Err()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "title: Title is required")

	var got Violations
	require.True(t, errors.As(err, &got))
	assert.Len(t, got, 1)
}
