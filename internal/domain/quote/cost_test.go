package quote

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCostBreakdown_SealsTotal(t *testing.T) {
	b, err := NewCostBreakdown(615.38, 18.46, 180, 40, 55, 500, 30, 125, 47, 31)
	require.NoError(t, err)

	assert.True(t, b.Consistent())
	assert.InDelta(t, 1641.84, b.TotalCost, 1e-9)
	assert.InDelta(t, b.Sum(), b.TotalCost, 1e-9)
}

func TestNewCostBreakdown_RejectsNegative(t *testing.T) {
	_, err := NewCostBreakdown(100, -1, 0, 0, 0, 0, 0, 0, 0, 0)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "defCost")
}

func TestNewCostBreakdown_RejectsNonFinite(t *testing.T) {
	_, err := NewCostBreakdown(math.NaN(), 0, 0, 0, 0, 0, 0, 0, 0, 0)
	require.Error(t, err)

	_, err = NewCostBreakdown(0, 0, math.Inf(1), 0, 0, 0, 0, 0, 0, 0)
	require.Error(t, err)
}

func TestConsistent_DetectsMutation(t *testing.T) {
	b, err := NewCostBreakdown(100, 3, 18, 4, 0, 50, 0, 0, 5, 3)
	require.NoError(t, err)
	require.True(t, b.Consistent())

	b.FuelCost += 10
	assert.False(t, b.Consistent())
}
