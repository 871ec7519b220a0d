package region

import (
	"testing"

	"lanerate/internal/domain/quote"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateFlow_NilRegions(t *testing.T) {
	assert.Nil(t, CalculateFlow(nil, Get(Pacific)))
	assert.Nil(t, CalculateFlow(Get(Midwest), nil))
	assert.Nil(t, CalculateFlow(nil, nil))
}

func TestCalculateFlow_Headhaul(t *testing.T) {
	// Mountain→Pacific: inbound 9.0 against outbound 5.0.
	flow := CalculateFlow(Get(Mountain), Get(Pacific))
	require.NotNil(t, flow)

	assert.Equal(t, quote.FlowHeadhaul, flow.Direction)
	assert.Equal(t, quote.MarketHot, flow.Temperature)
	assert.InDelta(t, 4.0, flow.ImbalanceScore, 1e-9)
	assert.Greater(t, flow.TruckToLoadRatio, 0.0)
	assert.Equal(t, 9, flow.ReturnLoadScore)
	assert.Equal(t, "excellent", flow.ReturnLoadRating)
}

func TestCalculateFlow_Backhaul(t *testing.T) {
	// Midwest→Plains: inbound 4.5 against outbound 8.5.
	flow := CalculateFlow(Get(Midwest), Get(Plains))
	require.NotNil(t, flow)

	assert.Equal(t, quote.FlowBackhaul, flow.Direction)
	assert.Equal(t, quote.MarketCold, flow.Temperature)
	assert.Less(t, flow.ImbalanceScore, 0.0)
}

func TestCalculateFlow_Balanced(t *testing.T) {
	// Southeast→Southeast: inbound 8.0 against outbound 7.5.
	flow := CalculateFlow(Get(Southeast), Get(Southeast))
	require.NotNil(t, flow)

	assert.Equal(t, quote.FlowBalanced, flow.Direction)
	assert.Equal(t, quote.MarketBalanced, flow.Temperature)
}

func TestTemperatureBuckets(t *testing.T) {
	tests := []struct {
		imbalance float64
		want      quote.MarketTemperature
	}{
		{4.0, quote.MarketHot},
		{3.0, quote.MarketHot},
		{2.0, quote.MarketWarm},
		{1.5, quote.MarketWarm},
		{0.0, quote.MarketBalanced},
		{-1.0, quote.MarketBalanced},
		{-1.5, quote.MarketCool},
		{-2.9, quote.MarketCool},
		{-3.0, quote.MarketCold},
		{-5.0, quote.MarketCold},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, temperature(tt.imbalance), "imbalance=%v", tt.imbalance)
	}
}

func TestCalculateFlow_CoversAllLanes(t *testing.T) {
	names := []Name{Northeast, Southeast, Midwest, SouthCentral, Plains, Mountain, Southwest, Pacific}

	for _, origin := range names {
		for _, dest := range names {
			flow := CalculateFlow(Get(origin), Get(dest))
			require.NotNil(t, flow)
			assert.NotEmpty(t, flow.Direction)
			assert.NotEmpty(t, flow.Temperature)
			assert.Greater(t, flow.TruckToLoadRatio, 0.0)
			assert.NotEmpty(t, flow.ReturnLoadRating)
		}
	}
}
