package region

import "lanerate/internal/domain/quote"

// Flow scoring constants. The imbalance score is the destination's inbound
// strength minus the origin's outbound strength, in index points (−9…+9).
// Direction and temperature thresholds are symmetric around balanced.
const (
	// directionThreshold separates headhaul/backhaul from balanced lanes.
	directionThreshold = 1.5
	// hotThreshold marks the outer temperature buckets.
	hotThreshold = 3.0
	// loadsPerIndexPoint converts inbound strength into a monthly load
	// estimate for the truck-to-load ratio.
	loadsPerIndexPoint = 12000.0
)

// CalculateFlow scores the directional freight flow of an origin→destination
// lane. Either region may be nil (unknown state code), in which case no
// market signal is available and the result is nil.
func CalculateFlow(origin, dest *Region) *quote.FlowAnalysis {
	if origin == nil || dest == nil {
		return nil
	}

	imbalance := dest.InboundStrength - origin.OutboundStrength

	direction := quote.FlowBalanced
	switch {
	case imbalance > directionThreshold:
		direction = quote.FlowHeadhaul
	case imbalance < -directionThreshold:
		direction = quote.FlowBackhaul
	}

	loadEstimate := dest.InboundStrength * loadsPerIndexPoint
	ratio := float64(origin.TruckPopulation) / loadEstimate

	returnLoad, _ := ReturnLoadPotential(dest.Name)

	return &quote.FlowAnalysis{
		Direction:        direction,
		ImbalanceScore:   imbalance,
		TruckToLoadRatio: ratio,
		Temperature:      temperature(imbalance),
		ReturnLoadScore:  returnLoad.Score,
		ReturnLoadRating: returnLoad.Rating,
	}
}

// temperature buckets the imbalance score into five market temperatures,
// symmetric around balanced.
func temperature(imbalance float64) quote.MarketTemperature {
	switch {
	case imbalance >= hotThreshold:
		return quote.MarketHot
	case imbalance >= directionThreshold:
		return quote.MarketWarm
	case imbalance <= -hotThreshold:
		return quote.MarketCold
	case imbalance <= -directionThreshold:
		return quote.MarketCool
	default:
		return quote.MarketBalanced
	}
}
