package quote

import (
	"math"

	"lanerate/internal/errors"
)

// costTolerance bounds the rounding drift allowed between TotalCost and the
// recomputed sum of components.
const costTolerance = 1e-6

// CostBreakdown is the layered cost model output. TotalCost is the exact sum
// of the other fields; it is fixed at construction and never recomputed from
// a different formula elsewhere.
type CostBreakdown struct {
	FuelCost            float64 `json:"fuel_cost"`
	DefCost             float64 `json:"def_cost"`
	MaintenanceCost     float64 `json:"maintenance_cost"`
	TireCost            float64 `json:"tire_cost"`
	TollCost            float64 `json:"toll_cost"`
	FixedCostAllocation float64 `json:"fixed_cost_allocation"`
	DCFees              float64 `json:"dc_fees"`
	HotelCost           float64 `json:"hotel_cost"`
	ServiceFees         float64 `json:"service_fees"`
	FactoringFee        float64 `json:"factoring_fee"`
	TotalCost           float64 `json:"total_cost"`
}

// NewCostBreakdown assembles a breakdown and seals the total. Every component
// must be a finite, non-negative number; a violation means an upstream value
// was not substituted by its fallback before the cost model ran.
func NewCostBreakdown(
	fuel, def, maintenance, tires, tolls, fixedAllocation, dcFees, hotel, serviceFees, factoringFee float64,
) (*CostBreakdown, error) {
	b := &CostBreakdown{
		FuelCost:            fuel,
		DefCost:             def,
		MaintenanceCost:     maintenance,
		TireCost:            tires,
		TollCost:            tolls,
		FixedCostAllocation: fixedAllocation,
		DCFees:              dcFees,
		HotelCost:           hotel,
		ServiceFees:         serviceFees,
		FactoringFee:        factoringFee,
	}

	for name, v := range b.components() {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, errors.Errorf("cost breakdown: %s is not a finite number", name)
		}
		if v < 0 {
			return nil, errors.Errorf("cost breakdown: %s is negative (%.4f)", name, v)
		}
	}

	b.TotalCost = b.Sum()

	return b, nil
}

// Sum recomputes the component sum. Exposed so callers can assert the total
// invariant without duplicating the component list.
func (b *CostBreakdown) Sum() float64 {
	var total float64
	for _, v := range b.components() {
		total += v
	}

	return total
}

// Consistent reports whether TotalCost still equals the component sum within
// the fixed-point tolerance.
func (b *CostBreakdown) Consistent() bool {
	return math.Abs(b.TotalCost-b.Sum()) <= costTolerance
}

func (b *CostBreakdown) components() map[string]float64 {
	return map[string]float64{
		"fuelCost":            b.FuelCost,
		"defCost":             b.DefCost,
		"maintenanceCost":     b.MaintenanceCost,
		"tireCost":            b.TireCost,
		"tollCost":            b.TollCost,
		"fixedCostAllocation": b.FixedCostAllocation,
		"dcFees":              b.DCFees,
		"hotelCost":           b.HotelCost,
		"serviceFees":         b.ServiceFees,
		"factoringFee":        b.FactoringFee,
	}
}
