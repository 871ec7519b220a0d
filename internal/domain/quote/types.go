// Package quote defines the data model of the rate aggregation engine: the
// per-request inputs, the intermediate results produced by each provider
// service, and the final Quote composition.
package quote

import (
	"time"

	"github.com/google/uuid"
)

// SourceTag records where a piece of market data came from. The aggregate tag
// of a composite result always reports the weakest constituent link.
type SourceTag string

const (
	SourceAPI      SourceTag = "api"
	SourceCache    SourceTag = "cache"
	SourceFallback SourceTag = "fallback"
)

// Weaker reports whether s is a weaker source than other (fallback < cache < api).
func (s SourceTag) Weaker(other SourceTag) bool {
	return s.rank() < other.rank()
}

func (s SourceTag) rank() int {
	switch s {
	case SourceFallback:
		return 0
	case SourceCache:
		return 1
	case SourceAPI:
		return 2
	default:
		return -1
	}
}

// RoutingProvider tags which tier of the routing chain produced a route.
type RoutingProvider string

const (
	RoutingPrimary   RoutingProvider = "primary"
	RoutingSecondary RoutingProvider = "secondary"
	RoutingFallback  RoutingProvider = "fallback"
)

// Confidence communicates how much of the quote rests on live data.
type Confidence string

const (
	ConfidenceHigh   Confidence = "high"
	ConfidenceMedium Confidence = "medium"
	ConfidenceLow    Confidence = "low"
)

// LatLng is a geographic coordinate pair.
type LatLng struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// VehicleType classifies the equipment running the load.
type VehicleType string

const (
	VehicleSemi     VehicleType = "semi"
	VehicleBoxTruck VehicleType = "box_truck"
	VehicleHotshot  VehicleType = "hotshot"
	VehicleCargoVan VehicleType = "cargo_van"
)

// VehicleSpecs describes the vehicle supplied by the caller. The vehicle
// record itself is an external entity; the engine only reads these fields.
type VehicleSpecs struct {
	Type        VehicleType `json:"type"`
	MPG         float64     `json:"mpg"`
	HeightFt    float64     `json:"height_ft"`
	WidthFt     float64     `json:"width_ft"`
	LengthFt    float64     `json:"length_ft"`
	WeightLbs   float64     `json:"weight_lbs"`
	Hazmat      bool        `json:"hazmat"`
	HazmatClass string      `json:"hazmat_class,omitempty"`
}

// RouteResult is the resolved origin→destination leg. Immutable once
// computed; owned by the request that produced it.
type RouteResult struct {
	DistanceMiles float64 `json:"distance_miles"`
	DurationHours float64 `json:"duration_hours"`
	Origin        string  `json:"origin"`
	Destination   string  `json:"destination"`
	OriginPoint   *LatLng `json:"origin_point,omitempty"`
	DestPoint     *LatLng `json:"destination_point,omitempty"`

	// StatesCrossed lists state codes in traversal order.
	StatesCrossed []string `json:"states_crossed"`
	// StateMiles approximates miles driven per state. May be nil when the
	// provider does not report a split; consumers then weight states equally.
	StateMiles map[string]float64 `json:"state_miles,omitempty"`

	Provider RoutingProvider `json:"routing_provider"`
}

// OriginState returns the first state on the route, or "".
func (r *RouteResult) OriginState() string {
	if len(r.StatesCrossed) == 0 {
		return ""
	}

	return r.StatesCrossed[0]
}

// DestState returns the last state on the route, or "".
func (r *RouteResult) DestState() string {
	if len(r.StatesCrossed) == 0 {
		return ""
	}

	return r.StatesCrossed[len(r.StatesCrossed)-1]
}

// FuelPriceResult is a per-state or per-route diesel price.
type FuelPriceResult struct {
	PricePerGallon float64   `json:"price_per_gallon"`
	State          string    `json:"state"`
	LastUpdated    time.Time `json:"last_updated"`
	Source         SourceTag `json:"source"`
}

// TollPlaza is a single toll point on the route.
type TollPlaza struct {
	Name            string  `json:"name"`
	State           string  `json:"state"`
	CashCost        float64 `json:"cash_cost"`
	TransponderCost float64 `json:"transponder_cost"`
	Location        *LatLng `json:"location,omitempty"`
}

// TollBreakdown aggregates toll costs for a route. Cash and transponder
// tariffs are independent; neither is guaranteed to exceed the other.
type TollBreakdown struct {
	TotalTolls       float64            `json:"total_tolls"`
	TollsByState     map[string]float64 `json:"tolls_by_state"`
	CashTolls        float64            `json:"cash_tolls"`
	TransponderTolls float64            `json:"transponder_tolls"`
	TollCount        int                `json:"toll_count"`
	Plazas           []TollPlaza        `json:"plazas,omitempty"`
	Source           SourceTag          `json:"source"`
}

// WeatherCondition is ordered by severity; see WorstCondition.
type WeatherCondition string

const (
	ConditionClear  WeatherCondition = "clear"
	ConditionCloudy WeatherCondition = "cloudy"
	ConditionRain   WeatherCondition = "rain"
	ConditionFog    WeatherCondition = "fog"
	ConditionSnow   WeatherCondition = "snow"
	ConditionIce    WeatherCondition = "ice"
	ConditionStorm  WeatherCondition = "storm"
)

var conditionSeverity = map[WeatherCondition]int{
	ConditionClear:  0,
	ConditionCloudy: 1,
	ConditionRain:   2,
	ConditionFog:    3,
	ConditionSnow:   4,
	ConditionIce:    5,
	ConditionStorm:  6,
}

// Severity returns the fixed severity rank of the condition. Unknown
// conditions rank as clear.
func (c WeatherCondition) Severity() int {
	return conditionSeverity[c]
}

// WorstCondition returns the more severe of the two conditions.
func WorstCondition(a, b WeatherCondition) WeatherCondition {
	if b.Severity() > a.Severity() {
		return b
	}

	return a
}

// RiskLevel classifies route-level weather risk.
type RiskLevel string

const (
	RiskLow      RiskLevel = "low"
	RiskModerate RiskLevel = "moderate"
	RiskHigh     RiskLevel = "high"
	RiskSevere   RiskLevel = "severe"
)

// Forecast is a point forecast for one endpoint of the route.
type Forecast struct {
	Condition       WeatherCondition `json:"condition"`
	TemperatureF    float64          `json:"temperature_f"`
	PrecipitationIn float64          `json:"precipitation_in"`
	VisibilityMiles float64          `json:"visibility_miles"`
	WindSpeedMph    float64          `json:"wind_speed_mph"`
}

// WeatherData is the route-level weather assessment. Origin and Destination
// may each be nil when the provider had no forecast for that endpoint.
type WeatherData struct {
	Origin         *Forecast        `json:"origin,omitempty"`
	Destination    *Forecast        `json:"destination,omitempty"`
	RouteCondition WeatherCondition `json:"route_condition"`
	Risk           RiskLevel        `json:"risk_level"`
	Advisories     []string         `json:"advisories"`
}

// FlowDirection is the directional freight flow of a lane.
type FlowDirection string

const (
	FlowHeadhaul FlowDirection = "headhaul"
	FlowBackhaul FlowDirection = "backhaul"
	FlowBalanced FlowDirection = "balanced"
)

// MarketTemperature is a qualitative label for lane supply/demand imbalance.
type MarketTemperature string

const (
	MarketHot      MarketTemperature = "hot"
	MarketWarm     MarketTemperature = "warm"
	MarketBalanced MarketTemperature = "balanced"
	MarketCool     MarketTemperature = "cool"
	MarketCold     MarketTemperature = "cold"
)

// FlowAnalysis is the region-flow market signal for a lane. The return-load
// fields are display metadata for the destination region and never enter the
// cost or rate math.
type FlowAnalysis struct {
	Direction        FlowDirection     `json:"direction"`
	ImbalanceScore   float64           `json:"imbalance_score"`
	TruckToLoadRatio float64           `json:"truck_to_load_ratio"`
	Temperature      MarketTemperature `json:"market_temperature"`
	ReturnLoadScore  int               `json:"return_load_score"`
	ReturnLoadRating string            `json:"return_load_rating"`
}

// OperatingCosts are the caller's cost settings, owned by an external
// collaborator (user settings store).
type OperatingCosts struct {
	FixedMonthlyCosts float64 `json:"fixed_monthly_costs"`
	DCFees            float64 `json:"dc_fees"`
	ServiceFeePct     float64 `json:"service_fee_pct"`
	FactoringFeePct   float64 `json:"factoring_fee_pct"`
}

// RateRequest is the raw shipment request supplied by the caller.
type RateRequest struct {
	Origin      string         `json:"origin"`
	Destination string         `json:"destination"`
	PickupDate  time.Time      `json:"pickup_date"`
	Vehicle     VehicleSpecs   `json:"vehicle"`
	Costs       OperatingCosts `json:"costs"`
}

// Quote is the fully costed, market-aware rate quote. Immutable after
// construction; persistence is an external collaborator's concern.
type Quote struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"created_at"`

	Route   RouteResult     `json:"route"`
	Fuel    FuelPriceResult `json:"fuel"`
	Tolls   TollBreakdown   `json:"tolls"`
	Weather *WeatherData    `json:"weather,omitempty"`
	Market  *FlowAnalysis   `json:"market,omitempty"`
	Costs   CostBreakdown   `json:"costs"`

	RecommendedRate float64 `json:"recommended_rate"`
	MinRate         float64 `json:"min_rate"`
	MaxRate         float64 `json:"max_rate"`
	RatePerMile     float64 `json:"rate_per_mile"`
	EstimatedProfit float64 `json:"estimated_profit"`
	ProfitMargin    float64 `json:"profit_margin"`
	ProfitPerMile   float64 `json:"profit_per_mile"`

	Confidence Confidence `json:"confidence"`
}
