// Package region holds the static freight-region model: an exhaustive
// 50-state → 8-region table, per-region supply/demand characteristics, and
// lane flow scoring. Pure data and arithmetic, no I/O.
package region

import "strings"

// Name identifies one of the eight freight regions.
type Name string

const (
	Northeast    Name = "northeast"
	Southeast    Name = "southeast"
	Midwest      Name = "midwest"
	SouthCentral Name = "south_central"
	Plains       Name = "plains"
	Mountain     Name = "mountain"
	Southwest    Name = "southwest"
	Pacific      Name = "pacific"
)

// Region carries the static freight characteristics of a region. Outbound and
// inbound strengths are relative freight-generation indices on a 1–10 scale.
type Region struct {
	Name             Name
	OutboundStrength float64
	InboundStrength  float64
	TruckPopulation  int
	MajorMarkets     []string
	Industries       []string
}

var regions = map[Name]*Region{
	Northeast: {
		Name:             Northeast,
		OutboundStrength: 6.0,
		InboundStrength:  8.5,
		TruckPopulation:  250000,
		MajorMarkets:     []string{"New York", "Philadelphia", "Boston"},
		Industries:       []string{"retail", "pharmaceuticals", "imports"},
	},
	Southeast: {
		Name:             Southeast,
		OutboundStrength: 7.5,
		InboundStrength:  8.0,
		TruckPopulation:  340000,
		MajorMarkets:     []string{"Atlanta", "Charlotte", "Memphis", "Jacksonville"},
		Industries:       []string{"distribution", "paper", "automotive", "produce"},
	},
	Midwest: {
		Name:             Midwest,
		OutboundStrength: 8.5,
		InboundStrength:  7.0,
		TruckPopulation:  310000,
		MajorMarkets:     []string{"Chicago", "Detroit", "Columbus", "Minneapolis"},
		Industries:       []string{"manufacturing", "agriculture", "automotive"},
	},
	SouthCentral: {
		Name:             SouthCentral,
		OutboundStrength: 8.0,
		InboundStrength:  7.5,
		TruckPopulation:  330000,
		MajorMarkets:     []string{"Dallas", "Houston", "Laredo", "San Antonio"},
		Industries:       []string{"energy", "chemicals", "cross-border"},
	},
	Plains: {
		Name:             Plains,
		OutboundStrength: 7.0,
		InboundStrength:  4.5,
		TruckPopulation:  90000,
		MajorMarkets:     []string{"Omaha", "Wichita", "Fargo"},
		Industries:       []string{"agriculture", "meat packing"},
	},
	Mountain: {
		Name:             Mountain,
		OutboundStrength: 5.0,
		InboundStrength:  5.5,
		TruckPopulation:  80000,
		MajorMarkets:     []string{"Denver", "Salt Lake City", "Boise"},
		Industries:       []string{"distribution", "mining", "food processing"},
	},
	Southwest: {
		Name:             Southwest,
		OutboundStrength: 5.5,
		InboundStrength:  6.5,
		TruckPopulation:  110000,
		MajorMarkets:     []string{"Phoenix", "Las Vegas", "Albuquerque"},
		Industries:       []string{"construction", "retail", "electronics"},
	},
	Pacific: {
		Name:             Pacific,
		OutboundStrength: 7.0,
		InboundStrength:  9.0,
		TruckPopulation:  280000,
		MajorMarkets:     []string{"Los Angeles", "Seattle", "Oakland"},
		Industries:       []string{"ports", "imports", "produce", "technology"},
	},
}

// stateRegions maps every state code to exactly one region. Exhaustive over
// the 50 states; anything else is an unknown code.
var stateRegions = map[string]Name{
	// Northeast
	"ME": Northeast, "NH": Northeast, "VT": Northeast, "MA": Northeast,
	"RI": Northeast, "CT": Northeast, "NY": Northeast, "NJ": Northeast,
	"PA": Northeast,
	// Southeast
	"DE": Southeast, "MD": Southeast, "VA": Southeast, "WV": Southeast,
	"NC": Southeast, "SC": Southeast, "GA": Southeast, "FL": Southeast,
	"AL": Southeast, "MS": Southeast, "TN": Southeast, "KY": Southeast,
	// Midwest
	"OH": Midwest, "MI": Midwest, "IN": Midwest, "IL": Midwest,
	"WI": Midwest, "MN": Midwest, "IA": Midwest, "MO": Midwest,
	// South Central
	"TX": SouthCentral, "OK": SouthCentral, "LA": SouthCentral, "AR": SouthCentral,
	// Plains
	"ND": Plains, "SD": Plains, "NE": Plains, "KS": Plains,
	// Mountain
	"MT": Mountain, "WY": Mountain, "CO": Mountain, "UT": Mountain, "ID": Mountain,
	// Southwest
	"AZ": Southwest, "NM": Southwest, "NV": Southwest,
	// Pacific
	"WA": Pacific, "OR": Pacific, "CA": Pacific, "AK": Pacific, "HI": Pacific,
}

// ForState resolves a state code to its region. Returns nil for unmapped
// codes; callers must treat nil as "no market intelligence available", not as
// a hard failure.
func ForState(code string) *Region {
	name, ok := stateRegions[strings.ToUpper(strings.TrimSpace(code))]
	if !ok {
		return nil
	}

	return regions[name]
}

// Get returns the region by name, or nil.
func Get(name Name) *Region {
	return regions[name]
}

// ReturnLoad is a static outbound-load availability score for a destination
// region, used for display only. It does not enter the cost or rate math.
type ReturnLoad struct {
	Score  int
	Rating string
}

var returnLoadPotential = map[Name]ReturnLoad{
	Pacific:      {Score: 9, Rating: "excellent"},
	Midwest:      {Score: 8, Rating: "very good"},
	Southeast:    {Score: 8, Rating: "very good"},
	SouthCentral: {Score: 7, Rating: "good"},
	Northeast:    {Score: 6, Rating: "good"},
	Southwest:    {Score: 5, Rating: "fair"},
	Mountain:     {Score: 4, Rating: "fair"},
	Plains:       {Score: 3, Rating: "poor"},
}

// ReturnLoadPotential returns the static 1–10 return-load score for a
// destination region.
func ReturnLoadPotential(name Name) (ReturnLoad, bool) {
	rl, ok := returnLoadPotential[name]

	return rl, ok
}
