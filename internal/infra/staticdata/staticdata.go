// Package staticdata embeds the static per-state reference tables the engine
// falls back on when no provider is configured or reachable: geographic
// centroids, PADD-region diesel prices, and average toll rates per mile.
package staticdata

import (
	_ "embed"
	"strings"

	"lanerate/internal/domain/quote"
	"lanerate/internal/errors"

	"github.com/jszwec/csvutil"
	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geo"
)

//go:embed states.csv
var statesCSV []byte

const metersPerMile = 1609.344

type stateRecord struct {
	State             string  `csv:"state"`
	Lat               float64 `csv:"lat"`
	Lng               float64 `csv:"lng"`
	PADD              string  `csv:"padd"`
	FallbackFuelPrice float64 `csv:"fallback_fuel_price"`
	TollPerMile       float64 `csv:"toll_per_mile"`
}

// StateInfo is the static reference data for one state.
type StateInfo struct {
	Centroid          quote.LatLng
	PADD              string
	FallbackFuelPrice float64
	TollPerMile       float64
}

// Data is the loaded reference table set.
type Data struct {
	byState map[string]StateInfo
	states  []string
}

// New parses the embedded tables. The table must cover every state the
// region model knows about; a short or malformed file is a build defect.
func New() (*Data, error) {
	var records []stateRecord
	if err := csvutil.Unmarshal(statesCSV, &records); err != nil {
		return nil, errors.Wrap(err, "parse embedded state table")
	}

	if len(records) != 50 {
		return nil, errors.Errorf("embedded state table has %d rows, want 50", len(records))
	}

	d := &Data{byState: make(map[string]StateInfo, len(records))}
	for _, r := range records {
		code := strings.ToUpper(strings.TrimSpace(r.State))
		if _, dup := d.byState[code]; dup {
			return nil, errors.Errorf("embedded state table: duplicate state %s", code)
		}

		d.byState[code] = StateInfo{
			Centroid:          quote.LatLng{Lat: r.Lat, Lng: r.Lng},
			PADD:              r.PADD,
			FallbackFuelPrice: r.FallbackFuelPrice,
			TollPerMile:       r.TollPerMile,
		}
		d.states = append(d.states, code)
	}

	return d, nil
}

// States lists all known state codes in table order.
func (d *Data) States() []string {
	return d.states
}

// Lookup returns the reference data for a state code.
func (d *Data) Lookup(state string) (StateInfo, bool) {
	info, ok := d.byState[strings.ToUpper(strings.TrimSpace(state))]

	return info, ok
}

// FallbackFuelPrice returns the PADD-region diesel price for a state.
func (d *Data) FallbackFuelPrice(state string) (float64, bool) {
	info, ok := d.Lookup(state)
	if !ok {
		return 0, false
	}

	return info.FallbackFuelPrice, true
}

// TollRatePerMile returns the average toll rate per mile for a state, zero
// for states without tolled mileage or unknown codes.
func (d *Data) TollRatePerMile(state string) float64 {
	info, ok := d.Lookup(state)
	if !ok {
		return 0
	}

	return info.TollPerMile
}

// NearestState returns the state whose centroid is closest to the point,
// along with the distance in miles.
func (d *Data) NearestState(pt quote.LatLng) (string, float64) {
	var (
		best     string
		bestDist = -1.0
	)

	p := orb.Point{pt.Lng, pt.Lat}
	for code, info := range d.byState {
		dist := geo.Distance(p, orb.Point{info.Centroid.Lng, info.Centroid.Lat}) / metersPerMile
		if bestDist < 0 || dist < bestDist || (dist == bestDist && code < best) {
			best = code
			bestDist = dist
		}
	}

	return best, bestDist
}
