package domain

// DistanceUnit selects the reporting unit for resolved route distances.
// The routing service always reports meters; conversion happens once in the
// resolver so every downstream consumer sees final-unit values.
type DistanceUnit string

const (
	UnitKilometers DistanceUnit = "km"
	UnitMiles      DistanceUnit = "mi"
)

const milesPerMeter = 0.000621371

// FromMeters converts a raw meter total into the configured unit.
func (u DistanceUnit) FromMeters(meters float64) float64 {
	if u == UnitMiles {
		return meters * milesPerMeter
	}
	return meters / 1000.0
}

// Label returns the column heading used in rendered reports.
func (u DistanceUnit) Label() string {
	if u == UnitMiles {
		return "MILES"
	}
	return "KILOMETERS"
}

// RouteOutcome is the result of resolving one day's itinerary.
//
// TotalDistance is in the configured unit, rounded to two decimals. A zero
// distance with no leg descriptions is the sentinel for "no route found"; a
// genuine route between two or more distinct stops never produces it.
type RouteOutcome struct {
	TotalDistance   float64
	LegDescriptions []string
	MapLink         string
}

// NoRoute reports whether this outcome is the no-route sentinel.
func (o RouteOutcome) NoRoute() bool {
	return o.TotalDistance == 0 && len(o.LegDescriptions) == 0
}
