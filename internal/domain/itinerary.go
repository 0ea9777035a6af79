package domain

// DayItinerary is one calendar date and its stops ordered ascending by
// sequence number. Built once per run by the aggregator and not mutated
// afterwards.
type DayItinerary struct {
	Date  string
	Stops []StopRecord
}

// Coordinates of the stops in visiting order.
func (d DayItinerary) Coordinates() []Coordinates {
	coords := make([]Coordinates, 0, len(d.Stops))
	for _, s := range d.Stops {
		coords = append(coords, s.Coordinates())
	}
	return coords
}

// RawRows returns the original table rows backing this itinerary, in stop
// order. Used to divert a whole day into the route-error bucket.
func (d DayItinerary) RawRows() []RawRow {
	rows := make([]RawRow, 0, len(d.Stops))
	for _, s := range d.Stops {
		rows = append(rows, s.Raw)
	}
	return rows
}
