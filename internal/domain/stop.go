package domain

// RawRow is one row of the source table exactly as read: an ordered list of
// cell values with no schema guarantee. Malformed rows are expected input,
// not an exceptional condition.
type RawRow []string

// StopRecord is a single visited location that passed normalization.
// Downstream components operate on named fields only; positional row
// indices stop at the normalizer boundary.
type StopRecord struct {
	// Date is the grouping key. It is kept as the literal cell value;
	// grouping and ordering use string equality and lexicographic
	// comparison, never date parsing.
	Date string

	// Sequence orders stops within a day. Values need not be unique or
	// contiguous; ties keep input order.
	Sequence int

	Latitude  float64
	Longitude float64

	BusinessName  string
	StreetAddress string

	// PlaceID is the mapping service's opaque location token. May be empty
	// when backfill was disabled or the lookup found nothing; an empty value
	// degrades map-link rendering but never blocks distance computation.
	PlaceID string

	// Raw is the originating table row, retained for error reporting.
	Raw RawRow
}

func (s StopRecord) Coordinates() Coordinates {
	return Coordinates{Lat: s.Latitude, Lng: s.Longitude}
}
