package ports

import "context"

// LookupResult distinguishes "identifier found" from "provider had nothing"
// without resorting to an empty-string sentinel. NotFound is an expected,
// non-escalated outcome: callers proceed without the identifier.
type LookupResult struct {
	Found   bool
	PlaceID string
}

// CoordsResult is the address-to-coordinates analogue of LookupResult.
type CoordsResult struct {
	Found bool
	Lat   float64
	Lng   float64
}

// Contract for backfilling location identifiers and coordinates.
//
// Implementations fail open: a non-success provider status yields a
// not-found result and a nil error. A non-nil error means the call itself
// could not complete (transport failure) and is equally non-fatal to the
// caller.
type PlaceLookup interface {
	// Resolve the mapping service's place identifier for a coordinate pair.
	PlaceIDByCoords(ctx context.Context, lat, lng float64) (LookupResult, error)
	// Resolve coordinates for a street address.
	CoordsByAddress(ctx context.Context, address string) (CoordsResult, error)
}
