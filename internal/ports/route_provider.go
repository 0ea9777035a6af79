package ports

import (
	"context"

	"mileage-report-service/internal/domain"
)

// RouteStatus is the routing service's outcome classification, passed
// through verbatim. Statuses other than the two named constants indicate a
// service malfunction and are treated as fatal by the core.
type RouteStatus string

const (
	StatusOK          RouteStatus = "OK"
	StatusZeroResults RouteStatus = "ZERO_RESULTS"
)

// One driving leg between consecutive waypoints.
type RouteLeg struct {
	DistanceMeters float64
	// EndAddress is the service's human-readable description of the leg's
	// endpoint; may be empty.
	EndAddress string
}

// RouteResult is the raw routing response the resolver classifies.
type RouteResult struct {
	Status RouteStatus
	Legs   []RouteLeg
}

// Contract for deriving a driving route over an ordered coordinate sequence.
// Order is semantically meaningful: it is the chronological visiting
// sequence, never reordered for a shorter path.
type RouteProvider interface {
	// Resolve a route with origin = first pair, destination = last pair and
	// the pairs in between as waypoints.
	ResolveRoute(ctx context.Context, coords []domain.Coordinates) (RouteResult, error)

	// MapLink builds a human-viewable URL for the same coordinate sequence.
	// It is a static template, not an API result, so it is constructible
	// whether or not route resolution succeeded.
	MapLink(coords []domain.Coordinates) string
}
